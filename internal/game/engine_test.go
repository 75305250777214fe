package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/scenario"
	"github.com/mitchelldurbincs/CivSim/internal/game/states"
	"github.com/mitchelldurbincs/CivSim/internal/testutil"
)

// fixedDice always rolls the same value: 0 makes the attacker win every
// round, 0.999 makes it lose every round.
type fixedDice float64

func (d fixedDice) Float64() float64 { return float64(d) }

type engineOption func(*Config)

func withGame(mutate func(*config.GameConfig)) engineOption {
	return func(c *Config) { mutate(&c.Game) }
}

func withDice(d float64) engineOption {
	return func(c *Config) { c.Dice = fixedDice(d) }
}

func newTestEngine(t testing.TB, opts ...engineOption) *Engine {
	t.Helper()
	cfg := Config{
		Game:   testutil.GameConfig(),
		Rng:    testutil.NewTestRNG(),
		Logger: testutil.NopLogger(),
		GameID: "test-game",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewEngine(cfg)
}

// humanScenario is an all-grassland map where every player is human and
// starts at the given position with settlers (unit 2p+1) and warriors (2p+2).
func humanScenario(w, h int, starts ...core.Position) scenario.Scenario {
	sc := scenario.Flat(w, h)
	sc.HumanPlayers = len(starts)
	for i, p := range starts {
		sc.Placements = append(sc.Placements, scenario.Placement{PlayerID: i, Pos: p})
	}
	return sc
}

func playerNames(n int) []string {
	all := []string{"Caesar", "Hammurabi", "Frederick", "Ramesses"}
	return all[:n]
}

func startGame(t testing.TB, e *Engine, sc scenario.Scenario, players int) {
	t.Helper()
	require.NoError(t, e.InitializeGame(playerNames(players), sc))
}

// twoHumans starts an 80x50 game with players at (5,25) and (40,25)
func twoHumans(t testing.TB, opts ...engineOption) *Engine {
	t.Helper()
	e := newTestEngine(t, opts...)
	startGame(t, e, humanScenario(80, 50, core.NewPosition(5, 25), core.NewPosition(40, 25)), 2)
	return e
}

// endRounds ends every player's turn n times in a two-human game
func endRounds(t testing.TB, e *Engine, n int) {
	t.Helper()
	for i := 0; i < n*len(e.gs.Players); i++ {
		require.True(t, e.EndTurn())
	}
}

func TestInitializeGame(t *testing.T) {
	e := newTestEngine(t)
	var initialized []*events.GameInitializedEvent
	events.Listen(e.EventBus(), func(ev *events.GameInitializedEvent) {
		initialized = append(initialized, ev)
	})

	startGame(t, e, humanScenario(80, 50, core.NewPosition(5, 25), core.NewPosition(40, 25)), 2)

	assert.Equal(t, states.PhasePlaying, e.Phase())
	assert.Equal(t, 1, e.gs.Turn)
	assert.Equal(t, 0, e.gs.CurrentPlayerID)
	require.Len(t, e.gs.Players, 2)
	assert.Equal(t, "romans", e.gs.Players[0].Civilization)
	assert.Equal(t, "babylonians", e.gs.Players[1].Civilization)
	assert.Equal(t, catalog.Despotism, e.gs.Players[0].Government)

	require.Len(t, e.gs.Units, 4)
	assert.Equal(t, core.NewPosition(5, 25), e.Unit(1).Pos)
	assert.Equal(t, catalog.UnitType("settlers"), e.Unit(1).Type)
	assert.Equal(t, core.NewPosition(40, 25), e.Unit(4).Pos)

	assert.Equal(t, []int{1, 2}, e.QueuedUnits())
	require.NotNil(t, e.CurrentUnit())
	assert.Equal(t, 1, e.CurrentUnit().ID)

	require.Len(t, initialized, 1)
	assert.Len(t, initialized[0].State.Units, 4)
}

func TestInitializeGame_Errors(t *testing.T) {
	sc := humanScenario(20, 20, core.NewPosition(2, 2), core.NewPosition(12, 12))

	t.Run("duplicate names", func(t *testing.T) {
		e := newTestEngine(t)
		assert.Error(t, e.InitializeGame([]string{"Caesar", "caesar"}, sc))
		assert.Equal(t, states.PhaseSetup, e.Phase())
	})

	t.Run("too many players", func(t *testing.T) {
		e := newTestEngine(t)
		names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
		assert.Error(t, e.InitializeGame(names, scenario.Flat(40, 40)))
	})

	t.Run("twice", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.InitializeGame(playerNames(2), sc))
		assert.Error(t, e.InitializeGame(playerNames(2), sc))
	})

	t.Run("commands before setup", func(t *testing.T) {
		e := newTestEngine(t)
		assert.False(t, e.MoveUnit(1, core.NewPosition(1, 1)))
		assert.False(t, e.EndTurn())
		assert.Nil(t, e.CurrentUnit())
	})
}

func TestFoundCity_80x50(t *testing.T) {
	e := twoHumans(t)
	var founded []*events.CityFoundedEvent
	events.Listen(e.EventBus(), func(ev *events.CityFoundedEvent) { founded = append(founded, ev) })

	require.True(t, e.FoundCity(1, ""))

	city := e.gs.CityAt(core.NewPosition(5, 25))
	require.NotNil(t, city)
	assert.Equal(t, 0, city.Owner)
	assert.Equal(t, "Rome", city.Name)
	assert.Equal(t, 1, city.Population)
	assert.Equal(t, 1, city.Founded)
	// Every grassland tile scores the same, so the first in row-major order wins
	assert.Equal(t, []core.Offset{{DX: -2, DY: -2}}, city.WorkedTiles)

	assert.Nil(t, e.Unit(1), "settler is consumed")
	assert.True(t, e.gs.Players[0].UsedCityNames["Rome"])
	assert.Equal(t, []int{2}, e.QueuedUnits())
	assert.Equal(t, 2, e.CurrentUnit().ID)
	require.Len(t, founded, 1)
	assert.Equal(t, city.ID, founded[0].City.ID)
}

func TestFoundCity_Rejections(t *testing.T) {
	e := twoHumans(t)
	require.True(t, e.FoundCity(1, "Capital"))

	assert.False(t, e.FoundCity(2, ""), "warriors cannot found cities")
	assert.False(t, e.FoundCity(3, ""), "not the current player's unit")

	near := e.CreateUnit("settlers", core.NewPosition(6, 25), 0)
	require.NotNil(t, near)
	assert.False(t, e.FoundCity(near.ID, ""), "too close to Capital")

	far := e.CreateUnit("settlers", core.NewPosition(7, 25), 0)
	require.NotNil(t, far)
	assert.True(t, e.FoundCity(far.ID, ""))
	assert.Equal(t, "Rome", e.gs.CityAt(core.NewPosition(7, 25)).Name)
}

func TestMoveUnit(t *testing.T) {
	e := twoHumans(t)
	var moved []*events.UnitMovedEvent
	events.Listen(e.EventBus(), func(ev *events.UnitMovedEvent) { moved = append(moved, ev) })

	warriors := e.Unit(2)

	assert.False(t, e.MoveUnit(2, core.NewPosition(7, 25)), "distance 2 with 1 movement point")
	assert.Equal(t, core.NewPosition(5, 25), warriors.Pos)
	assert.Equal(t, 1, warriors.MovementPoints)

	assert.False(t, e.MoveUnit(2, core.NewPosition(5, 25)), "own tile")
	assert.False(t, e.MoveUnit(4, core.NewPosition(41, 25)), "other player's unit")
	assert.False(t, e.MoveUnit(99, core.NewPosition(6, 25)), "missing unit")

	require.True(t, e.MoveUnit(2, core.NewPosition(6, 25)))
	assert.Equal(t, core.NewPosition(6, 25), warriors.Pos)
	assert.Equal(t, 0, warriors.MovementPoints)
	assert.Equal(t, []int{1}, e.QueuedUnits(), "unit leaves the queue at zero movement")

	assert.False(t, e.MoveUnit(2, core.NewPosition(7, 25)), "no movement left")

	require.Len(t, moved, 1)
	assert.Equal(t, core.NewPosition(5, 25), moved[0].From)
	assert.Equal(t, core.NewPosition(6, 25), moved[0].NewPosition)
}

func TestMoveUnit_WrapsHorizontally(t *testing.T) {
	e := newTestEngine(t)
	startGame(t, e, humanScenario(80, 50, core.NewPosition(0, 25), core.NewPosition(40, 25)), 2)

	require.True(t, e.MoveUnit(2, core.NewPosition(-1, 25)))
	assert.Equal(t, core.NewPosition(79, 25), e.Unit(2).Pos)

	assert.False(t, e.MoveUnit(1, core.NewPosition(79, 24)), "diagonal steps cost 2")
	require.True(t, e.MoveUnit(1, core.NewPosition(79, 25)))
	assert.Equal(t, core.NewPosition(79, 25), e.Unit(1).Pos)
}

func TestMoveUnit_ImpassableAndEnemy(t *testing.T) {
	g := testutil.FlatGrid(20, 20)
	g.SetTerrain(core.NewPosition(6, 5), catalog.Ocean)
	sc := scenario.Custom("coast", g)
	sc.HumanPlayers = 2
	sc.Placements = []scenario.Placement{
		{PlayerID: 0, Pos: core.NewPosition(5, 5)},
		{PlayerID: 1, Pos: core.NewPosition(5, 7)},
	}
	e := newTestEngine(t)
	startGame(t, e, sc, 2)

	assert.False(t, e.MoveUnit(2, core.NewPosition(6, 5)), "ocean")

	enemy := e.CreateUnit("warriors", core.NewPosition(5, 6), 1)
	require.NotNil(t, enemy)
	assert.False(t, e.MoveUnit(2, core.NewPosition(5, 6)), "enemy unit")
	assert.True(t, e.MoveUnit(2, core.NewPosition(4, 5)))
}

func TestEndTurn_RoundRobin(t *testing.T) {
	e := newTestEngine(t)
	startGame(t, e, humanScenario(40, 30, core.NewPosition(2, 5), core.NewPosition(15, 5), core.NewPosition(30, 20)), 3)

	var ended []*events.TurnEndedEvent
	events.Listen(e.EventBus(), func(ev *events.TurnEndedEvent) { ended = append(ended, ev) })

	expected := []struct{ player, turn int }{
		{1, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}, {0, 3},
	}
	for i, want := range expected {
		require.True(t, e.EndTurn())
		assert.Equal(t, want.player, e.gs.CurrentPlayerID, "handoff %d", i)
		assert.Equal(t, want.turn, e.gs.Turn, "handoff %d", i)
	}

	require.Len(t, ended, len(expected))
	assert.Equal(t, 2, ended[2].PreviousPlayer)
	assert.Equal(t, 2, ended[2].State.Turn)
	assert.Equal(t, 3, e.StateMachine().GetContext().Turn)
}

func TestEndTurn_RestoresMovementAndQueue(t *testing.T) {
	e := twoHumans(t)
	require.True(t, e.MoveUnit(2, core.NewPosition(6, 25)))
	require.True(t, e.SleepUnit(1))
	assert.Empty(t, e.QueuedUnits())

	endRounds(t, e, 1)

	assert.Equal(t, 1, e.Unit(2).MovementPoints)
	assert.Equal(t, []int{2}, e.QueuedUnits(), "sleeping units stay out of the queue")

	require.True(t, e.WakeUnit(1))
	endRounds(t, e, 1)
	assert.Equal(t, []int{1, 2}, e.QueuedUnits())
}

func TestEndTurn_RejectedUnlessPlaying(t *testing.T) {
	e := twoHumans(t)

	require.True(t, e.Pause())
	assert.False(t, e.EndTurn())
	assert.False(t, e.MoveUnit(2, core.NewPosition(6, 25)))
	require.True(t, e.Resume())
	assert.True(t, e.MoveUnit(2, core.NewPosition(6, 25)))

	var ended []*events.GameEndedEvent
	events.Listen(e.EventBus(), func(ev *events.GameEndedEvent) { ended = append(ended, ev) })
	require.True(t, e.EndGame(-1))
	assert.True(t, e.IsGameOver())
	assert.Equal(t, -1, e.Winner())
	assert.False(t, e.EndTurn())
	assert.False(t, e.EndGame(0))
	assert.Len(t, ended, 1)
}

func TestFortifyAndWake(t *testing.T) {
	e := twoHumans(t)
	var fortified []*events.UnitFortifiedEvent
	events.Listen(e.EventBus(), func(ev *events.UnitFortifiedEvent) { fortified = append(fortified, ev) })

	assert.False(t, e.FortifyUnit(1), "settlers cannot fortify")

	require.True(t, e.FortifyUnit(2))
	warriors := e.Unit(2)
	assert.Equal(t, core.UnitFortifying, warriors.State)
	assert.Equal(t, 0, warriors.MovementPoints)
	assert.Equal(t, []int{1}, e.QueuedUnits())
	assert.Len(t, fortified, 1)

	endRounds(t, e, 1)
	assert.Equal(t, core.UnitFortified, warriors.State)
	assert.Equal(t, 0, warriors.MovementPoints, "fortified units are not restored")

	require.True(t, e.WakeUnit(2))
	assert.Equal(t, core.UnitActive, warriors.State)
	require.True(t, e.WakeUnit(2), "waking an active unit is a no-op")

	endRounds(t, e, 1)
	assert.Equal(t, 1, warriors.MovementPoints)
	assert.Contains(t, e.QueuedUnits(), 2)
}

func TestSleepingUnitRejoinsQueue(t *testing.T) {
	e := twoHumans(t)
	explorer := e.CreateUnit("explorer", core.NewPosition(10, 25), 0)
	require.NotNil(t, explorer)
	require.Contains(t, e.QueuedUnits(), explorer.ID)

	t.Run("moved", func(t *testing.T) {
		require.True(t, e.SleepUnit(explorer.ID))
		assert.NotContains(t, e.QueuedUnits(), explorer.ID)

		require.True(t, e.MoveUnit(explorer.ID, core.NewPosition(11, 25)))
		assert.Equal(t, core.UnitActive, explorer.State)
		assert.Equal(t, 2, explorer.MovementPoints)
		assert.Contains(t, e.QueuedUnits(), explorer.ID)
	})

	t.Run("woken", func(t *testing.T) {
		require.True(t, e.SleepUnit(explorer.ID))
		assert.NotContains(t, e.QueuedUnits(), explorer.ID)

		require.True(t, e.WakeUnit(explorer.ID))
		assert.Contains(t, e.QueuedUnits(), explorer.ID)
	})

	t.Run("out of movement", func(t *testing.T) {
		require.True(t, e.SleepUnit(explorer.ID))
		require.True(t, e.MoveUnit(explorer.ID, core.NewPosition(13, 25)))
		assert.Equal(t, 0, explorer.MovementPoints)
		assert.NotContains(t, e.QueuedUnits(), explorer.ID)
	})
}

func TestBuildRoad(t *testing.T) {
	e := twoHumans(t)
	pos := core.NewPosition(5, 25)

	assert.False(t, e.BuildRoad(2), "warriors cannot build roads")
	require.True(t, e.BuildRoad(1))
	settlers := e.Unit(1)
	assert.Equal(t, core.UnitBuildingRoad, settlers.State)
	assert.Equal(t, 2, settlers.RoadTurnsRemaining)

	endRounds(t, e, 1)
	assert.Equal(t, core.UnitBuildingRoad, settlers.State)
	assert.False(t, e.gs.grid.HasImprovement(pos, core.ImprovementRoad))

	endRounds(t, e, 1)
	assert.Equal(t, core.UnitActive, settlers.State)
	assert.Equal(t, 1, settlers.MovementPoints)
	assert.True(t, e.gs.grid.HasImprovement(pos, core.ImprovementRoad))
	assert.Equal(t, 1, e.gs.grid.TileTrade(pos))

	assert.False(t, e.BuildRoad(1), "tile already has a road")
}

func TestAttackUnit_AttackerWins(t *testing.T) {
	e := twoHumans(t, withDice(0))
	var destroyed []*events.UnitDestroyedEvent
	events.Listen(e.EventBus(), func(ev *events.UnitDestroyedEvent) { destroyed = append(destroyed, ev) })

	att := e.CreateUnit("legion", core.NewPosition(10, 25), 0)
	def := e.CreateUnit("warriors", core.NewPosition(11, 25), 1)
	require.NotNil(t, att)
	require.NotNil(t, def)

	report := e.AttackUnit(att.ID, def.ID)
	require.NotNil(t, report)
	assert.True(t, report.Result.AttackerSurvived)
	assert.False(t, report.Result.DefenderSurvived)
	assert.Equal(t, core.NewPosition(11, 25), report.Location)

	assert.Nil(t, e.Unit(def.ID))
	assert.True(t, att.Veteran)
	assert.Equal(t, 1, att.Experience)
	assert.Equal(t, att.MaxMovementPoints-1, att.MovementPoints)
	assert.Equal(t, att.MaxHealth, att.Health)
	require.Len(t, destroyed, 1)
	assert.Equal(t, 0, destroyed[0].KilledBy)
}

func TestAttackUnit_AttackerLoses(t *testing.T) {
	e := twoHumans(t, withDice(0.999))

	att := e.CreateUnit("warriors", core.NewPosition(10, 25), 0)
	def := e.CreateUnit("phalanx", core.NewPosition(11, 26), 1)

	report := e.AttackUnit(att.ID, def.ID)
	require.NotNil(t, report)
	assert.False(t, report.Result.AttackerSurvived)
	assert.True(t, report.Result.DefenderSurvived)
	assert.Nil(t, e.Unit(att.ID))
	assert.NotContains(t, e.QueuedUnits(), att.ID)
	assert.Equal(t, 1, def.Experience)
	assert.False(t, def.Veteran)
}

func TestAttackUnit_Rejections(t *testing.T) {
	e := twoHumans(t, withDice(0))
	own := e.CreateUnit("warriors", core.NewPosition(10, 25), 0)
	far := e.CreateUnit("warriors", core.NewPosition(13, 25), 1)

	assert.Nil(t, e.AttackUnit(own.ID, 2), "same owner")
	assert.Nil(t, e.AttackUnit(own.ID, far.ID), "not adjacent")
	assert.Nil(t, e.AttackUnit(1, 4), "settlers have no attack")
	assert.Nil(t, e.AttackUnit(4, own.ID), "not the attacker's turn")
	assert.Nil(t, e.AttackUnit(own.ID, 99), "missing defender")
}

func TestCreateUnit(t *testing.T) {
	e := twoHumans(t)

	u := e.CreateUnit("horsemen", core.NewPosition(85, 10), 0)
	require.NotNil(t, u)
	assert.Equal(t, core.NewPosition(5, 10), u.Pos, "x wraps")
	assert.Contains(t, e.QueuedUnits(), u.ID)

	other := e.CreateUnit("warriors", core.NewPosition(6, 10), 1)
	require.NotNil(t, other)
	assert.NotContains(t, e.QueuedUnits(), other.ID, "only the current player's units are queued")

	assert.Nil(t, e.CreateUnit("dragon", core.NewPosition(5, 10), 0))
	assert.Nil(t, e.CreateUnit("warriors", core.NewPosition(5, 50), 0))
	assert.Nil(t, e.CreateUnit("warriors", core.NewPosition(6, 10), 0), "enemy holds the tile")
	assert.Nil(t, e.CreateUnit("warriors", core.NewPosition(5, 10), 7))
}

func TestCaptureAndConquest(t *testing.T) {
	e := twoHumans(t, withDice(0), withGame(func(c *config.GameConfig) { c.Victory.Conquest = true }))
	var captured []*events.CityCapturedEvent
	var eliminated []*events.PlayerEliminatedEvent
	events.Listen(e.EventBus(), func(ev *events.CityCapturedEvent) { captured = append(captured, ev) })
	events.Listen(e.EventBus(), func(ev *events.PlayerEliminatedEvent) { eliminated = append(eliminated, ev) })

	require.True(t, e.EndTurn())
	require.True(t, e.FoundCity(3, ""))
	require.True(t, e.MoveUnit(4, core.NewPosition(41, 25)))
	require.True(t, e.EndTurn())

	raider := e.CreateUnit("warriors", core.NewPosition(39, 25), 0)
	require.True(t, e.MoveUnit(raider.ID, core.NewPosition(40, 25)))

	city := e.gs.CityAt(core.NewPosition(40, 25))
	require.NotNil(t, city)
	assert.Equal(t, 0, city.Owner)
	assert.Nil(t, city.CurrentProduction)
	require.Len(t, captured, 1)
	assert.Equal(t, 1, captured[0].PreviousOwner)
	assert.False(t, e.IsGameOver(), "player 1 still has warriors")

	legion := e.CreateUnit("legion", core.NewPosition(42, 25), 0)
	require.NotNil(t, e.AttackUnit(legion.ID, 4))

	require.Len(t, eliminated, 1)
	assert.Equal(t, 1, eliminated[0].Metadata.PlayerID)
	assert.True(t, e.gs.Players[1].Eliminated)
	assert.True(t, e.IsGameOver())
	assert.Equal(t, 0, e.Winner())
}

func TestUnitQueueNavigation(t *testing.T) {
	e := twoHumans(t)
	var selected []int
	var blinks, exhausted int
	events.Listen(e.EventBus(), func(ev *events.UnitSelectedEvent) { selected = append(selected, ev.UnitID) })
	events.Listen(e.EventBus(), func(*events.UnitBlinkEvent) { blinks++ })
	events.Listen(e.EventBus(), func(*events.EndOfTurnEvent) { exhausted++ })

	assert.Equal(t, 2, e.SelectNextUnit().ID)
	assert.Equal(t, 1, e.SelectNextUnit().ID, "wraps forward")
	assert.Equal(t, 2, e.SelectPreviousUnit().ID, "wraps backward")
	assert.Equal(t, []int{2, 1, 2}, selected)

	assert.True(t, e.DeselectUnit())
	assert.Nil(t, e.CurrentUnit())
	assert.False(t, e.DeselectUnit())
	assert.False(t, e.BlinkSelectedUnit())

	assert.True(t, e.SelectUnit(1))
	assert.False(t, e.SelectUnit(3), "not in the queue")
	assert.True(t, e.BlinkSelectedUnit())
	assert.Equal(t, 1, blinks)

	require.True(t, e.FoundCity(1, ""))
	assert.Equal(t, 2, e.CurrentUnit().ID, "next unit selected after the settler leaves")
	require.True(t, e.FortifyUnit(2))
	assert.Nil(t, e.CurrentUnit())
	assert.Equal(t, 1, exhausted)
}

func TestLegalMoves(t *testing.T) {
	e := twoHumans(t)
	// Diagonals are two steps away with one movement point
	moves := e.LegalMoves(2)
	assert.Equal(t, []core.Position{
		core.NewPosition(5, 24),
		core.NewPosition(4, 25),
		core.NewPosition(6, 25),
		core.NewPosition(5, 26),
	}, moves)
	assert.Nil(t, e.LegalMoves(99))
}

func TestBoard(t *testing.T) {
	e := twoHumans(t)
	require.True(t, e.FoundCity(1, ""))

	plain := e.Board(false)
	assert.Contains(t, plain, "@")
	assert.Contains(t, plain, "B", "player 1's units")
	assert.NotContains(t, plain, "\033[")

	colored := e.Board(true)
	assert.Contains(t, colored, "\033[38;2;200;50;50m@")
}

func TestPlayerStats(t *testing.T) {
	e := twoHumans(t)
	require.True(t, e.FoundCity(1, ""))

	stats := e.PlayerStats()
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].Cities)
	assert.Equal(t, 1, stats[0].Units)
	assert.Equal(t, 1, stats[0].Military)
	assert.Equal(t, 0, stats[0].Settlers)
	assert.Equal(t, 1, stats[1].Settlers)
	assert.Equal(t, 2, stats[0].Score())
}
