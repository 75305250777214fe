package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/scenario"
)

func computerScenario(w, h, humans int, starts ...core.Position) scenario.Scenario {
	sc := scenario.Flat(w, h)
	sc.HumanPlayers = humans
	for i, p := range starts {
		sc.Placements = append(sc.Placements, scenario.Placement{PlayerID: i, Pos: p})
	}
	return sc
}

func TestEndTurn_AllComputerPlayersAdvanceOneRound(t *testing.T) {
	e := newTestEngine(t)
	startGame(t, e, computerScenario(40, 30, 0, core.NewPosition(5, 10), core.NewPosition(25, 20)), 2)
	assert.Empty(t, e.gs.Cities, "nobody moves before the first EndTurn")
	assert.Equal(t, 1, e.gs.Turn)
	assert.Equal(t, 0, e.gs.CurrentPlayerID)
	assert.Len(t, e.gs.UnitsOf(0), 2, "the opening computer seat is idle")

	var ended int
	events.Listen(e.EventBus(), func(*events.TurnEndedEvent) { ended++ })

	require.True(t, e.EndTurn())
	assert.Equal(t, 2, e.gs.Turn)
	assert.Equal(t, 0, e.gs.CurrentPlayerID)
	assert.Equal(t, 2, ended)
	assert.Len(t, e.gs.CitiesOf(0), 1)
	assert.Len(t, e.gs.CitiesOf(1), 1)

	require.True(t, e.EndTurn())
	assert.Equal(t, 3, e.gs.Turn)
	assert.Equal(t, 4, ended)
}

func TestEndTurn_HumanThenComputer(t *testing.T) {
	e := newTestEngine(t)
	startGame(t, e, computerScenario(40, 30, 1, core.NewPosition(5, 10), core.NewPosition(25, 20)), 2)

	var ended []*events.TurnEndedEvent
	events.Listen(e.EventBus(), func(ev *events.TurnEndedEvent) { ended = append(ended, ev) })

	require.True(t, e.EndTurn())
	assert.Equal(t, 0, e.gs.CurrentPlayerID, "control returns to the human")
	assert.Equal(t, 2, e.gs.Turn)
	require.Len(t, ended, 2)
	assert.Equal(t, 0, ended[0].PreviousPlayer)
	assert.Equal(t, 1, ended[1].PreviousPlayer)
	assert.Len(t, e.gs.CitiesOf(1), 1)
	assert.Empty(t, e.gs.CitiesOf(0))
	assert.Equal(t, []int{1, 2}, e.QueuedUnits())
}

func TestComputerSettlerFoundsOnTurnThree(t *testing.T) {
	e := newTestEngine(t)
	sc := computerScenario(80, 50, 1, core.NewPosition(5, 25), core.NewPosition(40, 25))
	sc.StartUnits = []catalog.UnitType{"warriors"}
	startGame(t, e, sc, 2)

	endRounds(t, e, 2)
	require.Equal(t, 3, e.gs.Turn)
	require.Empty(t, e.gs.Cities)

	site := core.NewPosition(60, 10)
	require.NotNil(t, e.CreateUnit("settlers", site, 1))
	require.True(t, e.EndTurn())

	city := e.gs.CityAt(site)
	require.NotNil(t, city, "a valid grassland site is settled on the spot")
	assert.Equal(t, 1, city.Owner)
	assert.Equal(t, 3, city.Founded)
	assert.Equal(t, "Babylon", city.Name)
	assert.Equal(t, 4, e.gs.Turn)
}

func TestComputerGameIsDeterministic(t *testing.T) {
	play := func() (string, []PlayerStats) {
		e := newTestEngine(t)
		startGame(t, e, computerScenario(40, 30, 0), 3)
		for i := 0; i < 15 && !e.IsGameOver(); i++ {
			require.True(t, e.EndTurn())
		}
		return e.Board(false), e.PlayerStats()
	}

	board1, stats1 := play()
	board2, stats2 := play()
	assert.Equal(t, board1, board2)
	assert.Equal(t, stats1, stats2)
}

func TestComputerGameKeepsInvariants(t *testing.T) {
	e := newTestEngine(t)
	startGame(t, e, computerScenario(48, 32, 0), 4)

	for round := 0; round < 40 && !e.IsGameOver(); round++ {
		require.True(t, e.EndTurn())

		occupied := make(map[core.Position]int)
		for _, c := range e.gs.Cities {
			occupied[c.Pos]++
			assert.GreaterOrEqual(t, c.Population, 1, "city %s", c.Name)
			assert.LessOrEqual(t, len(c.WorkedTiles), c.Population, "city %s", c.Name)
		}
		for pos, n := range occupied {
			assert.Equal(t, 1, n, "cities at %v", pos)
		}
		for _, u := range e.gs.Units {
			assert.GreaterOrEqual(t, u.MovementPoints, 0)
			assert.LessOrEqual(t, u.MovementPoints, u.MaxMovementPoints)
			assert.Greater(t, u.Health, 0, "dead unit %d left on the map", u.ID)
			assert.Equal(t, u.Pos, e.gs.grid.Normalize(u.Pos))
			assert.True(t, e.gs.grid.TerrainAt(u.Pos).Passable)
		}
	}
	assert.Greater(t, e.gs.Turn, 1)
}

func TestNextPlayerSkipsEliminated(t *testing.T) {
	e := newTestEngine(t)
	startGame(t, e, humanScenario(40, 30, core.NewPosition(2, 5), core.NewPosition(15, 5), core.NewPosition(30, 20)), 3)
	e.gs.Players[1].Eliminated = true

	require.True(t, e.EndTurn())
	assert.Equal(t, 2, e.gs.CurrentPlayerID)
	assert.Equal(t, 1, e.gs.Turn)

	require.True(t, e.EndTurn())
	assert.Equal(t, 0, e.gs.CurrentPlayerID)
	assert.Equal(t, 2, e.gs.Turn)
}

func TestHealing(t *testing.T) {
	e := twoHumans(t)
	city := foundCapital(t, e)
	inCity := e.Unit(2)
	field := e.CreateUnit("warriors", core.NewPosition(20, 20), 0)
	inCity.Health = 2
	field.Health = 2

	endRounds(t, e, 1)
	assert.Equal(t, city.Pos, inCity.Pos)
	assert.Equal(t, 5, inCity.Health)
	assert.Equal(t, 3, field.Health)

	endRounds(t, e, 5)
	assert.Equal(t, inCity.MaxHealth, inCity.Health)
}
