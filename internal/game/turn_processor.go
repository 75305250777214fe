package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/states"
)

// TurnProcessor handles player handoffs, the turn-start tick and computer
// player turns.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// EndTurn finishes the current player's turn. Computer players that follow
// move immediately, at most one full round per call. A computer player that
// is current without having moved, as seat 0 right after InitializeGame,
// plays first.
func (e *Engine) EndTurn() bool {
	if e.gs == nil || !e.Phase().CanReceiveCommands() {
		return e.reject("end_turn", core.ErrGameNotPlaying)
	}
	if e.CurrentPlayer().IsHuman {
		e.turnProcessor.handoff()
	}
	e.turnProcessor.Run()
	return true
}

// Run plays computer players starting with the current one until a human
// is to move, the game ends, or every seat has had one turn.
func (tp *TurnProcessor) Run() {
	e := tp.engine
	budget := len(e.gs.Players)

	for budget > 0 && e.Phase() == states.PhasePlaying {
		p := e.CurrentPlayer()
		if p.IsHuman {
			return
		}
		if !e.aiPlayed {
			tp.playComputer(p)
		}
		budget--
		if e.Phase() != states.PhasePlaying {
			return
		}
		tp.handoff()
	}
}

func (tp *TurnProcessor) playComputer(p *core.Player) {
	e := tp.engine
	e.aiPlayed = true
	report := e.ai.PlayTurn(e.gs, e, p.ID)

	tp.logger.Debug().
		Int("turn", e.gs.Turn).
		Int("player_id", p.ID).
		Int("moves", report.Moves).
		Int("cities_founded", report.CitiesFounded).
		Int("attacks", report.Attacks).
		Int("fortified", report.Fortified).
		Int("production_set", report.ProductionSet).
		Int("researched", report.Researched).
		Int("failed", report.Failed).
		Msg("Computer turn complete")
}

// handoff passes control to the next player still in the game. The next
// player's tick runs before the turn counter moves.
func (tp *TurnProcessor) handoff() {
	e := tp.engine
	gs := e.gs
	previous := gs.CurrentPlayerID

	e.clearQueue()

	next, wrapped := tp.nextPlayer(previous)
	tp.tick(gs.Players[next])
	if wrapped {
		gs.Turn++
	}
	gs.CurrentPlayerID = next
	e.aiPlayed = false
	e.stateMachine.GetContext().Turn = gs.Turn

	tp.logger.Debug().
		Int("turn", gs.Turn).
		Int("previous_player", previous).
		Int("current_player", next).
		Msg("Turn handed off")
	e.publish(events.NewTurnEndedEvent(e.gameID, previous, gs.Snapshot(e.Phase().String())))

	e.checkConquest()
	if e.Phase() == states.PhasePlaying {
		e.rebuildQueue()
	}
}

// nextPlayer returns the next seat after current that is not eliminated and
// whether the search went past the last seat.
func (tp *TurnProcessor) nextPlayer(current int) (int, bool) {
	players := tp.engine.gs.Players
	n := len(players)
	for i := 1; i <= n; i++ {
		id := (current + i) % n
		if !players[id].Eliminated {
			return id, current+i >= n
		}
	}
	return current, true
}

// tick is the turn-start update for one player
func (tp *TurnProcessor) tick(p *core.Player) {
	e := tp.engine
	gs := e.gs

	for _, u := range gs.UnitsOf(p.ID) {
		switch u.State {
		case core.UnitFortifying:
			u.State = core.UnitFortified
			e.publish(events.NewUnitFortifiedEvent(e.gameID, gs.Turn, u))
		case core.UnitActive:
			u.RestoreMovement()
		case core.UnitBuildingRoad:
			tp.advanceRoad(u)
		}
		tp.heal(u)
	}

	e.production.ProcessCities(p)
	e.resolveRevolution(p)
}

func (tp *TurnProcessor) advanceRoad(u *core.Unit) {
	u.RoadTurnsRemaining--
	if u.RoadTurnsRemaining > 0 {
		return
	}
	g := tp.engine.gs.grid
	g.AddImprovement(u.Pos, core.ImprovementRoad)
	u.State = core.UnitActive
	u.RoadTurnsRemaining = 0
	u.RestoreMovement()

	tp.logger.Debug().Int("unit_id", u.ID).Str("position", u.Pos.String()).Msg("Road completed")
}

// heal restores health faster inside one of the owner's cities
func (tp *TurnProcessor) heal(u *core.Unit) {
	if u.Health >= u.MaxHealth {
		return
	}
	cfg := tp.engine.cfg.Healing
	if c := tp.engine.gs.CityAt(u.Pos); c != nil && c.Owner == u.Owner {
		u.Heal(cfg.City)
		return
	}
	u.Heal(cfg.Field)
}

// checkConquest applies the optional conquest rule after anything that can
// remove a player's last unit or city.
func (e *Engine) checkConquest() {
	if !e.cfg.Victory.Conquest || e.gs == nil || e.Phase() == states.PhaseEnded {
		return
	}
	eliminated, over, winner := e.victory.Check(e.gs)
	for _, id := range eliminated {
		if p := e.gs.Player(id); p != nil {
			p.Eliminated = true
		}
		e.publish(events.NewPlayerEliminatedEvent(e.gameID, e.gs.Turn, id))
	}
	if over {
		e.EndGame(winner)
	}
}
