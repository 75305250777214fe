package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/common"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/scenario"
	"github.com/mitchelldurbincs/CivSim/internal/game/states"
)

// EngineInitializer handles the multi-step setup of a new game
type EngineInitializer struct {
	engine *Engine
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(e *Engine) *EngineInitializer {
	return &EngineInitializer{
		engine: e,
		logger: e.logger.With().Str("phase", "init").Logger(),
	}
}

// InitializeGame builds the world described by sc, creates one player per
// name and starts play. The first sc.HumanPlayers players are human.
// No computer player moves here: when seat 0 is a computer (no humans), the
// first EndTurn plays its opening turn along with the rest of round one.
func (e *Engine) InitializeGame(playerNames []string, sc scenario.Scenario) error {
	return NewEngineInitializer(e).Initialize(playerNames, sc)
}

// Initialize runs the setup steps in order
func (ei *EngineInitializer) Initialize(playerNames []string, sc scenario.Scenario) error {
	e := ei.engine
	if e.Phase() != states.PhaseSetup {
		return fmt.Errorf("initialize game: already in %s phase", e.Phase())
	}
	if len(playerNames) > MaxPlayers {
		return fmt.Errorf("initialize game: %d players exceeds the maximum of %d", len(playerNames), MaxPlayers)
	}
	if err := common.ValidatePlayerNames(playerNames); err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}
	if err := sc.Validate(len(playerNames)); err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}

	starts, err := ei.generateWorld(&sc, len(playerNames))
	if err != nil {
		return fmt.Errorf("world generation failed: %w", err)
	}

	gs := newGameState(sc.Grid)
	e.gs = gs
	ei.initializePlayers(gs, playerNames, &sc)
	ei.placeStartingUnits(gs, &sc, starts)

	if err := ei.initializeStateMachine(len(playerNames)); err != nil {
		e.gs = nil
		return fmt.Errorf("state machine initialization failed: %w", err)
	}

	e.publish(events.NewGameInitializedEvent(e.gameID, gs.Snapshot(e.Phase().String())))
	e.rebuildQueue()

	ei.logger.Info().
		Str("scenario", sc.Name).
		Int("width", sc.Grid.W).
		Int("height", sc.Grid.H).
		Int("players", len(playerNames)).
		Int("humans", sc.HumanPlayers).
		Msg("Game initialized")
	return nil
}

// generateWorld builds the grid if needed and picks start positions
func (ei *EngineInitializer) generateWorld(sc *scenario.Scenario, players int) ([]core.Position, error) {
	builder := scenario.NewBuilder(ei.engine.rng, ei.engine.logger)
	grid, err := builder.BuildGrid(sc)
	if err != nil {
		return nil, err
	}
	sc.Grid = grid
	return builder.PlaceStarts(sc, players)
}

func (ei *EngineInitializer) initializePlayers(gs *GameState, names []string, sc *scenario.Scenario) {
	gs.Players = make([]*core.Player, len(names))
	for i, name := range names {
		civ := sc.CivilizationFor(i)
		p := core.NewPlayer(i, name, i < sc.HumanPlayers, civ)
		p.Gold = sc.StartGold
		gs.Players[i] = p

		ei.logger.Debug().
			Int("player_id", i).
			Str("name", name).
			Str("civilization", civ.ID).
			Bool("human", p.IsHuman).
			Msg("Player created")
	}
}

func (ei *EngineInitializer) placeStartingUnits(gs *GameState, sc *scenario.Scenario, starts []core.Position) {
	for pid, pos := range starts {
		for _, t := range sc.StartUnits {
			ei.engine.spawnUnit(catalog.MustUnit(t), pos, pid)
		}
	}
}

func (ei *EngineInitializer) initializeStateMachine(players int) error {
	ctx := ei.engine.stateMachine.GetContext()
	ctx.PlayerCount = players
	ctx.Turn = ei.engine.gs.Turn
	if err := ei.engine.stateMachine.TransitionTo(states.PhasePlaying, "Game setup complete"); err != nil {
		ei.logger.Error().Err(err).Msg("Failed to transition to Playing state")
		return err
	}
	return nil
}
