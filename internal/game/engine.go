// Package game holds the engine facade: the single synchronous entry point
// that owns the GameState, validates and applies commands, runs the turn
// manager and drives computer players.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/ai"
	"github.com/mitchelldurbincs/CivSim/internal/game/combat"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/rules"
	"github.com/mitchelldurbincs/CivSim/internal/game/states"
)

// CombatResult is returned by AttackUnit
type CombatResult = combat.Report

// MaxPlayers bounds the number of players in one game
const MaxPlayers = 8

// Config holds the collaborators and tunables of an Engine
type Config struct {
	Game   config.GameConfig
	Rng    *rand.Rand
	Logger zerolog.Logger
	GameID string

	// EventBus is created when nil
	EventBus *events.EventBus

	// Dice drives combat rounds; Rng is used when nil
	Dice combat.Dice
}

// Engine is the game facade. It is not safe for concurrent use; all calls
// must come from one goroutine.
type Engine struct {
	gs     *GameState
	cfg    config.GameConfig
	rng    *rand.Rand
	dice   combat.Dice
	logger zerolog.Logger
	gameID string

	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	combat        combat.Params
	ai            *ai.Player
	victory       *rules.VictoryChecker
	production    *ProductionManager
	turnProcessor *TurnProcessor

	queue    unitQueue
	aiPlayed bool
}

// NewEngine creates an engine in the Setup phase. Call InitializeGame to start.
func NewEngine(cfg Config) *Engine {
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Dice == nil {
		cfg.Dice = cfg.Rng
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.New().String()
	}
	logger := cfg.Logger.With().Str("component", "GameEngine").Str("game_id", cfg.GameID).Logger()
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBusWithLogger(cfg.Logger)
	}

	gameContext := states.NewGameContext(cfg.GameID, MaxPlayers, cfg.Logger)

	e := &Engine{
		cfg:          cfg.Game,
		rng:          cfg.Rng,
		dice:         cfg.Dice,
		logger:       logger,
		gameID:       cfg.GameID,
		eventBus:     cfg.EventBus,
		stateMachine: states.NewStateMachine(gameContext, cfg.EventBus),
		combat:       combat.ParamsFromConfig(cfg.Game.Combat),
		ai:           ai.NewPlayer(cfg.Game.AI, cfg.Rng, cfg.Logger),
		victory:      rules.NewVictoryChecker(cfg.Logger),
	}
	e.production = NewProductionManager(e)
	e.turnProcessor = NewTurnProcessor(e)
	return e
}

// Public accessors

func (e *Engine) GameID() string                     { return e.gameID }
func (e *Engine) EventBus() *events.EventBus         { return e.eventBus }
func (e *Engine) Phase() states.GamePhase            { return e.stateMachine.CurrentPhase() }
func (e *Engine) StateMachine() *states.StateMachine { return e.stateMachine }

// State returns the live game state. Callers must treat it as read-only.
func (e *Engine) State() *GameState { return e.gs }

func (e *Engine) Unit(id int) *core.Unit {
	if e.gs == nil {
		return nil
	}
	return e.gs.Unit(id)
}

func (e *Engine) City(id int) *core.City {
	if e.gs == nil {
		return nil
	}
	return e.gs.City(id)
}

func (e *Engine) Player(id int) *core.Player {
	if e.gs == nil {
		return nil
	}
	return e.gs.Player(id)
}

// CurrentPlayer returns the player whose turn it is
func (e *Engine) CurrentPlayer() *core.Player {
	if e.gs == nil {
		return nil
	}
	return e.gs.Player(e.gs.CurrentPlayerID)
}

// IsGameOver reports whether the game reached the Ended phase
func (e *Engine) IsGameOver() bool { return e.Phase() == states.PhaseEnded }

// Winner returns the winning player, or -1
func (e *Engine) Winner() int { return e.stateMachine.GetContext().Winner }

// LegalMoves returns the one-step moves available to a unit
func (e *Engine) LegalMoves(unitID int) []core.Position {
	u := e.Unit(unitID)
	if u == nil {
		return nil
	}
	return rules.LegalMoves(e.gs, u)
}

// Pause suspends command processing
func (e *Engine) Pause() bool {
	return e.transition(states.PhasePaused, "paused")
}

// Resume continues a paused game
func (e *Engine) Resume() bool {
	if e.Phase() != states.PhasePaused {
		return false
	}
	return e.transition(states.PhasePlaying, "resumed")
}

// EndGame ends the game with winner (-1 for none)
func (e *Engine) EndGame(winner int) bool {
	if e.Phase() == states.PhaseEnded {
		return false
	}
	ctx := e.stateMachine.GetContext()
	ctx.Winner = winner
	if !e.transition(states.PhaseEnded, "game ended") {
		ctx.Winner = -1
		return false
	}
	turn := 0
	if e.gs != nil {
		turn = e.gs.Turn
	}
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, turn))
	return true
}

func (e *Engine) transition(to states.GamePhase, reason string) bool {
	if e.gs != nil {
		e.stateMachine.GetContext().Turn = e.gs.Turn
	}
	if err := e.stateMachine.TransitionTo(to, reason); err != nil {
		e.logger.Debug().Err(err).Str("target_phase", to.String()).Msg("Phase transition rejected")
		return false
	}
	return true
}

// checkCommand verifies that the game accepts commands from playerID now
func (e *Engine) checkCommand(playerID int) error {
	if e.gs == nil || !e.Phase().CanReceiveCommands() {
		return core.ErrGameNotPlaying
	}
	if e.gs.Player(playerID) == nil {
		return fmt.Errorf("player %d: %w", playerID, core.ErrInvalidPlayer)
	}
	if playerID != e.gs.CurrentPlayerID {
		return fmt.Errorf("player %d: %w", playerID, core.ErrNotYourTurn)
	}
	return nil
}

// ownedUnit returns a unit of the current player or an error
func (e *Engine) ownedUnit(unitID int) (*core.Unit, error) {
	if e.gs == nil {
		return nil, core.ErrGameNotPlaying
	}
	u := e.gs.Unit(unitID)
	if u == nil {
		return nil, fmt.Errorf("unit %d: %w", unitID, core.ErrUnitNotFound)
	}
	if err := e.checkCommand(u.Owner); err != nil {
		return nil, err
	}
	return u, nil
}

// reject logs a refused command and returns false
func (e *Engine) reject(command string, err error) bool {
	e.logger.Debug().Err(err).Str("command", command).Msg("Command rejected")
	return false
}

func (e *Engine) publish(ev events.Event) {
	e.eventBus.Publish(ev)
}
