package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// PlayerCount is the number of players in the game
	PlayerCount int

	// MaxPlayers is the maximum number of players allowed
	MaxPlayers int

	// Turn is kept current by the engine so transition events carry it
	Turn int

	// StartTime is when the game started (PhasePlaying first entered)
	StartTime time.Time

	// PauseTime is when the game was paused (if paused)
	PauseTime time.Time

	// TotalPauseDuration tracks total time spent paused
	TotalPauseDuration time.Duration

	// Winner is the player ID of the winner (if game ended)
	Winner int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, maxPlayers int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:     gameID,
		MaxPlayers: maxPlayers,
		Logger:     logger.With().Str("game_id", gameID).Logger(),
		Winner:     -1, // -1 indicates no winner yet
	}
}

// IsReady returns true if the game has enough players to start
func (gc *GameContext) IsReady() bool {
	return gc.PlayerCount >= 1 && gc.PlayerCount <= gc.MaxPlayers
}

// GetElapsedTime returns the time elapsed since game start, excluding pauses
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	return time.Since(gc.StartTime) - gc.TotalPauseDuration
}
