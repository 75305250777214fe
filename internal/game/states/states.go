package states

import (
	"fmt"
	"time"
)

// SetupState is the phase before the first turn
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Setup state")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("player_count", ctx.PlayerCount).
		Msg("Setup complete")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// PlayingState represents active gameplay
type PlayingState struct{}

func NewPlayingState() State {
	return &PlayingState{}
}

func (s *PlayingState) Phase() GamePhase {
	return PhasePlaying
}

func (s *PlayingState) Enter(ctx *GameContext) error {
	if ctx.StartTime.IsZero() {
		ctx.StartTime = time.Now()
		ctx.Logger.Info().
			Int("player_count", ctx.PlayerCount).
			Msg("Game started")
		return nil
	}
	if !ctx.PauseTime.IsZero() {
		ctx.TotalPauseDuration += time.Since(ctx.PauseTime)
		ctx.PauseTime = time.Time{}
	}
	ctx.Logger.Info().Int("turn", ctx.Turn).Msg("Game resumed")
	return nil
}

func (s *PlayingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *PlayingState) Validate(ctx *GameContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("cannot play with %d players (max %d)", ctx.PlayerCount, ctx.MaxPlayers)
	}
	return nil
}

// PausedState suspends command processing
type PausedState struct{}

func NewPausedState() State {
	return &PausedState{}
}

func (s *PausedState) Phase() GamePhase {
	return PhasePaused
}

func (s *PausedState) Enter(ctx *GameContext) error {
	ctx.PauseTime = time.Now()
	ctx.Logger.Info().Int("turn", ctx.Turn).Msg("Game paused")
	return nil
}

func (s *PausedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *PausedState) Validate(ctx *GameContext) error {
	return nil
}

// EndedState is terminal
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Int("turn", ctx.Turn).
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return fmt.Errorf("ended is a terminal state")
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if ctx.Winner < -1 || ctx.Winner >= ctx.PlayerCount {
		return fmt.Errorf("invalid winner %d", ctx.Winner)
	}
	return nil
}
