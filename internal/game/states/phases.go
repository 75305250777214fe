package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhaseSetup - players and map are being placed
	PhaseSetup GamePhase = iota

	// PhasePlaying - turns are being taken
	PhasePlaying

	// PhasePaused - temporary suspension, commands are rejected
	PhasePaused

	// PhaseEnded - final state, no further turns
	PhaseEnded
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveCommands returns true if player commands are accepted in this phase
func (p GamePhase) CanReceiveCommands() bool {
	return p == PhasePlaying
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseSetup:
		return []GamePhase{PhasePlaying, PhaseEnded}
	case PhasePlaying:
		return []GamePhase{PhasePaused, PhaseEnded}
	case PhasePaused:
		return []GamePhase{PhasePlaying, PhaseEnded}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) (GamePhase, bool) {
	switch s {
	case "Setup":
		return PhaseSetup, true
	case "Playing":
		return PhasePlaying, true
	case "Paused":
		return PhasePaused, true
	case "Ended":
		return PhaseEnded, true
	default:
		return PhaseSetup, false
	}
}
