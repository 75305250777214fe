package events

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Snapshot is a deep copy of the game state carried by lifecycle events.
// Subscribers may keep it; later engine mutations do not show through.
type Snapshot struct {
	Turn            int
	CurrentPlayerID int
	Phase           string
	Width, Height   int
	Players         []*core.Player
	Units           []*core.Unit
	Cities          []*core.City
}

// UnitsOf returns the snapshot's units owned by playerID
func (s *Snapshot) UnitsOf(playerID int) []*core.Unit {
	var out []*core.Unit
	for _, u := range s.Units {
		if u.Owner == playerID {
			out = append(out, u)
		}
	}
	return out
}

// CitiesOf returns the snapshot's cities owned by playerID
func (s *Snapshot) CitiesOf(playerID int) []*core.City {
	var out []*core.City
	for _, c := range s.Cities {
		if c.Owner == playerID {
			out = append(out, c)
		}
	}
	return out
}
