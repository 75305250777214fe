package game

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

// This file contains player statistics for the runner summary and the journal.

// PlayerStats summarizes what one player holds
type PlayerStats struct {
	PlayerID     int
	Name         string
	Civilization string
	Government   catalog.GovernmentID
	Units        int
	Military     int
	Settlers     int
	Cities       int
	Population   int
	Technologies int
	Science      int
	Gold         int
	Culture      int
	Eliminated   bool
}

// Score is a rough standing used for ranking: citizens, technologies and
// accumulated culture.
func (s PlayerStats) Score() int {
	return s.Population*2 + s.Technologies*3 + s.Culture/10
}

// PlayerStats recalculates the statistics of every player in seat order
func (e *Engine) PlayerStats() []PlayerStats {
	if e.gs == nil {
		return nil
	}
	stats := make([]PlayerStats, len(e.gs.Players))
	for i, p := range e.gs.Players {
		stats[i] = PlayerStats{
			PlayerID:     p.ID,
			Name:         p.Name,
			Civilization: p.Civilization,
			Government:   p.Government,
			Technologies: len(p.Technologies),
			Science:      p.Science,
			Gold:         p.Gold,
			Culture:      p.Culture,
			Eliminated:   p.Eliminated,
		}
	}

	for _, u := range e.gs.Units {
		s := &stats[u.Owner]
		s.Units++
		switch u.Spec().Role {
		case catalog.RoleSettler:
			s.Settlers++
		case catalog.RoleMilitary:
			s.Military++
		}
	}
	for _, c := range e.gs.Cities {
		s := &stats[c.Owner]
		s.Cities++
		s.Population += c.Population
	}

	e.logger.Debug().Int("players", len(stats)).Msg("Player stats updated")
	return stats
}
