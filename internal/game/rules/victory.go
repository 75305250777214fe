package rules

import "github.com/rs/zerolog"

// Census reports what each player still holds
type Census interface {
	PlayerIDs() []int
	UnitCount(playerID int) int
	CityCount(playerID int) int
}

// VictoryChecker implements conquest: a player with no units and no cities
// is eliminated, and the last player standing wins.
type VictoryChecker struct {
	logger     zerolog.Logger
	eliminated map[int]bool
}

// NewVictoryChecker creates a new conquest checker
func NewVictoryChecker(logger zerolog.Logger) *VictoryChecker {
	return &VictoryChecker{
		logger:     logger.With().Str("component", "VictoryChecker").Logger(),
		eliminated: make(map[int]bool),
	}
}

// Check returns the players newly eliminated since the last call, whether
// the game is over, and the winner (-1 for none).
func (vc *VictoryChecker) Check(c Census) (newlyEliminated []int, over bool, winner int) {
	ids := c.PlayerIDs()
	var alive []int
	for _, id := range ids {
		if vc.eliminated[id] {
			continue
		}
		if c.UnitCount(id) == 0 && c.CityCount(id) == 0 {
			vc.eliminated[id] = true
			newlyEliminated = append(newlyEliminated, id)
			vc.logger.Info().Int("player_id", id).Msg("Player eliminated")
			continue
		}
		alive = append(alive, id)
	}

	winner = -1
	switch {
	case len(ids) > 1 && len(alive) == 1:
		over, winner = true, alive[0]
		vc.logger.Info().Int("winner_player_id", winner).Msg("Winner determined")
	case len(alive) == 0:
		over = true
		vc.logger.Info().Msg("No winner found, all players eliminated")
	}
	return newlyEliminated, over, winner
}

// IsEliminated reports whether id has been eliminated
func (vc *VictoryChecker) IsEliminated(id int) bool {
	return vc.eliminated[id]
}
