// Package scenario builds the starting world of a game: the terrain grid and
// each player's starting position and units.
package scenario

import (
	"fmt"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Kind selects how the grid is produced
type Kind string

const (
	KindFlat       Kind = "flat"
	KindContinents Kind = "continents"
	KindCustom     Kind = "custom"
)

// Placement pins a player's start position
type Placement struct {
	PlayerID int
	Pos      core.Position
}

// Scenario describes how to set up a game
type Scenario struct {
	Name   string
	Kind   Kind
	Width  int
	Height int
	Seed   int64

	// HumanPlayers marks the first N players as human; the rest are AI
	HumanPlayers int

	// Civilizations assigns civilization ids by player index. Missing
	// entries are filled from the catalog in table order.
	Civilizations []string

	// Grid is required for KindCustom and built by the Builder otherwise
	Grid *core.Grid

	// Placements overrides automatic start placement per player
	Placements []Placement

	StartUnits      []catalog.UnitType
	StartGold       int
	MinStartSpacing int
}

// FromConfig creates a scenario from the start config section
func FromConfig(c config.StartConfig, seed int64, humans int) Scenario {
	units := make([]catalog.UnitType, 0, len(c.Units))
	for _, u := range c.Units {
		units = append(units, catalog.UnitType(u))
	}
	return Scenario{
		Name:            c.Scenario,
		Kind:            Kind(c.Scenario),
		Width:           c.Width,
		Height:          c.Height,
		Seed:            seed,
		HumanPlayers:    humans,
		StartUnits:      units,
		StartGold:       c.Gold,
		MinStartSpacing: c.MinStartSpacing,
	}
}

// Flat is an all-grassland map with settlers and warriors per player
func Flat(w, h int) Scenario {
	return Scenario{
		Name:            "flat",
		Kind:            KindFlat,
		Width:           w,
		Height:          h,
		StartUnits:      []catalog.UnitType{"settlers", "warriors"},
		MinStartSpacing: 4,
	}
}

// Custom wraps a caller-built grid
func Custom(name string, grid *core.Grid) Scenario {
	return Scenario{
		Name:            name,
		Kind:            KindCustom,
		Width:           grid.W,
		Height:          grid.H,
		Grid:            grid,
		StartUnits:      []catalog.UnitType{"settlers", "warriors"},
		MinStartSpacing: 4,
	}
}

// PlacementFor returns the pinned start of playerID, if any
func (s *Scenario) PlacementFor(playerID int) (core.Position, bool) {
	for _, p := range s.Placements {
		if p.PlayerID == playerID {
			return p.Pos, true
		}
	}
	return core.Position{}, false
}

// Validate checks the scenario for the given number of players
func (s *Scenario) Validate(players int) error {
	if players < 1 {
		return fmt.Errorf("scenario %q: need at least one player", s.Name)
	}
	if s.HumanPlayers < 0 || s.HumanPlayers > players {
		return fmt.Errorf("scenario %q: %d human players out of %d", s.Name, s.HumanPlayers, players)
	}
	switch s.Kind {
	case KindFlat, KindContinents:
		if s.Width < 4 || s.Height < 4 {
			return fmt.Errorf("scenario %q: map %dx%d is too small", s.Name, s.Width, s.Height)
		}
	case KindCustom:
		if s.Grid == nil {
			return fmt.Errorf("scenario %q: custom scenario without a grid", s.Name)
		}
	default:
		return fmt.Errorf("scenario %q: unknown kind %q", s.Name, s.Kind)
	}
	for _, u := range s.StartUnits {
		if _, ok := catalog.LookupUnit(u); !ok {
			return fmt.Errorf("scenario %q: unknown start unit %q", s.Name, u)
		}
	}
	for _, id := range s.Civilizations {
		if _, ok := catalog.LookupCivilization(id); !ok {
			return fmt.Errorf("scenario %q: unknown civilization %q", s.Name, id)
		}
	}
	for _, p := range s.Placements {
		if p.PlayerID < 0 || p.PlayerID >= players {
			return fmt.Errorf("scenario %q: placement for unknown player %d", s.Name, p.PlayerID)
		}
		if s.Grid != nil && !s.Grid.InBoundsY(p.Pos.Y) {
			return fmt.Errorf("scenario %q: placement %v: %w", s.Name, p.Pos, core.ErrInvalidCoordinates)
		}
	}
	return nil
}

// CivilizationFor returns the civilization of playerID
func (s *Scenario) CivilizationFor(playerID int) catalog.Civilization {
	if playerID < len(s.Civilizations) && s.Civilizations[playerID] != "" {
		civ, _ := catalog.LookupCivilization(s.Civilizations[playerID])
		return civ
	}
	ids := catalog.Civilizations()
	civ, _ := catalog.LookupCivilization(ids[playerID%len(ids)])
	return civ
}
