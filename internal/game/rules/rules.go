// Package rules holds the command precondition checks shared by the engine
// and the computer players.
package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Board is the read-only view of the world the checks need
type Board interface {
	Grid() *core.Grid
	UnitsAt(p core.Position) []*core.Unit
	CityAt(p core.Position) *core.City
	AllCities() []*core.City
}

// CheckMove validates a point-to-point move and returns the normalized
// target and its wrapped distance. Range is a straight-line check, not a
// path cost: terrain between the two tiles is ignored.
func CheckMove(b Board, u *core.Unit, target core.Position) (core.Position, int, error) {
	g := b.Grid()
	to := g.Normalize(target)

	if u.MovementPoints <= 0 {
		return to, 0, fmt.Errorf("move unit %d: %w", u.ID, core.ErrNoMovement)
	}
	if to == u.Pos {
		return to, 0, fmt.Errorf("move unit %d: %w", u.ID, core.ErrSameTile)
	}
	dist := g.WrappedDistance(u.Pos, to)
	if dist > u.MovementPoints {
		return to, dist, fmt.Errorf("move unit %d to %v (distance %d, movement %d): %w",
			u.ID, to, dist, u.MovementPoints, core.ErrOutOfRange)
	}
	if !g.TerrainAt(to).Passable {
		return to, dist, fmt.Errorf("move unit %d to %v: %w", u.ID, to, core.ErrImpassable)
	}
	if HasEnemyUnit(b, to, u.Owner) {
		return to, dist, fmt.Errorf("move unit %d to %v: %w", u.ID, to, core.ErrOccupied)
	}
	// Only units that can fight may walk into an enemy city
	if c := b.CityAt(to); c != nil && c.Owner != u.Owner && u.Spec().Attack <= 0 {
		return to, dist, fmt.Errorf("move unit %d into %s: %w", u.ID, c.Name, core.ErrOccupied)
	}
	return to, dist, nil
}

// HasEnemyUnit reports whether p holds a unit not owned by owner
func HasEnemyUnit(b Board, p core.Position, owner int) bool {
	for _, other := range b.UnitsAt(p) {
		if other.Owner != owner {
			return true
		}
	}
	return false
}

// LegalMoves returns the one-step moves available to u, in neighbor order
func LegalMoves(b Board, u *core.Unit) []core.Position {
	var out []core.Position
	for _, n := range b.Grid().Neighbors8(u.Pos) {
		if _, _, err := CheckMove(b, u, n); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// CheckSite validates p as a city site for owner-agnostic rules: terrain,
// no city on the tile, and no city closer than minDistance.
func CheckSite(b Board, p core.Position, minDistance int) error {
	g := b.Grid()
	p = g.Normalize(p)
	if !g.TerrainAt(p).CanFoundCity {
		return fmt.Errorf("site %v: %w", p, core.ErrTerrainUnsuitable)
	}
	if b.CityAt(p) != nil {
		return fmt.Errorf("site %v: %w", p, core.ErrTileHasCity)
	}
	for _, c := range b.AllCities() {
		if d := g.WrappedDistance(p, c.Pos); d < minDistance {
			return fmt.Errorf("site %v is %d from %s: %w", p, d, c.Name, core.ErrCityTooClose)
		}
	}
	return nil
}

// CheckFoundCity validates founding a city with u on its current tile
func CheckFoundCity(b Board, u *core.Unit, minDistance int) error {
	if !u.Spec().CanFoundCity {
		return fmt.Errorf("unit %d (%s): %w", u.ID, u.Type, core.ErrCannotFoundCity)
	}
	return CheckSite(b, u.Pos, minDistance)
}

// CheckAttack validates an attack between two units
func CheckAttack(b Board, attacker, defender *core.Unit) error {
	if attacker.Owner == defender.Owner {
		return fmt.Errorf("attack %d -> %d: %w", attacker.ID, defender.ID, core.ErrSameOwner)
	}
	if attacker.Spec().Attack <= 0 {
		return fmt.Errorf("attack with unit %d (%s): %w", attacker.ID, attacker.Type, core.ErrNoAttack)
	}
	if attacker.MovementPoints <= 0 {
		return fmt.Errorf("attack with unit %d: %w", attacker.ID, core.ErrNoMovement)
	}
	if !b.Grid().IsAdjacent(attacker.Pos, defender.Pos) {
		return fmt.Errorf("attack %v -> %v: %w", attacker.Pos, defender.Pos, core.ErrNotAdjacent)
	}
	return nil
}

// CheckBuildRoad validates starting road work with u on its current tile
func CheckBuildRoad(b Board, u *core.Unit) error {
	g := b.Grid()
	if !u.Spec().CanBuildRoads || u.MovementPoints <= 0 {
		return fmt.Errorf("unit %d (%s): %w", u.ID, u.Type, core.ErrCannotBuildRoad)
	}
	tile := g.Tile(u.Pos)
	if tile.Terrain.IsWater() || tile.HasImprovement(core.ImprovementRoad) {
		return fmt.Errorf("road at %v: %w", u.Pos, core.ErrCannotBuildRoad)
	}
	return nil
}
