package ai

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// soldier runs one military action. Returns false when the unit is done.
func (t *turn) soldier(u *core.Unit) bool {
	g := t.w.Grid()

	if u.Spec().Attack > 0 {
		for _, n := range g.Neighbors8(u.Pos) {
			for _, enemy := range t.w.UnitsAt(n) {
				if enemy.Owner == t.pid {
					continue
				}
				if t.c.AttackUnit(u.ID, enemy.ID) != nil {
					t.report.Attacks++
					return true
				}
				t.report.Failed++
			}
		}
	}

	if enemy := t.nearestEnemy(u); enemy != nil && g.WrappedDistance(u.Pos, enemy.Pos) <= t.cfg.EngagementRadius {
		if t.moveToward(u, enemy.Pos) {
			return true
		}
	}

	if home := t.nearestCity(u.Pos); home != nil {
		if g.WrappedDistance(u.Pos, home.Pos) > t.cfg.DefenseRadius {
			if t.moveToward(u, home.Pos) {
				return true
			}
		} else if home.Pos == u.Pos && u.Spec().CanFortify && !t.hasOtherDefender(u) {
			if t.c.FortifyUnit(u.ID) {
				t.report.Fortified++
				return false
			}
			t.report.Failed++
		}
	}

	return t.randomWalk(u)
}

// nearestEnemy returns the closest unit of another player; ties go to the
// first in world order.
func (t *turn) nearestEnemy(u *core.Unit) *core.Unit {
	g := t.w.Grid()
	var best *core.Unit
	bestDist := 0
	for _, other := range t.w.AllUnits() {
		if other.Owner == t.pid {
			continue
		}
		if d := g.WrappedDistance(u.Pos, other.Pos); best == nil || d < bestDist {
			best, bestDist = other, d
		}
	}
	return best
}

func (t *turn) nearestCity(p core.Position) *core.City {
	g := t.w.Grid()
	var best *core.City
	bestDist := 0
	for _, c := range t.w.CitiesOf(t.pid) {
		if d := g.WrappedDistance(p, c.Pos); best == nil || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// hasOtherDefender reports whether another own unit on u's tile is fortified or fortifying
func (t *turn) hasOtherDefender(u *core.Unit) bool {
	for _, other := range t.w.UnitsAt(u.Pos) {
		if other.ID == u.ID || other.Owner != t.pid {
			continue
		}
		if other.State == core.UnitFortified || other.State == core.UnitFortifying {
			return true
		}
	}
	return false
}
