package ai

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/rules"
)

// stepToward picks the legal one-step move closest to goal by wrapped
// distance. Ties go to the first move in neighbor order.
func stepToward(w World, u *core.Unit, goal core.Position) (core.Position, bool) {
	g := w.Grid()
	var best core.Position
	bestDist := -1
	for _, m := range rules.LegalMoves(w, u) {
		if d := g.WrappedDistance(m, goal); bestDist < 0 || d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, bestDist >= 0
}

func (t *turn) moveToward(u *core.Unit, goal core.Position) bool {
	step, ok := stepToward(t.w, u, goal)
	if !ok {
		return false
	}
	return t.move(u, step)
}

func (t *turn) randomWalk(u *core.Unit) bool {
	moves := rules.LegalMoves(t.w, u)
	if len(moves) == 0 {
		return false
	}
	return t.move(u, moves[t.rng.Intn(len(moves))])
}

func (t *turn) move(u *core.Unit, to core.Position) bool {
	if t.c.MoveUnit(u.ID, to) {
		t.report.Moves++
		return true
	}
	t.report.Failed++
	return false
}
