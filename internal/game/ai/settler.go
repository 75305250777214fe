package ai

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/rules"
)

// SiteScore rates p as a city site
func (p *Player) SiteScore(g *core.Grid, pos core.Position) int {
	tile := g.Tile(pos)
	score := p.cfg.BaseLandValue
	switch tile.Terrain {
	case catalog.River:
		score += p.cfg.RiverBonus
	case catalog.Grassland:
		score += p.cfg.GrasslandBonus
	case catalog.Hills:
		score += p.cfg.HillsBonus
	}

	nearWater, nearRiver := false, false
	for _, n := range g.Neighbors8(pos) {
		switch g.Tile(n).Terrain {
		case catalog.Ocean, catalog.Lake:
			nearWater = true
		case catalog.River:
			nearRiver = true
		}
	}
	if nearWater && !tile.Terrain.IsWater() {
		score += p.cfg.WaterAdjacencyBonus
	}
	if nearRiver {
		score += p.cfg.RiverAdjacencyBonus
	}
	return score
}

// ValidSite reports whether a city may be placed at pos by an AI settler
func (p *Player) ValidSite(w World, pos core.Position) bool {
	return rules.CheckSite(w, pos, p.cfg.MinCitySpacing) == nil
}

// BestSite searches within radius (wrapped distance) of from for the
// highest-scoring valid site scoring above bar. Ties prefer the closer
// site, then row-major order.
func (p *Player) BestSite(w World, from core.Position, radius, bar int) (core.Position, bool) {
	g := w.Grid()
	var best core.Position
	bestScore, bestDist := 0, 0
	found := false
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			pos, ok := g.Offset(from, dx, dy)
			if !ok {
				continue
			}
			dist := g.WrappedDistance(from, pos)
			if dist > radius || !p.ValidSite(w, pos) {
				continue
			}
			score := p.SiteScore(g, pos)
			if score <= bar {
				continue
			}
			if !found || score > bestScore || (score == bestScore && dist < bestDist) {
				best, bestScore, bestDist, found = pos, score, dist, true
			}
		}
	}
	return best, found
}

// settle runs one settler action. Returns false when the unit is done.
func (t *turn) settle(u *core.Unit) bool {
	g := t.w.Grid()
	if t.early() && t.ValidSite(t.w, u.Pos) && t.SiteScore(g, u.Pos) > t.cfg.EarlySiteBar {
		if t.found(u) {
			return false
		}
	}

	radius, bar := t.cfg.LateSearchRadius, t.cfg.LateSiteBar
	if t.early() {
		radius, bar = t.cfg.EarlySearchRadius, t.cfg.EarlySiteBar
	}

	site, ok := t.BestSite(t.w, u.Pos, radius, bar)
	switch {
	case ok && site == u.Pos:
		if t.found(u) {
			return false
		}
		return t.randomWalk(u)
	case ok:
		if t.moveToward(u, site) {
			return true
		}
		return t.randomWalk(u)
	case t.early():
		if t.found(u) {
			return false
		}
		return t.randomWalk(u)
	default:
		return t.randomWalk(u)
	}
}

func (t *turn) found(u *core.Unit) bool {
	if t.c.FoundCity(u.ID, "") {
		t.report.CitiesFounded++
		return true
	}
	t.report.Failed++
	return false
}
