package ai

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// NextResearch returns the cheapest technology whose prerequisites the player
// knows. Equal costs go to the earlier table entry.
func NextResearch(p *core.Player) (catalog.TechID, bool) {
	var best catalog.Technology
	found := false
	for _, id := range catalog.Technologies() {
		if p.Technologies[id] || !catalog.PrerequisitesMet(id, p.Technologies) {
			continue
		}
		tech := catalog.MustTechnology(id)
		if !found || tech.Cost < best.Cost {
			best, found = tech, true
		}
	}
	return best.ID, found
}

// BestGovernment returns the last unlocked government in table order
func BestGovernment(p *core.Player) catalog.GovernmentID {
	best := catalog.Despotism
	for _, id := range catalog.Governments() {
		if id == catalog.Anarchy {
			continue
		}
		if p.Knows(catalog.MustGovernment(id).Requires) {
			best = id
		}
	}
	return best
}

func (t *turn) research() {
	p := t.w.Player(t.pid)
	if p == nil {
		return
	}
	target := p.CurrentResearch
	if target == "" || p.Technologies[target] {
		next, ok := NextResearch(p)
		if !ok {
			return
		}
		if !t.c.SetCurrentResearch(t.pid, next) {
			t.report.Failed++
			return
		}
		target = next
	}
	if p.Science >= catalog.MustTechnology(target).Cost {
		if t.c.ResearchTechnology(t.pid, target) {
			t.report.Researched++
		} else {
			t.report.Failed++
		}
	}
}

func (t *turn) government() {
	p := t.w.Player(t.pid)
	if p == nil || p.InAnarchy() {
		return
	}
	best := BestGovernment(p)
	if best == p.Government {
		return
	}
	if !t.c.ChangeGovernment(t.pid, best) {
		t.report.Failed++
	}
}
