package ai

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Stage is the coarse phase of the game used by production planning
type Stage int

const (
	StageEarly Stage = iota
	StageMid
	StageLate
)

func (s Stage) String() string {
	switch s {
	case StageEarly:
		return "early"
	case StageMid:
		return "mid"
	default:
		return "late"
	}
}

// BuildingPreference is the order in which infrastructure is considered
var BuildingPreference = []catalog.BuildingID{
	"granary",
	"temple",
	"library",
	"marketplace",
	"workshop",
	"city_walls",
	"colosseum",
	"factory",
}

// StageAt maps a turn number to a stage
func (p *Player) StageAt(turn int) Stage {
	switch {
	case turn <= p.cfg.EarlyGameTurns:
		return StageEarly
	case turn <= p.cfg.MidGameTurns:
		return StageMid
	default:
		return StageLate
	}
}

func (p *Player) targetCities(s Stage) int {
	switch s {
	case StageEarly:
		return p.cfg.EarlyTargetCities
	case StageMid:
		return p.cfg.MidTargetCities
	default:
		return p.cfg.LateTargetCities
	}
}

// Order is a production decision
type Order struct {
	Kind core.ProductionKind
	Item string
}

// Holdings summarizes what a player owns for production planning
type Holdings struct {
	Cities   int
	Settlers int
	Military int
}

// ChooseProduction applies the production policy for one city
func (p *Player) ChooseProduction(player *core.Player, city *core.City, h Holdings, turn int) Order {
	stage := p.StageAt(turn)
	desired := p.targetCities(stage) - h.Cities - h.Settlers
	settlers := Order{Kind: core.ProduceUnit, Item: string(p.settlerType(player))}

	if stage == StageEarly && desired > 0 {
		return settlers
	}
	garrison := p.cfg.MinGarrison
	if h.Cities > garrison {
		garrison = h.Cities
	}
	if h.Military < garrison {
		return Order{Kind: core.ProduceUnit, Item: string(BestDefender(player))}
	}
	if desired > 0 {
		return settlers
	}
	for _, id := range BuildingPreference {
		spec, ok := catalog.LookupBuilding(id)
		if !ok || city.HasBuilding(id) || !player.Knows(spec.Requires) {
			continue
		}
		return Order{Kind: core.ProduceBuilding, Item: string(id)}
	}
	return Order{Kind: core.ProduceUnit, Item: string(BestDefender(player))}
}

func (p *Player) settlerType(player *core.Player) catalog.UnitType {
	for _, t := range catalog.UnitTypes() {
		spec := catalog.MustUnit(t)
		if spec.CanFoundCity && player.Knows(spec.Requires) {
			return t
		}
	}
	return "settlers"
}

// BestDefender returns the known military unit with the highest defense,
// preferring the cheaper one on ties.
func BestDefender(player *core.Player) catalog.UnitType {
	var best catalog.UnitSpec
	found := false
	for _, t := range catalog.UnitTypes() {
		spec := catalog.MustUnit(t)
		if spec.Role != catalog.RoleMilitary || !player.Knows(spec.Requires) {
			continue
		}
		if !found || spec.Defense > best.Defense || (spec.Defense == best.Defense && spec.Cost < best.Cost) {
			best, found = spec, true
		}
	}
	if !found {
		return "warriors"
	}
	return best.ID
}

func (t *turn) holdings() Holdings {
	h := Holdings{Cities: len(t.w.CitiesOf(t.pid))}
	for _, u := range t.w.UnitsOf(t.pid) {
		switch u.Spec().Role {
		case catalog.RoleSettler:
			h.Settlers++
		case catalog.RoleMilitary:
			h.Military++
		}
	}
	return h
}

func (t *turn) production() {
	player := t.w.Player(t.pid)
	if player == nil {
		return
	}
	h := t.holdings()
	for _, city := range t.w.CitiesOf(t.pid) {
		if city.CurrentProduction != nil {
			continue
		}
		order := t.ChooseProduction(player, city, h, t.number)
		if !t.c.SetCityProduction(city.ID, order.Kind, order.Item) {
			t.report.Failed++
			continue
		}
		t.report.ProductionSet++
		// Count queued units so later cities don't all pick the same thing
		if order.Kind == core.ProduceUnit {
			switch catalog.MustUnit(catalog.UnitType(order.Item)).Role {
			case catalog.RoleSettler:
				h.Settlers++
			case catalog.RoleMilitary:
				h.Military++
			}
		}
	}
}
