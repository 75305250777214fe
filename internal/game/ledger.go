package game

import (
	"fmt"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
)

// ResearchTechnology spends science to learn tech. An id missing from the
// technology table is a data error and panics.
func (e *Engine) ResearchTechnology(playerID int, tech catalog.TechID) bool {
	t := catalog.MustTechnology(tech)
	if err := e.checkCommand(playerID); err != nil {
		return e.reject("research", err)
	}
	p := e.gs.Player(playerID)
	switch {
	case p.Technologies[tech]:
		return e.reject("research", fmt.Errorf("%s: %w", tech, core.ErrTechKnown))
	case !catalog.PrerequisitesMet(tech, p.Technologies):
		return e.reject("research", fmt.Errorf("%s: %w", tech, core.ErrTechLocked))
	case p.Science < t.Cost:
		return e.reject("research", fmt.Errorf("%s needs %d, have %d: %w", tech, t.Cost, p.Science, core.ErrInsufficientScience))
	}

	p.Science -= t.Cost
	p.Technologies[tech] = true
	if p.CurrentResearch == tech {
		p.CurrentResearch = ""
		p.CurrentResearchProgress = 0
	}

	e.logger.Info().
		Int("player_id", playerID).
		Str("tech", string(tech)).
		Int("science_left", p.Science).
		Msg("Technology researched")
	e.publish(events.NewTechnologyResearchedEvent(e.gameID, e.gs.Turn, p, tech))
	return true
}

// SetCurrentResearch marks tech as the research target without spending
func (e *Engine) SetCurrentResearch(playerID int, tech catalog.TechID) bool {
	t := catalog.MustTechnology(tech)
	if err := e.checkCommand(playerID); err != nil {
		return e.reject("set_research", err)
	}
	p := e.gs.Player(playerID)
	if p.Technologies[tech] {
		return e.reject("set_research", fmt.Errorf("%s: %w", tech, core.ErrTechKnown))
	}
	if !catalog.PrerequisitesMet(tech, p.Technologies) {
		return e.reject("set_research", fmt.Errorf("%s: %w", tech, core.ErrTechLocked))
	}
	p.CurrentResearch = tech
	p.CurrentResearchProgress = min(p.Science, t.Cost)
	return true
}

// StartRevolution puts the player into Anarchy. The government that follows
// is Despotism unless one was already chosen.
func (e *Engine) StartRevolution(playerID int) bool {
	if err := e.checkCommand(playerID); err != nil {
		return e.reject("revolution", err)
	}
	p := e.gs.Player(playerID)
	if p.InAnarchy() {
		return e.reject("revolution", fmt.Errorf("player %d: %w", playerID, core.ErrInAnarchy))
	}
	e.startRevolution(p)
	return true
}

func (e *Engine) startRevolution(p *core.Player) {
	previous := p.Government
	p.Government = catalog.Anarchy
	p.RevolutionTurnsRemaining = e.cfg.Government.RevolutionTurns
	if p.PendingGovernment == "" || p.PendingGovernment == previous {
		p.PendingGovernment = catalog.Despotism
	}

	e.logger.Info().
		Int("player_id", p.ID).
		Str("from", string(previous)).
		Str("pending", string(p.PendingGovernment)).
		Int("turns", p.RevolutionTurnsRemaining).
		Msg("Revolution started")
	e.publish(events.NewRevolutionStartedEvent(e.gameID, e.gs.Turn, p))
}

// ChangeGovernment requests gov. Outside Anarchy this starts a revolution
// toward gov; during Anarchy it replaces the pending government.
func (e *Engine) ChangeGovernment(playerID int, gov catalog.GovernmentID) bool {
	if err := e.checkCommand(playerID); err != nil {
		return e.reject("change_government", err)
	}
	g, ok := catalog.LookupGovernment(gov)
	if !ok || gov == catalog.Anarchy {
		return e.reject("change_government", fmt.Errorf("%q: %w", gov, core.ErrUnknownGovernment))
	}
	p := e.gs.Player(playerID)
	if !p.Knows(g.Requires) {
		return e.reject("change_government", fmt.Errorf("%s requires %s: %w", gov, g.Requires, core.ErrTechLocked))
	}
	if p.Government == gov {
		return true
	}

	p.PendingGovernment = gov
	if !p.InAnarchy() {
		e.startRevolution(p)
	}
	return true
}

// resolveRevolution counts down Anarchy and installs the pending government
func (e *Engine) resolveRevolution(p *core.Player) {
	if !p.InAnarchy() {
		return
	}
	p.RevolutionTurnsRemaining--
	if p.RevolutionTurnsRemaining > 0 {
		return
	}
	next := p.PendingGovernment
	if next == "" {
		next = catalog.Despotism
	}
	p.Government = next
	p.PendingGovernment = ""
	p.RevolutionTurnsRemaining = 0

	e.logger.Info().Int("player_id", p.ID).Str("government", string(next)).Msg("Government changed")
	e.publish(events.NewGovernmentChangedEvent(e.gameID, e.gs.Turn, p.ID, catalog.Anarchy, next))
}

// SetCityProduction replaces a city's build order. Accumulated shields
// carry over to the new item.
func (e *Engine) SetCityProduction(cityID int, kind core.ProductionKind, item string) bool {
	if e.gs == nil {
		return e.reject("set_production", core.ErrGameNotPlaying)
	}
	c := e.gs.City(cityID)
	if c == nil {
		return e.reject("set_production", fmt.Errorf("city %d: %w", cityID, core.ErrCityNotFound))
	}
	if err := e.checkCommand(c.Owner); err != nil {
		return e.reject("set_production", err)
	}
	if err := e.checkBuildable(c, kind, item); err != nil {
		return e.reject("set_production", err)
	}

	order := &core.ProductionOrder{Kind: kind, Item: item}
	c.CurrentProduction = order
	order.TurnsRemaining = e.production.turnsRemaining(c, itemCost(kind, item))
	return true
}

// checkBuildable validates a production order for city c
func (e *Engine) checkBuildable(c *core.City, kind core.ProductionKind, item string) error {
	p := e.gs.Player(c.Owner)
	switch kind {
	case core.ProduceUnit:
		spec, ok := catalog.LookupUnit(catalog.UnitType(item))
		if !ok {
			return fmt.Errorf("unit %q: %w", item, core.ErrUnknownItem)
		}
		if !p.Knows(spec.Requires) {
			return fmt.Errorf("unit %q requires %s: %w", item, spec.Requires, core.ErrTechLocked)
		}
	case core.ProduceBuilding, core.ProduceWonder:
		id := catalog.BuildingID(item)
		spec, ok := catalog.LookupBuilding(id)
		if !ok || spec.Wonder != (kind == core.ProduceWonder) {
			return fmt.Errorf("%s %q: %w", kind, item, core.ErrUnknownItem)
		}
		if !p.Knows(spec.Requires) {
			return fmt.Errorf("%s %q requires %s: %w", kind, item, spec.Requires, core.ErrTechLocked)
		}
		if c.HasBuilding(id) {
			return fmt.Errorf("%s %q in %s: %w", kind, item, c.Name, core.ErrAlreadyBuilt)
		}
		if _, built := e.gs.builtWonders[id]; built {
			return fmt.Errorf("wonder %q: %w", item, core.ErrAlreadyBuilt)
		}
	default:
		return fmt.Errorf("production kind %d: %w", kind, core.ErrUnknownItem)
	}
	return nil
}

// itemCost returns the shield cost of a validated item
func itemCost(kind core.ProductionKind, item string) int {
	if kind == core.ProduceUnit {
		return catalog.MustUnit(catalog.UnitType(item)).Cost
	}
	b, _ := catalog.LookupBuilding(catalog.BuildingID(item))
	return b.Cost
}
