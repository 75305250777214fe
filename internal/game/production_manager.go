package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/common"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
)

// ProductionManager runs the per-city part of a player's turn-start tick:
// growth, shields and trade.
type ProductionManager struct {
	engine *Engine
	logger zerolog.Logger
}

// NewProductionManager creates a new production manager
func NewProductionManager(e *Engine) *ProductionManager {
	return &ProductionManager{
		engine: e,
		logger: e.logger.With().Str("component", "ProductionManager").Logger(),
	}
}

// CityYield is the per-turn output of one city
type CityYield struct {
	Food    int
	Shields int
	Trade   int
	Science int
	Gold    int
	Culture int
	Upkeep  int
}

// ProcessCities runs growth, production and trade for every city of p and
// credits the totals to the player.
func (pm *ProductionManager) ProcessCities(p *core.Player) {
	gs := pm.engine.gs
	var total CityYield
	completed := 0

	for _, c := range gs.CitiesOf(p.ID) {
		pm.grow(c)
		if pm.produce(c, p) {
			completed++
		}
		y := pm.Yield(c, p)
		c.Science = y.Science
		c.Culture += y.Culture
		total.Science += y.Science
		total.Gold += y.Gold
		total.Culture += y.Culture
		total.Upkeep += y.Upkeep
	}

	p.Science += total.Science
	p.Culture += total.Culture
	if !p.InAnarchy() {
		p.Gold += total.Gold - total.Upkeep
		if p.Gold < 0 {
			p.Gold = 0
		}
	}
	if p.CurrentResearch != "" {
		p.CurrentResearchProgress = min(p.Science, catalog.MustTechnology(p.CurrentResearch).Cost)
	}

	pm.logger.Debug().
		Int("player_id", p.ID).
		Int("turn", gs.Turn).
		Int("science", total.Science).
		Int("gold", total.Gold).
		Int("upkeep", total.Upkeep).
		Int("culture", total.Culture).
		Int("completed", completed).
		Msg("City tick complete")
}

// Yield computes what city c produces this turn for its owner p
func (pm *ProductionManager) Yield(c *core.City, p *core.Player) CityYield {
	g := pm.engine.gs.grid
	var y CityYield
	for _, pos := range pm.workedPositions(c) {
		info := g.TerrainAt(pos)
		y.Food += info.Food
		y.Trade += g.TileTrade(pos)
	}
	y.Shields = pm.capacity(c, p)

	gov := catalog.MustGovernment(p.Government)
	y.Trade += gov.TradeBonus
	y.Science = y.Trade * gov.ScienceRate / 100
	y.Gold = y.Trade * gov.TaxRate / 100

	for _, id := range c.Buildings {
		b, ok := catalog.LookupBuilding(id)
		if !ok {
			continue
		}
		y.Culture += b.CultureBonus
		if p.InAnarchy() {
			continue
		}
		y.Science += b.ScienceBonus
		y.Gold += b.GoldBonus
		if !b.Wonder {
			y.Upkeep += b.Upkeep
		}
	}
	return y
}

// workedPositions returns the center tile followed by the worked tiles
func (pm *ProductionManager) workedPositions(c *core.City) []core.Position {
	g := pm.engine.gs.grid
	out := []core.Position{c.Pos}
	for _, o := range c.WorkedTiles {
		if pos, ok := g.Offset(c.Pos, o.DX, o.DY); ok {
			out = append(out, pos)
		}
	}
	return out
}

func (pm *ProductionManager) capacity(c *core.City, p *core.Player) int {
	n := pm.engine.cfg.Production.BaseCapacity
	for _, id := range c.Buildings {
		if b, ok := catalog.LookupBuilding(id); ok {
			n += b.ProductionBonus
		}
	}
	if p != nil {
		n += catalog.MustGovernment(p.Government).ProductionBonus
	}
	return n
}

// grow applies the food surplus. Storage reaching (pop+1)*food_box adds a
// citizen; negative storage starves one.
func (pm *ProductionManager) grow(c *core.City) {
	cfg := pm.engine.cfg.Growth
	g := pm.engine.gs.grid

	food := 0
	for _, pos := range pm.workedPositions(c) {
		food += g.TerrainAt(pos).Food
	}
	c.Food += food - cfg.FoodPerPop*c.Population

	threshold := (c.Population + 1) * cfg.FoodBox
	switch {
	case c.Food >= threshold:
		c.Population++
		c.Food = c.Food * pm.foodKeepPercent(c) / 100
		pm.assignBestTile(c)
		pm.engine.publish(events.NewCityGrewEvent(pm.engine.gameID, pm.engine.gs.Turn, c, 1))
	case c.Food < 0:
		c.Food = 0
		if c.Population > 1 {
			c.Population--
			c.TrimWorkedTiles()
			pm.engine.publish(events.NewCityGrewEvent(pm.engine.gameID, pm.engine.gs.Turn, c, -1))
		}
	}
}

// foodKeepPercent is the share of storage kept after growth
func (pm *ProductionManager) foodKeepPercent(c *core.City) int {
	keep := 0
	for _, id := range c.Buildings {
		b, ok := catalog.LookupBuilding(id)
		if !ok {
			continue
		}
		if id == "granary" {
			keep += pm.engine.cfg.Growth.GranaryKeepPercent
		} else {
			keep += b.FoodKeepPercent
		}
	}
	return common.Clamp(keep, 0, 100)
}

// assignBestTile puts a free citizen on the best unworked tile in the work
// radius: food counts double, ties go to the first tile in row-major order.
func (pm *ProductionManager) assignBestTile(c *core.City) {
	if len(c.WorkedTiles) >= c.Population {
		return
	}
	gs := pm.engine.gs
	r := pm.engine.cfg.Growth.WorkRadius

	best, bestScore, found := core.Offset{}, 0, false
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			o := core.Offset{DX: dx, DY: dy}
			if o == (core.Offset{}) || c.Works(o) {
				continue
			}
			pos, ok := gs.grid.Offset(c.Pos, dx, dy)
			if !ok || gs.CityAt(pos) != nil || pm.workedByOther(c, pos) {
				continue
			}
			info := gs.grid.TerrainAt(pos)
			score := info.Food*2 + info.Production + gs.grid.TileTrade(pos)
			if !found || score > bestScore {
				best, bestScore, found = o, score, true
			}
		}
	}
	if found {
		c.AssignTile(best)
	}
}

func (pm *ProductionManager) workedByOther(c *core.City, pos core.Position) bool {
	g := pm.engine.gs.grid
	for _, other := range pm.engine.gs.Cities {
		if other.ID == c.ID {
			continue
		}
		for _, o := range other.WorkedTiles {
			if p, ok := g.Offset(other.Pos, o.DX, o.DY); ok && p == pos {
				return true
			}
		}
	}
	return false
}

// produce adds this turn's shields and completes the order when paid for.
// The surplus carries over. Returns true when something was completed.
func (pm *ProductionManager) produce(c *core.City, p *core.Player) bool {
	order := c.CurrentProduction
	if order == nil {
		return false
	}
	e := pm.engine

	// Another city may have finished the wonder first
	if order.Kind == core.ProduceWonder {
		if _, built := e.gs.builtWonders[catalog.BuildingID(order.Item)]; built {
			pm.logger.Info().Str("city", c.Name).Str("wonder", order.Item).Msg("Wonder lost to another city")
			c.CurrentProduction = nil
			return false
		}
	}

	capacity := pm.capacity(c, p)
	c.ProductionPoints += capacity
	cost := itemCost(order.Kind, order.Item)

	if c.ProductionPoints < cost || !pm.canComplete(c, order) {
		order.TurnsRemaining = pm.turnsRemaining(c, cost)
		return false
	}
	c.ProductionPoints -= cost

	unitID := -1
	switch order.Kind {
	case core.ProduceUnit:
		spec := catalog.MustUnit(catalog.UnitType(order.Item))
		u := e.spawnUnit(spec, c.Pos, c.Owner)
		unitID = u.ID
		if spec.CanFoundCity {
			c.Population -= e.cfg.Production.SettlerPopulationCost
			c.TrimWorkedTiles()
		}
		e.publish(events.NewUnitCreatedEvent(e.gameID, e.gs.Turn, u))
	case core.ProduceBuilding:
		c.Buildings = append(c.Buildings, catalog.BuildingID(order.Item))
	case core.ProduceWonder:
		id := catalog.BuildingID(order.Item)
		c.Buildings = append(c.Buildings, id)
		e.gs.builtWonders[id] = c.ID
	}
	c.CurrentProduction = nil

	pm.logger.Debug().
		Str("city", c.Name).
		Str("kind", order.Kind.String()).
		Str("item", order.Item).
		Int("carry_over", c.ProductionPoints).
		Msg("Production completed")
	e.publish(events.NewProductionCompletedEvent(e.gameID, e.gs.Turn, c, order.Kind, order.Item, unitID))
	return true
}

// canComplete holds back settlers while the city cannot spare the population
func (pm *ProductionManager) canComplete(c *core.City, order *core.ProductionOrder) bool {
	if order.Kind != core.ProduceUnit {
		return true
	}
	spec := catalog.MustUnit(catalog.UnitType(order.Item))
	if !spec.CanFoundCity {
		return true
	}
	return c.Population-pm.engine.cfg.Production.SettlerPopulationCost >= 1
}

func (pm *ProductionManager) turnsRemaining(c *core.City, cost int) int {
	left := cost - c.ProductionPoints
	if left <= 0 {
		return 0
	}
	capacity := pm.capacity(c, pm.engine.gs.Player(c.Owner))
	if capacity <= 0 {
		return -1
	}
	return common.CeilDiv(left, capacity)
}
