package game

import (
	"fmt"

	"github.com/mitchelldurbincs/CivSim/internal/game/ai"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/combat"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/game/rules"
)

// MoveUnit moves a unit of the current player to target in one step. The
// range check is a straight wrapped distance, not a path search, so a
// unit can hop past impassable tiles that lie between it and target.
func (e *Engine) MoveUnit(unitID int, target core.Position) bool {
	u, err := e.ownedUnit(unitID)
	if err != nil {
		return e.reject("move", err)
	}
	to, dist, err := rules.CheckMove(e.gs, u, target)
	if err != nil {
		return e.reject("move", err)
	}

	from := u.Pos
	u.Pos = to
	u.SpendMovement(dist)
	if u.State == core.UnitSleeping {
		u.State = core.UnitActive
	}
	e.publish(events.NewUnitMovedEvent(e.gameID, e.gs.Turn, u, from))

	if c := e.gs.CityAt(to); c != nil && c.Owner != u.Owner {
		e.captureCity(c, u)
	}
	if u.MovementPoints == 0 {
		e.dropFromQueue(u.ID)
	} else if u.Queueable() {
		// a sleeping unit that moved is active again
		e.queue.add(u.ID)
	}
	return true
}

func (e *Engine) captureCity(c *core.City, by *core.Unit) {
	previous := c.Owner
	c.Owner = by.Owner
	c.CurrentProduction = nil
	c.ProductionPoints = 0
	if p := e.gs.Player(by.Owner); p != nil {
		p.UsedCityNames[c.Name] = true
	}

	e.logger.Info().
		Str("city", c.Name).
		Int("previous_owner", previous).
		Int("new_owner", by.Owner).
		Int("turn", e.gs.Turn).
		Msg("City captured")
	e.publish(events.NewCityCapturedEvent(e.gameID, e.gs.Turn, c, previous))
	e.checkConquest()
}

// FoundCity turns a settler into a city on its tile. An empty name picks
// one from the owner's civilization.
func (e *Engine) FoundCity(unitID int, name string) bool {
	u, err := e.ownedUnit(unitID)
	if err != nil {
		return e.reject("found_city", err)
	}
	if err := rules.CheckFoundCity(e.gs, u, e.cfg.Production.CityMinDistance); err != nil {
		return e.reject("found_city", err)
	}

	owner := e.gs.Player(u.Owner)
	if name == "" {
		civ, _ := catalog.LookupCivilization(owner.Civilization)
		name = ai.GenerateCityName(civ, e.gs.cityNameTaken, e.rng, e.cfg.Production.CityNameAttempts)
	}

	city := core.NewCity(e.gs.takeCityID(), u.Owner, name, u.Pos, e.gs.Turn)
	e.production.assignBestTile(city)
	e.gs.Cities = append(e.gs.Cities, city)
	owner.UsedCityNames[name] = true

	e.dropFromQueue(u.ID)
	e.gs.removeUnit(u.ID)

	e.logger.Info().
		Str("city", name).
		Int("player_id", owner.ID).
		Str("position", city.Pos.String()).
		Int("turn", e.gs.Turn).
		Msg("City founded")
	e.publish(events.NewCityFoundedEvent(e.gameID, e.gs.Turn, city))
	return true
}

// AttackUnit resolves an attack on an adjacent enemy unit. It returns nil
// when the attack is not allowed.
func (e *Engine) AttackUnit(attackerID, defenderID int) *CombatResult {
	att, err := e.ownedUnit(attackerID)
	if err != nil {
		e.reject("attack", err)
		return nil
	}
	def := e.gs.Unit(defenderID)
	if def == nil {
		e.reject("attack", fmt.Errorf("defender %d: %w", defenderID, core.ErrUnitNotFound))
		return nil
	}
	if err := rules.CheckAttack(e.gs, att, def); err != nil {
		e.reject("attack", err)
		return nil
	}

	ctx := combat.TerrainContext{
		DefenseBonus:    e.gs.grid.TerrainAt(def.Pos).DefenseBonus,
		WallsMultiplier: e.wallsAt(def),
	}
	res := e.combat.Resolve(combat.FromUnit(att), combat.FromUnit(def), ctx, e.dice)

	att.Health += res.AttackerHealthDelta
	def.Health += res.DefenderHealthDelta
	att.SpendMovement(1)

	report := &CombatResult{
		AttackerID: att.ID,
		DefenderID: def.ID,
		Location:   def.Pos,
		Result:     res,
	}
	e.publish(events.NewCombatResolvedEvent(e.gameID, e.gs.Turn, att, def, res))

	e.logger.Debug().
		Int("attacker_id", att.ID).
		Int("defender_id", def.ID).
		Int("rounds", res.Rounds).
		Bool("attacker_survived", res.AttackerSurvived).
		Bool("defender_survived", res.DefenderSurvived).
		Msg("Combat resolved")

	if !res.DefenderSurvived {
		e.destroyUnit(def, att.Owner)
	} else {
		def.Experience++
	}
	if !res.AttackerSurvived {
		e.destroyUnit(att, def.Owner)
	} else {
		att.Experience++
		if !res.DefenderSurvived {
			att.Veteran = true
		}
		if att.MovementPoints == 0 {
			e.dropFromQueue(att.ID)
		}
	}

	e.checkConquest()
	return report
}

// wallsAt returns the strongest defensive building multiplier of the
// defender's own city, or 1.
func (e *Engine) wallsAt(def *core.Unit) float64 {
	c := e.gs.CityAt(def.Pos)
	if c == nil || c.Owner != def.Owner {
		return 1
	}
	best := 1.0
	for _, id := range c.Buildings {
		if b, ok := catalog.LookupBuilding(id); ok && b.DefenseMultiplier > best {
			best = b.DefenseMultiplier
		}
	}
	return best
}

func (e *Engine) destroyUnit(u *core.Unit, killedBy int) {
	e.dropFromQueue(u.ID)
	e.gs.removeUnit(u.ID)
	e.publish(events.NewUnitDestroyedEvent(e.gameID, e.gs.Turn, u, killedBy))
}

// FortifyUnit starts fortifying; the unit is fortified from its next turn
func (e *Engine) FortifyUnit(unitID int) bool {
	u, err := e.ownedUnit(unitID)
	if err != nil {
		return e.reject("fortify", err)
	}
	if !u.Spec().CanFortify {
		return e.reject("fortify", fmt.Errorf("unit %d (%s): %w", u.ID, u.Type, core.ErrCannotFortify))
	}
	if u.State != core.UnitFortified {
		u.Fortify()
	}
	e.dropFromQueue(u.ID)
	e.publish(events.NewUnitFortifiedEvent(e.gameID, e.gs.Turn, u))
	return true
}

// WakeUnit returns a unit to Active. Waking an active unit is a no-op that
// succeeds. A woken unit with movement left rejoins the queue at once.
func (e *Engine) WakeUnit(unitID int) bool {
	u, err := e.ownedUnit(unitID)
	if err != nil {
		return e.reject("wake", err)
	}
	u.Wake()
	if u.Queueable() {
		e.queue.add(u.ID)
	}
	return true
}

// SleepUnit parks a unit until it is woken
func (e *Engine) SleepUnit(unitID int) bool {
	u, err := e.ownedUnit(unitID)
	if err != nil {
		return e.reject("sleep", err)
	}
	u.State = core.UnitSleeping
	u.RoadTurnsRemaining = 0
	e.dropFromQueue(u.ID)
	return true
}

// BuildRoad puts a worker on its tile for the configured number of turns
func (e *Engine) BuildRoad(unitID int) bool {
	u, err := e.ownedUnit(unitID)
	if err != nil {
		return e.reject("build_road", err)
	}
	if err := rules.CheckBuildRoad(e.gs, u); err != nil {
		return e.reject("build_road", err)
	}
	u.State = core.UnitBuildingRoad
	u.RoadTurnsRemaining = e.cfg.Production.RoadTurns
	u.MovementPoints = 0
	e.dropFromQueue(u.ID)
	return true
}

// CreateUnit places a new unit for playerID. It returns nil when the type
// is unknown, the tile is off the map or impassable, or an enemy holds it.
func (e *Engine) CreateUnit(unitType catalog.UnitType, pos core.Position, playerID int) *core.Unit {
	if e.gs == nil || !e.Phase().CanReceiveCommands() {
		e.reject("create_unit", core.ErrGameNotPlaying)
		return nil
	}
	if e.gs.Player(playerID) == nil {
		e.reject("create_unit", fmt.Errorf("player %d: %w", playerID, core.ErrInvalidPlayer))
		return nil
	}
	spec, ok := catalog.LookupUnit(unitType)
	if !ok {
		e.reject("create_unit", fmt.Errorf("unit type %q: %w", unitType, core.ErrUnknownItem))
		return nil
	}
	if !e.gs.grid.InBoundsY(pos.Y) {
		e.reject("create_unit", fmt.Errorf("position %v: %w", pos, core.ErrInvalidCoordinates))
		return nil
	}
	pos = e.gs.grid.Normalize(pos)
	if !e.gs.grid.TerrainAt(pos).Passable {
		e.reject("create_unit", fmt.Errorf("position %v: %w", pos, core.ErrImpassable))
		return nil
	}
	if rules.HasEnemyUnit(e.gs, pos, playerID) {
		e.reject("create_unit", fmt.Errorf("position %v: %w", pos, core.ErrOccupied))
		return nil
	}

	u := e.spawnUnit(spec, pos, playerID)
	e.publish(events.NewUnitCreatedEvent(e.gameID, e.gs.Turn, u))
	if playerID == e.gs.CurrentPlayerID && u.Queueable() {
		e.queue.add(u.ID)
	}
	return u
}

// spawnUnit adds a unit without validation or events
func (e *Engine) spawnUnit(spec catalog.UnitSpec, pos core.Position, owner int) *core.Unit {
	u := core.NewUnit(e.gs.takeUnitID(), owner, spec, e.gs.grid.Normalize(pos))
	e.gs.addUnit(u)
	return u
}
