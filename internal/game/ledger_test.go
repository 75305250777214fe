package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
	"github.com/mitchelldurbincs/CivSim/internal/game/events"
	"github.com/mitchelldurbincs/CivSim/internal/testutil"
)

// foundCapital founds player 0's city at (5,25) and returns it
func foundCapital(t *testing.T, e *Engine) *core.City {
	t.Helper()
	require.True(t, e.FoundCity(1, ""))
	c := e.gs.CityAt(core.NewPosition(5, 25))
	require.NotNil(t, c)
	return c
}

func TestProduction_CarryOver(t *testing.T) {
	e := twoHumans(t, withGame(func(c *config.GameConfig) { c.Production.BaseCapacity = 4 }))
	var completed []*events.ProductionCompletedEvent
	events.Listen(e.EventBus(), func(ev *events.ProductionCompletedEvent) { completed = append(completed, ev) })

	city := foundCapital(t, e)
	require.True(t, e.SetCityProduction(city.ID, core.ProduceUnit, "warriors"))
	assert.Equal(t, 3, city.CurrentProduction.TurnsRemaining)

	endRounds(t, e, 1)
	assert.Equal(t, 4, city.ProductionPoints)
	assert.Equal(t, 2, city.CurrentProduction.TurnsRemaining)

	endRounds(t, e, 1)
	assert.Equal(t, 8, city.ProductionPoints)
	assert.Equal(t, 1, city.CurrentProduction.TurnsRemaining)

	endRounds(t, e, 1)
	assert.Nil(t, city.CurrentProduction)
	assert.Equal(t, 2, city.ProductionPoints, "12 shields minus a cost of 10")

	require.Len(t, completed, 1)
	assert.Equal(t, "warriors", completed[0].Item)
	u := e.Unit(completed[0].UnitID)
	require.NotNil(t, u)
	assert.Equal(t, city.Pos, u.Pos)
	assert.Equal(t, 0, u.Owner)
	assert.Contains(t, e.QueuedUnits(), u.ID)
}

func TestProduction_IdleCityKeepsNoShields(t *testing.T) {
	e := twoHumans(t)
	city := foundCapital(t, e)

	endRounds(t, e, 2)
	assert.Equal(t, 0, city.ProductionPoints)
}

func TestProduction_SettlersNeedPopulation(t *testing.T) {
	e := twoHumans(t)
	city := foundCapital(t, e)
	require.True(t, e.SetCityProduction(city.ID, core.ProduceUnit, "settlers"))
	city.ProductionPoints = 29

	endRounds(t, e, 1)
	require.NotNil(t, city.CurrentProduction, "size 1 cannot spare a settler")
	assert.Equal(t, 30, city.ProductionPoints)
	assert.Equal(t, 0, city.CurrentProduction.TurnsRemaining)

	city.Population = 2
	endRounds(t, e, 1)
	assert.Nil(t, city.CurrentProduction)
	assert.Equal(t, 1, city.Population)
	assert.Equal(t, 1, city.ProductionPoints)
	assert.Len(t, city.WorkedTiles, 1)

	var settlers int
	for _, u := range e.gs.UnitsAt(city.Pos) {
		if u.Type == "settlers" {
			settlers++
		}
	}
	assert.Equal(t, 1, settlers)
}

func TestProduction_ChangingKeepsShields(t *testing.T) {
	e := twoHumans(t)
	city := foundCapital(t, e)
	require.True(t, e.SetCityProduction(city.ID, core.ProduceUnit, "warriors"))
	city.ProductionPoints = 7

	require.True(t, e.SetCityProduction(city.ID, core.ProduceBuilding, "barracks"))
	assert.Equal(t, 7, city.ProductionPoints)
	assert.Equal(t, 33, city.CurrentProduction.TurnsRemaining)
}

func TestSetCityProduction_Rejections(t *testing.T) {
	e := twoHumans(t)
	city := foundCapital(t, e)

	assert.False(t, e.SetCityProduction(city.ID, core.ProduceUnit, "dragon"))
	assert.False(t, e.SetCityProduction(city.ID, core.ProduceUnit, "phalanx"), "needs bronze working")
	assert.False(t, e.SetCityProduction(city.ID, core.ProduceBuilding, "granary"), "needs pottery")
	assert.False(t, e.SetCityProduction(city.ID, core.ProduceWonder, "barracks"), "not a wonder")
	assert.False(t, e.SetCityProduction(city.ID, core.ProduceBuilding, "pyramids"), "a wonder")
	assert.False(t, e.SetCityProduction(99, core.ProduceUnit, "warriors"))

	city.Buildings = append(city.Buildings, "barracks")
	assert.False(t, e.SetCityProduction(city.ID, core.ProduceBuilding, "barracks"), "already built")

	e.gs.Players[0].Technologies["bronze_working"] = true
	assert.True(t, e.SetCityProduction(city.ID, core.ProduceUnit, "phalanx"))

	require.True(t, e.EndTurn())
	assert.False(t, e.SetCityProduction(city.ID, core.ProduceUnit, "warriors"), "not the owner's turn")
}

func TestProduction_WonderIsUniquePerGame(t *testing.T) {
	e := twoHumans(t)
	for _, p := range e.gs.Players {
		p.Technologies["bronze_working"] = true
	}

	rome := foundCapital(t, e)
	require.True(t, e.EndTurn())
	require.True(t, e.FoundCity(3, ""))
	babylon := e.gs.CityAt(core.NewPosition(40, 25))
	require.NotNil(t, babylon)
	require.True(t, e.SetCityProduction(babylon.ID, core.ProduceWonder, "pyramids"))
	require.True(t, e.EndTurn())

	require.True(t, e.SetCityProduction(rome.ID, core.ProduceWonder, "pyramids"))
	rome.ProductionPoints = 179
	babylon.ProductionPoints = 179

	// Babylon's tick runs first
	require.True(t, e.EndTurn())
	assert.True(t, babylon.HasBuilding("pyramids"))
	assert.Equal(t, babylon.ID, e.gs.builtWonders["pyramids"])

	require.True(t, e.EndTurn())
	assert.Nil(t, rome.CurrentProduction, "wonder lost to Babylon")
	assert.False(t, rome.HasBuilding("pyramids"))
	assert.Equal(t, 179, rome.ProductionPoints)
	assert.False(t, e.SetCityProduction(rome.ID, core.ProduceWonder, "pyramids"))
}

func TestGrowth(t *testing.T) {
	e := twoHumans(t)
	var grew []*events.CityGrewEvent
	events.Listen(e.EventBus(), func(ev *events.CityGrewEvent) { grew = append(grew, ev) })

	city := foundCapital(t, e)
	endRounds(t, e, 1)
	assert.Equal(t, 2, city.Food, "center 2 + worked 2 - 2 eaten")

	city.Food = 19
	endRounds(t, e, 1)
	assert.Equal(t, 2, city.Population)
	assert.Equal(t, 0, city.Food, "no granary keeps nothing")
	assert.Equal(t, []core.Offset{{DX: -2, DY: -2}, {DX: -1, DY: -2}}, city.WorkedTiles)
	require.Len(t, grew, 1)
	assert.Equal(t, 1, grew[0].Delta)
	assert.Equal(t, 2, grew[0].Population)

	city.Buildings = append(city.Buildings, "granary")
	city.Food = 28
	endRounds(t, e, 1)
	assert.Equal(t, 3, city.Population)
	assert.Equal(t, 15, city.Food, "granary keeps half of 30")
	assert.Equal(t, 0, e.gs.Players[0].Gold, "upkeep never takes gold below zero")
}

func TestGrowth_Starvation(t *testing.T) {
	e := twoHumans(t)
	var grew []*events.CityGrewEvent
	events.Listen(e.EventBus(), func(ev *events.CityGrewEvent) { grew = append(grew, ev) })

	city := foundCapital(t, e)
	city.Population = 3

	endRounds(t, e, 1)
	assert.Equal(t, 2, city.Population)
	assert.Equal(t, 0, city.Food)
	require.Len(t, grew, 1)
	assert.Equal(t, -1, grew[0].Delta)
}

func TestTradeAndAnarchy(t *testing.T) {
	e := twoHumans(t)
	p := e.gs.Players[0]
	city := foundCapital(t, e)
	city.Buildings = append(city.Buildings, "library")
	p.Gold = 10

	endRounds(t, e, 1)
	assert.Equal(t, 2, p.Science, "library science on zero trade")
	assert.Equal(t, 2, city.Science)
	assert.Equal(t, 9, p.Gold, "library upkeep")
	assert.Equal(t, 1, p.Culture)

	require.True(t, e.StartRevolution(0))
	endRounds(t, e, 1)
	assert.Equal(t, 2, p.Science, "anarchy collects no science")
	assert.Equal(t, 9, p.Gold, "anarchy suspends upkeep")
	assert.Equal(t, 2, p.Culture, "culture still accrues")
	assert.Equal(t, 1, p.RevolutionTurnsRemaining)
}

func TestYield_RoadsAndGovernment(t *testing.T) {
	e := twoHumans(t)
	p := e.gs.Players[0]
	city := foundCapital(t, e)
	e.gs.grid.AddImprovement(city.Pos, core.ImprovementRoad)
	worked, _ := e.gs.grid.Offset(city.Pos, -2, -2)
	e.gs.grid.AddImprovement(worked, core.ImprovementRoad)

	y := e.production.Yield(city, p)
	assert.Equal(t, 4, y.Food)
	assert.Equal(t, 2, y.Trade)
	assert.Equal(t, 1, y.Science)
	assert.Equal(t, 1, y.Gold)
	assert.Equal(t, 1, y.Shields)

	p.Government = "monarchy"
	assert.Equal(t, 2, e.production.Yield(city, p).Shields)
	p.Government = "republic"
	assert.Equal(t, 3, e.production.Yield(city, p).Trade)
}

func TestResearchTechnology(t *testing.T) {
	e := twoHumans(t)
	p := e.gs.Players[0]
	var researched []*events.TechnologyResearchedEvent
	events.Listen(e.EventBus(), func(ev *events.TechnologyResearchedEvent) { researched = append(researched, ev) })

	assert.False(t, e.ResearchTechnology(0, "alphabet"), "no science yet")

	p.Science = 25
	require.True(t, e.ResearchTechnology(0, "alphabet"))
	assert.True(t, p.Knows("alphabet"))
	assert.Equal(t, 5, p.Science, "cost is debited, not zeroed")
	require.Len(t, researched, 1)
	assert.Equal(t, catalog.TechID("alphabet"), researched[0].Tech)

	assert.False(t, e.ResearchTechnology(0, "alphabet"), "already known")
	assert.False(t, e.ResearchTechnology(0, "map_making"), "30 needed, 5 held")
	assert.False(t, e.ResearchTechnology(0, "monarchy"), "prerequisites missing")
	assert.False(t, e.ResearchTechnology(1, "alphabet"), "not player 1's turn")

	testutil.AssertPanic(t, func() { e.ResearchTechnology(0, "cold_fusion") }, "unknown technology")
}

func TestSetCurrentResearch(t *testing.T) {
	e := twoHumans(t)
	p := e.gs.Players[0]
	p.Science = 5

	require.True(t, e.SetCurrentResearch(0, "bronze_working"))
	assert.Equal(t, catalog.TechID("bronze_working"), p.CurrentResearch)
	assert.Equal(t, 5, p.CurrentResearchProgress)
	assert.Equal(t, 5, p.Science, "setting a target spends nothing")

	assert.False(t, e.SetCurrentResearch(0, "currency"), "needs bronze working")

	p.Science = 40
	endRounds(t, e, 1)
	assert.Equal(t, 20, p.CurrentResearchProgress, "progress is capped at the cost")

	require.True(t, e.ResearchTechnology(0, "bronze_working"))
	assert.Empty(t, p.CurrentResearch)
	assert.Equal(t, 0, p.CurrentResearchProgress)
	assert.False(t, e.SetCurrentResearch(0, "bronze_working"), "already known")
}

func TestRevolution(t *testing.T) {
	e := twoHumans(t)
	p := e.gs.Players[0]
	var started []*events.RevolutionStartedEvent
	var changed []*events.GovernmentChangedEvent
	events.Listen(e.EventBus(), func(ev *events.RevolutionStartedEvent) { started = append(started, ev) })
	events.Listen(e.EventBus(), func(ev *events.GovernmentChangedEvent) { changed = append(changed, ev) })

	assert.False(t, e.StartRevolution(1), "not player 1's turn")
	require.True(t, e.StartRevolution(0))
	assert.Equal(t, catalog.Anarchy, p.Government)
	assert.Equal(t, catalog.Despotism, p.PendingGovernment)
	assert.Equal(t, 2, p.RevolutionTurnsRemaining)
	require.Len(t, started, 1)
	assert.Equal(t, 2, started[0].Turns)

	assert.False(t, e.StartRevolution(0), "already in anarchy")
	assert.False(t, e.ChangeGovernment(0, "monarchy"), "monarchy is not known")

	p.Technologies["monarchy"] = true
	require.True(t, e.ChangeGovernment(0, "monarchy"))
	assert.Equal(t, catalog.GovernmentID("monarchy"), p.PendingGovernment)
	assert.Equal(t, 2, p.RevolutionTurnsRemaining, "choosing a target does not restart the countdown")

	endRounds(t, e, 1)
	assert.Equal(t, catalog.Anarchy, p.Government)
	assert.Equal(t, 1, p.RevolutionTurnsRemaining)

	endRounds(t, e, 1)
	assert.Equal(t, catalog.GovernmentID("monarchy"), p.Government)
	assert.Equal(t, 0, p.RevolutionTurnsRemaining)
	assert.Empty(t, p.PendingGovernment)
	require.Len(t, changed, 1)
	assert.Equal(t, catalog.Anarchy, changed[0].From)
	assert.Equal(t, catalog.GovernmentID("monarchy"), changed[0].To)
}

func TestChangeGovernment(t *testing.T) {
	e := twoHumans(t)
	p := e.gs.Players[0]

	assert.False(t, e.ChangeGovernment(0, catalog.Anarchy))
	assert.False(t, e.ChangeGovernment(0, "theocracy"))
	assert.True(t, e.ChangeGovernment(0, catalog.Despotism), "same as current")
	assert.Equal(t, catalog.Despotism, p.Government)

	p.Technologies["ceremonial_burial"] = true
	p.Technologies["alphabet"] = true
	p.Technologies["code_of_laws"] = true
	p.Technologies["monarchy"] = true
	require.True(t, e.ChangeGovernment(0, "monarchy"))
	assert.Equal(t, catalog.Anarchy, p.Government)
	assert.Equal(t, catalog.GovernmentID("monarchy"), p.PendingGovernment)
}
