package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

func TestUnit_Lifecycle(t *testing.T) {
	spec := catalog.MustUnit("warriors")
	u := NewUnit(1, 0, spec, Position{3, 3})

	assert.Equal(t, spec.Movement, u.MovementPoints)
	assert.Equal(t, spec.Movement, u.MaxMovementPoints)
	assert.True(t, u.Queueable())

	u.SpendMovement(5)
	assert.Equal(t, 0, u.MovementPoints, "movement clamps at zero")
	assert.False(t, u.Queueable())

	u.RestoreMovement()
	u.Fortify()
	assert.Equal(t, UnitFortifying, u.State)
	assert.Equal(t, 0, u.MovementPoints)
	assert.False(t, u.IsFortified())

	u.Wake()
	assert.Equal(t, UnitActive, u.State)
	assert.Equal(t, 0, u.MovementPoints, "waking does not refund movement")
}

func TestUnit_Heal(t *testing.T) {
	u := NewUnit(1, 0, catalog.MustUnit("warriors"), Position{})
	u.Health = 2
	u.Heal(3)
	assert.Equal(t, 5, u.Health)
	u.Heal(100)
	assert.Equal(t, u.MaxHealth, u.Health)
}

func TestCity_WorkedTiles(t *testing.T) {
	c := NewCity(1, 0, "Roma", Position{5, 5}, 1)
	require.Equal(t, 1, c.Population)

	assert.False(t, c.AssignTile(Offset{}), "center is always worked")
	assert.True(t, c.AssignTile(Offset{1, 0}))
	assert.False(t, c.AssignTile(Offset{0, 1}), "no free citizen")

	c.Population = 3
	assert.False(t, c.AssignTile(Offset{1, 0}), "duplicate")
	assert.True(t, c.AssignTile(Offset{0, 1}))
	assert.True(t, c.AssignTile(Offset{-1, -1}))

	c.Population = 1
	c.TrimWorkedTiles()
	assert.Equal(t, []Offset{{1, 0}}, c.WorkedTiles)
}

func TestCity_CloneIsDeep(t *testing.T) {
	c := NewCity(1, 0, "Roma", Position{5, 5}, 1)
	c.Buildings = []catalog.BuildingID{"barracks"}
	c.CurrentProduction = &ProductionOrder{Kind: ProduceUnit, Item: "warriors", TurnsRemaining: 3}

	cp := c.Clone()
	cp.Buildings[0] = "temple"
	cp.CurrentProduction.TurnsRemaining = 1

	assert.Equal(t, catalog.BuildingID("barracks"), c.Buildings[0])
	assert.Equal(t, 3, c.CurrentProduction.TurnsRemaining)
}

func TestPlayer_Defaults(t *testing.T) {
	civ, ok := catalog.LookupCivilization("romans")
	require.True(t, ok)

	p := NewPlayer(0, "Caesar", true, civ)
	assert.Equal(t, catalog.Despotism, p.Government)
	assert.False(t, p.InAnarchy())
	assert.True(t, p.Knows(""), "no requirement is always known")
	assert.False(t, p.Knows("bronze_working"))

	cp := p.Clone()
	cp.Technologies["bronze_working"] = true
	assert.False(t, p.Knows("bronze_working"))
}

func TestParseProductionKind(t *testing.T) {
	for _, k := range []ProductionKind{ProduceUnit, ProduceBuilding, ProduceWonder} {
		got, ok := ParseProductionKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseProductionKind("spaceship")
	assert.False(t, ok)
}
