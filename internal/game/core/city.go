package core

import (
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

// ProductionKind is what a city is building
type ProductionKind int

const (
	ProduceUnit ProductionKind = iota
	ProduceBuilding
	ProduceWonder
)

func (k ProductionKind) String() string {
	switch k {
	case ProduceUnit:
		return "unit"
	case ProduceBuilding:
		return "building"
	case ProduceWonder:
		return "wonder"
	default:
		return "unknown"
	}
}

// ParseProductionKind maps "unit", "building" and "wonder" to a kind
func ParseProductionKind(s string) (ProductionKind, bool) {
	switch s {
	case "unit":
		return ProduceUnit, true
	case "building":
		return ProduceBuilding, true
	case "wonder":
		return ProduceWonder, true
	}
	return 0, false
}

// ProductionOrder is a city's current build item
type ProductionOrder struct {
	Kind           ProductionKind
	Item           string
	TurnsRemaining int
}

// City is a settlement.
// Invariant: Population >= 1 and len(WorkedTiles) <= Population.
type City struct {
	ID                int
	Owner             int
	Name              string
	Pos               Position
	Population        int
	Food              int
	ProductionPoints  int
	Science           int
	Culture           int
	Buildings         []catalog.BuildingID
	CurrentProduction *ProductionOrder
	WorkedTiles       []Offset
	Founded           int
}

// NewCity creates a size-1 city with no worked tiles
func NewCity(id, owner int, name string, pos Position, turn int) *City {
	return &City{
		ID:         id,
		Owner:      owner,
		Name:       name,
		Pos:        pos,
		Population: 1,
		Founded:    turn,
	}
}

func (c *City) HasBuilding(id catalog.BuildingID) bool {
	for _, b := range c.Buildings {
		if b == id {
			return true
		}
	}
	return false
}

// Works reports whether the offset is in the worked set
func (c *City) Works(o Offset) bool {
	for _, w := range c.WorkedTiles {
		if w == o {
			return true
		}
	}
	return false
}

// AssignTile adds o to the worked set if there is a free citizen
func (c *City) AssignTile(o Offset) bool {
	if o == (Offset{}) || c.Works(o) || len(c.WorkedTiles) >= c.Population {
		return false
	}
	c.WorkedTiles = append(c.WorkedTiles, o)
	return true
}

// TrimWorkedTiles drops the most recently assigned tiles until the set fits
// the population.
func (c *City) TrimWorkedTiles() {
	if len(c.WorkedTiles) > c.Population {
		c.WorkedTiles = c.WorkedTiles[:c.Population]
	}
}

// Clone returns a deep copy
func (c *City) Clone() *City {
	cp := *c
	cp.Buildings = append([]catalog.BuildingID(nil), c.Buildings...)
	cp.WorkedTiles = append([]Offset(nil), c.WorkedTiles...)
	if c.CurrentProduction != nil {
		order := *c.CurrentProduction
		cp.CurrentProduction = &order
	}
	return &cp
}
