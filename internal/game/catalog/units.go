package catalog

import "fmt"

// UnitType identifies a unit type
type UnitType string

// Role drives how the computer player uses a unit
type Role string

const (
	RoleSettler  Role = "settler"
	RoleMilitary Role = "military"
	RoleExplorer Role = "explorer"
)

// UnitSpec holds the fixed statistics of a unit type
type UnitSpec struct {
	ID            UnitType `yaml:"id"`
	Name          string   `yaml:"name"`
	Role          Role     `yaml:"role"`
	Attack        int      `yaml:"attack"`
	Defense       int      `yaml:"defense"`
	Movement      int      `yaml:"movement"`
	Health        int      `yaml:"health"`
	Firepower     int      `yaml:"firepower"`
	Cost          int      `yaml:"cost"`
	Requires      TechID   `yaml:"requires"`
	CanFortify    bool     `yaml:"can_fortify"`
	CanFoundCity  bool     `yaml:"can_found_city"`
	CanBuildRoads bool     `yaml:"can_build_roads"`
}

var (
	unitSpecs map[UnitType]UnitSpec
	unitOrder []UnitType
)

func loadUnits() {
	var doc struct {
		Units []UnitSpec `yaml:"units"`
	}
	mustDecode("units.yaml", &doc)

	unitSpecs = make(map[UnitType]UnitSpec, len(doc.Units))
	for _, u := range doc.Units {
		if _, dup := unitSpecs[u.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate unit type %q", u.ID))
		}
		switch u.Role {
		case RoleSettler, RoleMilitary, RoleExplorer:
		default:
			panic(fmt.Sprintf("catalog: unit %q has unknown role %q", u.ID, u.Role))
		}
		if u.Movement < 1 || u.Health < 1 || u.Firepower < 1 || u.Cost < 1 {
			panic(fmt.Sprintf("catalog: unit %q has invalid statistics", u.ID))
		}
		checkRequires("unit", string(u.ID), u.Requires)
		unitSpecs[u.ID] = u
		unitOrder = append(unitOrder, u.ID)
	}
}

// LookupUnit returns the spec of a unit type
func LookupUnit(t UnitType) (UnitSpec, bool) {
	u, ok := unitSpecs[t]
	return u, ok
}

// MustUnit returns the spec of a unit type or panics
func MustUnit(t UnitType) UnitSpec {
	u, ok := unitSpecs[t]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown unit type %q", t))
	}
	return u
}

// UnitTypes returns all unit types in table order
func UnitTypes() []UnitType {
	out := make([]UnitType, len(unitOrder))
	copy(out, unitOrder)
	return out
}
