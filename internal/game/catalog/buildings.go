package catalog

import "fmt"

// BuildingID identifies a building or wonder
type BuildingID string

// BuildingSpec holds the cost and effects of a city improvement.
// All bonuses are additive per city; DefenseMultiplier of 0 means none.
type BuildingSpec struct {
	ID                BuildingID `yaml:"id"`
	Name              string     `yaml:"name"`
	Cost              int        `yaml:"cost"`
	Upkeep            int        `yaml:"upkeep"`
	Requires          TechID     `yaml:"requires"`
	ProductionBonus   int        `yaml:"production_bonus"`
	FoodKeepPercent   int        `yaml:"food_keep_percent"`
	ScienceBonus      int        `yaml:"science_bonus"`
	GoldBonus         int        `yaml:"gold_bonus"`
	CultureBonus      int        `yaml:"culture_bonus"`
	DefenseMultiplier float64    `yaml:"defense_multiplier"`
	Wonder            bool       `yaml:"-"`
}

var (
	buildingSpecs map[BuildingID]BuildingSpec
	buildingOrder []BuildingID
	wonderOrder   []BuildingID
)

func loadBuildings() {
	var doc struct {
		Buildings []BuildingSpec `yaml:"buildings"`
		Wonders   []BuildingSpec `yaml:"wonders"`
	}
	mustDecode("buildings.yaml", &doc)

	buildingSpecs = make(map[BuildingID]BuildingSpec, len(doc.Buildings)+len(doc.Wonders))
	add := func(b BuildingSpec, wonder bool) {
		if _, dup := buildingSpecs[b.ID]; dup {
			panic(fmt.Sprintf("catalog: duplicate building %q", b.ID))
		}
		if b.Cost < 1 {
			panic(fmt.Sprintf("catalog: building %q has non-positive cost", b.ID))
		}
		checkRequires("building", string(b.ID), b.Requires)
		b.Wonder = wonder
		buildingSpecs[b.ID] = b
		if wonder {
			wonderOrder = append(wonderOrder, b.ID)
		} else {
			buildingOrder = append(buildingOrder, b.ID)
		}
	}
	for _, b := range doc.Buildings {
		add(b, false)
	}
	for _, w := range doc.Wonders {
		add(w, true)
	}
}

// LookupBuilding returns the spec of a building or wonder
func LookupBuilding(id BuildingID) (BuildingSpec, bool) {
	b, ok := buildingSpecs[id]
	return b, ok
}

// Buildings returns the regular city improvements in table order
func Buildings() []BuildingID {
	out := make([]BuildingID, len(buildingOrder))
	copy(out, buildingOrder)
	return out
}

// Wonders returns the wonders in table order
func Wonders() []BuildingID {
	out := make([]BuildingID, len(wonderOrder))
	copy(out, wonderOrder)
	return out
}
