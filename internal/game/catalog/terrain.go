package catalog

import "fmt"

// TerrainKind is the closed set of terrain types a tile can have.
type TerrainKind int

const (
	Ocean TerrainKind = iota
	Lake
	Grassland
	Plains
	Desert
	Tundra
	Arctic
	Forest
	Jungle
	Swamp
	Hills
	Mountains
	River
	terrainCount
)

var terrainNames = [terrainCount]string{
	"ocean", "lake", "grassland", "plains", "desert", "tundra", "arctic",
	"forest", "jungle", "swamp", "hills", "mountains", "river",
}

// String returns the table key of the terrain kind
func (k TerrainKind) String() string {
	if k < 0 || k >= terrainCount {
		return fmt.Sprintf("TerrainKind(%d)", int(k))
	}
	return terrainNames[k]
}

// IsWater reports whether the kind is open water
func (k TerrainKind) IsWater() bool {
	return k == Ocean || k == Lake
}

// ParseTerrain converts a table key back to a TerrainKind
func ParseTerrain(name string) (TerrainKind, bool) {
	for k, n := range terrainNames {
		if n == name {
			return TerrainKind(k), true
		}
	}
	return 0, false
}

// AllTerrain returns every terrain kind in declaration order
func AllTerrain() []TerrainKind {
	kinds := make([]TerrainKind, terrainCount)
	for i := range kinds {
		kinds[i] = TerrainKind(i)
	}
	return kinds
}

// TerrainInfo describes the fixed properties of a terrain kind.
// ResourceProbabilities is shared table data and must not be modified.
type TerrainInfo struct {
	Kind                  TerrainKind
	MovementCost          int
	Passable              bool
	Food                  int
	Production            int
	Trade                 int
	CanFoundCity          bool
	DefenseBonus          float64
	ResourceProbabilities map[string]float64
}

type terrainRecord struct {
	MovementCost int                `yaml:"movement_cost"`
	Passable     bool               `yaml:"passable"`
	Food         int                `yaml:"food"`
	Production   int                `yaml:"production"`
	Trade        int                `yaml:"trade"`
	CanFoundCity bool               `yaml:"can_found_city"`
	DefenseBonus float64            `yaml:"defense_bonus"`
	Resources    map[string]float64 `yaml:"resources"`
}

var terrainTable [terrainCount]TerrainInfo

func loadTerrain() {
	var doc struct {
		Terrain map[string]terrainRecord `yaml:"terrain"`
	}
	mustDecode("terrain.yaml", &doc)

	for name := range doc.Terrain {
		if _, ok := ParseTerrain(name); !ok {
			panic(fmt.Sprintf("catalog: terrain.yaml declares unknown kind %q", name))
		}
	}
	for _, k := range AllTerrain() {
		rec, ok := doc.Terrain[k.String()]
		if !ok {
			panic(fmt.Sprintf("catalog: terrain.yaml is missing kind %q", k))
		}
		for res, p := range rec.Resources {
			if p < 0 || p > 1 {
				panic(fmt.Sprintf("catalog: terrain %q resource %q probability %v out of range", k, res, p))
			}
		}
		terrainTable[k] = TerrainInfo{
			Kind:                  k,
			MovementCost:          rec.MovementCost,
			Passable:              rec.Passable,
			Food:                  rec.Food,
			Production:            rec.Production,
			Trade:                 rec.Trade,
			CanFoundCity:          rec.CanFoundCity,
			DefenseBonus:          rec.DefenseBonus,
			ResourceProbabilities: rec.Resources,
		}
	}
}

// Describe returns the properties of a terrain kind. Kinds are a closed set,
// so an unknown kind means corrupted data and panics.
func Describe(k TerrainKind) TerrainInfo {
	if k < 0 || k >= terrainCount {
		panic(fmt.Sprintf("catalog: unknown terrain kind %d", int(k)))
	}
	return terrainTable[k]
}
