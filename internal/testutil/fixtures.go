package testutil

import (
	"fmt"

	"github.com/mitchelldurbincs/CivSim/internal/config"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// terrainByRune maps the map-dump symbols back to terrain kinds
var terrainByRune = map[rune]catalog.TerrainKind{
	'~': catalog.Ocean,
	'-': catalog.Lake,
	'.': catalog.Grassland,
	',': catalog.Plains,
	':': catalog.Desert,
	'_': catalog.Tundra,
	'*': catalog.Arctic,
	'f': catalog.Forest,
	'j': catalog.Jungle,
	's': catalog.Swamp,
	'h': catalog.Hills,
	'^': catalog.Mountains,
	'=': catalog.River,
}

// GameConfig returns the default game tunables
func GameConfig() config.GameConfig {
	return config.Defaults().Game
}

// FlatGrid creates a w x h grid of grassland
func FlatGrid(w, h int) *core.Grid {
	return core.NewGrid(w, h, catalog.Grassland)
}

// GridFromRows builds a grid from equal-length rows of map symbols, the
// same symbols the engine's text map uses. It panics on bad input.
func GridFromRows(rows ...string) *core.Grid {
	if len(rows) == 0 {
		panic("testutil: no rows")
	}
	w := len([]rune(rows[0]))
	g := core.NewGrid(w, len(rows), catalog.Grassland)
	for y, row := range rows {
		r := []rune(row)
		if len(r) != w {
			panic(fmt.Sprintf("testutil: row %d has width %d, want %d", y, len(r), w))
		}
		for x, ch := range r {
			k, ok := terrainByRune[ch]
			if !ok {
				panic(fmt.Sprintf("testutil: unknown terrain symbol %q at (%d,%d)", ch, x, y))
			}
			g.SetTerrain(core.NewPosition(x, y), k)
		}
	}
	return g
}
