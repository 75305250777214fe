package core

import (
	"slices"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
)

// Improvement is a tile improvement built by units
type Improvement string

const ImprovementRoad Improvement = "road"

// Tile represents a single cell on the map. Terrain never changes after the
// grid is built; resources and improvements are owned by the Grid.
type Tile struct {
	Pos          Position
	Terrain      catalog.TerrainKind
	Resources    map[string]bool
	Improvements []Improvement
}

// Info returns the terrain table entry for the tile
func (t *Tile) Info() catalog.TerrainInfo { return catalog.Describe(t.Terrain) }

func (t *Tile) HasImprovement(imp Improvement) bool {
	for _, have := range t.Improvements {
		if have == imp {
			return true
		}
	}
	return false
}

// Grid is a cylindrical map: X wraps around, Y is clamped.
type Grid struct {
	W, H int
	T    []Tile // length = W*H (row-major)
}

// NewGrid creates a grid filled with a single terrain kind
func NewGrid(w, h int, fill catalog.TerrainKind) *Grid {
	if w < 1 || h < 1 {
		panic("core: grid dimensions must be positive")
	}
	g := &Grid{W: w, H: h, T: make([]Tile, w*h)}
	for i := range g.T {
		g.T[i].Pos = Position{X: i % w, Y: i / w}
		g.T[i].Terrain = fill
	}
	return g
}

// Normalize wraps X into [0,W) and clamps Y into [0,H)
func (g *Grid) Normalize(p Position) Position {
	x := p.X % g.W
	if x < 0 {
		x += g.W
	}
	y := p.Y
	if y < 0 {
		y = 0
	} else if y >= g.H {
		y = g.H - 1
	}
	return Position{X: x, Y: y}
}

func (g *Grid) InBoundsY(y int) bool { return y >= 0 && y < g.H }

func (g *Grid) Idx(p Position) int {
	n := g.Normalize(p)
	return n.Y*g.W + n.X
}

// Offset steps from p by dx, dy. The X axis wraps; false means the result
// would leave the map vertically.
func (g *Grid) Offset(p Position, dx, dy int) (Position, bool) {
	y := p.Y + dy
	if !g.InBoundsY(y) {
		return Position{}, false
	}
	return g.Normalize(Position{X: p.X + dx, Y: y}), true
}

// Neighbors8 returns the adjacent positions in row-major order, skipping
// those above the top or below the bottom edge. On maps narrower than three
// tiles the wrap folds offsets onto each other; each tile is listed once and
// p itself never.
func (g *Grid) Neighbors8(p Position) []Position {
	p = g.Normalize(p)
	out := make([]Position, 0, 8)
	for _, o := range neighborOffsets {
		n, ok := g.Offset(p, o.DX, o.DY)
		if !ok || n == p || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// WrappedDistance is the Manhattan distance with the horizontal component
// taken the short way around the cylinder.
func (g *Grid) WrappedDistance(a, b Position) int {
	a, b = g.Normalize(a), g.Normalize(b)
	dx := abs(a.X - b.X)
	if g.W-dx < dx {
		dx = g.W - dx
	}
	return dx + abs(a.Y-b.Y)
}

// IsAdjacent reports whether b is one of a's eight neighbors
func (g *Grid) IsAdjacent(a, b Position) bool {
	b = g.Normalize(b)
	for _, n := range g.Neighbors8(a) {
		if n == b {
			return true
		}
	}
	return false
}

// Tile returns the tile at the normalized position
func (g *Grid) Tile(p Position) *Tile {
	return &g.T[g.Idx(p)]
}

func (g *Grid) TerrainAt(p Position) catalog.TerrainInfo {
	return catalog.Describe(g.Tile(p).Terrain)
}

// SetTerrain is for map construction only
func (g *Grid) SetTerrain(p Position, k catalog.TerrainKind) {
	g.Tile(p).Terrain = k
}

func (g *Grid) AddResource(p Position, res string) {
	t := g.Tile(p)
	if t.Resources == nil {
		t.Resources = make(map[string]bool)
	}
	t.Resources[res] = true
}

// AddImprovement appends imp to the tile. Returns false if already present.
func (g *Grid) AddImprovement(p Position, imp Improvement) bool {
	t := g.Tile(p)
	if t.HasImprovement(imp) {
		return false
	}
	t.Improvements = append(t.Improvements, imp)
	return true
}

func (g *Grid) HasImprovement(p Position, imp Improvement) bool {
	return g.Tile(p).HasImprovement(imp)
}

// TileTrade is the tile's trade yield including a road bonus on open land
func (g *Grid) TileTrade(p Position) int {
	t := g.Tile(p)
	trade := t.Info().Trade
	if t.HasImprovement(ImprovementRoad) && roadBonusTerrain(t.Terrain) {
		trade++
	}
	return trade
}

func roadBonusTerrain(k catalog.TerrainKind) bool {
	switch k {
	case catalog.Grassland, catalog.Plains, catalog.Desert:
		return true
	}
	return false
}
