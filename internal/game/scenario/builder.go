package scenario

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// Noise thresholds for the continents fill
const (
	seaLevel      = 0.50
	hillLevel     = 0.68
	mountainLevel = 0.78
	riverBand     = 0.03
)

// Builder produces grids and start positions with a deterministic RNG
type Builder struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewBuilder creates a new scenario builder
func NewBuilder(rng *rand.Rand, logger zerolog.Logger) *Builder {
	return &Builder{
		rng:    rng,
		logger: logger.With().Str("component", "ScenarioBuilder").Logger(),
	}
}

// BuildGrid fills s.Grid for generated kinds and scatters resources
func (b *Builder) BuildGrid(s *Scenario) (*core.Grid, error) {
	switch s.Kind {
	case KindCustom:
		if s.Grid == nil {
			return nil, fmt.Errorf("scenario %q: custom scenario without a grid", s.Name)
		}
		return s.Grid, nil
	case KindFlat:
		s.Grid = core.NewGrid(s.Width, s.Height, catalog.Grassland)
	case KindContinents:
		s.Grid = b.continents(s.Width, s.Height, s.Seed)
		b.scatterResources(s.Grid)
	default:
		return nil, fmt.Errorf("scenario %q: unknown kind %q", s.Name, s.Kind)
	}

	b.logger.Info().
		Str("scenario", s.Name).
		Int("width", s.Width).
		Int("height", s.Height).
		Int64("seed", s.Seed).
		Msg("Grid built")
	return s.Grid, nil
}

// continents samples elevation and moisture noise on a cylinder so the
// horizontal seam is continuous.
func (b *Builder) continents(w, h int, seed int64) *core.Grid {
	if seed == 0 {
		seed = b.rng.Int63()
	}
	elevNoise := opensimplex.NewNormalized(seed)
	moistNoise := opensimplex.NewNormalized(seed + 1)

	g := core.NewGrid(w, h, catalog.Ocean)
	radius := float64(w) / (2 * math.Pi)
	for y := 0; y < h; y++ {
		// 0 at the equator, 1 at the poles
		lat := math.Abs(float64(2*y-(h-1))) / float64(h)
		for x := 0; x < w; x++ {
			angle := 2 * math.Pi * float64(x) / float64(w)
			cx, cz := radius*math.Cos(angle), radius*math.Sin(angle)

			elev := octaveNoise(elevNoise, cx, float64(y), cz, 4, 0.08, 0.5)
			moist := octaveNoise(moistNoise, cx, float64(y), cz, 3, 0.06, 0.5)

			g.SetTerrain(core.Position{X: x, Y: y}, deriveTerrain(elev, moist, lat))
		}
	}
	markLakes(g)
	return g
}

func deriveTerrain(elev, moist, lat float64) catalog.TerrainKind {
	switch {
	case elev < seaLevel:
		return catalog.Ocean
	case lat > 0.92:
		return catalog.Arctic
	case elev > mountainLevel:
		return catalog.Mountains
	case elev > hillLevel:
		return catalog.Hills
	case lat > 0.78:
		return catalog.Tundra
	case elev < seaLevel+riverBand && moist > 0.55:
		return catalog.River
	case moist < 0.3 && lat < 0.45:
		return catalog.Desert
	case moist > 0.72 && elev < seaLevel+0.08:
		return catalog.Swamp
	case moist > 0.68 && lat < 0.3:
		return catalog.Jungle
	case moist > 0.62:
		return catalog.Forest
	case moist > 0.45:
		return catalog.Grassland
	default:
		return catalog.Plains
	}
}

// markLakes turns single ocean tiles enclosed by land into lakes
func markLakes(g *core.Grid) {
	for i := range g.T {
		t := &g.T[i]
		if t.Terrain != catalog.Ocean {
			continue
		}
		enclosed := true
		for _, n := range g.Neighbors8(t.Pos) {
			if g.Tile(n).Terrain == catalog.Ocean {
				enclosed = false
				break
			}
		}
		if enclosed {
			t.Terrain = catalog.Lake
		}
	}
}

func (b *Builder) scatterResources(g *core.Grid) {
	for i := range g.T {
		probs := g.T[i].Info().ResourceProbabilities
		names := make([]string, 0, len(probs))
		for name := range probs {
			names = append(names, name)
		}
		// Map order is random; sort so a seed reproduces the same map
		sort.Strings(names)
		for _, name := range names {
			if b.rng.Float64() < probs[name] {
				g.AddResource(g.T[i].Pos, name)
			}
		}
	}
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y, z float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval3(x*frequency, y*frequency, z*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// PlaceStarts returns one start position per player. Pinned placements are
// used as given; the rest are random city-capable tiles at least
// MinStartSpacing apart (wrapped distance). Spacing is relaxed if the map
// is too crowded.
func (b *Builder) PlaceStarts(s *Scenario, players int) ([]core.Position, error) {
	g := s.Grid
	if g == nil {
		return nil, fmt.Errorf("scenario %q: grid not built", s.Name)
	}

	starts := make([]core.Position, players)
	placed := make([]core.Position, 0, players)
	pinned := make([]bool, players)
	for pid := 0; pid < players; pid++ {
		if pos, ok := s.PlacementFor(pid); ok {
			starts[pid] = g.Normalize(pos)
			pinned[pid] = true
			placed = append(placed, starts[pid])
		}
	}

	for pid := 0; pid < players; pid++ {
		if pinned[pid] {
			continue
		}
		pos, err := b.findStart(g, placed, s.MinStartSpacing)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: player %d: %w", s.Name, pid, err)
		}
		starts[pid] = pos
		placed = append(placed, pos)
	}
	return starts, nil
}

func (b *Builder) findStart(g *core.Grid, existing []core.Position, spacing int) (core.Position, error) {
	for ; spacing >= 0; spacing /= 2 {
		maxAttempts := g.W * g.H
		for attempts := 0; attempts < maxAttempts; attempts++ {
			p := core.Position{X: b.rng.Intn(g.W), Y: b.rng.Intn(g.H)}
			if validStart(g, p, existing, spacing) {
				return p, nil
			}
		}
		b.logger.Warn().Int("spacing", spacing).Msg("Relaxing start spacing")
		if spacing == 0 {
			break
		}
	}

	// Exhaustive fallback
	for _, t := range g.T {
		if validStart(g, t.Pos, existing, 1) {
			return t.Pos, nil
		}
	}
	return core.Position{}, fmt.Errorf("no tile can hold a start position")
}

func validStart(g *core.Grid, p core.Position, existing []core.Position, spacing int) bool {
	info := g.TerrainAt(p)
	if !info.Passable || !info.CanFoundCity {
		return false
	}
	for _, other := range existing {
		if d := g.WrappedDistance(p, other); d < spacing || d == 0 {
			return false
		}
	}
	return true
}
