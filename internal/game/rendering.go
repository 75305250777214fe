package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/CivSim/internal/common"
	"github.com/mitchelldurbincs/CivSim/internal/game/catalog"
	"github.com/mitchelldurbincs/CivSim/internal/game/core"
)

// This file contains the text map dump used by the headless runner and tests.

const (
	CitySymbol    = '@'
	PlayerSymbols = "ABCDEFGH"
)

var terrainSymbols = map[catalog.TerrainKind]byte{
	catalog.Ocean:     '~',
	catalog.Lake:      '-',
	catalog.Grassland: '.',
	catalog.Plains:    ',',
	catalog.Desert:    ':',
	catalog.Tundra:    '_',
	catalog.Arctic:    '*',
	catalog.Forest:    'f',
	catalog.Jungle:    'j',
	catalog.Swamp:     's',
	catalog.Hills:     'h',
	catalog.Mountains: '^',
	catalog.River:     '=',
}

// Board returns a text map of the world. Cities show as '@' and units as
// their owner's letter (A for player 0); colored output wraps owned tiles
// in the owner's civilization color.
func (e *Engine) Board(colored bool) string {
	if e.gs == nil {
		return ""
	}
	g := e.gs.grid

	var sb strings.Builder
	sb.Grow((g.W*2 + 8) * (g.H + 3))

	// Header row, column numbers mod 10
	sb.WriteString("    ")
	for x := 0; x < g.W; x++ {
		sb.WriteByte(byte('0' + x%10))
	}
	sb.WriteString("\n")

	for y := 0; y < g.H; y++ {
		fmt.Fprintf(&sb, "%3d ", y)
		for x := 0; x < g.W; x++ {
			e.writeTile(&sb, core.NewPosition(x, y), colored)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n@=city A-H=units ~=ocean -=lake .=grassland ,=plains :=desert _=tundra *=arctic f=forest j=jungle s=swamp h=hills ^=mountains ==river\n")
	return sb.String()
}

func (e *Engine) writeTile(sb *strings.Builder, pos core.Position, colored bool) {
	owner := -1
	var symbol byte

	switch units := e.gs.UnitsAt(pos); {
	case e.gs.CityAt(pos) != nil:
		owner = e.gs.CityAt(pos).Owner
		symbol = CitySymbol
	case len(units) > 0:
		owner = units[0].Owner
		symbol = PlayerSymbols[owner%len(PlayerSymbols)]
	default:
		symbol = terrainSymbols[e.gs.grid.TerrainAt(pos).Kind]
		if symbol == 0 {
			symbol = '?'
		}
	}

	if !colored || owner < 0 {
		sb.WriteByte(symbol)
		return
	}
	p := e.gs.Player(owner)
	hex := ""
	if p != nil {
		hex = p.Color
	}
	sb.WriteString(common.ANSI(common.PlayerColor(owner, hex)))
	sb.WriteByte(symbol)
	sb.WriteString(common.ANSIReset)
}
