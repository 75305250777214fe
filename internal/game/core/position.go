package core

import "fmt"

// Position is a tile coordinate. It is only meaningful relative to a Grid,
// which wraps X and clamps Y.
type Position struct {
	X, Y int
}

// NewPosition creates a new position with the given x and y values
func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position offset by dx, dy without normalizing
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Offset is a position relative to a city center
type Offset struct {
	DX, DY int
}

func (o Offset) String() string {
	return fmt.Sprintf("%+d,%+d", o.DX, o.DY)
}

// neighborOffsets enumerates the 8-neighborhood in row-major order. Callers
// rely on this order for deterministic tie-breaking.
var neighborOffsets = [8]Offset{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
