package common

import (
	"fmt"
	"image/color"
	"strconv"
)

// NeutralColor is used for anything without an owner
var NeutralColor = color.RGBA{120, 120, 120, 255}

// fallbackColors are used when a civilization color is missing or malformed
var fallbackColors = []color.RGBA{
	{200, 50, 50, 255},  // Red
	{50, 100, 200, 255}, // Blue
	{50, 200, 50, 255},  // Green
	{200, 200, 50, 255}, // Yellow
	{160, 60, 200, 255}, // Purple
	{50, 190, 190, 255}, // Cyan
	{230, 130, 40, 255}, // Orange
	{230, 230, 230, 255},
}

// ANSIReset restores the terminal's default colors
const ANSIReset = "\033[0m"

// ParseHexColor parses a "#rrggbb" color
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// PlayerColor returns the color for a player from its civilization's hex
// color, falling back to a fixed palette. Negative ids are neutral.
func PlayerColor(playerID int, hex string) color.RGBA {
	if playerID < 0 {
		return NeutralColor
	}
	if c, err := ParseHexColor(hex); err == nil {
		return c
	}
	return fallbackColors[playerID%len(fallbackColors)]
}

// ANSI returns the 24-bit foreground escape sequence for c
func ANSI(c color.RGBA) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", c.R, c.G, c.B)
}
