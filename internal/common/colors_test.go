package common

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#c83232")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{200, 50, 50, 255}, c)

	for _, bad := range []string{"", "c83232", "#c8323", "#zzzzzz", "#c832321"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestPlayerColor(t *testing.T) {
	tests := []struct {
		name     string
		playerID int
		hex      string
		expected color.RGBA
	}{
		{"neutral", -1, "#ffffff", NeutralColor},
		{"civilization color", 0, "#3264c8", color.RGBA{50, 100, 200, 255}},
		{"fallback", 1, "blue", fallbackColors[1]},
		{"fallback wraps", len(fallbackColors) + 2, "", fallbackColors[2]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlayerColor(tt.playerID, tt.hex))
		})
	}
}

func TestANSI(t *testing.T) {
	assert.Equal(t, "\033[38;2;200;50;50m", ANSI(color.RGBA{200, 50, 50, 255}))
}
