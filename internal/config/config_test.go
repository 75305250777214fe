package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  start:
    width: 40
    height: 25
  growth:
    food_box: 20
  ai:
    early_game_turns: 15
logging:
  level: debug
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg = nil
	v = nil

	err = Init(configFile)
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 40, c.Game.Start.Width)
	assert.Equal(t, 25, c.Game.Start.Height)
	assert.Equal(t, 20, c.Game.Growth.FoodBox)
	assert.Equal(t, 15, c.Game.AI.EarlyGameTurns)
	assert.Equal(t, "debug", c.Logging.Level)

	// Untouched keys keep their defaults
	assert.Equal(t, 2, c.Game.Growth.FoodPerPop)
	assert.Equal(t, 80, c.Game.AI.MidGameTurns)
}

func TestInitWithDefaults(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	require.NotNil(t, c)
	assert.Equal(t, 80, c.Game.Start.Width)
	assert.Equal(t, 50, c.Game.Start.Height)
	assert.Equal(t, []string{"settlers", "warriors"}, c.Game.Start.Units)
	assert.Equal(t, 1.5, c.Game.Combat.VeteranMultiplier)
	assert.False(t, c.Game.Victory.Conquest)
}

func TestEnvironmentVariables(t *testing.T) {
	cfg = nil
	v = nil

	t.Setenv("CIV_GAME_GROWTH_FOOD_BOX", "30")
	t.Setenv("CIV_GAME_GOVERNMENT_REVOLUTION_TURNS", "4")

	err := Init("")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 30, c.Game.Growth.FoodBox)
	assert.Equal(t, 4, c.Game.Government.RevolutionTurns)
}

func TestSet(t *testing.T) {
	cfg = nil
	v = nil

	err := Init("")
	require.NoError(t, err)

	Set("game.ai.min_garrison", 3)
	Set("game.victory.conquest", true)

	c := Get()
	assert.Equal(t, 3, c.Game.AI.MinGarrison)
	assert.True(t, c.Game.Victory.Conquest)
}

func TestDefaultsDoesNotTouchGlobal(t *testing.T) {
	cfg = nil
	v = nil

	d := Defaults()
	assert.Equal(t, 10, d.Game.Growth.FoodBox)
	assert.Nil(t, cfg, "Defaults must not initialize the global config")
	require.NoError(t, Validate(&d))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"tiny map", func(c *Config) { c.Game.Start.Width = 2 }},
		{"zero food box", func(c *Config) { c.Game.Growth.FoodBox = 0 }},
		{"granary over 100", func(c *Config) { c.Game.Growth.GranaryKeepPercent = 120 }},
		{"zero base capacity", func(c *Config) { c.Game.Production.BaseCapacity = 0 }},
		{"veteran below one", func(c *Config) { c.Game.Combat.VeteranMultiplier = 0.5 }},
		{"negative rounds", func(c *Config) { c.Game.Combat.MaxRounds = -1 }},
		{"no revolution turns", func(c *Config) { c.Game.Government.RevolutionTurns = 0 }},
		{"stages inverted", func(c *Config) { c.Game.AI.MidGameTurns = 5 }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"too many humans", func(c *Config) { c.Runner.Humans = 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(&c)
			assert.Error(t, Validate(&c))
		})
	}
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	baseContent := `
game:
  growth:
    food_box: 10
`
	err := os.WriteFile(baseConfig, []byte(baseContent), 0644)
	require.NoError(t, err)

	envConfig := filepath.Join(tmpDir, "config.hard.yaml")
	envContent := `
game:
  growth:
    food_box: 15
  ai:
    min_garrison: 4
`
	err = os.WriteFile(envConfig, []byte(envContent), 0644)
	require.NoError(t, err)

	oldWd, _ := os.Getwd()
	_ = os.Chdir(tmpDir)
	defer func() { _ = os.Chdir(oldWd) }()

	cfg = nil
	v = nil

	err = Init(baseConfig)
	require.NoError(t, err)

	err = LoadEnvironmentConfig("hard")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 15, c.Game.Growth.FoodBox)
	assert.Equal(t, 4, c.Game.AI.MinGarrison)
}
