package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	Journal JournalConfig `mapstructure:"journal"`
	Runner  RunnerConfig  `mapstructure:"runner"`
}

// GameConfig holds game mechanics configuration
type GameConfig struct {
	Start      StartConfig      `mapstructure:"start"`
	Growth     GrowthConfig     `mapstructure:"growth"`
	Production ProductionConfig `mapstructure:"production"`
	Combat     CombatConfig     `mapstructure:"combat"`
	Healing    HealingConfig    `mapstructure:"healing"`
	Government GovernmentConfig `mapstructure:"government"`
	AI         AIConfig         `mapstructure:"ai"`
	Victory    VictoryConfig    `mapstructure:"victory"`
}

// StartConfig holds scenario and starting-position settings
type StartConfig struct {
	Width           int      `mapstructure:"width"`
	Height          int      `mapstructure:"height"`
	Scenario        string   `mapstructure:"scenario"`
	MinStartSpacing int      `mapstructure:"min_start_spacing"`
	Units           []string `mapstructure:"units"`
	Gold            int      `mapstructure:"gold"`
}

// GrowthConfig holds city growth settings.
// A city grows when stored food reaches (population+1) * FoodBox.
type GrowthConfig struct {
	FoodPerPop         int `mapstructure:"food_per_pop"`
	FoodBox            int `mapstructure:"food_box"`
	GranaryKeepPercent int `mapstructure:"granary_keep_percent"`
	WorkRadius         int `mapstructure:"work_radius"`
}

// ProductionConfig holds shield and city placement settings
type ProductionConfig struct {
	BaseCapacity          int `mapstructure:"base_capacity"`
	SettlerPopulationCost int `mapstructure:"settler_population_cost"`
	CityMinDistance       int `mapstructure:"city_min_distance"`
	RoadTurns             int `mapstructure:"road_turns"`
	CityNameAttempts      int `mapstructure:"city_name_attempts"`
}

// CombatConfig holds the combat odds model parameters
type CombatConfig struct {
	VeteranMultiplier   float64 `mapstructure:"veteran_multiplier"`
	FortifiedMultiplier float64 `mapstructure:"fortified_multiplier"`
	DamagePerRound      int     `mapstructure:"damage_per_round"`
	MaxRounds           int     `mapstructure:"max_rounds"`
}

// HealingConfig holds per-turn healing amounts
type HealingConfig struct {
	Field int `mapstructure:"field"`
	City  int `mapstructure:"city"`
}

// GovernmentConfig holds revolution settings
type GovernmentConfig struct {
	RevolutionTurns int `mapstructure:"revolution_turns"`
}

// AIConfig holds the heuristic thresholds of the computer players
type AIConfig struct {
	EarlyGameTurns      int `mapstructure:"early_game_turns"`
	MidGameTurns        int `mapstructure:"mid_game_turns"`
	EarlySearchRadius   int `mapstructure:"early_search_radius"`
	LateSearchRadius    int `mapstructure:"late_search_radius"`
	EarlySiteBar        int `mapstructure:"early_site_bar"`
	LateSiteBar         int `mapstructure:"late_site_bar"`
	BaseLandValue       int `mapstructure:"base_land_value"`
	RiverBonus          int `mapstructure:"river_bonus"`
	GrasslandBonus      int `mapstructure:"grassland_bonus"`
	HillsBonus          int `mapstructure:"hills_bonus"`
	WaterAdjacencyBonus int `mapstructure:"water_adjacency_bonus"`
	RiverAdjacencyBonus int `mapstructure:"river_adjacency_bonus"`
	MinCitySpacing      int `mapstructure:"min_city_spacing"`
	EngagementRadius    int `mapstructure:"engagement_radius"`
	DefenseRadius       int `mapstructure:"defense_radius"`
	MinGarrison         int `mapstructure:"min_garrison"`
	EarlyTargetCities   int `mapstructure:"early_target_cities"`
	MidTargetCities     int `mapstructure:"mid_target_cities"`
	LateTargetCities    int `mapstructure:"late_target_cities"`
	MaxActionsPerUnit   int `mapstructure:"max_actions_per_unit"`
}

// VictoryConfig holds optional game-over rules
type VictoryConfig struct {
	Conquest bool `mapstructure:"conquest"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// JournalConfig holds the sqlite event journal settings. An empty path disables it.
type JournalConfig struct {
	Path string `mapstructure:"path"`
}

// RunnerConfig holds headless runner settings
type RunnerConfig struct {
	Players []string `mapstructure:"players"`
	Humans  int      `mapstructure:"humans"`
	Turns   int      `mapstructure:"turns"`
	Seed    int64    `mapstructure:"seed"`
	Script  string   `mapstructure:"script"`
	ShowMap bool     `mapstructure:"show_map"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Start defaults
	v.SetDefault("game.start.width", 80)
	v.SetDefault("game.start.height", 50)
	v.SetDefault("game.start.scenario", "continents")
	v.SetDefault("game.start.min_start_spacing", 10)
	v.SetDefault("game.start.units", []string{"settlers", "warriors"})
	v.SetDefault("game.start.gold", 50)

	// Growth defaults
	v.SetDefault("game.growth.food_per_pop", 2)
	v.SetDefault("game.growth.food_box", 10)
	v.SetDefault("game.growth.granary_keep_percent", 50)
	v.SetDefault("game.growth.work_radius", 2)

	// Production defaults
	v.SetDefault("game.production.base_capacity", 1)
	v.SetDefault("game.production.settler_population_cost", 1)
	v.SetDefault("game.production.city_min_distance", 2)
	v.SetDefault("game.production.road_turns", 2)
	v.SetDefault("game.production.city_name_attempts", 10)

	// Combat defaults
	v.SetDefault("game.combat.veteran_multiplier", 1.5)
	v.SetDefault("game.combat.fortified_multiplier", 1.5)
	v.SetDefault("game.combat.damage_per_round", 1)
	v.SetDefault("game.combat.max_rounds", 0)

	// Healing defaults
	v.SetDefault("game.healing.field", 1)
	v.SetDefault("game.healing.city", 3)

	// Government defaults
	v.SetDefault("game.government.revolution_turns", 2)

	// AI defaults
	v.SetDefault("game.ai.early_game_turns", 20)
	v.SetDefault("game.ai.mid_game_turns", 80)
	v.SetDefault("game.ai.early_search_radius", 3)
	v.SetDefault("game.ai.late_search_radius", 6)
	v.SetDefault("game.ai.early_site_bar", 1)
	v.SetDefault("game.ai.late_site_bar", 3)
	v.SetDefault("game.ai.base_land_value", 1)
	v.SetDefault("game.ai.river_bonus", 3)
	v.SetDefault("game.ai.grassland_bonus", 2)
	v.SetDefault("game.ai.hills_bonus", 1)
	v.SetDefault("game.ai.water_adjacency_bonus", 2)
	v.SetDefault("game.ai.river_adjacency_bonus", 1)
	v.SetDefault("game.ai.min_city_spacing", 3)
	v.SetDefault("game.ai.engagement_radius", 5)
	v.SetDefault("game.ai.defense_radius", 4)
	v.SetDefault("game.ai.min_garrison", 2)
	v.SetDefault("game.ai.early_target_cities", 4)
	v.SetDefault("game.ai.mid_target_cities", 8)
	v.SetDefault("game.ai.late_target_cities", 12)
	v.SetDefault("game.ai.max_actions_per_unit", 4)

	// Victory defaults
	v.SetDefault("game.victory.conquest", false)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Journal defaults
	v.SetDefault("journal.path", "")

	// Runner defaults
	v.SetDefault("runner.players", []string{"Caesar", "Hammurabi"})
	v.SetDefault("runner.humans", 0)
	v.SetDefault("runner.turns", 100)
	v.SetDefault("runner.seed", 0)
	v.SetDefault("runner.script", "")
	v.SetDefault("runner.show_map", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/civsim")
	}

	v.SetEnvPrefix("CIV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing explicit file falls back to defaults; for the default
		// locations only ConfigFileNotFoundError is tolerated.
		if configPath == "" {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// Defaults returns a fresh config populated only from defaults. It does not
// touch the global instance, so tests can tweak the copy freely.
func Defaults() Config {
	dv := viper.New()
	setViperDefaults(dv)
	var c Config
	if err := dv.Unmarshal(&c); err != nil {
		panic("failed to decode default config: " + err.Error())
	}
	return c
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}

	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	v.Unmarshal(cfg)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Reloaded values only
// affect games created after the change.
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	g := c.Game
	if g.Start.Width < 4 || g.Start.Height < 4 {
		return fmt.Errorf("game.start map dimensions must be at least 4x4")
	}
	if g.Start.MinStartSpacing < 1 {
		return fmt.Errorf("game.start.min_start_spacing must be at least 1")
	}
	if g.Start.Gold < 0 {
		return fmt.Errorf("game.start.gold must be non-negative")
	}

	if g.Growth.FoodPerPop < 0 {
		return fmt.Errorf("game.growth.food_per_pop must be non-negative")
	}
	if g.Growth.FoodBox <= 0 {
		return fmt.Errorf("game.growth.food_box must be positive")
	}
	if g.Growth.GranaryKeepPercent < 0 || g.Growth.GranaryKeepPercent > 100 {
		return fmt.Errorf("game.growth.granary_keep_percent must be between 0 and 100")
	}
	if g.Growth.WorkRadius < 1 {
		return fmt.Errorf("game.growth.work_radius must be at least 1")
	}

	if g.Production.BaseCapacity < 1 {
		return fmt.Errorf("game.production.base_capacity must be at least 1")
	}
	if g.Production.SettlerPopulationCost < 0 {
		return fmt.Errorf("game.production.settler_population_cost must be non-negative")
	}
	if g.Production.CityMinDistance < 1 {
		return fmt.Errorf("game.production.city_min_distance must be at least 1")
	}
	if g.Production.RoadTurns < 1 {
		return fmt.Errorf("game.production.road_turns must be at least 1")
	}
	if g.Production.CityNameAttempts < 0 {
		return fmt.Errorf("game.production.city_name_attempts must be non-negative")
	}

	if g.Combat.VeteranMultiplier < 1 || g.Combat.FortifiedMultiplier < 1 {
		return fmt.Errorf("game.combat multipliers must be at least 1")
	}
	if g.Combat.DamagePerRound < 1 {
		return fmt.Errorf("game.combat.damage_per_round must be at least 1")
	}
	if g.Combat.MaxRounds < 0 {
		return fmt.Errorf("game.combat.max_rounds must be non-negative")
	}

	if g.Healing.Field < 0 || g.Healing.City < 0 {
		return fmt.Errorf("game.healing values must be non-negative")
	}
	if g.Government.RevolutionTurns < 1 {
		return fmt.Errorf("game.government.revolution_turns must be at least 1")
	}

	ai := g.AI
	if ai.EarlyGameTurns < 0 || ai.MidGameTurns < ai.EarlyGameTurns {
		return fmt.Errorf("game.ai stage thresholds must satisfy 0 <= early_game_turns <= mid_game_turns")
	}
	if ai.EarlySearchRadius < 1 || ai.LateSearchRadius < 1 {
		return fmt.Errorf("game.ai search radii must be at least 1")
	}
	if ai.MinCitySpacing < 1 {
		return fmt.Errorf("game.ai.min_city_spacing must be at least 1")
	}
	if ai.EngagementRadius < 1 || ai.DefenseRadius < 0 {
		return fmt.Errorf("game.ai engagement/defense radii are out of range")
	}
	if ai.MaxActionsPerUnit < 1 {
		return fmt.Errorf("game.ai.max_actions_per_unit must be at least 1")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Runner.Turns < 0 {
		return fmt.Errorf("runner.turns must be non-negative")
	}
	if c.Runner.Humans < 0 || c.Runner.Humans > len(c.Runner.Players) {
		return fmt.Errorf("runner.humans must be between 0 and the number of players")
	}

	return nil
}
