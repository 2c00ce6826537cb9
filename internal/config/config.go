// Package config provides Viper-based configuration loading for the
// simulation server.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// WorldConfig holds the playable world settings.
type WorldConfig struct {
	// HalfExtent is half the side length of the playable square; positions
	// are confined to [-HalfExtent, +HalfExtent] on each horizontal axis.
	HalfExtent float64 `mapstructure:"half_extent"`
	// Seed seeds the session's randomness source.
	Seed int64 `mapstructure:"seed"`
	// TickRate is the number of simulation steps per second.
	TickRate int `mapstructure:"tick_rate"`
}

// PlayerConfig holds the player locomotion tuning.
type PlayerConfig struct {
	BaseSpeed        float64 `mapstructure:"base_speed"`
	SprintMultiplier float64 `mapstructure:"sprint_multiplier"`
	Acceleration     float64 `mapstructure:"acceleration"`
	Damping          float64 `mapstructure:"damping"`
	JumpStrength     float64 `mapstructure:"jump_strength"`
	Gravity          float64 `mapstructure:"gravity"`
	EyeHeight        float64 `mapstructure:"eye_height"`
	GroundProbe      float64 `mapstructure:"ground_probe"`
}

// ContentConfig holds the YAML content directory paths.
type ContentConfig struct {
	SpeciesDir  string `mapstructure:"species_dir"`
	NodesDir    string `mapstructure:"nodes_dir"`
	ToolsDir    string `mapstructure:"tools_dir"`
	RecipesDir  string `mapstructure:"recipes_dir"`
	UpgradesDir string `mapstructure:"upgrades_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	World   WorldConfig   `mapstructure:"world"`
	Player  PlayerConfig  `mapstructure:"player"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if the configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateWorld(c.World); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePlayer(c.Player); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateWorld(w WorldConfig) error {
	var errs []string
	if w.HalfExtent <= 0 {
		errs = append(errs, fmt.Sprintf("world.half_extent must be > 0, got %g", w.HalfExtent))
	}
	if w.TickRate < 1 {
		errs = append(errs, fmt.Sprintf("world.tick_rate must be >= 1, got %d", w.TickRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePlayer(p PlayerConfig) error {
	var errs []string
	if p.BaseSpeed <= 0 {
		errs = append(errs, fmt.Sprintf("player.base_speed must be > 0, got %g", p.BaseSpeed))
	}
	if p.SprintMultiplier < 1 {
		errs = append(errs, fmt.Sprintf("player.sprint_multiplier must be >= 1, got %g", p.SprintMultiplier))
	}
	if p.Acceleration <= 0 {
		errs = append(errs, fmt.Sprintf("player.acceleration must be > 0, got %g", p.Acceleration))
	}
	if p.Damping < 0 {
		errs = append(errs, fmt.Sprintf("player.damping must be >= 0, got %g", p.Damping))
	}
	if p.JumpStrength <= 0 {
		errs = append(errs, fmt.Sprintf("player.jump_strength must be > 0, got %g", p.JumpStrength))
	}
	if p.Gravity <= 0 {
		errs = append(errs, fmt.Sprintf("player.gravity must be > 0, got %g", p.Gravity))
	}
	if p.EyeHeight <= 0 {
		errs = append(errs, fmt.Sprintf("player.eye_height must be > 0, got %g", p.EyeHeight))
	}
	if p.GroundProbe <= 0 {
		errs = append(errs, fmt.Sprintf("player.ground_probe must be > 0, got %g", p.GroundProbe))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.SpeciesDir == "" {
		errs = append(errs, "content.species_dir must not be empty")
	}
	if c.NodesDir == "" {
		errs = append(errs, "content.nodes_dir must not be empty")
	}
	if c.ToolsDir == "" {
		errs = append(errs, "content.tools_dir must not be empty")
	}
	if c.RecipesDir == "" {
		errs = append(errs, "content.recipes_dir must not be empty")
	}
	if c.UpgradesDir == "" {
		errs = append(errs, "content.upgrades_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// setDefaults applies the default value for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("world.half_extent", 100.0)
	v.SetDefault("world.seed", 1)
	v.SetDefault("world.tick_rate", 60)

	v.SetDefault("player.base_speed", 5.0)
	v.SetDefault("player.sprint_multiplier", 1.8)
	v.SetDefault("player.acceleration", 10.0)
	v.SetDefault("player.damping", 8.0)
	v.SetDefault("player.jump_strength", 6.5)
	v.SetDefault("player.gravity", 18.0)
	v.SetDefault("player.eye_height", 1.7)
	v.SetDefault("player.ground_probe", 0.15)

	v.SetDefault("content.species_dir", "content/species")
	v.SetDefault("content.nodes_dir", "content/nodes")
	v.SetDefault("content.tools_dir", "content/tools")
	v.SetDefault("content.recipes_dir", "content/recipes")
	v.SetDefault("content.upgrades_dir", "content/upgrades")
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with TIMBERLINE_ prefix
	v.SetEnvPrefix("TIMBERLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Default returns the built-in default configuration, used when no config
// file is supplied.
//
// Postcondition: the returned Config passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Unmarshalling pure defaults cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}
