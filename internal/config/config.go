// Package config provides Viper-based configuration loading for the
// dicestats CLI. Missing or unreadable configuration files fall back
// to defaults; only invalid values are errors.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// seedUnset marks the default-seed key as absent; valid seeds are
// non-negative.
const seedUnset = -1

// maxSeed is the largest accepted seed value, 2^32 - 1.
const maxSeed = int64(1)<<32 - 1

// RollConfig holds defaults applied to roll commands.
type RollConfig struct {
	// Iterations is the default number of rolls per session.
	Iterations int `mapstructure:"iterations"`
	// Seed is the default random seed; negative means unset.
	Seed int64 `mapstructure:"seed"`
}

// DefaultSeed returns the configured seed, or nil when unset.
func (r RollConfig) DefaultSeed() *int64 {
	if r.Seed < 0 {
		return nil
	}
	seed := r.Seed
	return &seed
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	// Format is the rendering format: "text" or "json".
	Format string `mapstructure:"format"`
	// Verbose enables per-die output for roll results.
	Verbose bool `mapstructure:"verbose"`
	// ShowStats appends a statistics block to roll output.
	ShowStats bool `mapstructure:"show_stats"`
}

// HistoryConfig holds roll-history persistence settings.
type HistoryConfig struct {
	// Limit is the maximum number of sessions retained on save.
	Limit int `mapstructure:"limit"`
	// Path is the bbolt database file; "~" expands to the home
	// directory at load time.
	Path string `mapstructure:"path"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level application configuration.
type Config struct {
	Roll    RollConfig    `mapstructure:"roll"`
	Output  OutputConfig  `mapstructure:"output"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Roll.Iterations < 1 {
		errs = append(errs, fmt.Sprintf("roll.iterations must be >= 1, got %d", c.Roll.Iterations))
	}
	if c.Roll.Seed != seedUnset && (c.Roll.Seed < 0 || c.Roll.Seed > maxSeed) {
		errs = append(errs, fmt.Sprintf("roll.seed must be in [0, 2^32-1], got %d", c.Roll.Seed))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[c.Output.Format] {
		errs = append(errs, fmt.Sprintf("output.format must be one of [text, json], got %q", c.Output.Format))
	}

	if c.History.Limit < 1 {
		errs = append(errs, fmt.Sprintf("history.limit must be >= 1, got %d", c.History.Limit))
	}
	if c.History.Path == "" {
		errs = append(errs, "history.path must not be empty")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	validLogFormats := map[string]bool{"json": true, "console": true}
	if !validLogFormats[c.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path (or the default
// location when path is empty), applies environment variable
// overrides with the DICE_ prefix, and validates the result. A
// missing or unreadable file is not an error: defaults apply.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetEnvPrefix("DICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path == "" {
		path = filepath.Join(configDir(), "config.yaml")
	}
	v.SetConfigFile(path)

	// Corrupt or missing config files never propagate; the defaults
	// and env overrides stand on their own.
	_ = v.ReadInConfig()

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper
// instance.
//
// Precondition: v must be non-nil with defaults set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.History.Path = expandHome(cfg.History.Path)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: invalid built-in defaults: " + err.Error())
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("roll.iterations", 1)
	v.SetDefault("roll.seed", seedUnset)

	v.SetDefault("output.format", "text")
	v.SetDefault("output.verbose", false)
	v.SetDefault("output.show_stats", false)

	v.SetDefault("history.limit", 100)
	v.SetDefault("history.path", filepath.Join("~", ".dicestats", "history.db"))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func configDir() string {
	return filepath.Join(expandHome("~"), ".dicestats")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
