package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/dicestats/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 1, cfg.Roll.Iterations)
	assert.Nil(t, cfg.Roll.DefaultSeed(), "default seed is unset")
	assert.Equal(t, "text", cfg.Output.Format)
	assert.False(t, cfg.Output.Verbose)
	assert.False(t, cfg.Output.ShowStats)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.NotEmpty(t, cfg.History.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestDefault_IsValid(t *testing.T) {
	assert.NoError(t, config.Default().Validate())
}

func TestValidate_AggregatesViolations(t *testing.T) {
	cfg := config.Default()
	cfg.Roll.Iterations = 0
	cfg.Output.Format = "xml"
	cfg.History.Limit = 0
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "roll.iterations must be >= 1")
	assert.Contains(t, err.Error(), "output.format must be one of")
	assert.Contains(t, err.Error(), "history.limit must be >= 1")
	assert.Contains(t, err.Error(), "logging.level must be one of")
}

func TestValidate_SeedRange(t *testing.T) {
	cfg := config.Default()

	cfg.Roll.Seed = 0
	assert.NoError(t, cfg.Validate())

	cfg.Roll.Seed = int64(1)<<32 - 1
	assert.NoError(t, cfg.Validate())

	cfg.Roll.Seed = int64(1) << 32
	assert.Error(t, cfg.Validate())

	cfg.Roll.Seed = -2
	assert.Error(t, cfg.Validate())
}

func TestValidate_EmptyHistoryPath(t *testing.T) {
	cfg := config.Default()
	cfg.History.Path = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history.path must not be empty")
}

func TestDefaultSeed(t *testing.T) {
	roll := config.RollConfig{Seed: -1}
	assert.Nil(t, roll.DefaultSeed())

	roll.Seed = 12345
	seed := roll.DefaultSeed()
	require.NotNil(t, seed)
	assert.Equal(t, int64(12345), *seed)

	// Mutating the returned pointer must not touch the config.
	*seed = 99
	assert.Equal(t, int64(12345), roll.Seed)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Roll.Iterations, cfg.Roll.Iterations)
	assert.Equal(t, config.Default().Output.Format, cfg.Output.Format)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
roll:
  iterations: 25
  seed: 7
output:
  format: json
  verbose: true
history:
  limit: 42
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Roll.Iterations)
	require.NotNil(t, cfg.Roll.DefaultSeed())
	assert.Equal(t, int64(7), *cfg.Roll.DefaultSeed())
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Verbose)
	assert.Equal(t, 42, cfg.History.Limit)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DICE_ROLL_ITERATIONS", "50")
	t.Setenv("DICE_OUTPUT_FORMAT", "json")
	t.Setenv("DICE_LOGGING_LEVEL", "warn")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Roll.Iterations)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: text\n"), 0o600))
	t.Setenv("DICE_OUTPUT_FORMAT", "json")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_InvalidFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: csv\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
}

func TestLoad_CorruptFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_ExpandsHomeInHistoryPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history:\n  path: ~/rolls/history.db\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "rolls", "history.db"), cfg.History.Path)
}
