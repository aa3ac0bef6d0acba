package observability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/dicestats/internal/config"
	"github.com/cory-johannsen/dicestats/internal/observability"
)

func TestNewLogger_Levels(t *testing.T) {
	cases := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
	}
	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			logger, err := observability.NewLogger(config.LoggingConfig{Level: tc.level, Format: "console"})
			require.NoError(t, err)
			defer logger.Sync()

			assert.True(t, logger.Core().Enabled(tc.want))
			if tc.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tc.want-1))
			}
		})
	}
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		logger, err := observability.NewLogger(config.LoggingConfig{Level: "info", Format: format})
		require.NoError(t, err, format)
		logger.Sync()
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := observability.NewLogger(config.LoggingConfig{Level: "loud", Format: "console"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := observability.NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
