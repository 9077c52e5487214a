package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "serenechat.log")

	lg, err := New(Config{Level: "debug", File: logFile})
	require.NoError(t, err)
	defer lg.Close()

	zl := lg.GetZerolog()
	zl.Info().Str("key", "value").Msg("test entry")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test entry")
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	lg, err := New(Config{Level: "chatty", Console: true})
	require.NoError(t, err)
	defer lg.Close()

	assert.Equal(t, "info", lg.GetZerolog().GetLevel().String())
}

func TestNew_LevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "serenechat.log")

	lg, err := New(Config{Level: "warn", File: logFile})
	require.NoError(t, err)
	defer lg.Close()

	zl := lg.GetZerolog()
	zl.Debug().Msg("should not appear")
	zl.Warn().Msg("should appear")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should not appear")
	assert.Contains(t, string(data), "should appear")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.Console)
}
