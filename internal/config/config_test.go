package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	for _, v := range []string{"n", "No", "F", "FALSE", "oFF", "0"} {
		assert.False(t, ParseBool(v), v)
	}
	for _, v := range []string{"y", "yes", "true", "on", "1", "", "nope", "2"} {
		assert.True(t, ParseBool(v), v)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SERVICE_NAME", "TRACE_SAMPLE_RATIO", "METRICS_OPENMETRICS", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultServiceName, cfg.ServiceName)
	assert.False(t, cfg.OpenMetrics)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TRACE_SAMPLE_RATIO", "7")
	t.Setenv("METRICS_OPENMETRICS", "On")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1.0, cfg.TraceSampleRatio)
	assert.True(t, cfg.OpenMetrics)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)

	t.Setenv("PORT", "-1")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
}

func TestTraceSampleRatio(t *testing.T) {
	for value, want := range map[string]float64{
		"0":    0,
		"0.25": 0.25,
		"7":    1,
		"-1":   defaultSampleRatio,
		"x":    defaultSampleRatio,
	} {
		t.Setenv("TRACE_SAMPLE_RATIO", value)
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, want, cfg.TraceSampleRatio, value)
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	require.NoError(t, os.Unsetenv("SERVICE_NAME"))
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SERVICE_NAME=from-file\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.ServiceName)

	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.NoError(t, err)
}
