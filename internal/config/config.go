// Package config loads exporter settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
)

const (
	defaultPort        = 9464
	defaultServiceName = "render-telemetry"
	defaultSampleRatio = 0.1
)

// Config holds exporter settings.
type Config struct {
	Port             int
	ServiceName      string
	TraceSampleRatio float64
	OpenMetrics      bool
	LogLevel         slog.Level
}

// Load reads envFile, if it exists, then the environment. Variables already set
// in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Config{
		Port:             getEnvInt("PORT", defaultPort),
		ServiceName:      getEnvStr("SERVICE_NAME", defaultServiceName),
		TraceSampleRatio: getEnvRatio("TRACE_SAMPLE_RATIO", defaultSampleRatio),
		OpenMetrics:      getEnvBool("METRICS_OPENMETRICS", false),
		LogLevel:         slog.LevelInfo,
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

var falseLiterals = []string{"n", "no", "f", "false", "off", "0"}

// ParseBool reports false for n, no, f, false, off and 0 in any case, and true
// for everything else.
func ParseBool(value string) bool {
	folded := cases.Fold().String(value)
	for _, lit := range falseLiterals {
		if folded == lit {
			return false
		}
	}
	return true
}

func getEnvStr(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// getEnvRatio accepts 0 so tracing can be switched off; values above 1 are clamped.
func getEnvRatio(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 {
		return fallback
	}
	return min(parsed, 1)
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		return ParseBool(value)
	}
	return fallback
}
