// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// Planner holds settings for the planner backend this view talks to.
	Planner PlannerConfig

	// Redis holds Redis connection settings for the snapshot mirror.
	Redis RedisConfig
}

// PlannerConfig holds connection parameters for the planner backend.
// The backend owns all persistence and plan generation; the view server
// only fetches snapshots from it and relays actions to it.
type PlannerConfig struct {
	// BaseURL is the root URL of the planner backend
	// (default: "http://localhost:5000").
	BaseURL string

	// Timeout bounds every outbound request so a stalled backend never
	// leaves the UI in a permanently busy state.
	Timeout time.Duration
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string

	// SnapshotTTL is how long a mirrored snapshot stays valid. A restarted
	// server serves the mirror only until its first backend round-trip.
	SnapshotTTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are malformed.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "debug"),

		Planner: PlannerConfig{
			BaseURL: getEnv("PLANNER_URL", "http://localhost:5000"),
			Timeout: getEnvDuration("PLANNER_TIMEOUT", 30*time.Second),
		},

		Redis: RedisConfig{
			URL:         getEnv("REDIS_URL", "redis://localhost:6379"),
			SnapshotTTL: getEnvDuration("SNAPSHOT_TTL", 24*time.Hour),
		},
	}

	if strings.TrimSpace(cfg.Planner.BaseURL) == "" {
		return nil, fmt.Errorf("PLANNER_URL must not be empty")
	}
	if cfg.Planner.Timeout <= 0 {
		return nil, fmt.Errorf("PLANNER_TIMEOUT must be positive")
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "30s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
