// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/PPRAMANIK62/purbayanos/internal/snake"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
)

// Config holds the host configuration. Command-line flags override it.
type Config struct {
	// State
	StatePath    string
	HistoryFile  string // line-mode REPL history
	HistoryLimit int
	NoSave       bool

	// Logging
	LogLevel  string
	LogFormat string
	LogFile   string // empty disables logging

	// Metrics
	MetricsAddr string // empty disables the /metrics listener

	// Snake
	SnakeInterval time.Duration
}

// Load reads configuration from PURBAYANOS_* environment variables with
// defaults.
func Load() (*Config, error) {
	statePath, err := state.DefaultPath()
	if err != nil {
		return nil, fmt.Errorf("locate home directory: %w", err)
	}
	home := filepath.Dir(statePath)

	cfg := &Config{
		StatePath:     envOr("PURBAYANOS_STATE", statePath),
		HistoryFile:   envOr("PURBAYANOS_HISTORY_FILE", filepath.Join(home, ".purbayanos_history")),
		HistoryLimit:  envInt("PURBAYANOS_HISTORY_LIMIT", state.DefaultHistoryLimit),
		NoSave:        envBool("PURBAYANOS_NO_SAVE", false),
		LogLevel:      envOr("PURBAYANOS_LOG_LEVEL", "info"),
		LogFormat:     envOr("PURBAYANOS_LOG_FORMAT", "json"),
		LogFile:       envOr("PURBAYANOS_LOG_FILE", ""),
		MetricsAddr:   envOr("PURBAYANOS_METRICS_ADDR", ""),
		SnakeInterval: envDuration("PURBAYANOS_SNAKE_INTERVAL", snake.DefaultInterval),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that flags or the environment may have set.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.HistoryLimit)
	}
	if c.SnakeInterval <= 0 {
		return fmt.Errorf("snake interval must be positive, got %s", c.SnakeInterval)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
