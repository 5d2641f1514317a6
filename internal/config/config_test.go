package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/purbayanos/internal/snake"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".purbayanos.yaml"), cfg.StatePath)
	assert.Equal(t, filepath.Join(home, ".purbayanos_history"), cfg.HistoryFile)
	assert.Equal(t, state.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.False(t, cfg.NoSave)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.MetricsAddr)
	assert.Equal(t, snake.DefaultInterval, cfg.SnakeInterval)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PURBAYANOS_STATE", "/tmp/state.yaml")
	t.Setenv("PURBAYANOS_HISTORY_LIMIT", "25")
	t.Setenv("PURBAYANOS_NO_SAVE", "true")
	t.Setenv("PURBAYANOS_LOG_LEVEL", "debug")
	t.Setenv("PURBAYANOS_LOG_FORMAT", "console")
	t.Setenv("PURBAYANOS_METRICS_ADDR", ":9090")
	t.Setenv("PURBAYANOS_SNAKE_INTERVAL", "80ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/state.yaml", cfg.StatePath)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.True(t, cfg.NoSave)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, 80*time.Millisecond, cfg.SnakeInterval)
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PURBAYANOS_HISTORY_LIMIT", "lots")
	t.Setenv("PURBAYANOS_NO_SAVE", "maybe")
	t.Setenv("PURBAYANOS_SNAKE_INTERVAL", "fast")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, state.DefaultHistoryLimit, cfg.HistoryLimit)
	assert.False(t, cfg.NoSave)
	assert.Equal(t, snake.DefaultInterval, cfg.SnakeInterval)
}

func TestValidate(t *testing.T) {
	valid := Config{LogLevel: "info", LogFormat: "json", HistoryLimit: 10, SnakeInterval: time.Second}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"level", func(c *Config) { c.LogLevel = "verbose" }},
		{"format", func(c *Config) { c.LogFormat = "xml" }},
		{"history", func(c *Config) { c.HistoryLimit = 0 }},
		{"interval", func(c *Config) { c.SnakeInterval = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
