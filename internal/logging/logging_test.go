package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func resetLogger(t *testing.T) {
	t.Cleanup(func() { Set(zap.NewNop()) })
}

func TestInit_NoOutputPathIsNop(t *testing.T) {
	resetLogger(t)

	require.NoError(t, Init(Config{Level: "debug"}))
	for _, lvl := range []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.ErrorLevel} {
		assert.False(t, L().Core().Enabled(lvl), lvl.String())
	}
}

func TestInit_WritesJSONToFile(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "purbayanos.log")

	require.NoError(t, Init(Config{Level: "info", Format: "json", OutputPath: path}))
	Debug("hidden", String("k", "v"))
	Info("session started", String("session", "abc"), Int("commands", 3), Bool("no_save", true))
	require.NoError(t, Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)
	assert.Contains(t, out, `"msg":"session started"`)
	assert.Contains(t, out, `"session":"abc"`)
	assert.Contains(t, out, `"commands":3`)
	assert.Contains(t, out, `"no_save":true`)
	assert.NotContains(t, out, "hidden")
}

func TestInit_BadLevelFallsBackToInfo(t *testing.T) {
	resetLogger(t)
	path := filepath.Join(t.TempDir(), "purbayanos.log")

	require.NoError(t, Init(Config{Level: "loud", OutputPath: path}))
	assert.False(t, L().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, L().Core().Enabled(zapcore.InfoLevel))
}
