package state

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

func TestStore_Defaults(t *testing.T) {
	s := NewMemory()
	assert.Equal(t, vfs.HomePath, s.Cwd())
	assert.Equal(t, DefaultTheme, s.Theme())
	assert.Empty(t, s.FoundFlags())
	assert.Empty(t, s.History())
	assert.False(t, s.SoundEnabled())
	assert.Zero(t, s.HighScore())
}

func TestStore_CaptureFlagIsIdempotent(t *testing.T) {
	s := NewMemory()
	s.CaptureFlag(3)
	s.CaptureFlag(1)
	s.CaptureFlag(3)
	s.CaptureFlag(0)
	s.CaptureFlag(8)

	assert.Equal(t, []int{1, 3}, s.FoundFlags())
	assert.True(t, s.HasFlag(3))
	assert.False(t, s.HasFlag(2))
}

func TestStore_HistoryEvictsOldest(t *testing.T) {
	s := NewMemory()
	s.historyLimit = 3
	for i := 1; i <= 5; i++ {
		s.AddHistory(fmt.Sprintf("cmd%d", i))
	}
	assert.Equal(t, []string{"cmd3", "cmd4", "cmd5"}, s.History())
}

func TestStore_HighScoreOnlyIncreases(t *testing.T) {
	s := NewMemory()
	s.UpdateHighScore(5)
	s.UpdateHighScore(3)
	assert.Equal(t, 5, s.HighScore())
	s.UpdateHighScore(9)
	assert.Equal(t, 9, s.HighScore())
}

func TestStore_ToggleSound(t *testing.T) {
	s := NewMemory()
	assert.True(t, s.ToggleSound())
	assert.True(t, s.SoundEnabled())
	assert.False(t, s.ToggleSound())
}

func TestStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s, err := Load(path, 10)
	require.NoError(t, err)
	assert.Equal(t, vfs.HomePath, s.Cwd())

	s.SetCwd("/var/log")
	s.CaptureFlag(2)
	s.AddHistory("ls -la")
	s.SetTheme("matrix")
	s.ToggleSound()
	s.UpdateHighScore(12)
	require.NoError(t, s.Save())

	loaded, err := Load(path, 10)
	require.NoError(t, err)
	assert.Equal(t, s.Snapshot(), loaded.Snapshot())
}

func TestStore_SaveSkipsInMemory(t *testing.T) {
	s := NewMemory()
	s.SetCwd("/tmp")
	assert.NoError(t, s.Save())
	assert.Empty(t, s.Path())
}

func TestStore_DetachKeepsLoadedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cwd: /var\nflags: [1]\n"), 0644))

	s, err := Load(path, 10)
	require.NoError(t, err)
	s.Detach()
	s.SetCwd("/tmp")
	require.NoError(t, s.Save())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "cwd: /var")
	assert.Equal(t, []int{1}, s.FoundFlags())
}

func TestLoad_SanitizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	content := `cwd: /etc/hostname
flags: [7, 7, 0, 2, 99]
theme: ""
snake_high_score: -4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := Load(path, 10)
	require.NoError(t, err)
	assert.Equal(t, vfs.HomePath, s.Cwd())
	assert.Equal(t, []int{2, 7}, s.FoundFlags())
	assert.Equal(t, DefaultTheme, s.Theme())
	assert.Zero(t, s.HighScore())
}

func TestLoad_CorruptFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cwd: [unterminated"), 0644))

	s, err := Load(path, 10)
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, vfs.HomePath, s.Cwd())
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	assert.NoError(t, Remove(path))
	require.NoError(t, os.WriteFile(path, []byte("cwd: /\n"), 0644))
	assert.NoError(t, Remove(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
