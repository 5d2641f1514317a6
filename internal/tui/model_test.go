package tui

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/purbayanos/internal/state"
	"github.com/PPRAMANIK62/purbayanos/internal/terminal"
)

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	sess := terminal.New(state.NewMemory(), terminal.WithRand(rand.New(rand.NewSource(1))))
	m := NewModel(sess, opts)
	t.Cleanup(func() {
		if m.engine != nil {
			m.engine.Stop()
		}
	})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func run(t *testing.T, m Model, line string) Model {
	t.Helper()
	m.input.SetValue(line)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func scrollback(m Model) string {
	texts := make([]string, len(m.rows))
	for i, r := range m.rows {
		texts[i] = r.prompt + r.line.Text
	}
	return strings.Join(texts, "\n")
}

func TestModel_Welcome(t *testing.T) {
	m := newModel(t, Options{})
	assert.Contains(t, scrollback(m), "Welcome to PurbayanOS")
}

func TestModel_TypeAndRun(t *testing.T) {
	m := newModel(t, Options{})

	for _, r := range "pwd" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "pwd", m.input.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	out := scrollback(m)
	assert.Contains(t, out, "purbayan@purbayan-os:~$ pwd")
	assert.Contains(t, out, "/home/purbayan")
	assert.Empty(t, m.input.Value())
}

func TestModel_Clear(t *testing.T) {
	m := newModel(t, Options{})
	m = run(t, m, "whoami")
	m = run(t, m, "clear")
	assert.Empty(t, m.rows)

	m = run(t, m, "whoami")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Empty(t, m.rows)
}

func TestModel_History(t *testing.T) {
	m := newModel(t, Options{})
	m = run(t, m, "whoami")
	m = run(t, m, "pwd")

	m.input.SetValue("draft")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "pwd", m.input.Value())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "whoami", m.input.Value())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "whoami", m.input.Value())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "pwd", m.input.Value())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "draft", m.input.Value())
}

func TestModel_TabCompletion(t *testing.T) {
	m := newModel(t, Options{})

	m.input.SetValue("neof")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "neofetch ", m.input.Value())

	m.input.SetValue("cd proj")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "cd projects/", m.input.Value())

	// Ambiguous with nothing to add: candidates are listed.
	m.input.SetValue("cat projects/")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "cat projects/", m.input.Value())
	assert.Contains(t, scrollback(m), "projects/gitpulse.md")
}

func TestModel_OpenURL(t *testing.T) {
	var opened []string
	m := newModel(t, Options{OpenFn: func(url string) error {
		opened = append(opened, url)
		return nil
	}})

	run(t, m, "rickroll")
	require.Len(t, opened, 1)
	assert.Contains(t, opened[0], "youtube.com")
}

func TestModel_Exit(t *testing.T) {
	m := newModel(t, Options{})
	m, cmd := update(t, run(t, m, ""), tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_ExitCommand(t *testing.T) {
	m := newModel(t, Options{})
	m.input.SetValue("exit")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}

func TestModel_BellOnlyWithSound(t *testing.T) {
	var bell bytes.Buffer
	m := newModel(t, Options{Bell: &bell})

	m = run(t, m, "cat nope")
	assert.Zero(t, bell.Len())

	m = run(t, m, "sound")
	m = run(t, m, "cat nope")
	assert.Equal(t, "\a", bell.String())

	run(t, m, "cat .bashrc")
	assert.Equal(t, "\a\a", bell.String())
}

func TestModel_ThemeChange(t *testing.T) {
	m := newModel(t, Options{})
	m = run(t, m, "theme dracula")
	assert.Equal(t, "dracula", m.theme.Name)
	assert.Contains(t, m.View(), "dracula")
}

func TestModel_SnakeMode(t *testing.T) {
	m := newModel(t, Options{})
	m = run(t, m, "snake")
	require.True(t, m.inSnake)
	require.NotNil(t, m.engine)
	assert.NotEmpty(t, m.board)
	assert.Contains(t, m.View(), "Score:")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.False(t, m.inSnake)
	assert.Contains(t, scrollback(m), "Snake: score")

	// The engine is reused for the next game.
	eng := m.engine
	m = run(t, m, "snake")
	assert.Same(t, eng, m.engine)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.inSnake)
}

func TestModel_StartSnakeOption(t *testing.T) {
	m := newModel(t, Options{StartSnake: true})
	assert.True(t, m.inSnake)
}

func TestModel_Resize(t *testing.T) {
	m := newModel(t, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 40-chromeHeight, m.viewport.Height)
}

func TestModel_ExitWithGame(t *testing.T) {
	m := newModel(t, Options{StartSnake: true, ExitWithGame: true})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
}
