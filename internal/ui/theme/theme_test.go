package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/shell/commands"
)

func TestEveryThemeHasPalette(t *testing.T) {
	for _, name := range commands.Themes {
		_, ok := Lookup(name)
		assert.True(t, ok, name)
	}
	assert.Len(t, palettes, len(commands.Themes))
}

func TestGet_UnknownFallsBack(t *testing.T) {
	th := Get("solarized")
	assert.Equal(t, "solarized", th.Name)
	assert.Equal(t, palettes[Default], th.Palette)
}

func TestStyle_PerColor(t *testing.T) {
	th := Get("dracula")

	assert.Equal(t, lipgloss.TerminalColor(th.Palette.Error), th.Style(shell.ColorError).GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(th.Palette.Muted), th.Style(shell.ColorMuted).GetForeground())
	assert.Equal(t, lipgloss.TerminalColor(th.Palette.Foreground), th.Style(shell.Color(99)).GetForeground())
}

func TestLine_KeepsText(t *testing.T) {
	th := Get(Default)

	out := th.Lines([]shell.Line{
		shell.Plain("hello"),
		{Text: "github", Color: shell.ColorInfo, Href: "https://github.com"},
	})
	assert.Len(t, out, 2)
	assert.Contains(t, out[0], "hello")
	assert.Contains(t, out[1], "github")
}
