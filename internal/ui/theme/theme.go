// Package theme provides the visual styling for the PurbayanOS terminal.
//
// Every theme name accepted by the `theme` command has a Palette. A Palette is
// turned into a Theme, a set of lipgloss styles used for:
//   - Output lines (one style per shell.Color)
//   - The shell prompt
//   - The title and status bars
//   - The Snake board border
//
// Unknown names fall back to the default palette.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
)

// Default is the theme used when none is set.
const Default = "default"

// Palette is the set of colors a theme is built from.
type Palette struct {
	Foreground lipgloss.Color // plain output
	Primary    lipgloss.Color // prompt, borders, title
	Secondary  lipgloss.Color // status bar background
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Info       lipgloss.Color
	Muted      lipgloss.Color
}

var palettes = map[string]Palette{
	"default": {
		Foreground: lipgloss.Color("#e5e7eb"),
		Primary:    lipgloss.Color("#22c55e"),
		Secondary:  lipgloss.Color("#374151"),
		Success:    lipgloss.Color("#22c55e"),
		Warning:    lipgloss.Color("#f59e0b"),
		Error:      lipgloss.Color("#ef4444"),
		Info:       lipgloss.Color("#38bdf8"),
		Muted:      lipgloss.Color("#6b7280"),
	},
	"matrix": {
		Foreground: lipgloss.Color("#00ff41"),
		Primary:    lipgloss.Color("#00ff41"),
		Secondary:  lipgloss.Color("#003b00"),
		Success:    lipgloss.Color("#39ff14"),
		Warning:    lipgloss.Color("#b6ff00"),
		Error:      lipgloss.Color("#ff3131"),
		Info:       lipgloss.Color("#00cc33"),
		Muted:      lipgloss.Color("#008f11"),
	},
	"amber": {
		Foreground: lipgloss.Color("#ffb000"),
		Primary:    lipgloss.Color("#ffb000"),
		Secondary:  lipgloss.Color("#3d2a00"),
		Success:    lipgloss.Color("#ffcc00"),
		Warning:    lipgloss.Color("#ff8c00"),
		Error:      lipgloss.Color("#ff4500"),
		Info:       lipgloss.Color("#ffd27f"),
		Muted:      lipgloss.Color("#a66f00"),
	},
	"dracula": {
		Foreground: lipgloss.Color("#f8f8f2"),
		Primary:    lipgloss.Color("#bd93f9"),
		Secondary:  lipgloss.Color("#44475a"),
		Success:    lipgloss.Color("#50fa7b"),
		Warning:    lipgloss.Color("#f1fa8c"),
		Error:      lipgloss.Color("#ff5555"),
		Info:       lipgloss.Color("#8be9fd"),
		Muted:      lipgloss.Color("#6272a4"),
	},
	"nord": {
		Foreground: lipgloss.Color("#d8dee9"),
		Primary:    lipgloss.Color("#88c0d0"),
		Secondary:  lipgloss.Color("#3b4252"),
		Success:    lipgloss.Color("#a3be8c"),
		Warning:    lipgloss.Color("#ebcb8b"),
		Error:      lipgloss.Color("#bf616a"),
		Info:       lipgloss.Color("#81a1c1"),
		Muted:      lipgloss.Color("#4c566a"),
	},
	"cyberpunk": {
		Foreground: lipgloss.Color("#f0f0f0"),
		Primary:    lipgloss.Color("#ff2a6d"),
		Secondary:  lipgloss.Color("#1a1a2e"),
		Success:    lipgloss.Color("#05d9e8"),
		Warning:    lipgloss.Color("#f9f002"),
		Error:      lipgloss.Color("#ff2a6d"),
		Info:       lipgloss.Color("#d1f7ff"),
		Muted:      lipgloss.Color("#7a7a9d"),
	},
}

// Lookup returns the palette for name and whether it exists.
func Lookup(name string) (Palette, bool) {
	p, ok := palettes[name]
	return p, ok
}

// Theme is a palette turned into styles.
type Theme struct {
	Name    string
	Palette Palette

	Prompt    lipgloss.Style
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Board     lipgloss.Style // Snake board
	lines     map[shell.Color]lipgloss.Style
}

// Get builds the Theme for name. Unknown names get the default palette but
// keep their name, so a stale persisted theme still renders.
func Get(name string) Theme {
	p, ok := Lookup(name)
	if !ok {
		p = palettes[Default]
	}
	return Theme{
		Name:    name,
		Palette: p,
		Prompt:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary).
			Background(p.Primary).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(p.Muted).
			Background(p.Secondary).
			Padding(0, 1),
		Board: lipgloss.NewStyle().Foreground(p.Primary),
		lines: map[shell.Color]lipgloss.Style{
			shell.ColorDefault: lipgloss.NewStyle().Foreground(p.Foreground),
			shell.ColorError:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
			shell.ColorSuccess: lipgloss.NewStyle().Foreground(p.Success),
			shell.ColorInfo:    lipgloss.NewStyle().Foreground(p.Info),
			shell.ColorWarning: lipgloss.NewStyle().Foreground(p.Warning),
			shell.ColorMuted:   lipgloss.NewStyle().Foreground(p.Muted),
		},
	}
}

// Style returns the style for a semantic color.
func (t Theme) Style(c shell.Color) lipgloss.Style {
	if s, ok := t.lines[c]; ok {
		return s
	}
	return t.lines[shell.ColorDefault]
}

// Line renders one output line. Hyperlinks are underlined.
func (t Theme) Line(l shell.Line) string {
	style := t.Style(l.Color)
	if l.Href != "" {
		style = style.Underline(true)
	}
	return style.Render(l.Text)
}

// Lines renders output lines one per row.
func (t Theme) Lines(lines []shell.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = t.Line(l)
	}
	return out
}
