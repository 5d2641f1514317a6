package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PPRAMANIK62/purbayanos/internal/flags"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
)

// View renders the terminal.
// The layout is:
//   - Title bar: OS name, theme and flag progress
//   - Scrollback viewport, or the Snake board while a game is on
//   - Prompt line (hidden during a game)
//   - Status bar with key hints
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")

	if m.inSnake {
		b.WriteString(m.renderSnake())
	} else {
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(m.theme.Prompt.Render(m.session.Prompt()))
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderTitle draws the top bar.
func (m Model) renderTitle() string {
	title := m.theme.Title.Render(" PurbayanOS ")
	subtitle := m.theme.Style(shell.ColorDefault).Faint(true).Render(" " + m.theme.Name)
	found := len(m.session.Store().FoundFlags())
	progress := m.theme.Prompt.Render(fmt.Sprintf(" 🚩 %d/%d ", found, flags.Total))
	return lipgloss.JoinHorizontal(lipgloss.Left, title, subtitle, progress)
}

// renderSnake draws the board centered in the space the viewport would use,
// with any flag announcement below it.
func (m Model) renderSnake() string {
	board := m.theme.Board.Render(strings.Join(m.board, "\n"))
	if len(m.notices) > 0 {
		board = lipgloss.JoinVertical(lipgloss.Left, board, strings.Join(m.theme.Lines(m.notices), "\n"))
	}
	return lipgloss.Place(m.width, max(m.height-chromeHeight+1, 1), lipgloss.Center, lipgloss.Center, board)
}

// renderStatus draws the bottom bar with context-appropriate key hints.
func (m Model) renderStatus() string {
	hints := "tab complete • ↑/↓ history • pgup/pgdn scroll • ctrl+l clear • ctrl+d exit"
	if m.inSnake {
		hints = "←↑↓→ / wasd / hjkl move • r restart • q quit"
	}
	return m.theme.StatusBar.Width(max(m.width, 1)).Render(hints)
}
