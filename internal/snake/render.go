package snake

import (
	"fmt"
	"strings"
)

// Cell glyphs. Every cell is two columns wide so the board looks square.
const (
	cellEmpty = "  "
	cellBody  = "██"
	cellHead  = "▓▓"
	cellFood  = "<>"
)

// Render draws the board inside a box, followed by a score row and, once the
// game has ended, a game-over row.
func Render(s State) []string {
	grid := make([][]string, s.Height)
	for y := range grid {
		grid[y] = make([]string, s.Width)
		for x := range grid[y] {
			grid[y][x] = cellEmpty
		}
	}
	if s.HasFood && inBounds(s, s.Food) {
		grid[s.Food.Y][s.Food.X] = cellFood
	}
	for i, p := range s.Body {
		if !inBounds(s, p) {
			continue
		}
		if i == 0 {
			grid[p.Y][p.X] = cellHead
		} else {
			grid[p.Y][p.X] = cellBody
		}
	}

	bar := strings.Repeat("─", s.Width*len([]rune(cellEmpty)))
	rows := make([]string, 0, s.Height+4)
	rows = append(rows, "┌"+bar+"┐")
	for _, row := range grid {
		rows = append(rows, "│"+strings.Join(row, "")+"│")
	}
	rows = append(rows, "└"+bar+"┘")
	rows = append(rows, fmt.Sprintf(" Score: %d  High: %d", s.Score, s.HighScore))
	if s.Phase == GameOver {
		rows = append(rows, " GAME OVER  (r to restart, q to quit)")
	}
	return rows
}

func inBounds(s State, p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}
