// Package snake implements the Snake game played inside the terminal.
//
// The game is split in two layers:
//   - State.Step: a pure transition from one tick to the next (state.go)
//   - Engine: a timer harness that drives Step and reports through callbacks
//     (engine.go)
//
// Rendering (render.go) is a pure function of State to text rows, so the
// engine has no idea how or where it is displayed.
package snake

import (
	"math/rand"
	"time"
)

// Default board and pacing.
const (
	DefaultWidth    = 20
	DefaultHeight   = 15
	DefaultInterval = 120 * time.Millisecond
	initialLength   = 3
)

// Point is a grid cell. X grows right, Y grows down.
type Point struct {
	X, Y int
}

// Direction is a heading on the grid.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Right:
		return Left
	case Left:
		return Right
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) delta() Point {
	switch d {
	case Right:
		return Point{1, 0}
	case Left:
		return Point{-1, 0}
	case Up:
		return Point{0, -1}
	default:
		return Point{0, 1}
	}
}

// Phase is the game's lifecycle state.
type Phase int

const (
	Idle Phase = iota
	Running
	GameOver
)

// String returns a human-readable phase name
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is one snapshot of the game. Step never modifies its receiver.
type State struct {
	Width, Height int
	Body          []Point   // head first
	Dir           Direction // heading applied on the last tick
	Next          Direction // heading to apply on the next tick
	Food          Point
	HasFood       bool // false only when the snake fills the board
	Score         int
	HighScore     int
	Threshold     int  // score that fires Events.Threshold; 0 disables it
	ThresholdHit  bool // fired-once guard for this game
	Phase         Phase
}

// Events reports what happened during one Step.
type Events struct {
	Ate       bool
	Died      bool
	Threshold bool
}

// NewState creates a running game: a snake of length 3 in the middle of the
// board heading right, food on a random free cell.
func NewState(width, height, highScore, threshold int, rng *rand.Rand) State {
	head := Point{width / 2, height / 2}
	body := make([]Point, 0, initialLength)
	for i := 0; i < initialLength; i++ {
		body = append(body, Point{head.X - i, head.Y})
	}
	s := State{
		Width:     width,
		Height:    height,
		Body:      body,
		Dir:       Right,
		Next:      Right,
		HighScore: highScore,
		Threshold: threshold,
		Phase:     Running,
	}
	s.Food, s.HasFood = placeFood(s.Body, width, height, rng)
	return s
}

// Head returns the snake's head cell.
func (s State) Head() Point {
	return s.Body[0]
}

// Turn returns a copy heading d on the next tick. A turn that would reverse
// the current heading is rejected and reported false.
func (s State) Turn(d Direction) (State, bool) {
	if d == s.Dir.Opposite() {
		return s, false
	}
	s.Next = d
	return s, true
}

// Step advances the game by one tick.
//
// The new head is checked first against the walls, then against the body.
// On a tick where the snake does not eat, its tail cell is excluded from the
// body check because the tail moves out of that cell on the same tick.
// Collisions end the game without changing the score.
func (s State) Step(rng *rand.Rand) (State, Events) {
	var ev Events
	if s.Phase != Running {
		return s, ev
	}

	s.Dir = s.Next
	d := s.Dir.delta()
	head := Point{s.Body[0].X + d.X, s.Body[0].Y + d.Y}
	eating := s.HasFood && head == s.Food

	if head.X < 0 || head.X >= s.Width || head.Y < 0 || head.Y >= s.Height || s.hitsBody(head, eating) {
		s.Phase = GameOver
		if s.Score > s.HighScore {
			s.HighScore = s.Score
		}
		ev.Died = true
		return s, ev
	}

	body := make([]Point, 0, len(s.Body)+1)
	body = append(body, head)
	if eating {
		body = append(body, s.Body...)
	} else {
		body = append(body, s.Body[:len(s.Body)-1]...)
	}
	s.Body = body

	if eating {
		ev.Ate = true
		s.Score++
		if s.Score > s.HighScore {
			s.HighScore = s.Score
		}
		s.Food, s.HasFood = placeFood(s.Body, s.Width, s.Height, rng)
		if s.Threshold > 0 && !s.ThresholdHit && s.Score >= s.Threshold {
			s.ThresholdHit = true
			ev.Threshold = true
		}
	}
	return s, ev
}

func (s State) hitsBody(p Point, eating bool) bool {
	body := s.Body
	if !eating {
		body = body[:len(body)-1]
	}
	for _, c := range body {
		if c == p {
			return true
		}
	}
	return false
}

// placeFood picks a uniformly random cell not covered by body. It reports
// false when the board is full.
func placeFood(body []Point, width, height int, rng *rand.Rand) (Point, bool) {
	occupied := make(map[Point]bool, len(body))
	for _, p := range body {
		occupied[p] = true
	}
	free := make([]Point, 0, width*height-len(body))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if p := (Point{x, y}); !occupied[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return Point{}, false
	}
	return free[rng.Intn(len(free))], true
}
