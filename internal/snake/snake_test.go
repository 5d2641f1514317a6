package snake

import (
	"math/rand"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(7))
}

func TestNewState(t *testing.T) {
	s := NewState(DefaultWidth, DefaultHeight, 5, 10, newRand())

	require.Len(t, s.Body, 3)
	assert.Equal(t, Point{10, 7}, s.Head())
	assert.Equal(t, Running, s.Phase)
	assert.Equal(t, 5, s.HighScore)
	assert.True(t, s.HasFood)
	assert.NotContains(t, s.Body, s.Food)
}

func TestStep_MovesStraight(t *testing.T) {
	s := NewState(20, 15, 0, 0, newRand())
	s.Food = Point{0, 0}

	next, ev := s.Step(newRand())
	assert.Equal(t, Events{}, ev)
	assert.Equal(t, Point{11, 7}, next.Head())
	assert.Len(t, next.Body, 3)
	assert.Equal(t, Point{9, 7}, next.Body[2])

	// receiver untouched
	assert.Equal(t, Point{10, 7}, s.Head())
}

func TestStep_EatGrowsByOne(t *testing.T) {
	s := NewState(20, 15, 0, 0, newRand())
	s.Food = Point{11, 7}

	next, ev := s.Step(newRand())
	assert.True(t, ev.Ate)
	assert.Equal(t, 1, next.Score)
	assert.Equal(t, 1, next.HighScore)
	assert.Len(t, next.Body, 4)
	assert.NotContains(t, next.Body, next.Food)
}

func TestStep_WallCollision(t *testing.T) {
	s := State{
		Width: 5, Height: 5,
		Body:  []Point{{4, 2}, {3, 2}, {2, 2}},
		Dir:   Right, Next: Right,
		Food:  Point{0, 0}, HasFood: true,
		Score: 3, HighScore: 2,
		Phase: Running,
	}

	next, ev := s.Step(newRand())
	assert.True(t, ev.Died)
	assert.Equal(t, GameOver, next.Phase)
	assert.Equal(t, 3, next.Score)
	assert.Equal(t, 3, next.HighScore)

	// a finished game does not move
	again, ev := next.Step(newRand())
	assert.Equal(t, Events{}, ev)
	assert.Equal(t, next.Body, again.Body)
}

func TestStep_SelfCollision(t *testing.T) {
	// head at (2,1) turning down into its own body at (2,2)
	s := State{
		Width: 6, Height: 6,
		Body:  []Point{{2, 1}, {1, 1}, {1, 2}, {2, 2}, {3, 2}},
		Dir:   Right, Next: Down,
		Food:  Point{5, 5}, HasFood: true,
		Phase: Running,
	}

	next, ev := s.Step(newRand())
	assert.True(t, ev.Died)
	assert.Equal(t, GameOver, next.Phase)
}

func TestStep_TailCellIsFreeUnlessEating(t *testing.T) {
	// a tight loop: moving left puts the head on the current tail cell
	loop := func() State {
		return State{
			Width: 4, Height: 4,
			Body:  []Point{{1, 0}, {1, 1}, {0, 1}, {0, 0}},
			Dir:   Up, Next: Left,
			Food:  Point{3, 3}, HasFood: true,
			Phase: Running,
		}
	}

	next, ev := loop().Step(newRand())
	assert.False(t, ev.Died)
	assert.Equal(t, Point{0, 0}, next.Head())

	eating := loop()
	eating.Food = Point{0, 0}
	next, ev = eating.Step(newRand())
	assert.True(t, ev.Died)
	assert.Equal(t, GameOver, next.Phase)
}

func TestStep_ThresholdFiresOnce(t *testing.T) {
	s := NewState(20, 15, 0, 2, newRand())
	s.Score = 1
	s.Food = Point{11, 7}

	s, ev := s.Step(newRand())
	assert.True(t, ev.Threshold)
	assert.True(t, s.ThresholdHit)

	s.Food = Point{12, 7}
	s, ev = s.Step(newRand())
	assert.True(t, ev.Ate)
	assert.False(t, ev.Threshold)
	assert.Equal(t, 3, s.Score)
}

func TestTurn(t *testing.T) {
	s := NewState(20, 15, 0, 0, newRand())

	_, ok := s.Turn(Left)
	assert.False(t, ok, "reversal")

	// two turns in one tick must not fold the snake back on itself
	s, ok = s.Turn(Up)
	assert.True(t, ok)
	s, ok = s.Turn(Left)
	assert.False(t, ok)
	assert.Equal(t, Up, s.Next)

	s, _ = s.Step(newRand())
	assert.Equal(t, Up, s.Dir)
	_, ok = s.Turn(Left)
	assert.True(t, ok)
}

func TestRender(t *testing.T) {
	s := NewState(4, 3, 9, 0, newRand())
	rows := Render(s)

	require.Len(t, rows, 3+3)
	assert.Equal(t, "┌"+strings.Repeat("─", 8)+"┐", rows[0])
	assert.Equal(t, " Score: 0  High: 9", rows[len(rows)-1])
	assert.Contains(t, strings.Join(rows, "\n"), cellHead)

	s.Phase = GameOver
	rows = Render(s)
	assert.Contains(t, rows[len(rows)-1], "GAME OVER")
}

func TestEngine_Callbacks(t *testing.T) {
	var flagsFired, eaten int
	var frames int
	e := New(WithThreshold(1), WithRand(newRand()))
	e.OnFlag = func() { flagsFired++ }
	e.OnEat = func(score int) { eaten = score }
	e.OnFrame = func([]string) { frames++ }

	e.Reset()
	assert.Equal(t, 1, frames)
	assert.Equal(t, Running, e.Phase())

	e.mu.Lock()
	e.state.Food = Point{11, 7}
	e.mu.Unlock()
	e.Advance()
	assert.Equal(t, 1, e.Score())
	assert.Equal(t, 1, eaten)
	assert.Equal(t, 1, flagsFired)

	e.mu.Lock()
	e.state.Food = Point{12, 7}
	e.mu.Unlock()
	e.Advance()
	assert.Equal(t, 2, e.Score())
	assert.Equal(t, 1, flagsFired, "guard holds within a game")

	// a new game re-arms the guard and keeps the high score
	e.Reset()
	assert.Equal(t, 0, e.Score())
	assert.Equal(t, 2, e.HighScore())
	e.mu.Lock()
	e.state.Food = Point{11, 7}
	e.mu.Unlock()
	e.Advance()
	assert.Equal(t, 2, flagsFired)
}

func TestEngine_GameOver(t *testing.T) {
	var over int32
	var final int32
	e := New(WithRand(newRand()), WithInterval(time.Millisecond), WithHighScore(50))
	e.OnGameOver = func(score, high int) {
		atomic.AddInt32(&over, 1)
		atomic.StoreInt32(&final, int32(high))
	}

	e.Start()
	require.Eventually(t, func() bool {
		return e.Phase() == GameOver
	}, 2*time.Second, 5*time.Millisecond)

	// the ticker is gone: no further game-over reports
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&over))
	assert.Equal(t, int32(50), atomic.LoadInt32(&final))
	assert.Equal(t, KeyQuit, e.HandleKey("q"))
	e.Stop()
}

func TestEngine_HandleKey(t *testing.T) {
	e := New(WithRand(newRand()))
	e.Reset()

	assert.Equal(t, KeyHandled, e.HandleKey("up"))
	assert.Equal(t, Up, e.State().Next)
	assert.Equal(t, KeyHandled, e.HandleKey("a"))
	assert.Equal(t, Up, e.State().Next, "left is a reversal of the current heading")
	assert.Equal(t, KeyNone, e.HandleKey("r"), "restart only after game over")
	assert.Equal(t, KeyNone, e.HandleKey("x"))
	assert.Equal(t, KeyQuit, e.HandleKey("esc"))
}

func TestEngine_StopIsIdempotent(t *testing.T) {
	e := New(WithInterval(time.Hour))
	e.Start()
	e.Start()
	assert.NotPanics(t, func() {
		e.Stop()
		e.Stop()
	})
}
