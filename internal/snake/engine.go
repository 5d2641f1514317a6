package snake

import (
	"math/rand"
	"sync"
	"time"
)

// KeyAction is what the host should do after a key press.
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyHandled
	KeyQuit
)

// Engine runs one game at a time on a ticker goroutine.
//
// Callbacks run on the ticker goroutine (or on the caller's goroutine for
// Start and Advance) with the engine lock released, so they may call back
// into the engine.
type Engine struct {
	mu        sync.Mutex
	state     State
	rng       *rand.Rand
	width     int
	height    int
	interval  time.Duration
	threshold int
	highScore int

	gen  int           // bumped on every Start and Stop
	stop chan struct{} // non-nil while a ticker goroutine is live

	OnFrame    func(rows []string)
	OnFlag     func()
	OnEat      func(score int)
	OnGameOver func(score, high int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithGrid sets the board size.
func WithGrid(width, height int) Option {
	return func(e *Engine) {
		e.width, e.height = width, height
	}
}

// WithInterval sets the tick interval.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

// WithThreshold sets the score that fires OnFlag. Zero disables it.
func WithThreshold(n int) Option {
	return func(e *Engine) { e.threshold = n }
}

// WithHighScore seeds the high score, usually from persisted state.
func WithHighScore(n int) Option {
	return func(e *Engine) { e.highScore = n }
}

// WithRand sets the random source used for food placement.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// New creates an idle engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		width:    DefaultWidth,
		height:   DefaultHeight,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.state = State{Width: e.width, Height: e.height, HighScore: e.highScore, Phase: Idle}
	return e
}

// Start begins a new game and its ticker. Any running ticker is cancelled
// first, so at most one is ever live. The threshold guard is reset, so each
// game can fire OnFlag once.
func (e *Engine) Start() {
	e.mu.Lock()
	e.reset()
	e.stopTicker()
	e.gen++
	gen := e.gen
	stop := make(chan struct{})
	e.stop = stop
	rows := Render(e.state)
	e.mu.Unlock()

	go e.run(gen, stop)
	e.emitFrame(rows)
}

// Reset begins a new game without a ticker. The caller drives it with
// Advance.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.reset()
	e.stopTicker()
	e.gen++
	rows := Render(e.state)
	e.mu.Unlock()

	e.emitFrame(rows)
}

func (e *Engine) reset() {
	if e.state.HighScore > e.highScore {
		e.highScore = e.state.HighScore
	}
	e.state = NewState(e.width, e.height, e.highScore, e.threshold, e.rng)
}

// Stop cancels the ticker. It is safe to call at any time, more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	e.stopTicker()
	e.gen++
	e.mu.Unlock()
}

func (e *Engine) stopTicker() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}

func (e *Engine) run(gen int, stop <-chan struct{}) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.tick(gen) {
				return
			}
		}
	}
}

// Advance steps the current game by one tick.
func (e *Engine) Advance() {
	e.mu.Lock()
	e.tickLocked()
}

// tick steps the game if gen still owns the engine. It reports whether the
// ticker should keep going.
func (e *Engine) tick(gen int) bool {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return false
	}
	return e.tickLocked()
}

// tickLocked must be called with mu held; it releases it before running
// callbacks.
func (e *Engine) tickLocked() bool {
	var ev Events
	e.state, ev = e.state.Step(e.rng)
	st := e.state
	if ev.Died {
		e.stopTicker()
		e.gen++
		if st.HighScore > e.highScore {
			e.highScore = st.HighScore
		}
	}
	rows := Render(st)
	e.mu.Unlock()

	if ev.Ate && e.OnEat != nil {
		e.OnEat(st.Score)
	}
	if ev.Threshold && e.OnFlag != nil {
		e.OnFlag()
	}
	if ev.Died && e.OnGameOver != nil {
		e.OnGameOver(st.Score, st.HighScore)
	}
	e.emitFrame(rows)
	return !ev.Died && st.Phase == Running
}

func (e *Engine) emitFrame(rows []string) {
	if e.OnFrame != nil {
		e.OnFrame(rows)
	}
}

// Turn queues a heading change for the next tick. Reversals are rejected.
func (e *Engine) Turn(d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Phase != Running {
		return false
	}
	var ok bool
	e.state, ok = e.state.Turn(d)
	return ok
}

// HandleKey maps a key name (as bubbletea reports it) to a game action:
// arrows, wasd and hjkl steer, q or esc quits, r restarts after game over.
func (e *Engine) HandleKey(key string) KeyAction {
	switch key {
	case "up", "w", "k":
		e.Turn(Up)
	case "down", "s", "j":
		e.Turn(Down)
	case "left", "a", "h":
		e.Turn(Left)
	case "right", "d", "l":
		e.Turn(Right)
	case "q", "esc", "ctrl+c":
		e.Stop()
		return KeyQuit
	case "r":
		if e.Phase() != GameOver {
			return KeyNone
		}
		e.Start()
	default:
		return KeyNone
	}
	return KeyHandled
}

// Score returns the current game's score.
func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Score
}

// HighScore returns the best score seen by this engine.
func (e *Engine) HighScore() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.HighScore > e.highScore {
		return e.state.HighScore
	}
	return e.highScore
}

// Phase returns the current game phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Phase
}

// State returns a copy of the current game state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := e.state
	st.Body = append([]Point(nil), e.state.Body...)
	return st
}

// Frame renders the current state.
func (e *Engine) Frame() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Render(e.state)
}
