// Package terminal ties the shell core to a host.
//
// A Session owns one command registry, one command module and the state
// store. Hosts (the TUI, the line-mode REPL, the one-shot exec mode) feed it
// input lines and apply the side effects of the Results it returns.
package terminal

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PPRAMANIK62/purbayanos/internal/flags"
	"github.com/PPRAMANIK62/purbayanos/internal/logging"
	"github.com/PPRAMANIK62/purbayanos/internal/metrics"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/shell/commands"
	"github.com/PPRAMANIK62/purbayanos/internal/snake"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// Session is one interactive terminal session.
type Session struct {
	ID string

	reg   *shell.Registry
	mod   *commands.Module
	store *state.Store
	log   *zap.Logger

	mu  sync.Mutex // guards rng; snake callbacks use it from the ticker goroutine
	rng *rand.Rand

	snakeOpts []snake.Option
}

// Option configures a Session.
type Option func(*sessionConfig)

type sessionConfig struct {
	rng       *rand.Rand
	modOpts   []commands.Option
	snakeOpts []snake.Option
}

// WithRand seeds both the session and its commands from rng.
func WithRand(rng *rand.Rand) Option {
	return func(c *sessionConfig) {
		c.rng = rng
		c.modOpts = append(c.modOpts, commands.WithRand(rand.New(rand.NewSource(rng.Int63()))))
	}
}

// WithCommandOptions passes options through to the command module.
func WithCommandOptions(opts ...commands.Option) Option {
	return func(c *sessionConfig) {
		c.modOpts = append(c.modOpts, opts...)
	}
}

// WithSnakeOptions applies opts to every engine NewSnake creates.
func WithSnakeOptions(opts ...snake.Option) Option {
	return func(c *sessionConfig) {
		c.snakeOpts = append(c.snakeOpts, opts...)
	}
}

// New creates a session over store.
func New(store *state.Store, opts ...Option) *Session {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	reg, mod := commands.BuildRegistry(cfg.modOpts...)
	id := uuid.NewString()
	s := &Session{
		ID:    id,
		reg:   reg,
		mod:   mod,
		store: store,
		rng:   cfg.rng,
		log:   logging.L().With(logging.String("session", id)),

		snakeOpts: cfg.snakeOpts,
	}
	s.log.Info("session started",
		logging.Int("commands", reg.Len()),
		logging.String("cwd", store.Cwd()),
		logging.Ints("flags", store.FoundFlags()))
	return s
}

// Registry returns the session's command registry.
func (s *Session) Registry() *shell.Registry {
	return s.reg
}

// Store returns the session's state store.
func (s *Session) Store() *state.Store {
	return s.store
}

// Execute runs one input line.
//
// Non-empty input is appended to history before it runs, so `history` lists
// itself. After the command, its output is scanned for flag tokens; newly
// found flags are captured in the store and the celebration lines are
// appended after the command's own output.
func (s *Session) Execute(line string) shell.Result {
	if strings.TrimSpace(line) != "" {
		s.store.AddHistory(line)
	}

	res := shell.Dispatch(s.reg, line, s.store)

	s.mu.Lock()
	det := flags.Detect(res.Lines, s.store.FoundFlags(), s.rng)
	s.mu.Unlock()

	for _, n := range det.New {
		s.store.CaptureFlag(n)
		metrics.RecordFlag(n)
		s.log.Info("flag captured", logging.Int("flag", n), logging.String("input", line))
	}
	res.Lines = append(res.Lines, det.Lines...)
	return res
}

// AwardSnakeFlag captures the Snake flag. It returns the celebration lines,
// or nil if the flag was already found in an earlier game.
func (s *Session) AwardSnakeFlag() []shell.Line {
	if s.store.HasFlag(flags.Snake) {
		return nil
	}
	s.store.CaptureFlag(flags.Snake)
	metrics.RecordFlag(flags.Snake)
	s.log.Info("flag captured", logging.Int("flag", flags.Snake), logging.String("input", "snake"))

	found := s.store.FoundFlags()
	have := make(map[int]bool, len(found))
	for _, f := range found {
		have[f] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	lines := flags.Celebrate(flags.Snake, len(have))
	return append(lines, flags.Followup(have, s.rng)...)
}

// SnakeHost receives Snake events once the session has recorded them. Both
// callbacks run on the engine's ticker goroutine.
type SnakeHost struct {
	Frame  func(rows []string)
	Notice func(lines []shell.Line)
}

// NewSnake creates a Snake engine wired to the session: reaching the score
// threshold awards the Snake flag, and game over updates the high score.
func (s *Session) NewSnake(host SnakeHost, opts ...snake.Option) *snake.Engine {
	all := []snake.Option{
		snake.WithHighScore(s.store.HighScore()),
		snake.WithThreshold(flags.SnakeThreshold),
	}
	all = append(all, s.snakeOpts...)
	eng := snake.New(append(all, opts...)...)

	eng.OnFrame = host.Frame
	eng.OnEat = func(score int) {
		s.log.Debug("snake ate", logging.Int("score", score))
	}
	eng.OnFlag = func() {
		lines := s.AwardSnakeFlag()
		if lines != nil && host.Notice != nil {
			host.Notice(lines)
		}
	}
	eng.OnGameOver = func(score, high int) {
		s.store.UpdateHighScore(high)
		metrics.RecordSnakeGame(score, high)
		s.log.Info("snake game over", logging.Int("score", score), logging.Int("high_score", high))
	}
	return eng
}

// Prompt returns the prompt for the current directory.
func (s *Session) Prompt() string {
	return commands.Prompt(s.store.Cwd())
}

// Complete computes tab completion for a partial line.
func (s *Session) Complete(line string) shell.Completion {
	return shell.Complete(s.reg, s.mod.Root(), s.store.Cwd(), line)
}

// Completer returns a readline completer bound to this session.
func (s *Session) Completer() *shell.Completer {
	return shell.NewCompleter(s.reg, s.mod.Root(), s.store.Cwd)
}

// Welcome returns the banner shown when a session opens.
func (s *Session) Welcome() []shell.Line {
	var out []shell.Line
	if motd, ok := vfs.Lookup(s.mod.Root(), "/etc/motd"); ok {
		for _, l := range strings.Split(strings.TrimSuffix(motd.Content(), "\n"), "\n") {
			out = append(out, shell.Info(l))
		}
	}
	return append(out, shell.Muted("Type 'help' to get started."), shell.Plain(""))
}

// Reset clears session-scoped command state.
func (s *Session) Reset() {
	s.mod.Reset()
}

// Save persists the store.
func (s *Session) Save() error {
	if err := s.store.Save(); err != nil {
		s.log.Error("save state failed", logging.Err(err))
		return err
	}
	return nil
}
