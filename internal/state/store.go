// Package state holds the persisted session state of the PurbayanOS terminal.
//
// The shell core only sees this through the shell.Context interface. The Store
// keeps the values in memory behind a RWMutex and writes them to a YAML file
// (~/.purbayanos.yaml by default) when the host calls Save.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// DefaultHistoryLimit is how many history entries are kept.
const DefaultHistoryLimit = 100

// DefaultTheme is the theme of a fresh session.
const DefaultTheme = "default"

// Data is the YAML file structure.
type Data struct {
	Cwd       string   `yaml:"cwd"`
	History   []string `yaml:"history,omitempty"`
	Flags     []int    `yaml:"flags,omitempty"`
	Sound     bool     `yaml:"sound"`
	Theme     string   `yaml:"theme"`
	HighScore int      `yaml:"snake_high_score"`
}

// Defaults returns the state of a brand-new visitor.
func Defaults() Data {
	return Data{
		Cwd:   vfs.HomePath,
		Theme: DefaultTheme,
	}
}

// Store is the host-side implementation of shell.Context.
type Store struct {
	mu           sync.RWMutex
	data         Data
	path         string // empty for in-memory stores
	historyLimit int
	dirty        bool
}

var _ shell.Context = (*Store)(nil)

// NewMemory creates a store that is never written to disk.
func NewMemory() *Store {
	return &Store{data: Defaults(), historyLimit: DefaultHistoryLimit}
}

// DefaultPath returns ~/.purbayanos.yaml (consistent with ~/.purbayanos_history).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".purbayanos.yaml"), nil
}

// Load reads the state file at path. A missing file yields defaults (first
// run). Values that no longer make sense, like a cwd that isn't a directory,
// are replaced with defaults.
func Load(path string, historyLimit int) (*Store, error) {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	s := &Store{data: Defaults(), path: path, historyLimit: historyLimit}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read state %s: %w", path, err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return s, fmt.Errorf("parse state %s: %w", path, err)
	}
	s.data = sanitize(data, historyLimit)
	return s, nil
}

func sanitize(d Data, historyLimit int) Data {
	if node, ok := vfs.Lookup(vfs.Root(), vfs.ResolvePath("/", d.Cwd)); !ok || !node.IsDir() {
		d.Cwd = vfs.HomePath
	} else {
		d.Cwd = vfs.ResolvePath("/", d.Cwd)
	}
	if d.Theme == "" {
		d.Theme = DefaultTheme
	}
	if d.HighScore < 0 {
		d.HighScore = 0
	}
	if len(d.History) > historyLimit {
		d.History = d.History[len(d.History)-historyLimit:]
	}
	d.Flags = normalizeFlags(d.Flags)
	return d
}

// normalizeFlags drops out-of-range values and duplicates and sorts the rest.
func normalizeFlags(flags []int) []int {
	seen := make(map[int]bool, len(flags))
	out := make([]int, 0, len(flags))
	for _, f := range flags {
		if f < 1 || f > 7 || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

// Save writes the state to disk if it changed since the last save.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || !s.dirty {
		return nil
	}

	raw, err := yaml.Marshal(&s.data)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("write state %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

// Remove deletes the state file at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Detach turns the store into an in-memory one. What was loaded stays; Save
// becomes a no-op.
func (s *Store) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = ""
}

// Path returns the backing file, or "" for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d := s.data
	d.History = append([]string(nil), s.data.History...)
	d.Flags = append([]int(nil), s.data.Flags...)
	return d
}

// Cwd returns the current directory
func (s *Store) Cwd() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Cwd
}

// SetCwd sets the current directory
func (s *Store) SetCwd(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Cwd = path
	s.dirty = true
}

// FoundFlags returns the captured flag numbers in ascending order.
func (s *Store) FoundFlags() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.data.Flags...)
}

// HasFlag reports whether flag n was captured.
func (s *Store) HasFlag(n int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.data.Flags {
		if f == n {
			return true
		}
	}
	return false
}

// CaptureFlag records flag n. Capturing a flag twice is a no-op.
func (s *Store) CaptureFlag(n int) {
	if n < 1 || n > 7 || s.HasFlag(n) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Flags = normalizeFlags(append(s.data.Flags, n))
	s.dirty = true
}

// History returns the command history, oldest first.
func (s *Store) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.data.History...)
}

// AddHistory appends a line, dropping the oldest entries beyond the limit.
func (s *Store) AddHistory(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.History = append(s.data.History, line)
	if over := len(s.data.History) - s.historyLimit; over > 0 {
		s.data.History = append([]string(nil), s.data.History[over:]...)
	}
	s.dirty = true
}

// SoundEnabled reports whether sound effects are on.
func (s *Store) SoundEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Sound
}

// ToggleSound flips the sound setting and returns the new value.
func (s *Store) ToggleSound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Sound = !s.data.Sound
	s.dirty = true
	return s.data.Sound
}

// Theme returns the active theme name.
func (s *Store) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Theme
}

// SetTheme sets the active theme. Validation is the theme command's job.
func (s *Store) SetTheme(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Theme = name
	s.dirty = true
}

// HighScore returns the best snake score.
func (s *Store) HighScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.HighScore
}

// UpdateHighScore stores score if it beats the current best.
func (s *Store) UpdateHighScore(score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score > s.data.HighScore {
		s.data.HighScore = score
		s.dirty = true
	}
}
