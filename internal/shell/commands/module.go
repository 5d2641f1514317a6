// Package commands provides every built-in command of the PurbayanOS shell.
//
// Commands are organized by category, one file each:
//
//   - Filesystem: ls, cd, cat, pwd, tree, grep, find, head, tail, wc, file
//   - System: whoami, hostname, uname, date, uptime, clear, echo, env, which,
//     type, export, neofetch
//   - Meta: help, history, man, exit, open, sudo, rm, vim, nano, emacs, theme,
//     flags, sound, credits
//   - Network: ssh, ping, curl, wget, telnet
//   - Fun: cowsay, fortune, figlet, sl, lolcat, rickroll, matrix, snake,
//     coffee, hack
//
// Commands only read the filesystem and the shell.Context they are given.
// Session-scoped state that is not part of the context (the `cd -` slot, the
// random source, the session start time) lives on Module.
package commands

import (
	"math/rand"
	"time"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// Module owns the command set for one shell session.
type Module struct {
	root    *vfs.Node
	reg     *shell.Registry // set by Register; help, man and which read it
	rng     *rand.Rand
	now     func() time.Time
	started time.Time
	prevDir string // single-slot OLDPWD for `cd -`
}

// Option configures a Module.
type Option func(*Module)

// WithRoot replaces the filesystem tree.
func WithRoot(root *vfs.Node) Option {
	return func(m *Module) { m.root = root }
}

// WithRand sets the random source used by ping, matrix, hints and friends.
func WithRand(rng *rand.Rand) Option {
	return func(m *Module) { m.rng = rng }
}

// WithClock sets the clock used by date and uptime.
func WithClock(now func() time.Time) Option {
	return func(m *Module) { m.now = now }
}

// NewModule creates a command module over the shared filesystem tree.
func NewModule(opts ...Option) *Module {
	m := &Module{
		root: vfs.Root(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(m.now().UnixNano()))
	}
	m.started = m.now()
	return m
}

// Reset clears session state: the previous directory and the uptime clock.
func (m *Module) Reset() {
	m.prevDir = ""
	m.started = m.now()
}

// Root returns the filesystem tree the commands operate on.
func (m *Module) Root() *vfs.Node {
	return m.root
}

// Commands returns every command this module provides.
func (m *Module) Commands() []shell.Entry {
	return []shell.Entry{
		// Filesystem commands (fs.go)
		m.LsCmd(),
		m.CdCmd(),
		m.CatCmd(),
		m.PwdCmd(),
		m.TreeCmd(),
		m.GrepCmd(),
		m.FindCmd(),
		m.HeadCmd(),
		m.TailCmd(),
		m.WcCmd(),
		m.FileCmd(),

		// System commands (system.go)
		m.WhoamiCmd(),
		m.HostnameCmd(),
		m.UnameCmd(),
		m.DateCmd(),
		m.UptimeCmd(),
		m.ClearCmd(),
		m.EchoCmd(),
		m.EnvCmd(),
		m.WhichCmd(),
		m.TypeCmd(),
		m.ExportCmd(),
		m.NeofetchCmd(),

		// Meta commands (meta.go)
		m.HelpCmd(),
		m.HistoryCmd(),
		m.ManCmd(),
		m.ExitCmd(),
		m.OpenCmd(),
		m.SudoCmd(),
		m.RmCmd(),
		m.EditorCmd("vim"),
		m.EditorCmd("nano"),
		m.EditorCmd("emacs"),
		m.ThemeCmd(),
		m.FlagsCmd(),
		m.SoundCmd(),
		m.CreditsCmd(),

		// Network commands (network.go)
		m.SshCmd(),
		m.PingCmd(),
		m.CurlCmd(),
		m.WgetCmd(),
		m.TelnetCmd(),

		// Fun commands (fun.go)
		m.CowsayCmd(),
		m.FortuneCmd(),
		m.FigletCmd(),
		m.SlCmd(),
		m.LolcatCmd(),
		m.RickrollCmd(),
		m.MatrixCmd(),
		m.SnakeCmd(),
		m.CoffeeCmd(),
		m.HackCmd(),
	}
}

// aliases maps an alias to the command whose handler it shares.
var aliases = map[string]string{
	"cmatrix":  "matrix",
	"xdg-open": "open",
	"printenv": "env",
	"logout":   "exit",
}

// Register adds every command and alias to reg, and remembers reg for the
// commands that describe other commands.
func (m *Module) Register(reg *shell.Registry) {
	m.reg = reg
	for _, e := range m.Commands() {
		reg.Register(e.Name, e.Handler, e.Description, e.Usage)
	}
	for alias, target := range aliases {
		if e, ok := reg.Lookup(target); ok {
			reg.Register(alias, e.Handler, e.Description, e.Usage)
		}
	}
}

// BuildRegistry returns a registry holding every command of a new module.
func BuildRegistry(opts ...Option) (*shell.Registry, *Module) {
	m := NewModule(opts...)
	reg := shell.NewRegistry()
	m.Register(reg)
	return reg, m
}
