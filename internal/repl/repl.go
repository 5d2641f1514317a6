// Package repl provides the readline-based line-mode shell.
//
// It is the plain-terminal counterpart of the TUI: same session, same
// commands, but output is written straight to the terminal. It offers:
//   - Command history (persisted to ~/.purbayanos_history)
//   - Tab completion for command names and virtual paths
//   - A prompt that follows cd
//
// Snake needs a full screen, so `snake` hands the terminal to the TUI until
// the game is over and then returns to the prompt.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/PPRAMANIK62/purbayanos/internal/logging"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/terminal"
	"github.com/PPRAMANIK62/purbayanos/internal/ui/theme"
)

// clearScreen homes the cursor and erases the display.
const clearScreen = "\033[H\033[2J"

// Options configures the REPL.
type Options struct {
	HistoryFile  string
	HistoryLimit int
	AutoSave     bool

	// PlaySnake runs a game in full-screen mode. Nil prints a notice instead.
	PlaySnake func(*terminal.Session) error

	Stdin  io.ReadCloser
	Stdout io.Writer
}

// Run runs the REPL until the user exits (via 'exit' or Ctrl+D).
func Run(session *terminal.Session, opts Options) error {
	rl, err := newReadline(session, opts)
	if err != nil {
		return err
	}
	defer func() { rl.Close() }()

	out := rl.Stdout()
	th := theme.Get(session.Store().Theme())
	Print(out, th, session.Welcome(), true)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		res := session.Execute(line)
		th = theme.Get(session.Store().Theme())

		if res.ClearScreen {
			fmt.Fprint(out, clearScreen)
		}
		Print(out, th, res.Lines, true)
		if session.Store().SoundEnabled() && res.HasError() {
			fmt.Fprint(out, "\a")
		}
		if res.OpenURL != "" {
			Print(out, th, []shell.Line{shell.Muted("→ " + res.OpenURL)}, true)
		}
		if opts.AutoSave {
			_ = session.Save()
		}
		if res.Exit {
			break
		}
		if res.StartGame == shell.GameSnake {
			// readline keeps reading stdin in the background, so it has to
			// let go of the terminal while the game owns it.
			rl.Close()
			playSnake(session, opts, out, th)
			if rl, err = newReadline(session, opts); err != nil {
				return err
			}
			out = rl.Stdout()
		}
		rl.SetPrompt(styledPrompt(session))
	}

	if err := session.Save(); err != nil {
		logging.Warn("state not saved on exit", logging.Err(err))
	}
	return nil
}

func newReadline(session *terminal.Session, opts Options) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            styledPrompt(session),
		HistoryFile:       opts.HistoryFile,
		HistoryLimit:      opts.HistoryLimit,
		AutoComplete:      session.Completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "logout",
		HistorySearchFold: true,
		Stdin:             opts.Stdin,
		Stdout:            opts.Stdout,
	})
	if err != nil {
		return nil, fmt.Errorf("create readline: %w", err)
	}
	return rl, nil
}

func playSnake(session *terminal.Session, opts Options, out io.Writer, th theme.Theme) {
	if opts.PlaySnake == nil {
		Print(out, th, []shell.Line{shell.Muted("snake needs the full-screen terminal: run `purbayanos snake`")}, true)
		return
	}
	if err := opts.PlaySnake(session); err != nil {
		logging.Error("snake failed", logging.Err(err))
		Print(out, th, []shell.Line{shell.Err("snake: " + err.Error())}, true)
		return
	}
	Print(out, th, []shell.Line{shell.Muted(fmt.Sprintf("High score: %d", session.Store().HighScore()))}, true)
}

func styledPrompt(session *terminal.Session) string {
	return theme.Get(session.Store().Theme()).Prompt.Render(session.Prompt())
}

// Print writes lines to w, styled with th when styled is set.
func Print(w io.Writer, th theme.Theme, lines []shell.Line, styled bool) {
	var b strings.Builder
	for _, l := range lines {
		if styled {
			b.WriteString(th.Line(l))
		} else {
			b.WriteString(l.Text)
		}
		b.WriteString("\n")
	}
	fmt.Fprint(w, b.String())
}

