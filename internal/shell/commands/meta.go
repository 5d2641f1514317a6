package commands

// Meta commands: help and documentation, session control, settings, the flag
// panel, and the refusals for commands a read-only system cannot honor.

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PPRAMANIK62/purbayanos/internal/flags"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// Themes is the set of accepted theme names, in display order.
var Themes = []string{"default", "matrix", "amber", "dracula", "nord", "cyberpunk"}

// ValidTheme reports whether name is one of Themes.
func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}

// categories groups commands for help. Registered commands missing from the
// table are listed under "Other".
var categories = []struct {
	name     string
	commands []string
}{
	{"Filesystem", []string{"ls", "cd", "cat", "pwd", "tree", "grep", "find", "head", "tail", "wc", "file"}},
	{"System", []string{"whoami", "hostname", "uname", "date", "uptime", "clear", "echo", "env", "printenv", "which", "type", "export", "neofetch"}},
	{"Meta", []string{"help", "history", "man", "exit", "logout", "open", "xdg-open", "sudo", "rm", "vim", "nano", "emacs", "theme", "flags", "sound", "credits"}},
	{"Network", []string{"ssh", "ping", "curl", "wget", "telnet"}},
	{"Fun", []string{"cowsay", "fortune", "figlet", "sl", "lolcat", "rickroll", "matrix", "cmatrix", "snake", "coffee", "hack"}},
}

// HelpCmd lists commands by category, or describes one command.
// Usage: help [command]
func (m *Module) HelpCmd() shell.Entry {
	return shell.Entry{
		Name:        "help",
		Usage:       "help [command]",
		Description: "List available commands",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if m.reg == nil {
				return shell.Error("help: no commands registered")
			}
			if len(args) > 0 {
				e, ok := m.reg.Lookup(args[0])
				if !ok {
					return shell.Error(fmt.Sprintf("help: no help topics match '%s'", args[0]))
				}
				return shell.Output(
					shell.Info(e.Name+" - "+e.Description),
					shell.Plain("Usage: "+e.Usage),
				)
			}

			out := []shell.Line{shell.Info(osName + " commands:")}
			listed := make(map[string]bool)
			section := func(title string, names []string) {
				var rows []shell.Line
				for _, name := range names {
					e, ok := m.reg.Lookup(name)
					if !ok || listed[name] {
						continue
					}
					listed[name] = true
					rows = append(rows, shell.Plain(fmt.Sprintf("  %-10s %s", name, e.Description)))
				}
				if len(rows) > 0 {
					out = append(out, shell.Plain(""), shell.Warning(title))
					out = append(out, rows...)
				}
			}
			for _, c := range categories {
				section(c.name, c.commands)
			}
			var other []string
			for _, e := range m.reg.Entries() {
				if !listed[e.Name] {
					other = append(other, e.Name)
				}
			}
			section("Other", other)

			out = append(out,
				shell.Plain(""),
				shell.Muted("Type 'help <command>' or 'man <command>' for details."),
				shell.Success(fmt.Sprintf("Flags: %d/%d", len(ctx.FoundFlags()), flags.Total)),
			)
			return shell.Output(out...)
		},
	}
}

// HistoryCmd shows previous commands.
// Usage: history [n]
func (m *Module) HistoryCmd() shell.Entry {
	return shell.Entry{
		Name:        "history",
		Usage:       "history [n]",
		Description: "Show command history",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("history")
			wipe := fs.BoolP("clear", "c", false, "clear the history list")
			if err := fs.Parse(args); err != nil {
				return optionError("history", err)
			}
			if *wipe {
				return shell.Error("history: cannot clear history: it is part of the record")
			}

			hist := ctx.History()
			start := 0
			if n, err := strconv.Atoi(fs.Arg(0)); err == nil && n >= 0 && n < len(hist) {
				start = len(hist) - n
			}
			out := make([]shell.Line, 0, len(hist)-start)
			for i := start; i < len(hist); i++ {
				out = append(out, shell.Plain(fmt.Sprintf("%5d  %s", i+1, hist[i])))
			}
			return shell.Output(out...)
		},
	}
}

// manDir is where man looks for real pages before synthesizing one.
const manDir = "/usr/share/man/man1"

// ManCmd shows the manual page for a command.
// Usage: man <command>
// Pages in /usr/share/man/man1 win; otherwise a page is built from the
// command's registry entry.
func (m *Module) ManCmd() shell.Entry {
	return shell.Entry{
		Name:        "man",
		Usage:       "man <command>",
		Description: "Show the manual page for a command",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return shell.Error("What manual page do you want?")
			}
			name := args[0]
			if node, ok := vfs.Lookup(m.root, vfs.Join(manDir, name+".1")); ok && node.IsFile() {
				return shell.Output(shell.Lines(shell.ColorDefault, splitContent(node.Content())...)...)
			}
			if m.reg != nil {
				if e, ok := m.reg.Lookup(name); ok {
					header := strings.ToUpper(name) + "(1)"
					return shell.Output(
						shell.Info(fmt.Sprintf("%-20s %s %20s", header, "PurbayanOS Manual", header)),
						shell.Plain(""),
						shell.Warning("NAME"),
						shell.Plain("       "+e.Name+" - "+e.Description),
						shell.Plain(""),
						shell.Warning("SYNOPSIS"),
						shell.Plain("       "+e.Usage),
						shell.Plain(""),
						shell.Warning("DESCRIPTION"),
						shell.Plain("       "+e.Description+"."),
					)
				}
			}
			return shell.Error("No manual entry for " + name)
		},
	}
}

// ExitCmd ends the session.
// Usage: exit
func (m *Module) ExitCmd() shell.Entry {
	return shell.Entry{
		Name:        "exit",
		Usage:       "exit",
		Description: "Close the terminal",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Result{Lines: []shell.Line{shell.Muted("logout")}, Exit: true}
		},
	}
}

// links are the named targets accepted by open.
var links = map[string]string{
	"github":   "https://github.com/PPRAMANIK62",
	"linkedin": "https://linkedin.com/in/purbayan",
	"resume":   "https://purbayan.dev/resume.pdf",
	"blog":     "https://purbayan.dev/blog",
	"email":    "mailto:hello@purbayan.dev",
}

// OpenCmd opens a named link or a URL outside the terminal.
// Usage: open <github|linkedin|resume|blog|email|url>
func (m *Module) OpenCmd() shell.Entry {
	return shell.Entry{
		Name:        "open",
		Usage:       "open <github|linkedin|resume|blog|email|url>",
		Description: "Open a link",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return missingOperand("open")
			}
			target := args[0]
			url, ok := links[strings.ToLower(target)]
			if !ok {
				if !isURL(target) {
					return shell.Output(
						shell.Err(fmt.Sprintf("open: unknown target '%s'", target)),
						shell.Muted("Try: github, linkedin, resume, blog, email, or a full URL"),
					)
				}
				url = target
			}
			return shell.Result{
				Lines:   []shell.Line{{Text: "Opening " + url + "...", Color: shell.ColorInfo, Href: url}},
				OpenURL: url,
			}
		},
	}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "mailto:")
}

// isRmRoot reports whether args spell "rm -rf /" in one of its usual forms.
func isRmRoot(args []string) bool {
	opts, operands, err := parseRm(args)
	if err != nil || len(operands) == 0 || !opts.recursive() || !*opts.force {
		return false
	}
	for _, p := range operands {
		if p != "/" && p != "/*" {
			return false
		}
	}
	return true
}

type rmOptions struct {
	r, R, force *bool
}

func (o rmOptions) recursive() bool { return *o.r || *o.R }

// parseRm reads rm's options. Only -r/-R and -f change what rm prints.
func parseRm(args []string) (rmOptions, []string, error) {
	fs := newFlags("rm")
	opts := rmOptions{
		r:     fs.BoolP("recursive", "r", false, "remove directories and their contents"),
		R:     fs.BoolP("recursive-R", "R", false, "same as -r"),
		force: fs.BoolP("force", "f", false, "ignore nonexistent files"),
	}
	fs.BoolP("interactive", "i", false, "prompt before every removal")
	fs.BoolP("verbose", "v", false, "explain what is being done")
	fs.Bool("no-preserve-root", false, "do not treat '/' specially")
	_ = fs.MarkHidden("recursive-R")
	err := fs.Parse(args)
	return opts, fs.Args(), err
}

// SudoCmd runs nothing as root.
// Usage: sudo <command>
func (m *Module) SudoCmd() shell.Entry {
	return shell.Entry{
		Name:        "sudo",
		Usage:       "sudo <command>",
		Description: "Execute a command as root",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return shell.Error("usage: sudo <command>")
			}
			if args[0] == "rm" && isRmRoot(args[1:]) {
				return shell.Output(
					shell.Muted("[sudo] password for "+username+": ********"),
					shell.Warning("rm: removing /bin ... done"),
					shell.Warning("rm: removing /etc ... done"),
					shell.Warning("rm: removing /home ... done"),
					shell.Warning("rm: removing /usr ... done"),
					shell.Err("Kernel panic - not syncing: Attempted to kill init! exitcode=0x00000009"),
					shell.Plain(""),
					shell.Plain("...just kidding. This filesystem is read-only."),
					shell.Plain("But you did type it, so here's something for your courage:"),
					shell.Success("  "+flags.Token(7)),
				)
			}
			return shell.Output(
				shell.Muted("[sudo] password for "+username+": ********"),
				shell.Err(username+" is not in the sudoers file. This incident will be reported."),
			)
		},
	}
}

// RmCmd refuses to remove anything.
// Usage: rm [-rf] <path...>
func (m *Module) RmCmd() shell.Entry {
	return shell.Entry{
		Name:        "rm",
		Usage:       "rm [-rf] <path...>",
		Description: "Remove files (read-only system)",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if isRmRoot(args) {
				return shell.Output(
					shell.Err("rm: it is dangerous to operate recursively on '/'"),
					shell.Err("rm: use --no-preserve-root to override this failsafe"),
					shell.Muted("(nice try. maybe with more privileges?)"),
				)
			}
			_, operands, err := parseRm(args)
			if err != nil {
				return optionError("rm", err)
			}
			if len(operands) == 0 {
				return missingOperand("rm")
			}
			out := make([]shell.Line, 0, len(operands))
			for _, p := range operands {
				if _, _, ok := m.resolve(ctx, p); !ok {
					out = append(out, shell.Err(fmt.Sprintf("rm: cannot remove '%s': No such file or directory", p)))
					continue
				}
				out = append(out, shell.Err(fmt.Sprintf("rm: cannot remove '%s': Read-only file system", p)))
			}
			return shell.Output(out...)
		},
	}
}

var editorRefusals = map[string][]string{
	"vim": {
		"vim: read-only file system, nothing to write.",
		"Good news: you don't have to figure out how to exit.",
	},
	"nano": {
		"nano: read-only file system.",
		"Try 'cat' to read files instead.",
	},
	"emacs": {
		"emacs: a great operating system, lacking only a decent editor.",
		"Also, the file system is read-only.",
	},
}

// EditorCmd builds the refusal for a text editor.
// Usage: vim|nano|emacs [file]
func (m *Module) EditorCmd(name string) shell.Entry {
	lines := editorRefusals[name]
	return shell.Entry{
		Name:        name,
		Usage:       name + " [file]",
		Description: "Edit a file (read-only system)",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			out := []shell.Line{shell.Err(lines[0])}
			out = append(out, shell.Lines(shell.ColorMuted, lines[1:]...)...)
			return shell.Output(out...)
		},
	}
}

// ThemeCmd shows or changes the color theme.
// Usage: theme [name]
func (m *Module) ThemeCmd() shell.Entry {
	return shell.Entry{
		Name:        "theme",
		Usage:       "theme [" + strings.Join(Themes, "|") + "]",
		Description: "Change the color theme",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			available := shell.Muted("Available: " + strings.Join(Themes, ", "))
			if len(args) == 0 {
				return shell.Output(shell.Plain("Current theme: "+ctx.Theme()), available)
			}
			name := strings.ToLower(args[0])
			if !ValidTheme(name) {
				return shell.Output(shell.Err(fmt.Sprintf("theme: unknown theme '%s'", args[0])), available)
			}
			ctx.SetTheme(name)
			return shell.Output(shell.Success("Theme set to " + name))
		},
	}
}

// flagsPanelWidth is the inner width of the flags panel.
const flagsPanelWidth = 58

// FlagsCmd shows which flags have been captured.
// Usage: flags
// Missing flags carry a random hint. The victory banner follows once all are
// found.
func (m *Module) FlagsCmd() shell.Entry {
	return shell.Entry{
		Name:        "flags",
		Usage:       "flags",
		Description: "Show captured flags",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			found := ctx.FoundFlags()
			have := make(map[int]bool, len(found))
			for _, f := range found {
				have[f] = true
			}

			w := flagsPanelWidth
			out := []shell.Line{
				shell.Info(boxTop(w)),
				shell.Info(boxRow(fmt.Sprintf("  CAPTURE THE FLAG  %d/%d captured", len(have), flags.Total), w)),
				shell.Info(boxDivider(w)),
			}
			for n := 1; n <= flags.Total; n++ {
				if have[n] {
					out = append(out, shell.Success(boxRow(fmt.Sprintf("  [x] #%d %s", n, flags.Names[n]), w)))
					continue
				}
				out = append(out,
					shell.Plain(boxRow(fmt.Sprintf("  [ ] #%d ???", n), w)),
					shell.Muted(boxRow("      hint: "+flags.Hint(n, m.rng), w)),
				)
			}
			out = append(out, shell.Info(boxBottom(w)))

			if flags.Complete(found) {
				out = append(out, flags.Victory()...)
			}
			return shell.Output(out...)
		},
	}
}

// SoundCmd toggles or sets sound effects.
// Usage: sound [on|off]
func (m *Module) SoundCmd() shell.Entry {
	return shell.Entry{
		Name:        "sound",
		Usage:       "sound [on|off]",
		Description: "Toggle sound effects",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				ctx.ToggleSound()
			} else {
				want := strings.ToLower(args[0])
				if want != "on" && want != "off" {
					return shell.Error("usage: sound [on|off]")
				}
				if ctx.SoundEnabled() != (want == "on") {
					ctx.ToggleSound()
				}
			}
			if ctx.SoundEnabled() {
				return shell.Output(shell.Success("Sound: on"))
			}
			return shell.Output(shell.Muted("Sound: off"))
		},
	}
}

// CreditsCmd rolls the credits.
// Usage: credits
func (m *Module) CreditsCmd() shell.Entry {
	return shell.Entry{
		Name:        "credits",
		Usage:       "credits",
		Description: "Show the credits",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Output(
				shell.Info(osName+" 2.0"),
				shell.Plain(""),
				shell.Plain("  Design, code, bugs ......... Purbayan Pramanik"),
				shell.Plain("  Filesystem ................. read-only, by popular demand"),
				shell.Plain("  Snake ...................... a classic, reimagined"),
				shell.Plain("  Inspiration ................ The Matrix, WarGames, every dotfiles repo"),
				shell.Plain(""),
				shell.Muted("Thanks for poking around. Type 'flags' to see how you're doing."),
			)
		},
	}
}
