package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// resolve turns a user-supplied path into an absolute path and looks it up.
// Every filesystem command goes through here.
func (m *Module) resolve(ctx shell.Context, target string) (string, *vfs.Node, bool) {
	abs := vfs.ResolvePath(ctx.Cwd(), target)
	node, ok := vfs.Lookup(m.root, abs)
	return abs, node, ok
}

// newFlags returns the option set for an in-shell command. Parse errors are
// returned to the caller, never printed.
func newFlags(cmd string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// optionError turns a pflag parse error into the message GNU tools print.
func optionError(cmd string, err error) shell.Result {
	msg := err.Error()
	switch {
	case errors.Is(err, pflag.ErrHelp):
		return shell.Error(fmt.Sprintf("%s: see 'man %s' for usage", cmd, cmd))
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		return invalidOption(cmd, quotedRune(strings.TrimPrefix(msg, "unknown shorthand flag: ")))
	case strings.HasPrefix(msg, "unknown flag: "):
		return shell.Error(fmt.Sprintf("%s: unrecognized option '%s'", cmd, strings.TrimPrefix(msg, "unknown flag: ")))
	case strings.HasPrefix(msg, "flag needs an argument: '"):
		r := quotedRune(strings.TrimPrefix(msg, "flag needs an argument: "))
		return shell.Error(fmt.Sprintf("%s: option requires an argument -- '%c'", cmd, r))
	case strings.HasPrefix(msg, "flag needs an argument: "):
		return shell.Error(fmt.Sprintf("%s: option '%s' requires an argument", cmd, strings.TrimPrefix(msg, "flag needs an argument: ")))
	}
	return shell.Error(cmd + ": " + msg)
}

// quotedRune reads the rune from the start of "'x' in -xyz".
func quotedRune(s string) rune {
	if len(s) < 3 || s[0] != '\'' {
		return '?'
	}
	r, _ := utf8.DecodeRuneInString(s[1:])
	return r
}

// invalidOption is the error every command prints for an unknown flag.
func invalidOption(cmd string, r rune) shell.Result {
	return shell.Error(fmt.Sprintf("%s: invalid option -- '%c'", cmd, r))
}

// missingOperand is the error for commands that need at least one argument.
func missingOperand(cmd string) shell.Result {
	return shell.Error(cmd + ": missing operand")
}

func noSuchFile(cmd, path string) shell.Line {
	return shell.Err(fmt.Sprintf("%s: %s: No such file or directory", cmd, path))
}

func isADirectory(cmd, path string) shell.Line {
	return shell.Err(fmt.Sprintf("%s: %s: Is a directory", cmd, path))
}

func notADirectory(cmd, path string) shell.Line {
	return shell.Err(fmt.Sprintf("%s: %s: Not a directory", cmd, path))
}

// splitContent returns a file's content as lines. A trailing newline does not
// produce an empty last line.
func splitContent(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// countValue is a pflag.Value for counts such as head -n and ping -c.
// Anything that is not an integer of at least floor leaves the default in
// place, and ceil (when positive) caps it.
type countValue struct {
	n, def, floor, ceil int
}

func newCountValue(def, floor, ceil int) *countValue {
	return &countValue{n: def, def: def, floor: floor, ceil: ceil}
}

func (c *countValue) String() string { return strconv.Itoa(c.n) }

func (c *countValue) Type() string { return "int" }

func (c *countValue) Set(s string) error {
	v, err := strconv.Atoi(s)
	switch {
	case err != nil || v < c.floor:
		c.n = c.def
	case c.ceil > 0 && v > c.ceil:
		c.n = c.ceil
	default:
		c.n = v
	}
	return nil
}

// expandCountShorthand rewrites the historical "-N" form of head and tail
// into "-nN". pflag has no notion of numeric options, so this runs before
// parsing and stops at "--".
func expandCountShorthand(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)
	for i := 0; i < len(out); i++ {
		switch a := out[i]; {
		case a == "--":
			return out
		case a == "-n" || a == "--lines":
			i++
		case len(a) > 1 && a[0] == '-' && isDigits(a[1:]):
			out[i] = "-n" + a[1:]
		}
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// plural picks the singular or plural form for n.
func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// environment is the fixed environment seen by echo, env and export. PWD and
// OLDPWD are live.
func (m *Module) environment(ctx shell.Context) map[string]string {
	env := map[string]string{
		"HOME":     vfs.HomePath,
		"USER":     username,
		"LOGNAME":  username,
		"SHELL":    "/bin/bash",
		"TERM":     "xterm-256color",
		"LANG":     "en_US.UTF-8",
		"PATH":     "/usr/local/bin:/usr/bin:/bin",
		"EDITOR":   "nvim",
		"HOSTNAME": hostname,
		"PWD":      ctx.Cwd(),
		"THEME":    ctx.Theme(),
	}
	if m.prevDir != "" {
		env["OLDPWD"] = m.prevDir
	}
	return env
}
