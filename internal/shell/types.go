// Package shell provides the command interpreter for the PurbayanOS terminal.
//
// This package holds the pieces every command shares:
//   - Line / Color / Result: the output contract a command returns
//   - Context: the host-owned state a command may read and mutate
//   - Registry: name -> handler lookup table
//   - Tokenize / Dispatch: turn a raw input line into a handler call
//   - Complete / Completer: tab completion over command names and paths
//
// Commands never print, clear the screen or open URLs themselves. They return
// a Result describing what should happen and the host carries it out.
package shell

// Color is the semantic color of an output line. The host maps it to a
// concrete style for the active theme.
type Color int

const (
	ColorDefault Color = iota
	ColorError
	ColorSuccess
	ColorInfo
	ColorWarning
	ColorMuted
)

// String returns a human-readable color name
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorError:
		return "error"
	case ColorSuccess:
		return "success"
	case ColorInfo:
		return "info"
	case ColorWarning:
		return "warning"
	case ColorMuted:
		return "muted"
	default:
		return "unknown"
	}
}

// Line is one line of command output.
type Line struct {
	Text  string
	Color Color
	Href  string // optional link target
}

// Game names accepted in Result.StartGame.
const GameSnake = "snake"

// Result is what every command returns. Side effects are declarative: the
// handler sets a field and the host performs the action.
type Result struct {
	Lines       []Line
	ClearScreen bool
	StartGame   string // "" or GameSnake
	OpenURL     string
	Exit        bool
}

// Text returns the result's lines joined with newlines, without styling.
func (r Result) Text() string {
	if len(r.Lines) == 0 {
		return ""
	}
	n := 0
	for _, l := range r.Lines {
		n += len(l.Text) + 1
	}
	b := make([]byte, 0, n)
	for i, l := range r.Lines {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, l.Text...)
	}
	return string(b)
}

// HasError reports whether any line is error-colored.
func (r Result) HasError() bool {
	for _, l := range r.Lines {
		if l.Color == ColorError {
			return true
		}
	}
	return false
}

// Context is the host-owned session state handed to every command. Mutators
// are the only way a command can affect anything outside itself.
type Context interface {
	Cwd() string
	SetCwd(path string)

	FoundFlags() []int
	HasFlag(n int) bool
	CaptureFlag(n int) // idempotent

	History() []string
	AddHistory(line string)

	SoundEnabled() bool
	ToggleSound() bool

	Theme() string
	SetTheme(name string)

	HighScore() int
	UpdateHighScore(score int) // keeps the larger value
}

// Handler implements one command.
type Handler func(args []string, ctx Context) Result

// Entry is one registered command.
type Entry struct {
	Name        string
	Handler     Handler
	Description string
	Usage       string
}

// Output builds a Result from lines.
func Output(lines ...Line) Result {
	return Result{Lines: lines}
}

// Plain creates a default-colored line.
func Plain(text string) Line { return Line{Text: text} }

// Err creates an error line.
func Err(text string) Line { return Line{Text: text, Color: ColorError} }

// Success creates a success line.
func Success(text string) Line { return Line{Text: text, Color: ColorSuccess} }

// Info creates an info line.
func Info(text string) Line { return Line{Text: text, Color: ColorInfo} }

// Warning creates a warning line.
func Warning(text string) Line { return Line{Text: text, Color: ColorWarning} }

// Muted creates a muted line.
func Muted(text string) Line { return Line{Text: text, Color: ColorMuted} }

// Lines converts raw text lines into lines of one color.
func Lines(color Color, texts ...string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Line{Text: t, Color: color}
	}
	return out
}

// Error returns a Result holding a single error line.
func Error(text string) Result {
	return Output(Err(text))
}
