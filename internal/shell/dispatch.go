package shell

import (
	"fmt"
	"strings"

	"github.com/PPRAMANIK62/purbayanos/internal/logging"
	"github.com/PPRAMANIK62/purbayanos/internal/metrics"
)

// Tokenize splits an input line into words.
//
// Words are separated by runs of spaces or tabs. Single- and double-quoted
// segments keep their whitespace; the quote characters themselves are dropped.
// An unclosed quote runs to the end of the input instead of failing. There are
// no escapes, pipes or redirections.
//
//	ls -la /home   -> "ls", "-la", "/home"
//	echo "a b" c   -> "echo", "a b", "c"
//	echo "a        -> "echo", "a"
func Tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inToken := false
	var quote rune

	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			if inToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if inToken {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// Dispatch runs one input line against the registry.
//
// Empty or whitespace-only input yields an empty Result. Unknown commands yield
// a single "<name>: command not found" error line. Otherwise the handler's
// Result is returned unchanged. Dispatch never panics: a panicking handler is
// recovered and reported as an error line.
func Dispatch(reg *Registry, input string, ctx Context) (res Result) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Result{}
	}

	tokens := Tokenize(input)
	if len(tokens) == 0 {
		return Result{}
	}
	name, args := tokens[0], tokens[1:]

	entry, ok := reg.Lookup(name)
	if !ok {
		metrics.RecordCommand(name, "not_found")
		logging.Debug("command not found", logging.String("command", name))
		return Error(fmt.Sprintf("%s: command not found", name))
	}

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordCommand(name, "panic")
			logging.Error("command panicked",
				logging.String("command", name),
				logging.Strings("args", args),
				logging.Any("panic", r))
			res = Error(fmt.Sprintf("%s: internal error", name))
		}
	}()

	res = entry.Handler(args, ctx)
	metrics.RecordCommand(name, resultStatus(res))
	logging.Debug("command dispatched",
		logging.String("command", name),
		logging.Int("args", len(args)),
		logging.Int("lines", len(res.Lines)))
	return res
}

// resultStatus labels a result for metrics: "error" if its first line is an
// error, "ok" otherwise.
func resultStatus(res Result) string {
	if len(res.Lines) > 0 && res.Lines[0].Color == ColorError {
		return "error"
	}
	return "ok"
}
