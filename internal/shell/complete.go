package shell

import (
	"sort"
	"strings"

	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// Completion is the outcome of a tab-completion request.
type Completion struct {
	// Word is the partial word being completed.
	Word string
	// Matches are full replacements for Word, sorted. Directories end in "/".
	Matches []string
	// Common is the longest common prefix of Matches (Word if none match).
	Common string
}

// Complete returns completion candidates for the last word of line.
//
// The first word completes against command names. Later words complete against
// filesystem entries: the part of the word up to the last "/" is resolved
// against cwd and its children are prefix-matched against the rest. Hidden
// entries are offered only when the prefix starts with a dot.
func Complete(reg *Registry, root *vfs.Node, cwd, line string) Completion {
	word := lastWord(line)
	c := Completion{Word: word, Common: word}

	if isFirstWord(line) {
		for _, name := range reg.Names() {
			if strings.HasPrefix(name, word) {
				c.Matches = append(c.Matches, name)
			}
		}
	} else {
		c.Matches = completePath(root, cwd, word)
	}

	sort.Strings(c.Matches)
	if len(c.Matches) > 0 {
		c.Common = commonPrefix(c.Matches)
	}
	return c
}

func completePath(root *vfs.Node, cwd, word string) []string {
	dirPart, prefix := "", word
	if i := strings.LastIndex(word, "/"); i >= 0 {
		dirPart, prefix = word[:i+1], word[i+1:]
	}

	target := dirPart
	if target == "" {
		target = "."
	}
	dir, ok := vfs.Lookup(root, vfs.ResolvePath(cwd, target))
	if !ok || !dir.IsDir() {
		return nil
	}

	showHidden := strings.HasPrefix(prefix, ".")
	var out []string
	for _, child := range vfs.List(dir, showHidden) {
		if !strings.HasPrefix(child.Name(), prefix) {
			continue
		}
		match := dirPart + child.Name()
		if child.IsDir() {
			match += "/"
		}
		out = append(out, match)
	}
	return out
}

// lastWord returns the word under the cursor (the text after the last blank).
func lastWord(line string) string {
	i := strings.LastIndexAny(line, " \t")
	return line[i+1:]
}

// isFirstWord reports whether the cursor is still in the command name.
func isFirstWord(line string) bool {
	return !strings.ContainsAny(strings.TrimLeft(line, " \t"), " \t")
}

func commonPrefix(words []string) string {
	prefix := words[0]
	for _, w := range words[1:] {
		for !strings.HasPrefix(w, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	return prefix
}

// Completer adapts Complete to readline's AutoCompleter interface. The cwd
// function is consulted on every key press so completion follows cd.
type Completer struct {
	reg  *Registry
	root *vfs.Node
	cwd  func() string
}

// NewCompleter creates a readline completer over reg and root.
func NewCompleter(reg *Registry, root *vfs.Node, cwd func() string) *Completer {
	return &Completer{reg: reg, root: root, cwd: cwd}
}

// Do implements readline.AutoCompleter.
// Called when user presses TAB. It returns the suffixes to append after what
// is typed and the length of the word they extend.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	comp := Complete(c.reg, c.root, c.cwd(), string(line[:pos]))
	if len(comp.Matches) == 0 {
		return nil, 0
	}

	wordLen := len([]rune(comp.Word))
	out := make([][]rune, 0, len(comp.Matches))
	for _, m := range comp.Matches {
		suffix := []rune(m)[wordLen:]
		// Single command matches get a trailing space like bash does
		if len(comp.Matches) == 1 && isFirstWord(string(line[:pos])) {
			suffix = append(suffix, ' ')
		}
		out = append(out, suffix)
	}
	return out, wordLen
}
