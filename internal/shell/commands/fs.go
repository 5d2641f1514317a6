package commands

// Filesystem commands over the read-only virtual filesystem.
// These commands mirror standard Unix filesystem utilities.

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

// LsCmd lists directory contents.
// Usage: ls [-a] [-l] [path...]
// Directories come first, then files, each sorted by name. -a shows hidden
// entries plus . and .., -l shows permissions, size and modification time.
func (m *Module) LsCmd() shell.Entry {
	return shell.Entry{
		Name:        "ls",
		Usage:       "ls [-a] [-l] [path...]",
		Description: "List directory contents",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("ls")
			all := fs.BoolP("all", "a", false, "do not ignore entries starting with .")
			long := fs.BoolP("long", "l", false, "use a long listing format")
			if err := fs.Parse(args); err != nil {
				return optionError("ls", err)
			}
			paths := fs.Args()
			if len(paths) == 0 {
				paths = []string{"."}
			}

			var out []shell.Line
			for i, p := range paths {
				abs, node, ok := m.resolve(ctx, p)
				if !ok {
					out = append(out, shell.Err(fmt.Sprintf("ls: cannot access '%s': No such file or directory", p)))
					continue
				}
				if !node.IsDir() {
					out = append(out, formatListing([]lsEntry{{name: p, node: node}}, *long)...)
					continue
				}
				if len(paths) > 1 {
					if i > 0 {
						out = append(out, shell.Plain(""))
					}
					out = append(out, shell.Plain(p+":"))
				}
				out = append(out, formatListing(m.listDir(abs, node, *all), *long)...)
			}
			return shell.Output(out...)
		},
	}
}

// lsEntry is one row of ls output. Pseudo entries (. and ..) carry the
// directory they stand for.
type lsEntry struct {
	name string
	node *vfs.Node
}

func (m *Module) listDir(abs string, dir *vfs.Node, all bool) []lsEntry {
	children := vfs.List(dir, all)
	sort.SliceStable(children, func(i, j int) bool {
		a, b := children[i], children[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		return strings.ToLower(a.Name()) < strings.ToLower(b.Name())
	})

	entries := make([]lsEntry, 0, len(children)+2)
	if all {
		parent, _ := vfs.Split(abs)
		up, _ := vfs.Lookup(m.root, parent)
		entries = append(entries, lsEntry{".", dir}, lsEntry{"..", up})
	}
	for _, c := range children {
		entries = append(entries, lsEntry{c.Name(), c})
	}
	return entries
}

// formatListing renders ls rows. In long format the size column is
// right-aligned to the widest size in the listing.
func formatListing(entries []lsEntry, long bool) []shell.Line {
	sizeWidth := 0
	if long {
		for _, e := range entries {
			if w := len(fmt.Sprint(e.node.Size())); w > sizeWidth {
				sizeWidth = w
			}
		}
	}

	out := make([]shell.Line, 0, len(entries))
	for _, e := range entries {
		text := e.name
		if long {
			text = fmt.Sprintf("%s 1 %s %s %*d %s %s",
				e.node.Permissions(), username, username, sizeWidth, e.node.Size(), e.node.Modified(), e.name)
			if target := e.node.LinkTarget(); target != "" {
				text += " -> " + target
			}
		}
		out = append(out, shell.Line{Text: text, Color: entryColor(e.node)})
	}
	return out
}

func entryColor(n *vfs.Node) shell.Color {
	switch {
	case n.IsDir():
		return shell.ColorInfo
	case n.Executable():
		return shell.ColorSuccess
	default:
		return shell.ColorDefault
	}
}

// CdCmd changes the current directory.
// Usage: cd [path|-]
// With no argument or ~ it goes home. "cd -" returns to the previous
// directory and prints it.
func (m *Module) CdCmd() shell.Entry {
	return shell.Entry{
		Name:        "cd",
		Usage:       "cd [path|-]",
		Description: "Change directory",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) > 1 {
				return shell.Error("cd: too many arguments")
			}

			target := "~"
			if len(args) == 1 && args[0] != "" {
				target = args[0]
			}

			var res shell.Result
			if target == "-" {
				if m.prevDir == "" {
					return shell.Error("cd: OLDPWD not set")
				}
				target = m.prevDir
				res = shell.Output(shell.Plain(target))
			}

			abs, node, ok := m.resolve(ctx, target)
			if !ok {
				return shell.Output(noSuchFile("cd", target))
			}
			if !node.IsDir() {
				return shell.Output(notADirectory("cd", target))
			}

			m.prevDir = ctx.Cwd()
			ctx.SetCwd(abs)
			return res
		},
	}
}

// CatCmd prints file contents.
// Usage: cat <file...>
func (m *Module) CatCmd() shell.Entry {
	return shell.Entry{
		Name:        "cat",
		Usage:       "cat <file...>",
		Description: "Print file contents",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return missingOperand("cat")
			}
			var out []shell.Line
			for _, p := range args {
				_, node, ok := m.resolve(ctx, p)
				switch {
				case !ok:
					out = append(out, noSuchFile("cat", p))
				case node.IsDir():
					out = append(out, isADirectory("cat", p))
				default:
					out = append(out, shell.Lines(shell.ColorDefault, splitContent(node.Content())...)...)
				}
			}
			return shell.Output(out...)
		},
	}
}

// PwdCmd prints the current working directory.
// Usage: pwd
func (m *Module) PwdCmd() shell.Entry {
	return shell.Entry{
		Name:        "pwd",
		Usage:       "pwd",
		Description: "Print working directory",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Output(shell.Plain(ctx.Cwd()))
		},
	}
}

// treeDepth is how many levels below its argument tree descends.
const treeDepth = 3

// TreeCmd shows a directory as an indented tree.
// Usage: tree [-a] [path]
func (m *Module) TreeCmd() shell.Entry {
	return shell.Entry{
		Name:        "tree",
		Usage:       "tree [-a] [path]",
		Description: "Show a directory tree",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("tree")
			all := fs.BoolP("all", "a", false, "list hidden entries too")
			if err := fs.Parse(args); err != nil {
				return optionError("tree", err)
			}
			paths := fs.Args()
			target := "."
			if len(paths) > 0 {
				target = paths[0]
			}

			_, node, ok := m.resolve(ctx, target)
			if !ok {
				return shell.Output(noSuchFile("tree", target))
			}
			if !node.IsDir() {
				return shell.Output(notADirectory("tree", target))
			}

			out := []shell.Line{{Text: target, Color: shell.ColorInfo}}
			var dirs, files int
			var draw func(dir *vfs.Node, prefix string, depth int)
			draw = func(dir *vfs.Node, prefix string, depth int) {
				children := vfs.List(dir, *all)
				for i, c := range children {
					connector, indent := "├── ", "│   "
					if i == len(children)-1 {
						connector, indent = "└── ", "    "
					}
					out = append(out, shell.Line{Text: prefix + connector + c.Name(), Color: entryColor(c)})
					if c.IsDir() {
						dirs++
						if depth < treeDepth {
							draw(c, prefix+indent, depth+1)
						}
					} else {
						files++
					}
				}
			}
			draw(node, "", 1)

			out = append(out,
				shell.Plain(""),
				shell.Muted(plural(dirs, "directory", "directories")+", "+plural(files, "file", "files")))
			return shell.Output(out...)
		},
	}
}

// GrepCmd searches file contents.
// Usage: grep [-r] [-i] [-n] <pattern> [path...]
// Matching is a case-insensitive substring search. -r searches directories
// recursively (hidden entries included) and prefixes each match with its path.
func (m *Module) GrepCmd() shell.Entry {
	return shell.Entry{
		Name:        "grep",
		Usage:       "grep [-r] [-i] [-n] <pattern> [path...]",
		Description: "Search file contents for a pattern",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("grep")
			recurse := fs.BoolP("recursive", "r", false, "search directories recursively")
			recurseAll := fs.BoolP("dereference-recursive", "R", false, "same as -r")
			fs.BoolP("ignore-case", "i", false, "ignore case (always on)")
			lineNumbers := fs.BoolP("line-number", "n", false, "prefix each match with its line number")
			if err := fs.Parse(args); err != nil {
				return optionError("grep", err)
			}
			operands := fs.Args()
			if len(operands) == 0 {
				return shell.Error("usage: grep [-r] [-i] [-n] <pattern> [path...]")
			}
			recursive := *recurse || *recurseAll
			pattern, paths := strings.ToLower(operands[0]), operands[1:]
			if len(paths) == 0 {
				if !recursive {
					return missingOperand("grep")
				}
				paths = []string{"."}
			}
			prefix := recursive || len(paths) > 1

			var out []shell.Line
			search := func(label string, file *vfs.Node) {
				for i, line := range splitContent(file.Content()) {
					if !strings.Contains(strings.ToLower(line), pattern) {
						continue
					}
					text := line
					if *lineNumbers {
						text = fmt.Sprintf("%d:%s", i+1, text)
					}
					if prefix {
						text = label + ":" + text
					}
					out = append(out, shell.Plain(text))
				}
			}

			for _, p := range paths {
				abs, node, ok := m.resolve(ctx, p)
				switch {
				case !ok:
					out = append(out, noSuchFile("grep", p))
				case node.IsFile():
					search(p, node)
				case !recursive:
					out = append(out, isADirectory("grep", p))
				default:
					vfs.Walk(node, abs, func(fp string, n *vfs.Node, _ int) bool {
						if n.IsFile() {
							search(fp, n)
						}
						return true
					})
				}
			}
			return shell.Output(out...)
		},
	}
}

// FindCmd searches for files by name.
// Usage: find [dir] [-name <pattern>]
// The pattern is a glob where * matches anything and every other character,
// dots included, matches itself. It is matched case-insensitively against the
// whole name. Hidden entries are searched too.
//
// -name is a single-dash long predicate, so find reads its arguments directly
// instead of going through newFlags.
func (m *Module) FindCmd() shell.Entry {
	return shell.Entry{
		Name:        "find",
		Usage:       "find [dir] [-name <pattern>]",
		Description: "Search for files by name",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			start := "."
			var match *regexp.Regexp
			for i := 0; i < len(args); i++ {
				switch a := args[i]; {
				case a == "-name":
					if i+1 >= len(args) {
						return shell.Error(fmt.Sprintf("find: missing argument to `%s'", a))
					}
					i++
					match = globToRegexp(args[i])
				case strings.HasPrefix(a, "-"):
					return shell.Error(fmt.Sprintf("find: unknown predicate `%s'", a))
				default:
					start = a
				}
			}

			abs, node, ok := m.resolve(ctx, start)
			if !ok {
				return shell.Error(fmt.Sprintf("find: '%s': No such file or directory", start))
			}

			var out []shell.Line
			vfs.Walk(node, abs, func(p string, n *vfs.Node, _ int) bool {
				if match == nil || match.MatchString(n.Name()) {
					out = append(out, shell.Plain(findDisplay(start, abs, p)))
				}
				return true
			})
			return shell.Output(out...)
		},
	}
}

// globToRegexp compiles a glob into an anchored, case-insensitive pattern.
func globToRegexp(glob string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(".*")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// findDisplay shows a found path relative to the start argument as typed,
// the way find does ("./projects/x.md" for a start of ".").
func findDisplay(startArg, startAbs, p string) string {
	rel := p
	if startAbs != "/" {
		rel = strings.TrimPrefix(p, startAbs)
	}
	out := strings.TrimSuffix(startArg, "/") + rel
	if out == "" {
		return "/"
	}
	return out
}

// HeadCmd prints the first lines of files.
// Usage: head [-n N] <file...>
func (m *Module) HeadCmd() shell.Entry {
	return shell.Entry{
		Name:        "head",
		Usage:       "head [-n N] <file...>",
		Description: "Print the first lines of a file",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return m.headTail("head", args, ctx, true)
		},
	}
}

// TailCmd prints the last lines of files.
// Usage: tail [-n N] <file...>
func (m *Module) TailCmd() shell.Entry {
	return shell.Entry{
		Name:        "tail",
		Usage:       "tail [-n N] <file...>",
		Description: "Print the last lines of a file",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return m.headTail("tail", args, ctx, false)
		},
	}
}

const defaultLineCount = 10

// headTail is shared by head and tail; fromStart picks the direction.
func (m *Module) headTail(cmd string, args []string, ctx shell.Context, fromStart bool) shell.Result {
	fs := newFlags(cmd)
	count := newCountValue(defaultLineCount, 0, 0)
	fs.VarP(count, "lines", "n", "number of lines to print")
	if err := fs.Parse(expandCountShorthand(args)); err != nil {
		return optionError(cmd, err)
	}
	n, paths := count.n, fs.Args()
	if len(paths) == 0 {
		return missingOperand(cmd)
	}

	var out []shell.Line
	for i, p := range paths {
		_, node, ok := m.resolve(ctx, p)
		if !ok {
			out = append(out, noSuchFile(cmd, p))
			continue
		}
		if node.IsDir() {
			out = append(out, shell.Err(fmt.Sprintf("%s: error reading '%s': Is a directory", cmd, p)))
			continue
		}
		if len(paths) > 1 {
			if i > 0 {
				out = append(out, shell.Plain(""))
			}
			out = append(out, shell.Muted(fmt.Sprintf("==> %s <==", p)))
		}

		lines := splitContent(node.Content())
		if n < len(lines) {
			if fromStart {
				lines = lines[:n]
			} else {
				lines = lines[len(lines)-n:]
			}
		}
		out = append(out, shell.Lines(shell.ColorDefault, lines...)...)
	}
	return shell.Output(out...)
}

// WcCmd counts lines, words and characters.
// Usage: wc [-l] [-w] [-c] <file...>
// Each selected count is right-aligned in a 7-column field, followed by the
// path. Several files get a total row.
func (m *Module) WcCmd() shell.Entry {
	return shell.Entry{
		Name:        "wc",
		Usage:       "wc [-l] [-w] [-c] <file...>",
		Description: "Count lines, words and characters",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("wc")
			show := [3]*bool{
				fs.BoolP("lines", "l", false, "print the line count"),
				fs.BoolP("words", "w", false, "print the word count"),
				fs.BoolP("chars", "c", false, "print the character count"),
			}
			if err := fs.Parse(args); err != nil {
				return optionError("wc", err)
			}
			paths := fs.Args()
			if len(paths) == 0 {
				return missingOperand("wc")
			}
			if !*show[0] && !*show[1] && !*show[2] {
				for _, b := range show {
					*b = true
				}
			}

			row := func(counts [3]int, label string) string {
				var b strings.Builder
				for i, on := range show {
					if *on {
						fmt.Fprintf(&b, "%7d", counts[i])
					}
				}
				return b.String() + " " + label
			}

			var out []shell.Line
			var total [3]int
			for _, p := range paths {
				_, node, ok := m.resolve(ctx, p)
				if !ok {
					out = append(out, noSuchFile("wc", p))
					continue
				}
				if node.IsDir() {
					out = append(out, isADirectory("wc", p))
					continue
				}
				c := node.Content()
				counts := [3]int{strings.Count(c, "\n"), len(strings.Fields(c)), utf8.RuneCountInString(c)}
				for i := range total {
					total[i] += counts[i]
				}
				out = append(out, shell.Plain(row(counts, p)))
			}
			if len(paths) > 1 {
				out = append(out, shell.Plain(row(total, "total")))
			}
			return shell.Output(out...)
		},
	}
}

// fileTypes maps extensions to file(1)-style descriptions.
var fileTypes = map[string]string{
	".txt":  "ASCII text",
	".md":   "Markdown document, ASCII text",
	".json": "JSON data",
	".sh":   "Bourne-Again shell script, ASCII text",
	".html": "HTML document, ASCII text",
	".lua":  "Lua script, ASCII text",
	".go":   "Go source, ASCII text",
	".yaml": "YAML document, ASCII text",
	".yml":  "YAML document, ASCII text",
	".1":    "troff or preprocessor input, ASCII text",
	".log":  "ASCII text",
	".png":  "PNG image data",
	".pdf":  "PDF document, version 1.7",
}

// FileCmd describes file types.
// Usage: file <path...>
func (m *Module) FileCmd() shell.Entry {
	return shell.Entry{
		Name:        "file",
		Usage:       "file <path...>",
		Description: "Determine file type",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return missingOperand("file")
			}
			var out []shell.Line
			for _, p := range args {
				_, node, ok := m.resolve(ctx, p)
				if !ok {
					out = append(out, shell.Err(fmt.Sprintf("%s: cannot open `%s' (No such file or directory)", p, p)))
					continue
				}
				out = append(out, shell.Plain(p+": "+describeFile(node)))
			}
			return shell.Output(out...)
		},
	}
}

func describeFile(n *vfs.Node) string {
	switch {
	case n.IsDir():
		return "directory"
	case n.LinkTarget() != "":
		return "symbolic link to " + n.LinkTarget()
	case n.Executable() && strings.HasPrefix(n.Content(), "ELF"):
		return "ELF 64-bit LSB executable, x86-64, dynamically linked"
	case n.Executable():
		return "Bourne-Again shell script, ASCII text executable"
	case n.Content() == "":
		return "empty"
	}
	if desc, ok := fileTypes[strings.ToLower(path.Ext(n.Name()))]; ok {
		return desc
	}
	return "ASCII text"
}
