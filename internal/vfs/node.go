// Package vfs provides the read-only virtual filesystem behind the PurbayanOS shell.
//
// The tree is an immutable set of Nodes built once from a static description
// (see tree.go). Commands never mutate it; they resolve a user-supplied path
// against the current directory with ResolvePath and then fetch the node with
// Lookup. Keeping those two steps separate means every command sees exactly the
// same path semantics:
//
//   - ResolvePath: pure string normalization (., .., ~, relative/absolute)
//   - Lookup:      segment-by-segment walk from the root
//   - List:        directory listing with optional hidden entries
package vfs

import (
	"fmt"
	"strings"
)

// Kind distinguishes files from directories.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// String returns a human-readable kind name
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return "unknown"
	}
}

// Node is a single filesystem entry. A Node is either a file (has content, never
// children) or a directory (has children, never content). Fields are unexported
// so the tree cannot be changed after construction.
type Node struct {
	name        string
	kind        Kind
	permissions string
	size        int
	modified    string
	hidden      bool
	content     string
	children    []*Node
	executable  bool
	link        string
}

// DefaultModified is the timestamp shown for entries that don't set one.
const DefaultModified = "Jan 15 10:30"

// dirSize is the size reported for every directory, like ext4's block size.
const dirSize = 4096

// Option customizes a node at construction time.
type Option func(*Node)

// Modified overrides the displayed modification time.
func Modified(ts string) Option {
	return func(n *Node) { n.modified = ts }
}

// Hidden marks a node hidden even if its name does not start with a dot.
func Hidden() Option {
	return func(n *Node) { n.hidden = true }
}

// Perms overrides the permission string.
func Perms(p string) Option {
	return func(n *Node) { n.permissions = p }
}

// Link marks the node as a symlink to target. Nothing follows links; ls -l
// and file only display them.
func Link(target string) Option {
	return func(n *Node) {
		n.link = target
		n.permissions = "lrwxrwxrwx"
		n.size = len(target)
	}
}

// File creates a regular file node.
func File(name, content string, opts ...Option) *Node {
	n := &Node{
		name:        name,
		kind:        KindFile,
		permissions: "-rw-r--r--",
		size:        len(content),
		modified:    DefaultModified,
		hidden:      strings.HasPrefix(name, "."),
		content:     content,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Exec creates an executable file node.
func Exec(name, content string, opts ...Option) *Node {
	n := File(name, content, append([]Option{Perms("-rwxr-xr-x")}, opts...)...)
	n.executable = true
	return n
}

// Dir creates a directory node. It panics on duplicate child names: the tree is
// a static literal, so a duplicate is a programming error caught at startup.
func Dir(name string, children ...*Node) *Node {
	seen := make(map[string]bool, len(children))
	for _, c := range children {
		if seen[c.name] {
			panic(fmt.Sprintf("vfs: duplicate entry %q in directory %q", c.name, name))
		}
		seen[c.name] = true
	}
	return &Node{
		name:        name,
		kind:        KindDir,
		permissions: "drwxr-xr-x",
		size:        dirSize,
		modified:    DefaultModified,
		hidden:      strings.HasPrefix(name, "."),
		children:    children,
	}
}

func (n *Node) Name() string        { return n.name }
func (n *Node) Kind() Kind          { return n.kind }
func (n *Node) Permissions() string { return n.permissions }
func (n *Node) Size() int           { return n.size }
func (n *Node) Modified() string    { return n.modified }
func (n *Node) Hidden() bool        { return n.hidden }
func (n *Node) Content() string     { return n.content }
func (n *Node) Executable() bool    { return n.kind == KindFile && n.executable }
func (n *Node) LinkTarget() string  { return n.link }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n != nil && n.kind == KindDir }

// IsFile reports whether the node is a regular file.
func (n *Node) IsFile() bool { return n != nil && n.kind == KindFile }

// Children returns a copy of the directory's children in declaration order.
// Files have no children.
func (n *Node) Children() []*Node {
	if !n.IsDir() {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the named child of a directory.
func (n *Node) Child(name string) (*Node, bool) {
	if !n.IsDir() {
		return nil, false
	}
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// List returns the children of a directory, skipping hidden entries unless
// includeHidden is set. Files yield an empty slice.
func List(n *Node, includeHidden bool) []*Node {
	if !n.IsDir() {
		return []*Node{}
	}
	out := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if c.hidden && !includeHidden {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lookup walks the tree from root along an absolute path. It reports false if any
// segment is missing or if a file is indexed into.
func Lookup(root *Node, absPath string) (*Node, bool) {
	cur := root
	for _, seg := range strings.Split(absPath, "/") {
		if seg == "" {
			continue
		}
		if !cur.IsDir() {
			return nil, false
		}
		next, ok := cur.Child(seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// WalkFunc is called for each node visited by Walk with the node's absolute path.
// Returning false from a directory skips its subtree.
type WalkFunc func(path string, n *Node, depth int) bool

// Walk visits n and its descendants depth-first in declaration order. Hidden
// entries are always visited; callers filter them if needed.
func Walk(n *Node, path string, fn WalkFunc) {
	walk(n, path, 0, fn)
}

func walk(n *Node, path string, depth int, fn WalkFunc) {
	if !fn(path, n, depth) || !n.IsDir() {
		return
	}
	for _, c := range n.children {
		walk(c, Join(path, c.name), depth+1, fn)
	}
}
