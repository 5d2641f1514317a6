package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name   string
		cwd    string
		target string
		want   string
	}{
		{"dot", "/home/purbayan", ".", "/home/purbayan"},
		{"empty target", "/home/purbayan", "", "/home/purbayan"},
		{"relative", "/home/purbayan", "projects", "/home/purbayan/projects"},
		{"parent", "/home/purbayan", "..", "/home"},
		{"past root", "/home/purbayan", "../../../..", "/"},
		{"absolute", "/tmp", "/etc/hosts", "/etc/hosts"},
		{"absolute with dotdot", "/tmp", "/etc/../var/./log", "/var/log"},
		{"tilde", "/var", "~", HomePath},
		{"tilde subpath", "/var", "~/blog/", HomePath + "/blog"},
		{"double slashes", "/", "//usr///share//", "/usr/share"},
		{"root dotdot", "/", "..", "/"},
		{"relative cwd degrades", "home", "purbayan", "/home/purbayan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.cwd, tt.target))
		})
	}
}

func TestResolvePath_Normalized(t *testing.T) {
	cwds := []string{"/", "/home/purbayan", "/usr/share/man"}
	targets := []string{"", ".", "..", "~", "a/../b", "../../x/./y/", "/////", "~/..", "./.././../z"}

	for _, cwd := range cwds {
		for _, target := range targets {
			got := ResolvePath(cwd, target)
			require.True(t, strings.HasPrefix(got, "/"), "cwd=%q target=%q got=%q", cwd, target, got)
			if got != "/" {
				assert.False(t, strings.HasSuffix(got, "/"), "trailing slash in %q", got)
			}
			for _, seg := range strings.Split(got, "/")[1:] {
				if got == "/" {
					break
				}
				assert.NotContains(t, []string{"", ".", ".."}, seg, "bad segment in %q", got)
			}
		}
		assert.Equal(t, cwd, ResolvePath(cwd, "."))
		assert.Equal(t, HomePath, ResolvePath(cwd, "~"))
	}
}

func TestLookup(t *testing.T) {
	root := Root()

	node, ok := Lookup(root, "/home/purbayan/.bashrc")
	require.True(t, ok)
	assert.True(t, node.IsFile())
	assert.True(t, node.Hidden())
	assert.Contains(t, node.Content(), "PURBAYAN{y0u_r3ad_th3_d0tf1l3s}")

	node, ok = Lookup(root, "/")
	require.True(t, ok)
	assert.True(t, node.IsDir())

	_, ok = Lookup(root, "/nope")
	assert.False(t, ok)

	// indexing into a file
	_, ok = Lookup(root, "/etc/hostname/x")
	assert.False(t, ok)
}

func TestLookup_DotEqualsCwd(t *testing.T) {
	root := Root()
	for _, cwd := range []string{"/", "/home/purbayan", "/var/log", "/does/not/exist"} {
		a, okA := Lookup(root, ResolvePath(cwd, "."))
		b, okB := Lookup(root, cwd)
		assert.Equal(t, okB, okA)
		if okB {
			assert.Same(t, b, a)
		}
	}
}

func TestList(t *testing.T) {
	dir := Dir("d",
		File(".hidden", "x"),
		File("visible", "y"),
	)

	names := func(nodes []*Node) []string {
		var out []string
		for _, n := range nodes {
			out = append(out, n.Name())
		}
		return out
	}

	assert.Equal(t, []string{"visible"}, names(List(dir, false)))
	assert.Equal(t, []string{".hidden", "visible"}, names(List(dir, true)))
	assert.Empty(t, List(File("f", "x"), true))
}

func TestListChildrenRoundTrip(t *testing.T) {
	root := Root()
	Walk(root, "/", func(path string, n *Node, _ int) bool {
		if !n.IsDir() {
			return true
		}
		for _, child := range List(n, true) {
			got, ok := Lookup(root, ResolvePath(path, child.Name()))
			require.True(t, ok, "%s/%s", path, child.Name())
			assert.Same(t, child, got)
		}
		return true
	})
}

func TestNodeConstructors(t *testing.T) {
	f := File("notes.txt", "hello")
	assert.Equal(t, 5, f.Size())
	assert.Nil(t, f.Children())
	assert.False(t, f.Executable())

	x := Exec("run.sh", "#!/bin/sh\n")
	assert.True(t, x.Executable())
	assert.Equal(t, "-rwxr-xr-x", x.Permissions())

	l := Exec("sh", "ELF", Link("bash"))
	assert.Equal(t, "bash", l.LinkTarget())
	assert.Equal(t, "lrwxrwxrwx", l.Permissions())
	assert.Equal(t, 4, l.Size())

	d := Dir("d", f)
	assert.Empty(t, d.Content())
	assert.Equal(t, "drwxr-xr-x", d.Permissions())

	assert.Panics(t, func() { Dir("dup", File("a", ""), File("a", "")) })
}

func TestSplitAndDisplayPath(t *testing.T) {
	dir, name := Split("/home/purbayan/about.txt")
	assert.Equal(t, "/home/purbayan", dir)
	assert.Equal(t, "about.txt", name)

	dir, name = Split("/etc")
	assert.Equal(t, "/", dir)
	assert.Equal(t, "etc", name)

	assert.Equal(t, "~", DisplayPath(HomePath))
	assert.Equal(t, "~/blog", DisplayPath(HomePath+"/blog"))
	assert.Equal(t, "/etc", DisplayPath("/etc"))
}
