package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"ls -la /home", []string{"ls", "-la", "/home"}},
		{`echo "a b" c`, []string{"echo", "a b", "c"}},
		{`echo "a`, []string{"echo", "a"}},
		{`echo 'single quoted'`, []string{"echo", "single quoted"}},
		{"  spaced\t\tout  ", []string{"spaced", "out"}},
		{`say ""`, []string{"say", ""}},
		{`mixed"quo ted"word`, []string{"mixedquo tedword"}},
		{`echo "it's"`, []string{"echo", "it's"}},
		{"", nil},
		{"   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, shell.Tokenize(tt.input))
		})
	}
}

func newRegistry() *shell.Registry {
	reg := shell.NewRegistry()
	reg.Register("hello", func(args []string, ctx shell.Context) shell.Result {
		return shell.Output(shell.Plain("hello " + ctx.Cwd()))
	}, "Say hello", "hello")
	reg.Register("args", func(args []string, ctx shell.Context) shell.Result {
		return shell.Output(shell.Lines(shell.ColorDefault, args...)...)
	}, "Echo arguments one per line", "args [word...]")
	reg.Register("boom", func(args []string, ctx shell.Context) shell.Result {
		var m map[string]int
		m["x"]++
		return shell.Result{}
	}, "Panic", "boom")
	return reg
}

func TestDispatch_Empty(t *testing.T) {
	reg := newRegistry()
	ctx := state.NewMemory()

	for _, in := range []string{"", "   ", "\t"} {
		res := shell.Dispatch(reg, in, ctx)
		assert.Empty(t, res.Lines)
		assert.False(t, res.ClearScreen)
		assert.False(t, res.Exit)
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	res := shell.Dispatch(newRegistry(), "foo bar", state.NewMemory())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "foo: command not found", res.Lines[0].Text)
	assert.Equal(t, shell.ColorError, res.Lines[0].Color)
}

func TestDispatch_PassesArgsAndContext(t *testing.T) {
	reg := newRegistry()
	ctx := state.NewMemory()

	res := shell.Dispatch(reg, "  hello  ", ctx)
	assert.Equal(t, "hello "+vfs.HomePath, res.Text())

	res = shell.Dispatch(reg, `args one "two three" 'four`, ctx)
	assert.Equal(t, "one\ntwo three\nfour", res.Text())
}

func TestDispatch_RecoversPanics(t *testing.T) {
	var res shell.Result
	assert.NotPanics(t, func() {
		res = shell.Dispatch(newRegistry(), "boom", state.NewMemory())
	})
	require.Len(t, res.Lines, 1)
	assert.Equal(t, shell.ColorError, res.Lines[0].Color)
}

func TestRegistry_OverwriteForAliases(t *testing.T) {
	reg := newRegistry()
	hello, _ := reg.Lookup("hello")
	reg.Register("hi", hello.Handler, hello.Description, "hi")
	reg.Register("hello", hello.Handler, "Say hello again", "hello")

	e, ok := reg.Lookup("hello")
	require.True(t, ok)
	assert.Equal(t, "Say hello again", e.Description)
	assert.True(t, reg.Has("hi"))
	assert.Equal(t, []string{"args", "boom", "hello", "hi"}, reg.Names())
	assert.Equal(t, 4, reg.Len())
}

func TestComplete_CommandNames(t *testing.T) {
	reg := newRegistry()
	reg.Register("help", nil, "", "")

	c := shell.Complete(reg, vfs.Root(), vfs.HomePath, "he")
	assert.Equal(t, []string{"hello", "help"}, c.Matches)
	assert.Equal(t, "hel", c.Common)

	c = shell.Complete(reg, vfs.Root(), vfs.HomePath, "zz")
	assert.Empty(t, c.Matches)
	assert.Equal(t, "zz", c.Common)
}

func TestComplete_Paths(t *testing.T) {
	reg := newRegistry()
	root := vfs.Root()

	c := shell.Complete(reg, root, vfs.HomePath, "cat pro")
	assert.Equal(t, []string{"projects/"}, c.Matches)

	c = shell.Complete(reg, root, vfs.HomePath, "cat projects/g")
	assert.Equal(t, []string{"projects/gitpulse.md"}, c.Matches)

	c = shell.Complete(reg, root, "/", "ls /et")
	assert.Equal(t, []string{"/etc/"}, c.Matches)

	// hidden entries only when asked for
	c = shell.Complete(reg, root, vfs.HomePath, "cat .ba")
	assert.Equal(t, []string{".bashrc"}, c.Matches)
	c = shell.Complete(reg, root, vfs.HomePath, "cat ")
	assert.NotContains(t, c.Matches, ".bashrc")

	c = shell.Complete(reg, root, vfs.HomePath, "cat nowhere/x")
	assert.Empty(t, c.Matches)
}

func TestCompleter_Readline(t *testing.T) {
	reg := newRegistry()
	comp := shell.NewCompleter(reg, vfs.Root(), func() string { return vfs.HomePath })

	line := []rune("hell")
	out, n := comp.Do(line, len(line))
	assert.Equal(t, 4, n)
	require.Len(t, out, 1)
	assert.Equal(t, "o ", string(out[0]))

	line = []rune("cat res")
	out, n = comp.Do(line, len(line))
	assert.Equal(t, 3, n)
	require.Len(t, out, 1)
	assert.Equal(t, "ume.txt", string(out[0]))
}

func TestResultText(t *testing.T) {
	res := shell.Output(shell.Plain("a"), shell.Err("b"), shell.Muted(""))
	assert.Equal(t, "a\nb\n", res.Text())
	assert.Equal(t, "", shell.Result{}.Text())
	assert.Equal(t, "error", shell.ColorError.String())
}
