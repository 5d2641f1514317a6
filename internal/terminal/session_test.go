package terminal

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/purbayanos/internal/flags"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/snake"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	return New(state.NewMemory(), WithRand(rand.New(rand.NewSource(1))))
}

func joined(lines []shell.Line) string {
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

func TestSession_ExecuteRecordsHistory(t *testing.T) {
	s := newSession(t)

	s.Execute("pwd")
	s.Execute("   ")
	s.Execute("nosuchcmd")

	assert.Equal(t, []string{"pwd", "nosuchcmd"}, s.Store().History())

	res := s.Execute("history")
	assert.Contains(t, joined(res.Lines), "history")
}

func TestSession_ExecuteCapturesFlag(t *testing.T) {
	s := newSession(t)

	res := s.Execute("cat .bashrc")
	require.True(t, s.Store().HasFlag(1))
	out := joined(res.Lines)
	assert.Contains(t, out, "FLAG CAPTURED: #1")
	assert.Contains(t, out, "Progress: 1/7")

	// Celebration comes after the command's own output.
	idx := strings.Index(out, "FLAG CAPTURED")
	assert.Greater(t, idx, strings.Index(out, flags.Token(1)))

	again := s.Execute("cat .bashrc")
	assert.NotContains(t, joined(again.Lines), "FLAG CAPTURED")
	assert.Equal(t, []int{1}, s.Store().FoundFlags())
}

func TestSession_ExecuteCapturesSeveralFlags(t *testing.T) {
	s := newSession(t)

	res := s.Execute("echo " + flags.Token(3) + " " + flags.Token(4))
	out := joined(res.Lines)
	assert.Contains(t, out, "FLAG CAPTURED: #3")
	assert.Contains(t, out, "FLAG CAPTURED: #4")
	assert.Equal(t, []int{3, 4}, s.Store().FoundFlags())
}

func TestSession_SnakeTokenIsNotScanned(t *testing.T) {
	s := newSession(t)

	s.Execute("echo " + flags.SnakeToken)
	assert.False(t, s.Store().HasFlag(flags.Snake))
}

func TestSession_AwardSnakeFlagOnce(t *testing.T) {
	s := newSession(t)

	first := s.AwardSnakeFlag()
	require.NotNil(t, first)
	assert.Contains(t, joined(first), flags.SnakeToken)
	assert.True(t, s.Store().HasFlag(flags.Snake))

	assert.Nil(t, s.AwardSnakeFlag())
}

func TestSession_AwardSnakeFlagCompletes(t *testing.T) {
	s := newSession(t)
	for _, n := range []int{1, 2, 3, 4, 5, 7} {
		s.Store().CaptureFlag(n)
	}

	lines := s.AwardSnakeFlag()
	assert.Contains(t, joined(lines), "ALL 7 FLAGS CAPTURED")
	assert.True(t, flags.Complete(s.Store().FoundFlags()))
}

func TestSession_NewSnake(t *testing.T) {
	s := newSession(t)

	var frames int
	var notices [][]shell.Line
	eng := s.NewSnake(SnakeHost{
		Frame:  func([]string) { frames++ },
		Notice: func(lines []shell.Line) { notices = append(notices, lines) },
	},
		snake.WithGrid(5, 1),
		snake.WithThreshold(1),
		snake.WithRand(rand.New(rand.NewSource(2))),
	)

	// A single row with the snake filling three of five cells: it eats at
	// least once and then hits the wall within a few ticks.
	eng.Reset()
	for i := 0; i < 6 && eng.Phase() == snake.Running; i++ {
		eng.Advance()
	}

	require.Equal(t, snake.GameOver, eng.Phase())
	assert.GreaterOrEqual(t, eng.Score(), 1)
	assert.Equal(t, eng.HighScore(), s.Store().HighScore())
	assert.True(t, s.Store().HasFlag(flags.Snake))
	require.Len(t, notices, 1)
	assert.Contains(t, joined(notices[0]), flags.SnakeToken)
	assert.Positive(t, frames)

	// A second game reaching the threshold does not announce again.
	eng.Reset()
	for i := 0; i < 6 && eng.Phase() == snake.Running; i++ {
		eng.Advance()
	}
	assert.Len(t, notices, 1)
}

func TestSession_PromptFollowsCwd(t *testing.T) {
	s := newSession(t)
	assert.Equal(t, "purbayan@purbayan-os:~$ ", s.Prompt())

	s.Execute("cd /etc")
	assert.Equal(t, "purbayan@purbayan-os:/etc$ ", s.Prompt())
}

func TestSession_Complete(t *testing.T) {
	s := newSession(t)

	c := s.Complete("neof")
	assert.Equal(t, []string{"neofetch"}, c.Matches)

	c = s.Complete("cat .bas")
	assert.Equal(t, []string{".bashrc"}, c.Matches)

	s.Execute("cd projects")
	c = s.Complete("cat g")
	assert.Equal(t, []string{"gitpulse.md"}, c.Matches)
}

func TestSession_Welcome(t *testing.T) {
	s := newSession(t)
	out := joined(s.Welcome())
	assert.Contains(t, out, "Welcome to PurbayanOS")
	assert.Contains(t, out, "help")
}

func TestSession_ResetClearsOldPwd(t *testing.T) {
	s := newSession(t)
	s.Execute("cd /etc")
	s.Execute("cd /var")
	s.Reset()

	res := s.Execute("cd -")
	assert.Equal(t, "cd: OLDPWD not set", joined(res.Lines))
}
