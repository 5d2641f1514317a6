package flags

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func containsText(lines []shell.Line, s string) bool {
	for _, l := range lines {
		if strings.Contains(l.Text, s) {
			return true
		}
	}
	return false
}

func TestDetect_NewFlag(t *testing.T) {
	lines := []shell.Line{shell.Plain("# PURBAYAN{y0u_r3ad_th3_d0tf1l3s}")}

	det := Detect(lines, nil, newRand())
	assert.Equal(t, []int{1}, det.New)
	assert.True(t, containsText(det.Lines, "FLAG CAPTURED"))
	assert.True(t, containsText(det.Lines, "Hint for flag"))
	assert.False(t, containsText(det.Lines, "ALL 7 FLAGS"))
}

func TestDetect_AlreadyFound(t *testing.T) {
	lines := []shell.Line{shell.Plain("PURBAYAN{y0u_r3ad_th3_d0tf1l3s}")}

	det := Detect(lines, []int{1}, newRand())
	assert.Empty(t, det.New)
	assert.Empty(t, det.Lines)
}

func TestDetect_NoDoubleReport(t *testing.T) {
	lines := []shell.Line{
		shell.Plain("PURBAYAN{gr3p_th3_l0gs}"),
		shell.Plain("again PURBAYAN{gr3p_th3_l0gs} and PURBAYAN{gr3p_th3_l0gs}"),
		shell.Muted("PURBAYAN{n30f3tch_n1nj4}"),
	}

	det := Detect(lines, nil, newRand())
	assert.Equal(t, []int{5, 2}, det.New)
}

func TestDetect_IgnoresUnknownAndSnakeTokens(t *testing.T) {
	lines := []shell.Line{
		shell.Plain("PURBAYAN{not_a_real_flag}"),
		shell.Plain(SnakeToken),
		shell.Plain("purbayan{y0u_r3ad_th3_d0tf1l3s}"),
	}

	det := Detect(lines, nil, newRand())
	assert.Empty(t, det.New)
	assert.Empty(t, det.Lines)
}

func TestDetect_VictoryUsesUpdatedTotal(t *testing.T) {
	lines := []shell.Line{shell.Plain("PURBAYAN{r00t_0f_4ll_3v1l}")}

	det := Detect(lines, []int{1, 2, 3, 4, 5, 6}, newRand())
	assert.Equal(t, []int{7}, det.New)
	assert.True(t, containsText(det.Lines, "ALL 7 FLAGS CAPTURED"))
	assert.False(t, containsText(det.Lines, "Hint for flag"))
}

func TestDetect_NoVictoryForSubset(t *testing.T) {
	lines := []shell.Line{shell.Plain("PURBAYAN{r00t_0f_4ll_3v1l}")}

	det := Detect(lines, []int{1, 2, 3, 4, 5}, newRand())
	assert.Equal(t, []int{7}, det.New)
	assert.False(t, containsText(det.Lines, "ALL 7 FLAGS CAPTURED"))
	// the only missing flag is 6, so the hint must be for it
	assert.True(t, containsText(det.Lines, "Hint for flag #6"))
}

func TestTokensAreUnique(t *testing.T) {
	seen := map[int]string{}
	for tok, n := range tokens {
		require.NotEqual(t, Snake, n)
		_, dup := seen[n]
		require.False(t, dup, "flag %d has two tokens", n)
		seen[n] = tok
		assert.True(t, tokenPattern.MatchString(tok))
		assert.Equal(t, tok, Token(n))

		got, ok := Lookup(tok)
		assert.True(t, ok)
		assert.Equal(t, n, got)
	}
	assert.Len(t, seen, Total-1)
	assert.Equal(t, SnakeToken, Token(Snake))
}

func TestHint(t *testing.T) {
	rng := newRand()
	for n := 1; n <= Total; n++ {
		assert.Contains(t, hints[n], Hint(n, rng))
	}
	assert.Empty(t, Hint(0, rng))
	assert.Empty(t, Hint(8, rng))
}

func TestComplete(t *testing.T) {
	assert.True(t, Complete([]int{1, 2, 3, 4, 5, 6, 7}))
	assert.False(t, Complete([]int{1, 2, 3, 4, 5, 6}))
	assert.False(t, Complete([]int{1, 1, 2, 3, 4, 5, 6, 9}))
}
