// Package flags implements the capture-the-flag hunt hidden in the terminal.
//
// There are seven flags. Six are secret tokens of the form PURBAYAN{...} that
// show up in command output; Detect scans output for them. Flag 6 has no
// scannable token: the Snake game awards it when a score threshold is reached.
package flags

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
)

// Total is the number of flags in the hunt.
const Total = 7

// Snake is the flag awarded by the Snake game.
const Snake = 6

// SnakeThreshold is the score that awards the Snake flag.
const SnakeThreshold = 10

// SnakeToken is shown when the Snake flag is awarded. It is never scanned for.
const SnakeToken = "PURBAYAN{sn4k3_ch4rm3r}"

// tokens maps every scannable secret to its flag number.
var tokens = map[string]int{
	"PURBAYAN{y0u_r3ad_th3_d0tf1l3s}":   1,
	"PURBAYAN{n30f3tch_n1nj4}":          2,
	"PURBAYAN{f0ll0w_th3_wh1t3_r4bb1t}": 3,
	"PURBAYAN{sh4ll_w3_pl4y_4_g4m3}":    4,
	"PURBAYAN{gr3p_th3_l0gs}":           5,
	"PURBAYAN{r00t_0f_4ll_3v1l}":        7,
}

var tokenPattern = regexp.MustCompile(`PURBAYAN\{[^}]+\}`)

// Token returns the secret string for flag n.
func Token(n int) string {
	if n == Snake {
		return SnakeToken
	}
	for tok, num := range tokens {
		if num == n {
			return tok
		}
	}
	return ""
}

// Lookup returns the flag number for an exact token.
func Lookup(token string) (int, bool) {
	n, ok := tokens[token]
	return n, ok
}

// Names gives each flag a short title for the status panel.
var Names = [Total + 1]string{
	1: "Dotfile Diver",
	2: "Sharp Eyes",
	3: "White Rabbit",
	4: "Global Thermonuclear War",
	5: "Log Detective",
	6: "Snake Charmer",
	7: "Root of All Evil",
}

// hints is the hint bank. Hint picks one at random per flag.
var hints = [Total + 1][]string{
	1: {
		"Real users customize their shell. Where would that live?",
		"Some files only show up with 'ls -a'.",
		"Your home directory has more in it than meets the eye.",
	},
	2: {
		"Show off your system specs like every Linux user does.",
		"Read every line of output, even the dim ones.",
		"A certain command prints a logo and your OS info.",
	},
	3: {
		"Follow the white rabbit. Which host is it hiding on?",
		"Check /etc/hosts and think about Neo.",
		"ssh might take you somewhere unexpected.",
	},
	4: {
		"Shall we play a game? Joshua is waiting.",
		"WarGames (1983). The computer had a name.",
		"/etc/hosts lists a famous military computer.",
	},
	5: {
		"Logs get rotated. Old ones hide.",
		"'find / -name \"*.1\"' or 'grep -r' can dig deep.",
		"Archived logs in /var/log might mention something.",
	},
	6: {
		"Play a game. Get good at it.",
		"Ten is a nice round number of snacks.",
		"The snake man page says something happens at some score.",
	},
	7: {
		"The most dangerous command in Unix. Try it here, it's safe.",
		"What would a sysadmin never type with sudo?",
		"rm, -rf, and the root directory walk into a bar...",
	},
}

// Hint returns a random hint for flag n.
func Hint(n int, rng *rand.Rand) string {
	if n < 1 || n > Total {
		return ""
	}
	bank := hints[n]
	return bank[rng.Intn(len(bank))]
}

// Detection is the outcome of scanning one command's output.
type Detection struct {
	New   []int        // newly found flags, in order of first appearance
	Lines []shell.Line // lines to append after the command's own output
}

// Detect scans lines for secret tokens. Flags already in found, unknown tokens
// and repeats within this pass are ignored. When at least one new flag is
// found, Lines holds a celebration per flag, a hint for a random flag that is
// still missing (if any) and, when the updated total reaches Total, the
// victory banner.
func Detect(lines []shell.Line, found []int, rng *rand.Rand) Detection {
	have := make(map[int]bool, Total)
	for _, f := range found {
		have[f] = true
	}

	var det Detection
	for _, line := range lines {
		for _, tok := range tokenPattern.FindAllString(line.Text, -1) {
			n, ok := Lookup(tok)
			if !ok || have[n] {
				continue
			}
			have[n] = true
			det.New = append(det.New, n)
		}
	}
	if len(det.New) == 0 {
		return det
	}

	for _, n := range det.New {
		det.Lines = append(det.Lines, Celebrate(n, len(have))...)
	}
	det.Lines = append(det.Lines, Followup(have, rng)...)
	return det
}

// Celebrate returns the lines announcing flag n; total is the updated count.
func Celebrate(n, total int) []shell.Line {
	return []shell.Line{
		shell.Plain(""),
		shell.Success(fmt.Sprintf("🚩 FLAG CAPTURED: #%d %s", n, Names[n])),
		shell.Success(fmt.Sprintf("   %s", Token(n))),
		shell.Info(fmt.Sprintf("   Progress: %d/%d flags found", total, Total)),
	}
}

// Followup returns a hint toward a missing flag, or the victory banner when
// have already holds every flag.
func Followup(have map[int]bool, rng *rand.Rand) []shell.Line {
	var missing []int
	for n := 1; n <= Total; n++ {
		if !have[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return Victory()
	}
	n := missing[rng.Intn(len(missing))]
	return []shell.Line{
		shell.Muted(fmt.Sprintf("   Hint for flag #%d: %s", n, Hint(n, rng))),
	}
}

// Complete reports whether every flag is present.
func Complete(found []int) bool {
	have := make(map[int]bool, Total)
	for _, f := range found {
		if f >= 1 && f <= Total {
			have[f] = true
		}
	}
	return len(have) == Total
}

// Victory returns the all-flags banner.
func Victory() []shell.Line {
	width := 44
	bar := strings.Repeat("═", width)
	center := func(s string) string {
		pad := width - len([]rune(s))
		left := pad / 2
		return "║" + strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left) + "║"
	}
	return []shell.Line{
		shell.Plain(""),
		shell.Warning("╔" + bar + "╗"),
		shell.Warning(center("ALL 7 FLAGS CAPTURED")),
		shell.Warning(center("You are a true PurbayanOS hacker.")),
		shell.Warning(center("Now go hire me: open email")),
		shell.Warning("╚" + bar + "╝"),
	}
}
