package commands

// Text layout helpers shared by the commands: word wrapping, the cowsay
// bubble, the figlet font and the box-drawn panels used by flags.

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// wrap breaks text into lines no wider than width display columns, splitting
// on whitespace. Words wider than width are cut.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur string
	for _, w := range words {
		for runewidth.StringWidth(w) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			head := runewidth.Truncate(w, width, "")
			lines = append(lines, head)
			w = w[len(head):]
		}
		switch {
		case cur == "":
			cur = w
		case runewidth.StringWidth(cur)+1+runewidth.StringWidth(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// padRight pads s with spaces to width display columns.
func padRight(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// cowsayWidth is where cowsay wraps its message.
const cowsayWidth = 40

const cow = `        \   ^__^
         \  (oo)\_______
            (__)\       )\/\
                ||----w |
                ||     ||`

// cowsay builds the speech bubble and cow for text. The bubble is as wide as
// the longest wrapped line; a single line uses < > and longer messages use
// / \ | | borders.
func cowsay(text string) []string {
	lines := wrap(text, cowsayWidth)
	width := 0
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > width {
			width = w
		}
	}

	out := []string{" " + strings.Repeat("_", width+2)}
	if len(lines) == 1 {
		out = append(out, "< "+padRight(lines[0], width)+" >")
	} else {
		for i, l := range lines {
			left, right := "|", "|"
			switch i {
			case 0:
				left, right = "/", "\\"
			case len(lines) - 1:
				left, right = "\\", "/"
			}
			out = append(out, left+" "+padRight(l, width)+" "+right)
		}
	}
	out = append(out, " "+strings.Repeat("-", width+2))
	return append(out, strings.Split(cow, "\n")...)
}

// glyphHeight is the number of rows in every figlet glyph.
const glyphHeight = 5

// blankGlyph renders characters the font does not know.
var blankGlyph = [glyphHeight]string{"     ", "     ", "     ", "     ", "     "}

// font is a 5x5 block font for figlet.
var font = map[rune][glyphHeight]string{
	'A': {" ### ", "#   #", "#####", "#   #", "#   #"},
	'B': {"#### ", "#   #", "#### ", "#   #", "#### "},
	'C': {" ####", "#    ", "#    ", "#    ", " ####"},
	'D': {"#### ", "#   #", "#   #", "#   #", "#### "},
	'E': {"#####", "#    ", "#### ", "#    ", "#####"},
	'F': {"#####", "#    ", "#### ", "#    ", "#    "},
	'G': {" ####", "#    ", "#  ##", "#   #", " ### "},
	'H': {"#   #", "#   #", "#####", "#   #", "#   #"},
	'I': {"#####", "  #  ", "  #  ", "  #  ", "#####"},
	'J': {"#####", "   # ", "   # ", "#  # ", " ##  "},
	'K': {"#   #", "#  # ", "###  ", "#  # ", "#   #"},
	'L': {"#    ", "#    ", "#    ", "#    ", "#####"},
	'M': {"#   #", "## ##", "# # #", "#   #", "#   #"},
	'N': {"#   #", "##  #", "# # #", "#  ##", "#   #"},
	'O': {" ### ", "#   #", "#   #", "#   #", " ### "},
	'P': {"#### ", "#   #", "#### ", "#    ", "#    "},
	'Q': {" ### ", "#   #", "# # #", "#  # ", " ## #"},
	'R': {"#### ", "#   #", "#### ", "#  # ", "#   #"},
	'S': {" ####", "#    ", " ### ", "    #", "#### "},
	'T': {"#####", "  #  ", "  #  ", "  #  ", "  #  "},
	'U': {"#   #", "#   #", "#   #", "#   #", " ### "},
	'V': {"#   #", "#   #", "#   #", " # # ", "  #  "},
	'W': {"#   #", "#   #", "# # #", "## ##", "#   #"},
	'X': {"#   #", " # # ", "  #  ", " # # ", "#   #"},
	'Y': {"#   #", " # # ", "  #  ", "  #  ", "  #  "},
	'Z': {"#####", "   # ", "  #  ", " #   ", "#####"},
	'0': {" ### ", "#  ##", "# # #", "##  #", " ### "},
	'1': {"  #  ", " ##  ", "  #  ", "  #  ", " ### "},
	'2': {" ### ", "#   #", "  ## ", " #   ", "#####"},
	'3': {"#### ", "    #", " ### ", "    #", "#### "},
	'4': {"#   #", "#   #", "#####", "    #", "    #"},
	'5': {"#####", "#    ", "#### ", "    #", "#### "},
	'6': {" ### ", "#    ", "#### ", "#   #", " ### "},
	'7': {"#####", "    #", "   # ", "  #  ", "  #  "},
	'8': {" ### ", "#   #", " ### ", "#   #", " ### "},
	'9': {" ### ", "#   #", " ####", "    #", " ### "},
	'!': {"  #  ", "  #  ", "  #  ", "     ", "  #  "},
	'?': {" ### ", "#   #", "  ## ", "     ", "  #  "},
	'.': {"     ", "     ", "     ", "     ", "  #  "},
	'-': {"     ", "     ", "#####", "     ", "     "},
	' ': blankGlyph,
}

// figlet renders text in the block font. Letters are upper-cased; unknown
// characters become blank cells.
func figlet(text string) []string {
	var rows [glyphHeight]strings.Builder
	for i, r := range text {
		g, ok := font[unicode.ToUpper(r)]
		if !ok {
			g = blankGlyph
		}
		for row := range rows {
			if i > 0 {
				rows[row].WriteByte(' ')
			}
			rows[row].WriteString(g[row])
		}
	}
	out := make([]string, glyphHeight)
	for i := range rows {
		out[i] = strings.TrimRight(rows[i].String(), " ")
	}
	return out
}

// Box panels are drawn with double lines at a fixed inner width.

func boxTop(width int) string {
	return "╔" + strings.Repeat("═", width) + "╗"
}

func boxDivider(width int) string {
	return "╠" + strings.Repeat("═", width) + "╣"
}

func boxBottom(width int) string {
	return "╚" + strings.Repeat("═", width) + "╝"
}

// boxRow frames text, truncating it if it does not fit.
func boxRow(text string, width int) string {
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return "║" + padRight(text, width) + "║"
}
