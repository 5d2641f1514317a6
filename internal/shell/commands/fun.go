package commands

// Fun commands. None of them read the filesystem.

import (
	"fmt"
	"strings"

	"github.com/PPRAMANIK62/purbayanos/internal/shell"
)

// CowsayCmd makes a cow say something.
// Usage: cowsay <text>
func (m *Module) CowsayCmd() shell.Entry {
	return shell.Entry{
		Name:        "cowsay",
		Usage:       "cowsay <text>",
		Description: "Make a cow say something",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				text = "Moo. Try 'cowsay hello'."
			}
			return shell.Output(shell.Lines(shell.ColorDefault, cowsay(text)...)...)
		},
	}
}

var fortunes = []string{
	"There are 10 kinds of people: those who understand binary and those who don't.",
	"It works on my machine.",
	"A good programmer looks both ways before crossing a one-way street.",
	"The best code is no code at all.",
	"Weeks of coding can save you hours of planning.",
	"Talk is cheap. Show me the code. -- Linus Torvalds",
	"Simplicity is prerequisite for reliability. -- Edsger W. Dijkstra",
	"Clear is better than clever. -- Go Proverbs",
	"You will find a hidden flag where you least expect it.",
	"Have you tried turning it off and on again?",
}

// FortuneCmd prints a random fortune.
// Usage: fortune
func (m *Module) FortuneCmd() shell.Entry {
	return shell.Entry{
		Name:        "fortune",
		Usage:       "fortune",
		Description: "Print a random adage",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Output(shell.Plain(fortunes[m.rng.Intn(len(fortunes))]))
		},
	}
}

// FigletCmd renders text in large block letters.
// Usage: figlet <text>
func (m *Module) FigletCmd() shell.Entry {
	return shell.Entry{
		Name:        "figlet",
		Usage:       "figlet <text>",
		Description: "Render text in large letters",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return shell.Error("usage: figlet <text>")
			}
			return shell.Output(shell.Lines(shell.ColorInfo, figlet(strings.Join(args, " "))...)...)
		},
	}
}

var train = []string{
	`      ====        ________                ___________`,
	`  _D _|  |_______/        \__I_I_____===__|_________|`,
	`   |(_)---  |   H\________/ |   |        =|___ ___|`,
	`   /     |  |   H  |  |     |   |         ||_| |_||`,
	`  |      |  |   H  |__--------------------| [___] |`,
	`  | ________|___H__/__|_____/[][]~\_______|       |`,
	`  |/ |   |-----------I_____I [][] []  D   |=======|_`,
	`__/ =| o |=-~~\  /~~\  /~~\  /~~\ ____Y___________|__`,
	` |/-=|___|=    ||    ||    ||    |_____/~\___/`,
	`  \_/      \O=====O=====O=====O_/      \_/`,
}

// SlCmd punishes a mistyped ls.
// Usage: sl
func (m *Module) SlCmd() shell.Entry {
	return shell.Entry{
		Name:        "sl",
		Usage:       "sl",
		Description: "Steam locomotive (you meant ls)",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			out := shell.Lines(shell.ColorDefault, train...)
			return shell.Output(append(out, shell.Plain(""), shell.Muted("choo choo. did you mean 'ls'?"))...)
		},
	}
}

// rainbow is the color cycle used by lolcat.
var rainbow = []shell.Color{
	shell.ColorError,
	shell.ColorWarning,
	shell.ColorSuccess,
	shell.ColorInfo,
	shell.ColorMuted,
}

var lolcatDefault = []string{
	"Taste the rainbow!",
	"Every line a different color,",
	"because why not.",
	"Try: lolcat one two three",
}

// LolcatCmd prints each argument on its own line, cycling colors.
// Usage: lolcat [text...]
func (m *Module) LolcatCmd() shell.Entry {
	return shell.Entry{
		Name:        "lolcat",
		Usage:       "lolcat [text...]",
		Description: "Rainbow text",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			texts := args
			if len(texts) == 0 {
				texts = lolcatDefault
			}
			out := make([]shell.Line, len(texts))
			for i, t := range texts {
				out[i] = shell.Line{Text: t, Color: rainbow[i%len(rainbow)]}
			}
			return shell.Output(out...)
		},
	}
}

const rickrollURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// RickrollCmd never gives you up.
// Usage: rickroll
func (m *Module) RickrollCmd() shell.Entry {
	return shell.Entry{
		Name:        "rickroll",
		Usage:       "rickroll",
		Description: "You know the rules, and so do I",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Result{
				Lines: []shell.Line{
					shell.Warning("Never gonna give you up,"),
					shell.Warning("never gonna let you down..."),
				},
				OpenURL: rickrollURL,
			}
		},
	}
}

// Matrix rain dimensions.
const (
	matrixRows = 16
	matrixCols = 48
)

const latin = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MatrixCmd prints a screen of digital rain.
// Usage: matrix
// Each character is katakana with probability 0.5, a Latin letter with
// probability 0.3 and a digit otherwise.
func (m *Module) MatrixCmd() shell.Entry {
	return shell.Entry{
		Name:        "matrix",
		Usage:       "matrix",
		Description: "Digital rain",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			out := make([]shell.Line, matrixRows)
			for row := range out {
				var b strings.Builder
				for col := 0; col < matrixCols; col++ {
					b.WriteRune(m.matrixRune())
				}
				out[row] = shell.Success(b.String())
			}
			return shell.Output(out...)
		},
	}
}

func (m *Module) matrixRune() rune {
	switch p := m.rng.Float64(); {
	case p < 0.5:
		return rune(0x30A0 + m.rng.Intn(96))
	case p < 0.8:
		return rune(latin[m.rng.Intn(len(latin))])
	default:
		return rune('0' + m.rng.Intn(10))
	}
}

// SnakeCmd starts the Snake game.
// Usage: snake
func (m *Module) SnakeCmd() shell.Entry {
	return shell.Entry{
		Name:        "snake",
		Usage:       "snake",
		Description: "Play Snake",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Result{
				Lines: []shell.Line{
					shell.Success("Starting snake..."),
					shell.Muted(fmt.Sprintf("arrows/wasd/hjkl to move, q to quit. High score: %d", ctx.HighScore())),
				},
				StartGame: shell.GameSnake,
			}
		},
	}
}

var coffeeCup = []string{
	`      ( (`,
	`       ) )`,
	`    ........`,
	`    |      |]`,
	`    \      /`,
	"     `----'",
}

// CoffeeCmd brews coffee.
// Usage: coffee
func (m *Module) CoffeeCmd() shell.Entry {
	return shell.Entry{
		Name:        "coffee",
		Usage:       "coffee",
		Description: "Brew a cup of coffee",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			out := shell.Lines(shell.ColorWarning, coffeeCup...)
			return shell.Output(append(out,
				shell.Plain(""),
				shell.Err("Error 418: I'm a teapot."),
				shell.Muted("(refusing to brew coffee, as per RFC 2324)"),
			)...)
		},
	}
}

// HackCmd pretends to hack something.
// Usage: hack [target]
func (m *Module) HackCmd() shell.Entry {
	return shell.Entry{
		Name:        "hack",
		Usage:       "hack [target]",
		Description: "Hack the planet",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			target := "the mainframe"
			if len(args) > 0 {
				target = strings.Join(args, " ")
			}
			ip := fmt.Sprintf("%d.%d.%d.%d", 10+m.rng.Intn(200), m.rng.Intn(256), m.rng.Intn(256), 1+m.rng.Intn(254))
			return shell.Output(
				shell.Success("Initializing hack sequence on "+target+"..."),
				shell.Plain("[*] Resolving target... "+ip),
				shell.Plain("[*] Bypassing firewall........... done"),
				shell.Plain("[*] Decrypting RSA-4096 keys..... done"),
				shell.Plain("[*] Injecting payload............ done"),
				shell.Plain(fmt.Sprintf("[*] Downloading %d TB of data.... done", 1+m.rng.Intn(9))),
				shell.Plain("[*] Covering tracks.............. done"),
				shell.Plain(""),
				shell.Success("ACCESS GRANTED"),
				shell.Plain(""),
				shell.Muted("(just kidding. real hackers read the dotfiles.)"),
			)
		},
	}
}
