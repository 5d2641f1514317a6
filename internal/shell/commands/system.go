package commands

// System information commands. Most output is fixed; date and uptime read the
// module clock and echo/env read the live session.

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PPRAMANIK62/purbayanos/internal/flags"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/vfs"
)

const (
	username = "purbayan"
	hostname = "purbayan-os"
	osName   = "PurbayanOS"
	kernel   = "6.1.0-purbayan"
	machine  = "x86_64"
)

// builtins are answered by `which` and `type` as shell built-ins rather than
// binaries in /usr/bin.
var builtins = map[string]bool{
	"cd": true, "echo": true, "pwd": true, "export": true, "type": true,
	"history": true, "exit": true, "logout": true, "help": true,
}

// WhoamiCmd prints the current user.
// Usage: whoami
func (m *Module) WhoamiCmd() shell.Entry {
	return shell.Entry{
		Name:        "whoami",
		Usage:       "whoami",
		Description: "Print the current user",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Output(shell.Plain(username))
		},
	}
}

// HostnameCmd prints the machine name.
// Usage: hostname
func (m *Module) HostnameCmd() shell.Entry {
	return shell.Entry{
		Name:        "hostname",
		Usage:       "hostname",
		Description: "Print the system hostname",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Output(shell.Plain(hostname))
		},
	}
}

// UnameCmd prints system information.
// Usage: uname [-a|-s|-n|-r|-m]
func (m *Module) UnameCmd() shell.Entry {
	return shell.Entry{
		Name:        "uname",
		Usage:       "uname [-a] [-s] [-n] [-r] [-m]",
		Description: "Print system information",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("uname")
			all := fs.BoolP("all", "a", false, "print all information")
			fields := []struct {
				on    *bool
				value string
			}{
				{fs.BoolP("kernel-name", "s", false, "print the kernel name"), osName},
				{fs.BoolP("nodename", "n", false, "print the network node hostname"), hostname},
				{fs.BoolP("kernel-release", "r", false, "print the kernel release"), kernel},
				{fs.BoolP("machine", "m", false, "print the machine hardware name"), machine},
			}
			if err := fs.Parse(args); err != nil {
				return optionError("uname", err)
			}
			if *all {
				return shell.Output(shell.Plain(fmt.Sprintf("%s %s %s #1 SMP PREEMPT_DYNAMIC %s GNU/Linux",
					osName, hostname, kernel, machine)))
			}
			var parts []string
			for _, f := range fields {
				if *f.on {
					parts = append(parts, f.value)
				}
			}
			if len(parts) == 0 {
				parts = []string{osName}
			}
			return shell.Output(shell.Plain(strings.Join(parts, " ")))
		},
	}
}

// DateCmd prints the current date and time.
// Usage: date
func (m *Module) DateCmd() shell.Entry {
	return shell.Entry{
		Name:        "date",
		Usage:       "date",
		Description: "Print the date and time",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Output(shell.Plain(m.now().Format("Mon Jan _2 15:04:05 MST 2006")))
		},
	}
}

// UptimeCmd prints how long this session has been running.
// Usage: uptime
func (m *Module) UptimeCmd() shell.Entry {
	return shell.Entry{
		Name:        "uptime",
		Usage:       "uptime",
		Description: "Show how long the session has been up",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			now := m.now()
			return shell.Output(shell.Plain(fmt.Sprintf(" %s up %s,  1 user,  load average: 0.42, 0.37, 0.31",
				now.Format("15:04:05"), formatUptime(now.Sub(m.started)))))
		},
	}
}

// formatUptime renders a duration the way uptime does: "5 min", "1:07",
// "2 days, 3:04".
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	var s string
	switch {
	case hours == 0 && days == 0:
		s = fmt.Sprintf("%d min", mins)
	default:
		s = fmt.Sprintf("%d:%02d", hours, mins)
	}
	if days > 0 {
		s = plural(days, "day", "days") + ", " + s
	}
	return s
}

// ClearCmd clears the screen.
// Usage: clear
func (m *Module) ClearCmd() shell.Entry {
	return shell.Entry{
		Name:        "clear",
		Usage:       "clear",
		Description: "Clear the terminal screen",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			return shell.Result{ClearScreen: true}
		},
	}
}

var varPattern = regexp.MustCompile(`\$\{(\w+)\}|\$(\w+)`)

// EchoCmd prints its arguments with $VAR and ${VAR} expanded.
// Usage: echo [-n] [text...]
// Unknown variables expand to nothing. $PWD is the live working directory.
func (m *Module) EchoCmd() shell.Entry {
	return shell.Entry{
		Name:        "echo",
		Usage:       "echo [-n] [text...]",
		Description: "Print text with variable expansion",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) > 0 && args[0] == "-n" {
				args = args[1:]
			}
			env := m.environment(ctx)
			text := varPattern.ReplaceAllStringFunc(strings.Join(args, " "), func(v string) string {
				sub := varPattern.FindStringSubmatch(v)
				name := sub[1]
				if name == "" {
					name = sub[2]
				}
				return env[name]
			})
			return shell.Output(shell.Plain(text))
		},
	}
}

// EnvCmd prints the environment, or one variable when named.
// Usage: env | printenv [name]
func (m *Module) EnvCmd() shell.Entry {
	return shell.Entry{
		Name:        "env",
		Usage:       "env | printenv [name]",
		Description: "Print environment variables",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			env := m.environment(ctx)
			if len(args) > 0 {
				var out []shell.Line
				for _, name := range args {
					if v, ok := env[name]; ok {
						out = append(out, shell.Plain(v))
					}
				}
				return shell.Output(out...)
			}
			return shell.Output(shell.Lines(shell.ColorDefault, sortedEnv(env, "%s=%s")...)...)
		},
	}
}

func sortedEnv(env map[string]string, format string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf(format, k, env[k])
	}
	return out
}

// WhichCmd locates a command.
// Usage: which <command...>
func (m *Module) WhichCmd() shell.Entry {
	return shell.Entry{
		Name:        "which",
		Usage:       "which <command...>",
		Description: "Locate a command",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return missingOperand("which")
			}
			var out []shell.Line
			for _, name := range args {
				switch {
				case builtins[name]:
					out = append(out, shell.Plain(name+": shell built-in command"))
				case m.reg != nil && m.reg.Has(name):
					out = append(out, shell.Plain("/usr/bin/"+name))
				default:
					out = append(out, shell.Err(fmt.Sprintf("which: no %s in (/usr/local/bin:/usr/bin:/bin)", name)))
				}
			}
			return shell.Output(out...)
		},
	}
}

// TypeCmd describes how a name would be interpreted.
// Usage: type <name...>
func (m *Module) TypeCmd() shell.Entry {
	return shell.Entry{
		Name:        "type",
		Usage:       "type <name...>",
		Description: "Describe a command",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return missingOperand("type")
			}
			var out []shell.Line
			for _, name := range args {
				switch {
				case builtins[name]:
					out = append(out, shell.Plain(name+" is a shell builtin"))
				case m.reg != nil && m.reg.Has(name):
					out = append(out, shell.Plain(fmt.Sprintf("%s is /usr/bin/%s", name, name)))
				default:
					out = append(out, shell.Err(fmt.Sprintf("type: %s: not found", name)))
				}
			}
			return shell.Output(out...)
		},
	}
}

// ExportCmd lists the environment; setting variables is refused.
// Usage: export [name=value]
func (m *Module) ExportCmd() shell.Entry {
	return shell.Entry{
		Name:        "export",
		Usage:       "export [name=value]",
		Description: "Show exported variables",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) > 0 {
				return shell.Error("export: cannot modify a read-only environment")
			}
			return shell.Output(shell.Lines(shell.ColorDefault, sortedEnv(m.environment(ctx), "declare -x %s=%q")...)...)
		},
	}
}

var neofetchLogo = []string{
	`   ____  `,
	`  |  _ \ `,
	`  | |_) |`,
	`  |  __/ `,
	`  | |    `,
	`  |_|    `,
	`         `,
	`  PurbayanOS`,
}

// NeofetchCmd shows the system summary with a logo.
// Usage: neofetch
func (m *Module) NeofetchCmd() shell.Entry {
	return shell.Entry{
		Name:        "neofetch",
		Usage:       "neofetch",
		Description: "Show system information with style",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			packages := 0
			if m.reg != nil {
				packages = m.reg.Len()
			}
			title := username + "@" + hostname
			info := []string{
				title,
				strings.Repeat("-", len(title)),
				"OS: " + osName + " 2.0 " + machine,
				"Host: purbayan.dev",
				"Kernel: " + kernel,
				"Uptime: " + formatUptime(m.now().Sub(m.started)),
				fmt.Sprintf("Packages: %d (builtin)", packages),
				"Shell: bash 5.2.15",
				"Theme: " + ctx.Theme(),
				"Terminal: purbayanos",
				"CPU: Caffeine Lake (8) @ 4.20GHz",
				"Memory: 1337MiB / 16384MiB",
				fmt.Sprintf("Flags: %d/%d", len(ctx.FoundFlags()), flags.Total),
			}

			rows := len(info)
			if len(neofetchLogo) > rows {
				rows = len(neofetchLogo)
			}
			out := make([]shell.Line, 0, rows+2)
			for i := 0; i < rows; i++ {
				var logo, text string
				if i < len(neofetchLogo) {
					logo = neofetchLogo[i]
				}
				if i < len(info) {
					text = info[i]
				}
				out = append(out, shell.Info(strings.TrimRight(padRight(logo, 14)+text, " ")))
			}
			out = append(out, shell.Plain(""), shell.Muted("  "+flags.Token(2)))
			return shell.Output(out...)
		},
	}
}

// Prompt returns the shell prompt for a working directory.
func Prompt(cwd string) string {
	return fmt.Sprintf("%s@%s:%s$ ", username, hostname, vfs.DisplayPath(cwd))
}
