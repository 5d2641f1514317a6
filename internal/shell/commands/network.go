package commands

// Network-flavored commands. Nothing touches a real network: every response
// is scripted and keyed by the exact host or URL given.

import (
	"fmt"
	"math"
	"strings"

	"github.com/PPRAMANIK62/purbayanos/internal/flags"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
)

// knownHosts resolves the host names the network commands recognize.
var knownHosts = map[string]string{
	"localhost":    "127.0.0.1",
	"127.0.0.1":    "127.0.0.1",
	hostname:       "127.0.1.1",
	"matrix":       "10.0.0.42",
	"wopr":         "10.0.0.83",
	"purbayan.dev": "76.76.21.21",
	"github.com":   "140.82.112.3",
	"google.com":   "142.250.72.14",
	"8.8.8.8":      "8.8.8.8",
	"1.1.1.1":      "1.1.1.1",
}

// SshCmd connects to a remote host.
// Usage: ssh [-p port] [-l login] user@host
func (m *Module) SshCmd() shell.Entry {
	return shell.Entry{
		Name:        "ssh",
		Usage:       "ssh [-p port] [-l login] user@host",
		Description: "Connect to a remote host",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("ssh")
			port := fs.IntP("port", "p", 22, "port to connect to")
			login := fs.StringP("login", "l", "", "user to log in as")
			if err := fs.Parse(args); err != nil {
				return optionError("ssh", err)
			}
			target := fs.Arg(0)
			if target == "" {
				return shell.Error("usage: ssh user@host")
			}
			if *login != "" && !strings.Contains(target, "@") {
				target = *login + "@" + target
			}

			switch target {
			case "neo@matrix":
				return shell.Output(
					shell.Muted("Connecting to matrix (10.0.0.42)..."),
					shell.Plain(""),
					shell.Success("Wake up, Neo..."),
					shell.Success("The Matrix has you..."),
					shell.Success("Follow the white rabbit."),
					shell.Plain(""),
					shell.Success("Knock, knock, Neo."),
					shell.Plain(""),
					shell.Plain("  "+flags.Token(3)),
					shell.Plain(""),
					shell.Muted("Connection to matrix closed."),
				)
			case "joshua@wopr":
				return shell.Output(
					shell.Muted("Connecting to wopr (10.0.0.83)..."),
					shell.Plain(""),
					shell.Info("GREETINGS PROFESSOR FALKEN."),
					shell.Plain(""),
					shell.Info("SHALL WE PLAY A GAME?"),
					shell.Plain(""),
					shell.Plain("  CHESS"),
					shell.Plain("  POKER"),
					shell.Plain("  GLOBAL THERMONUCLEAR WAR"),
					shell.Plain(""),
					shell.Info("A STRANGE GAME."),
					shell.Info("THE ONLY WINNING MOVE IS NOT TO PLAY."),
					shell.Plain(""),
					shell.Plain("  "+flags.Token(4)),
					shell.Plain(""),
					shell.Muted("Connection to wopr closed."),
				)
			}

			user, host, ok := strings.Cut(target, "@")
			if !ok {
				host, user = target, username
			}
			switch host {
			case "localhost", "127.0.0.1", hostname:
				return shell.Output(shell.Warning("You're already here."))
			case "matrix", "wopr":
				return shell.Error(fmt.Sprintf("%s@%s: Permission denied (publickey).", user, host))
			}
			return shell.Error(fmt.Sprintf("ssh: connect to host %s port %d: Connection refused", host, *port))
		},
	}
}

// PingCmd sends simulated ICMP echo requests.
// Usage: ping [-c count] <host>
// Round-trip times are random in 10-60ms; the summary reports
// min/avg/max/mdev over them.
func (m *Module) PingCmd() shell.Entry {
	return shell.Entry{
		Name:        "ping",
		Usage:       "ping [-c count] <host>",
		Description: "Send echo requests to a host",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			fs := newFlags("ping")
			c := newCountValue(defaultPings, 1, maxPings)
			fs.VarP(c, "count", "c", "stop after sending count requests")
			if err := fs.Parse(args); err != nil {
				return optionError("ping", err)
			}
			count, host := c.n, fs.Arg(0)
			if host == "" {
				return shell.Error("ping: usage error: Destination address required")
			}
			ip, ok := knownHosts[strings.ToLower(host)]
			if !ok {
				return shell.Error(fmt.Sprintf("ping: %s: Name or service not known", host))
			}

			out := []shell.Line{shell.Plain(fmt.Sprintf("PING %s (%s) 56(84) bytes of data.", host, ip))}
			rtts := make([]float64, count)
			for i := range rtts {
				rtts[i] = 10 + m.rng.Float64()*50
				out = append(out, shell.Plain(fmt.Sprintf("64 bytes from %s: icmp_seq=%d ttl=64 time=%.1f ms", ip, i+1, rtts[i])))
			}
			lo, avg, hi, mdev := rttStats(rtts)
			out = append(out,
				shell.Plain(""),
				shell.Plain(fmt.Sprintf("--- %s ping statistics ---", host)),
				shell.Plain(fmt.Sprintf("%d packets transmitted, %d received, 0%% packet loss, time %dms", count, count, (count-1)*1000+int(avg))),
				shell.Plain(fmt.Sprintf("rtt min/avg/max/mdev = %.3f/%.3f/%.3f/%.3f ms", lo, avg, hi, mdev)),
			)
			return shell.Output(out...)
		},
	}
}

const (
	defaultPings = 3
	// maxPings keeps ping -c from flooding the screen.
	maxPings = 20
)

// rttStats computes ping's summary; mdev is the standard deviation.
func rttStats(rtts []float64) (lo, avg, hi, mdev float64) {
	if len(rtts) == 0 {
		return 0, 0, 0, 0
	}
	lo, hi = rtts[0], rtts[0]
	var sum, sumSq float64
	for _, r := range rtts {
		lo = math.Min(lo, r)
		hi = math.Max(hi, r)
		sum += r
		sumSq += r * r
	}
	n := float64(len(rtts))
	avg = sum / n
	mdev = math.Sqrt(math.Max(0, sumSq/n-avg*avg))
	return lo, avg, hi, mdev
}

// page is a scripted HTTP response.
type page struct {
	contentType string
	body        []string
}

// pageFor returns the scripted response for url, keyed by host and path with
// the scheme and trailing slash removed.
func pageFor(url string) (host string, p page, ok bool) {
	key := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://"), "/")
	host, _, _ = strings.Cut(key, "/")

	switch {
	case key == "purbayan.dev" || key == "www.purbayan.dev":
		return host, page{"text/html", []string{
			"<!doctype html>",
			"<html>",
			"  <head><title>Purbayan Pramanik</title></head>",
			"  <body>",
			"    <h1>Hi, I'm Purbayan.</h1>",
			"    <p>Software engineer. Psst: there's a terminal in here.</p>",
			"  </body>",
			"</html>",
		}}, true
	case key == "localhost" || key == "127.0.0.1":
		return host, page{"text/plain", []string{"Hello from " + osName + "! (you are talking to yourself)"}}, true
	case key == "api.github.com/users/purbayan" || key == "api.github.com/users/PPRAMANIK62":
		return host, page{"application/json", []string{
			"{",
			`  "login": "PPRAMANIK62",`,
			`  "name": "Purbayan Pramanik",`,
			`  "blog": "https://purbayan.dev",`,
			`  "public_repos": 42,`,
			`  "followers": 1337`,
			"}",
		}}, true
	case host == "wttr.in":
		city := "Kolkata"
		if _, rest, found := strings.Cut(key, "/"); found && rest != "" {
			city = rest
		}
		return host, page{"text/plain", []string{
			"Weather report: " + city,
			"",
			`     \   /     Sunny`,
			`      .-.      +31(34) °C`,
			`   ― (   ) ―   ↗ 11 km/h`,
			`      '-'      10 km`,
			`     /   \     0.0 mm`,
		}}, true
	}
	return host, page{}, false
}

// CurlCmd fetches a URL.
// Usage: curl <url>
func (m *Module) CurlCmd() shell.Entry {
	return shell.Entry{
		Name:        "curl",
		Usage:       "curl <url>",
		Description: "Transfer data from a URL",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			url := lastOperand(args)
			if url == "" {
				return shell.Error("curl: no URL specified!")
			}
			host, p, ok := pageFor(url)
			if !ok {
				return shell.Error(fmt.Sprintf("curl: (6) Could not resolve host: %s", host))
			}
			return shell.Output(shell.Lines(shell.ColorDefault, p.body...)...)
		},
	}
}

// WgetCmd downloads a URL, or would if the disk were writable.
// Usage: wget <url>
func (m *Module) WgetCmd() shell.Entry {
	return shell.Entry{
		Name:        "wget",
		Usage:       "wget <url>",
		Description: "Download a file from a URL",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			url := lastOperand(args)
			if url == "" {
				return shell.Error("wget: missing URL")
			}
			host, p, ok := pageFor(url)
			if !ok {
				return shell.Error(fmt.Sprintf("wget: unable to resolve host address '%s'", host))
			}

			size := 0
			for _, l := range p.body {
				size += len(l) + 1
			}
			name := "index.html"
			if i := strings.LastIndex(strings.TrimSuffix(url, "/"), "/"); i >= 0 && strings.Contains(url[:i], ".") {
				name = strings.TrimSuffix(url, "/")[i+1:]
			}
			ip := knownHosts[host]
			if ip == "" {
				ip = "93.184.216.34"
			}
			return shell.Output(
				shell.Plain(fmt.Sprintf("--%s--  %s", m.now().Format("2006-01-02 15:04:05"), url)),
				shell.Plain(fmt.Sprintf("Resolving %s... %s", host, ip)),
				shell.Plain(fmt.Sprintf("Connecting to %s|%s|:443... connected.", host, ip)),
				shell.Plain("HTTP request sent, awaiting response... 200 OK"),
				shell.Plain(fmt.Sprintf("Length: %d [%s]", size, p.contentType)),
				shell.Plain(fmt.Sprintf("Saving to: '%s'", name)),
				shell.Plain(""),
				shell.Info(fmt.Sprintf("%-14s 100%%[===================>] %6d  --.-KB/s    in 0s", name, size)),
				shell.Plain(""),
				shell.Err(fmt.Sprintf("wget: %s: Read-only file system", name)),
			)
		},
	}
}

// TelnetCmd opens a telnet session.
// Usage: telnet <host> [port]
func (m *Module) TelnetCmd() shell.Entry {
	return shell.Entry{
		Name:        "telnet",
		Usage:       "telnet <host> [port]",
		Description: "Connect to a host over telnet",
		Handler: func(args []string, ctx shell.Context) shell.Result {
			if len(args) == 0 {
				return shell.Error("usage: telnet <host> [port]")
			}
			if strings.ToLower(args[0]) != "towel.blinkenlights.nl" {
				return shell.Output(
					shell.Plain("Trying "+args[0]+"..."),
					shell.Err("telnet: Unable to connect to remote host: Connection refused"),
				)
			}
			return shell.Output(
				shell.Plain("Trying 213.136.8.188..."),
				shell.Plain("Connected to towel.blinkenlights.nl."),
				shell.Plain(""),
				shell.Warning("        A long time ago in a galaxy far,"),
				shell.Warning("        far away...."),
				shell.Plain(""),
				shell.Info(`     _______ _______ _______  ______`),
				shell.Info(`     |______    |    |_____| |_____/`),
				shell.Info(`     ______|    |    |     | |    \_`),
				shell.Info(`      _  _  _ _______  ______ _______`),
				shell.Info(`      |  |  | |_____| |_____/ |______`),
				shell.Info(`      |__|__| |     | |    \_ ______|`),
				shell.Plain(""),
				shell.Muted("Connection closed by foreign host. (the full movie is 20 minutes long)"),
			)
		},
	}
}

// lastOperand returns the last argument that is not an option.
func lastOperand(args []string) string {
	for i := len(args) - 1; i >= 0; i-- {
		if !strings.HasPrefix(args[i], "-") {
			return args[i]
		}
	}
	return ""
}
