package vfs

import "sync"

// Root returns the process-wide filesystem tree. It is built on first use and
// shared by every session; it is never mutated so concurrent reads are safe.
var Root = sync.OnceValue(buildTree)

func buildTree() *Node {
	return Dir("",
		Dir("bin",
			Exec("bash", "ELF 64-bit LSB executable\n"),
			Exec("sh", "ELF 64-bit LSB executable\n", Link("bash")),
		),
		Dir("etc",
			File("hostname", "purbayan-os\n"),
			File("motd", motd),
			File("os-release", osRelease),
			File("passwd", passwd),
			File("hosts", hosts),
			File("shells", "/bin/sh\n/bin/bash\n/usr/bin/zsh\n"),
		),
		Dir("home",
			Dir("purbayan",
				File("about.txt", aboutTxt),
				File("contact.txt", contactTxt),
				File("resume.txt", resumeTxt),
				File("skills.json", skillsJSON),
				File("README.md", readmeMD),
				File(".bashrc", bashrc),
				File(".profile", "# ~/.profile\n[ -f ~/.bashrc ] && . ~/.bashrc\n"),
				File(".gitconfig", gitconfig),
				Dir(".config",
					Dir("nvim",
						File("init.lua", nvimInit),
					),
				),
				Dir("projects",
					File("purbayan.dev.md", projPortfolio),
					File("gitpulse.md", projGitpulse),
					File("termchat.md", projTermchat),
					File("pixelforge.md", projPixelforge),
				),
				Dir("blog",
					File("2024-03-building-a-terminal-in-the-browser.md", blogTerminal),
					File("2024-07-why-i-love-go.md", blogGo),
					File("2025-01-ctf-design-notes.md", blogCTF),
				),
				Dir("scripts",
					Exec("hello.sh", helloSh),
					Exec("deploy.sh", deploySh),
				),
			),
		),
		Dir("tmp"),
		Dir("usr",
			Dir("share",
				Dir("man",
					Dir("man1",
						File("ls.1", manLs),
						File("cat.1", manCat),
						File("purbayan.1", manPurbayan),
						File("snake.1", manSnake),
					),
				),
			),
		),
		Dir("var",
			Dir("log",
				File("syslog", syslog),
				File("auth.log", authLog),
				Dir(".archive",
					File("auth.log.1", authLogArchive, Modified("Dec 31 23:59")),
				),
			),
			Dir("www",
				File("index.html", "<!doctype html>\n<title>purbayan.dev</title>\n<p>You found the web root. Try `open github`.</p>\n"),
			),
		),
	)
}

const motd = `Welcome to PurbayanOS 2.0 (GNU/Linux 6.1.0-purbayan x86_64)

 * Documentation:  man purbayan
 * Source:         open github
 * Secrets:        7 hidden flags. Type 'flags' to see your progress.
`

const osRelease = `PRETTY_NAME="PurbayanOS 2.0 (Gopher)"
NAME="PurbayanOS"
VERSION_ID="2.0"
VERSION="2.0 (Gopher)"
ID=purbayanos
HOME_URL="https://purbayan.dev"
`

const passwd = `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
purbayan:x:1000:1000:Purbayan Pramanik:/home/purbayan:/bin/bash
guest:x:1001:1001:Guest:/tmp:/bin/sh
`

const hosts = `127.0.0.1   localhost
127.0.1.1   purbayan-os
10.0.0.42   matrix
10.0.0.83   wopr
`

const aboutTxt = `Hi, I'm Purbayan.

I build developer tools, terminal apps and the occasional web thing.
I like Go, Rust, TypeScript, Linux and well-written man pages.

Right now I'm working on tools that make terminals friendlier.
Type 'cat resume.txt' for the boring version, or 'ls projects' for the fun one.
`

const contactTxt = `email:    hello@purbayan.dev
github:   https://github.com/PPRAMANIK62
linkedin: https://linkedin.com/in/purbayan
blog:     https://purbayan.dev/blog

Tip: 'open github' or 'open email' opens these for you.
`

const resumeTxt = `PURBAYAN PRAMANIK
Software Engineer

EXPERIENCE
  Backend Engineer, Acme Cloud            2023 - present
    - Built a multi-tenant job scheduler in Go handling 2M jobs/day
    - Cut p99 API latency from 480ms to 90ms

  Software Engineering Intern, Startup    2022
    - Shipped a real-time collaboration feature in TypeScript

EDUCATION
  B.Tech, Computer Science                2019 - 2023

SKILLS
  Go, Rust, TypeScript, PostgreSQL, Redis, Docker, Kubernetes, Linux
`

const skillsJSON = `{
  "languages": ["Go", "Rust", "TypeScript", "Python", "Bash"],
  "backend": ["PostgreSQL", "Redis", "gRPC", "Kafka"],
  "frontend": ["React", "Next.js", "Tailwind"],
  "tools": ["Neovim", "tmux", "Docker", "Kubernetes", "Git"]
}
`

const readmeMD = `# ~

Welcome to my home directory. Look around:

- projects/  things I've built
- blog/      things I've written
- scripts/   things I run

Some files are hidden. 'ls -a' is your friend.
`

const bashrc = `# ~/.bashrc: executed by bash for non-login shells.

export EDITOR=nvim
export PAGER=less
export PATH="$HOME/.local/bin:$PATH"

alias ll='ls -la'
alias gs='git status'
alias vim='nvim'

# you actually read the dotfiles. respect.
# PURBAYAN{y0u_r3ad_th3_d0tf1l3s}

PS1='\u@\h:\w\$ '
`

const gitconfig = `[user]
	name = Purbayan Pramanik
	email = hello@purbayan.dev
[init]
	defaultBranch = main
[pull]
	rebase = true
`

const nvimInit = `vim.opt.number = true
vim.opt.relativenumber = true
vim.opt.expandtab = true
vim.opt.shiftwidth = 2
vim.g.mapleader = " "
`

const projPortfolio = `# purbayan.dev

The site you're on. A portfolio with a terminal hiding inside it.

Stack: Next.js, TypeScript, Tailwind
Features: virtual filesystem, 50+ commands, 7 hidden flags, snake

https://github.com/PPRAMANIK62/purbayan.dev
`

const projGitpulse = `# gitpulse

A TUI dashboard for your GitHub activity, written in Go with Bubble Tea.

Stack: Go, Bubble Tea, GitHub GraphQL API
Status: active
`

const projTermchat = `# termchat

End-to-end encrypted chat that runs in your terminal.

Stack: Rust, tokio, libsodium
Status: maintained
`

const projPixelforge = `# pixelforge

An image pipeline that turns screenshots into pixel art.

Stack: Python, Pillow, FastAPI
Status: archived
`

const blogTerminal = `# Building a terminal in the browser

Every portfolio has a projects page. Mine also has a shell.

The core is small: a tokenizer, a command registry, and a read-only
filesystem tree. Each command is a function from (args, context) to lines
of output. Side effects like clearing the screen are returned as intent,
never performed directly.
`

const blogGo = `# Why I love Go

Small language, big standard library, boring in the best way.
Explicit errors. Fast builds. Tooling that just works.
`

const blogCTF = `# CTF design notes

Seven flags, each teaching one habit:
read the dotfiles, read the output carefully, follow the white rabbit,
play a game, grep the logs, be a snake charmer, and don't run
sudo rm -rf / (unless you're in a fake terminal).
`

const helloSh = `#!/bin/bash
echo "Hello from PurbayanOS!"
echo "Try: neofetch, cowsay, figlet, snake"
`

const deploySh = `#!/bin/bash
set -euo pipefail
npm run build
rsync -avz out/ web:/var/www/
echo "deployed"
`

const manLs = `LS(1)                     User Commands                     LS(1)

NAME
       ls - list directory contents

SYNOPSIS
       ls [-a] [-l] [FILE]...

DESCRIPTION
       List information about the FILEs (the current directory by default).
       Directories are listed first, then files, each sorted alphabetically.

       -a     do not ignore entries starting with .
       -l     use a long listing format
`

const manCat = `CAT(1)                    User Commands                    CAT(1)

NAME
       cat - concatenate files and print on the standard output

SYNOPSIS
       cat FILE...

DESCRIPTION
       Concatenate FILE(s) to standard output.
`

const manPurbayan = `PURBAYAN(1)               PurbayanOS Manual               PURBAYAN(1)

NAME
       purbayan - software engineer, terminal enthusiast

SYNOPSIS
       purbayan [--coffee] [--code] [--ship]

DESCRIPTION
       Builds developer tools and things that live in terminals.
       See ~/about.txt and ~/projects for details.

FLAGS
       There are seven. Type 'flags' to see which you have found.

BUGS
       Occasionally writes man pages for himself.
`

const manSnake = `SNAKE(6)                  Games Manual                  SNAKE(6)

NAME
       snake - the classic

CONTROLS
       arrows/wasd/hjkl  move
       r                 restart after game over
       q, esc            quit

NOTES
       Legend says something happens at 10 points.
`

const syslog = `Jan 15 10:30:01 purbayan-os systemd[1]: Started Daily apt upgrade.
Jan 15 10:30:02 purbayan-os kernel: [    0.000000] Linux version 6.1.0-purbayan
Jan 15 10:31:17 purbayan-os coffee[1337]: brewing...
Jan 15 10:35:00 purbayan-os cron[842]: (purbayan) CMD (backup.sh)
`

const authLog = `Jan 15 10:32:11 purbayan-os sshd[2001]: Accepted publickey for purbayan from 10.0.0.5
Jan 15 10:40:54 purbayan-os sudo: guest : user NOT in sudoers ; COMMAND=/bin/rm -rf /
Jan 15 10:41:02 purbayan-os sshd[2044]: Failed password for neo from 10.0.0.42
`

const authLogArchive = `Dec 31 23:58:12 purbayan-os sshd[999]: Failed password for root from 203.0.113.7
Dec 31 23:59:59 purbayan-os sshd[1000]: note to self: PURBAYAN{gr3p_th3_l0gs}
`
