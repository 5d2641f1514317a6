package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/purbayanos/internal/repl"
	"github.com/PPRAMANIK62/purbayanos/internal/terminal"
	"github.com/PPRAMANIK62/purbayanos/internal/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the line-mode shell",
	Long: `Start an interactive shell on the current terminal, without the
full-screen interface. History is kept in ~/.purbayanos_history and Tab
completes commands and paths.

Examples:
  purbayanos shell
  purbayanos shell --no-save`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}

	return repl.Run(session, repl.Options{
		HistoryFile:  cfg.HistoryFile,
		HistoryLimit: cfg.HistoryLimit,
		AutoSave:     !cfg.NoSave,
		PlaySnake: func(s *terminal.Session) error {
			opts := tuiOptions()
			opts.StartSnake = true
			opts.ExitWithGame = true
			return tui.Run(s, opts)
		},
	})
}
