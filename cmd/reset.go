package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/purbayanos/internal/logging"
	"github.com/PPRAMANIK62/purbayanos/internal/state"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete saved state",
	Long: `Delete the state file: history, working directory, captured flags,
theme, sound setting and Snake high score. The line-mode history file is
removed too.

Examples:
  purbayanos reset
  purbayanos reset --state ./demo.yaml`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	for _, path := range []string{cfg.StatePath, cfg.HistoryFile} {
		if err := state.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		logging.Info("removed", logging.String("path", path))
	}
	fmt.Fprintln(cmd.OutOrStdout(), "State cleared. Welcome back, stranger.")
	return nil
}
