package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PPRAMANIK62/purbayanos/internal/tui"
)

var snakeCmd = &cobra.Command{
	Use:   "snake",
	Short: "Play Snake",
	Long: `Open the full-screen terminal straight into a game of Snake. Quitting
the game exits the program and prints the high score.

Keys:
  arrows, wasd, hjkl   move
  r                    restart after game over
  q, esc               quit`,
	Args: cobra.NoArgs,
	RunE: runSnake,
}

func runSnake(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}

	opts := tuiOptions()
	opts.StartSnake = true
	opts.ExitWithGame = true
	if err := tui.Run(session, opts); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "High score: %d\n", session.Store().HighScore())
	return nil
}
