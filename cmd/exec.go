package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/PPRAMANIK62/purbayanos/internal/repl"
	"github.com/PPRAMANIK62/purbayanos/internal/shell"
	"github.com/PPRAMANIK62/purbayanos/internal/ui/theme"
)

var execCmd = &cobra.Command{
	Use:   "exec <command line>",
	Short: "Run one command and print its output",
	Long: `Run a single command line and print the output. Arguments are joined
with spaces, so quote anything the local shell would otherwise expand.

Output is colored only when stdout is a terminal. The exit status is 1 if
the command reported an error.

Examples:
  purbayanos exec ls -la
  purbayanos exec "cat ~/about.txt"
  purbayanos exec grep -rn flag /var/log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	// Everything after the first argument belongs to the command line, so
	// `exec ls -la` passes -la to ls.
	execCmd.Flags().SetInterspersed(false)
}

func runExec(cmd *cobra.Command, args []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}

	res := session.Execute(strings.Join(args, " "))
	if err := session.Save(); err != nil {
		return err
	}

	lines := res.Lines
	if res.OpenURL != "" {
		lines = append(lines, shell.Muted("→ "+res.OpenURL))
	}
	if res.StartGame == shell.GameSnake {
		lines = append(lines, shell.Muted("Run `purbayanos snake` to play."))
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	repl.Print(cmd.OutOrStdout(), theme.Get(session.Store().Theme()), lines, styled)

	if res.HasError() {
		return ErrCommandFailed
	}
	return nil
}
