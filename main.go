// Command purbayanos is a simulated Linux terminal: a virtual filesystem, a
// few dozen familiar commands, seven hidden flags and a game of Snake.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/PPRAMANIK62/purbayanos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrCommandFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
