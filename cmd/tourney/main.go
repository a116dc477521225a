// Command tourney validates bracket definitions and simulates tournaments.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tourney/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
