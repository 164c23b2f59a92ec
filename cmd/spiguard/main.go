package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/calder-io/spiguard/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Exit-1 errors already rendered their report on stdout. Command
		// errors and cobra errors still need a line on stderr.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Code == cli.ExitCommandError {
			fmt.Fprintf(os.Stderr, "spiguard: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
