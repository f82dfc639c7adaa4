package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tempuslib/tempus/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	cmd.SilenceErrors = true

	if err := cmd.Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and usage errors never reach a formatter.
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(cli.ExitCommandError)
		}
		if exitErr.Code == cli.ExitCommandError {
			fmt.Fprintln(os.Stderr, "Error:", exitErr)
		}
		os.Exit(exitErr.Code)
	}
}
