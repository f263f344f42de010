package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wqa/internal/cli"
	"wqa/internal/cli/commands"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "wqa",
		Short:   "Parallel weather QA check orchestrator",
		Long:    `Discovers tagged checks against the weather service (API and web UI), executes them across a browser worker pool with retries and timeouts, and writes a structured run report.`,
		Version: version,
	}

	var flags cli.Flags

	cmds := commands.NewCommands(&flags)
	cmds.Register(rootCmd, &flags)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *commands.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
