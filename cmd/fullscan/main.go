package main

import (
	"os"

	"github.com/roach88/fullscan/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Cobra is configured with SilenceErrors; print the error once here.
		cmd.PrintErrln("Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
