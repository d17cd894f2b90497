package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"demonify/internal/ui"
)

var (
	configPath string
	debug      bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demonify <service-file>",
		Short: "demonify: create and manage custom daemon programs",
		Long: `demonify keeps a registry of named background services in a generated bash
script. Each entry can be spawned under its own name with output appended to
<name>.log, killed by exact name, and listed with its live status.

The service file must already exist; demonify writes the #!/bin/bash header.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
				log.Debug("Debug logging enabled")
			}
		},
		RunE: runServices,
	}
	registerFlags(cmd)
	return cmd
}

func main() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Fatal(err))
		os.Exit(1)
	}
}
