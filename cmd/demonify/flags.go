package main

import (
	"github.com/spf13/cobra"
)

type actionFlags struct {
	name    string
	command string

	add    bool
	remove bool
	list   bool
	spawn  bool
	kill   bool
}

var flags actionFlags

func registerFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&flags.name, "name", "n", "", "Name of the service. Spaces are replaced with '-' and letters lowercased")
	f.StringVarP(&flags.command, "command", "c", "", "Shell command used to start the service, e.g. `python3 example.py`")
	f.BoolVarP(&flags.add, "add", "a", false, "Add an entry. The name must be unique across entries AND running processes")
	f.BoolVarP(&flags.remove, "remove", "r", false, "Remove an entry. Does not kill the process if running")
	f.BoolVarP(&flags.list, "list", "l", false, "List the name, command and status of every entry")
	f.BoolVarP(&flags.spawn, "spawn", "s", false, "Spawn the named service with output appended to <name>.log")
	f.BoolVarP(&flags.kill, "kill", "k", false, "Kill the process running under exactly this name")

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	cmd.MarkFlagsMutuallyExclusive("add", "remove")
	cmd.MarkFlagsMutuallyExclusive("spawn", "kill")
	cmd.MarkFlagsOneRequired("add", "remove", "list", "spawn", "kill")
	cmd.MarkFlagsRequiredTogether("add", "command")
}
