package main

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"demonify/internal/app"
	"demonify/internal/config"
	"demonify/internal/ui"
)

func runServices(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if !debug {
		log.SetLevel(cfg.Level())
	}

	controller, err := app.NewHost(args[0], cfg, log.Default())
	if err != nil {
		return err
	}

	req := app.Request{
		Name:    flags.name,
		Command: flags.command,
		Add:     flags.add,
		Remove:  flags.remove,
		Spawn:   flags.spawn,
		Kill:    flags.kill,
		List:    flags.list,
	}

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	var spin *spinner.Spinner
	if req.List && tty {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		spin.Suffix = " Probing processes..."
		spin.Start()
	}
	rep, err := controller.Run(req)
	if spin != nil {
		spin.Stop()
	}

	printer := ui.New(cmd.OutOrStdout(), tty)
	printer.Events(rep.Events)
	if rep.Listing != nil {
		printer.Listing(*rep.Listing)
	}
	return err
}
