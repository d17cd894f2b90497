package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"demonify/internal/app"
	"demonify/internal/config"
	"demonify/internal/tui"
	"demonify/internal/ui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "demonify-tui <service-file>",
	Short:         "Interactive view of a demonify service file",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log.SetLevel(cfg.Level())

		controller, err := app.NewHost(args[0], cfg, log.Default())
		if err != nil {
			return err
		}
		if _, err := controller.Load(); err != nil {
			return err
		}
		if err := tui.Run(controller); err != nil {
			return fmt.Errorf("tui exited with error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML or JSON config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Fatal(err))
		os.Exit(1)
	}
}
