package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/pocket_instruments/internal/app"
	"github.com/relabs-tech/pocket_instruments/internal/config"
)

var (
	flagConfig string
	flagDemo   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "panel",
		Short: "Pocket Instruments - tabbed terminal panel (compass, level, lamp)",
		Long: `The panel shows the compass and spirit level readings published by the
instruments producer and drives the signal lamp: manual toggle, repeating
SOS, or an arbitrary Morse-encoded message.

Driving a real lamp needs GPIO access; use --demo for a simulated lamp and
mock sensors without any hardware or broker.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&flagConfig, "config", "./instruments_config.txt", "path to configuration file")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "run with mock sensors and a simulated lamp")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		if !flagDemo {
			return err
		}
		// Demo mode works without a config file.
		log.Printf("panel: %v, using defaults", err)
		cfg = config.Demo()
	}

	return app.RunPanel(cfg, flagDemo)
}
