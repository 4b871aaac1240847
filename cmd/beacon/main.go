package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/relabs-tech/pocket_instruments/internal/config"
	"github.com/relabs-tech/pocket_instruments/internal/lamp"
	"github.com/relabs-tech/pocket_instruments/internal/transmitter"
)

var (
	flagConfig string
	flagMock   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beacon",
		Short: "Pocket Instruments - headless signal lamp control",
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "./instruments_config.txt", "path to configuration file")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "log lamp transitions instead of driving GPIO")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "sos",
			Short: "Transmit the repeating SOS pattern until interrupted",
			RunE:  runSOS,
		},
		&cobra.Command{
			Use:   "morse [text]",
			Short: "Transmit text as Morse code once",
			Args:  cobra.MinimumNArgs(1),
			RunE:  runMorse,
		},
		&cobra.Command{
			Use:   "on",
			Short: "Turn the lamp on and leave it on",
			RunE:  runOn,
		},
		&cobra.Command{
			Use:   "off",
			Short: "Turn the lamp off",
			RunE:  runOff,
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newTransmitter() (*transmitter.Transmitter, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	var device lamp.Lamp
	if flagMock {
		device = lamp.NewMock()
		log.Println("beacon: using simulated lamp")
	} else {
		device, err = lamp.NewGPIO(cfg.LampGPIOPin, false)
		if err != nil {
			return nil, err
		}
	}

	return transmitter.New(device, time.Duration(cfg.MorseUnitMS)*time.Millisecond), nil
}

func runSOS(cmd *cobra.Command, args []string) error {
	tx, err := newTransmitter()
	if err != nil {
		return err
	}
	defer tx.Close()

	tx.StartSOS()
	log.Println("beacon: transmitting SOS, Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("beacon: stopping")
	return nil
}

func runMorse(cmd *cobra.Command, args []string) error {
	tx, err := newTransmitter()
	if err != nil {
		return err
	}
	defer tx.Close()

	text := strings.Join(args, " ")
	if err := tx.StartMorse(text); err != nil {
		return err
	}
	log.Printf("beacon: transmitting %q", text)

	// Stop cleanly on Ctrl+C, otherwise wait for the plan to finish.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		tx.Stop()
	}()

	tx.Wait()
	return nil
}

func runOn(cmd *cobra.Command, args []string) error {
	tx, err := newTransmitter()
	if err != nil {
		return err
	}
	return tx.Toggle()
}

func runOff(cmd *cobra.Command, args []string) error {
	tx, err := newTransmitter()
	if err != nil {
		return err
	}
	return tx.Close()
}
