// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/pocket_instruments/internal/app"
	"github.com/relabs-tech/pocket_instruments/internal/config"
)

func main() {
	configPath := flag.String("config", "./instruments_config.txt", "path to configuration file")
	flag.Parse()

	log.Println("starting pocket-instruments web server (MQTT subscriber)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunWeb(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
