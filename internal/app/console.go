package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/pocket_instruments/internal/config"
	"github.com/relabs-tech/pocket_instruments/internal/heading"
	"github.com/relabs-tech/pocket_instruments/internal/level"
)

// RunConsole subscribes to the reading topics and prints each message to
// stdout until interrupted.
func RunConsole(cfg *config.Config) error {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	hdgToken := client.Subscribe(cfg.TopicHeading, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r heading.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("console: heading unmarshal error: %v", err)
			return
		}

		north := ""
		if r.NearNorth {
			north = "  <N>"
		}
		fmt.Printf("[HDG]  %6.1f°  %-2s  rot=%8.1f°%s\n", r.Heading, r.Direction, r.Rotation, north)
	})
	hdgToken.Wait()
	if hdgToken.Error() != nil {
		return hdgToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicHeading)

	lvlToken := client.Subscribe(cfg.TopicLevel, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r level.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("console: level unmarshal error: %v", err)
			return
		}

		state := "tilted"
		if r.Level {
			state = "LEVEL"
		}
		fmt.Printf("[LVL]  x=%6.2f°  y=%6.2f°  %s\n", r.XAngle, r.YAngle, state)
	})
	lvlToken.Wait()
	if lvlToken.Error() != nil {
		return lvlToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicLevel)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
