package app

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/pocket_instruments/internal/config"
	"github.com/relabs-tech/pocket_instruments/internal/heading"
	"github.com/relabs-tech/pocket_instruments/internal/level"
	"github.com/relabs-tech/pocket_instruments/internal/sensors"
)

// newHeadingSource builds the configured heading feed.
func newHeadingSource(cfg *config.Config) (sensors.Source, error) {
	switch cfg.HeadingSource {
	case "mock":
		log.Println("producer: using mock magnetometer")
		return sensors.NewMockMagnetometer(), nil
	case "nmea":
		log.Printf("producer: using NMEA compass on %s", cfg.CompassSerialPort)
		return sensors.NewNMEACompass(cfg.CompassSerialPort, cfg.CompassBaudRate)
	default:
		log.Println("producer: using HMC5883L magnetometer")
		return sensors.NewHMC5883L(cfg.MagI2CBus)
	}
}

// newLevelSource builds the configured acceleration feed.
func newLevelSource(cfg *config.Config) (sensors.Source, error) {
	if cfg.LevelSource == "mock" {
		log.Println("producer: using mock accelerometer")
		return sensors.NewMockAccelerometer(), nil
	}
	log.Printf("producer: using MPU-9250 accelerometer on %s", cfg.AccelSPIDevice)
	return sensors.NewMPU9250Accelerometer(cfg.AccelSPIDevice, cfg.AccelCSPin)
}

// RunProducer reads both sensors at the configured cadence, feeds the
// trackers and publishes derived readings to MQTT. The trackers impose no
// throttling of their own; consumers sample the retained topics at
// whatever rate suits their presentation.
func RunProducer(cfg *config.Config) error {
	log.Println("starting pocket-instruments reading producer")

	magSrc, err := newHeadingSource(cfg)
	if err != nil {
		return fmt.Errorf("heading source: %w", err)
	}
	accelSrc, err := newLevelSource(cfg)
	if err != nil {
		return fmt.Errorf("level source: %w", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect: %w", token.Error())
	}
	defer client.Disconnect(250)

	log.Println("producer: connected to MQTT, starting sample loop")

	tracker := heading.New()

	ticker := time.NewTicker(time.Duration(cfg.SampleIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	// One log line per second or so, not per 16ms tick.
	logEvery := 1000 / cfg.SampleIntervalMS
	if logEvery < 1 {
		logEvery = 1
	}
	tick := 0

	for range ticker.C {
		tick++

		mag, err := magSrc.Next()
		if err != nil {
			log.Printf("producer: magnetometer read error: %v", err)
			continue
		}
		hdg := tracker.OnSample(mag.X, mag.Y)

		if payload, err := json.Marshal(hdg); err != nil {
			log.Printf("producer: heading marshal error: %v", err)
		} else if token := client.Publish(cfg.TopicHeading, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("producer: MQTT publish error (heading): %v", token.Error())
		}

		accel, err := accelSrc.Next()
		if err != nil {
			log.Printf("producer: accelerometer read error: %v", err)
			continue
		}
		lvl := level.Compute(accel.X, accel.Y)

		if payload, err := json.Marshal(lvl); err != nil {
			log.Printf("producer: level marshal error: %v", err)
		} else if token := client.Publish(cfg.TopicLevel, 0, true, payload); token.Wait() && token.Error() != nil {
			log.Printf("producer: MQTT publish error (level): %v", token.Error())
		}

		if tick%logEvery == 0 {
			log.Printf("producer: heading=%.1f° (%s) rotation=%.1f° | tilt x=%.2f° y=%.2f° level=%v",
				hdg.Heading, hdg.Direction, hdg.Rotation,
				lvl.XAngle, lvl.YAngle, lvl.Level,
			)
		}
	}
	return nil
}
