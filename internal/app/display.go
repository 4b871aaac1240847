package app

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/host/v3"

	"github.com/relabs-tech/pocket_instruments/internal/config"
	"github.com/relabs-tech/pocket_instruments/internal/heading"
	"github.com/relabs-tech/pocket_instruments/internal/level"
)

// displayData holds the latest readings for the OLED.
type displayData struct {
	mu sync.RWMutex

	hdg     heading.Reading
	haveHdg bool
	lvl     level.Reading
	haveLvl bool
}

// RunDisplay shows heading and level readings on a 128x64 SSD1306 OLED.
func RunDisplay(cfg *config.Config) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}

	bus, err := i2creg.Open("")
	if err != nil {
		return fmt.Errorf("failed to open I2C bus: %w", err)
	}
	defer bus.Close()

	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return fmt.Errorf("failed to initialize display: %w", err)
	}
	log.Println("display: initialized")

	data := &displayData{}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDDisplay)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("display: connected to MQTT broker at %s", cfg.MQTTBroker)

	hdgToken := client.Subscribe(cfg.TopicHeading, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r heading.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("display: heading unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.hdg = r
		data.haveHdg = true
		data.mu.Unlock()
	})
	hdgToken.Wait()
	if hdgToken.Error() != nil {
		return hdgToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicHeading)

	lvlToken := client.Subscribe(cfg.TopicLevel, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r level.Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("display: level unmarshal error: %v", err)
			return
		}
		data.mu.Lock()
		data.lvl = r
		data.haveLvl = true
		data.mu.Unlock()
	})
	lvlToken.Wait()
	if lvlToken.Error() != nil {
		return lvlToken.Error()
	}
	log.Printf("display: subscribed to %s", cfg.TopicLevel)

	ticker := time.NewTicker(time.Duration(cfg.DisplayUpdateIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	log.Println("display: starting update loop")

	for range ticker.C {
		data.mu.RLock()
		hdg, haveHdg := data.hdg, data.haveHdg
		lvl, haveLvl := data.lvl, data.haveLvl
		data.mu.RUnlock()

		if err := updateDisplay(dev, hdg, haveHdg, lvl, haveLvl); err != nil {
			log.Printf("display: update error: %v", err)
		}
	}
	return nil
}

func updateDisplay(dev *ssd1306.Dev, hdg heading.Reading, haveHdg bool, lvl level.Reading, haveLvl bool) error {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 64))

	// Blank image
	for i := range img.Pix {
		img.Pix[i] = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
	}

	if !haveHdg && !haveLvl {
		drawer.Dot = fixed.P(0, 26)
		drawer.DrawBytes([]byte("Instruments"))
		drawer.Dot = fixed.P(0, 39)
		drawer.DrawBytes([]byte("Waiting..."))
		return dev.Draw(dev.Bounds(), img, image.Point{})
	}

	if haveHdg {
		drawer.Dot = fixed.P(0, 13)
		drawer.DrawBytes([]byte(fmt.Sprintf("HDG %5.1f %-2s", hdg.Heading, hdg.Direction)))
	}

	if haveLvl {
		drawer.Dot = fixed.P(0, 32)
		drawer.DrawBytes([]byte(fmt.Sprintf("X: %6.2f", lvl.XAngle)))
		drawer.Dot = fixed.P(0, 45)
		drawer.DrawBytes([]byte(fmt.Sprintf("Y: %6.2f", lvl.YAngle)))
		if lvl.Level {
			drawer.Dot = fixed.P(0, 58)
			drawer.DrawBytes([]byte("LEVEL"))
		}
	}

	return dev.Draw(dev.Bounds(), img, image.Point{})
}
