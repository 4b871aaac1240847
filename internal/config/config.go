package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration values. It is loaded once in
// main and passed down explicitly; there is no package-level instance.
type Config struct {
	// MQTT
	MQTTBroker           string
	MQTTClientIDProducer string
	MQTTClientIDPanel    string
	MQTTClientIDConsole  string
	MQTTClientIDWeb      string
	MQTTClientIDDisplay  string

	// Topics
	TopicHeading string
	TopicLevel   string

	// Sensor selection: "hmc5883", "nmea" or "mock" for the heading feed,
	// "mpu9250" or "mock" for the level feed.
	HeadingSource string
	LevelSource   string

	// Heading hardware. An empty MAG_I2C_BUS means "first available bus".
	MagI2CBus         string
	CompassSerialPort string
	CompassBaudRate   uint

	// Level hardware
	AccelSPIDevice string
	AccelCSPin     string

	// Lamp
	LampGPIOPin string
	MorseUnitMS int

	// Timing
	SampleIntervalMS int

	// Display
	DisplayUpdateIntervalMS int

	// Web server
	WebServerPort int
	FeedbackURL   string

	// Preferences file
	PrefsPath string
}

// Load reads the configuration file and returns a Config struct with
// defaults applied for every key the file does not set.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := defaults()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Demo returns the built-in defaults with mock sensors selected, for demo
// mode where no config file exists.
func Demo() *Config {
	cfg := defaults()
	cfg.MQTTBroker = "tcp://localhost:1883"
	cfg.HeadingSource = "mock"
	cfg.LevelSource = "mock"
	return cfg
}

func defaults() *Config {
	return &Config{
		MQTTClientIDProducer: "instruments-producer",
		MQTTClientIDPanel:    "instruments-panel",
		MQTTClientIDConsole:  "instruments-console",
		MQTTClientIDWeb:      "instruments-web",
		MQTTClientIDDisplay:  "instruments-display",

		TopicHeading: "instruments/heading",
		TopicLevel:   "instruments/level",

		HeadingSource: "hmc5883",
		LevelSource:   "mpu9250",

		CompassBaudRate: 4800,

		LampGPIOPin: "17",
		MorseUnitMS: 200,

		SampleIntervalMS: 16,

		DisplayUpdateIntervalMS: 250,

		WebServerPort: 8080,
		PrefsPath:     "./instruments_prefs.txt",
	}
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_PRODUCER":
		c.MQTTClientIDProducer = value
	case "MQTT_CLIENT_ID_PANEL":
		c.MQTTClientIDPanel = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value
	case "MQTT_CLIENT_ID_DISPLAY":
		c.MQTTClientIDDisplay = value

	// Topics
	case "TOPIC_HEADING":
		c.TopicHeading = value
	case "TOPIC_LEVEL":
		c.TopicLevel = value

	// Sensor selection
	case "HEADING_SOURCE":
		switch value {
		case "hmc5883", "nmea", "mock":
			c.HeadingSource = value
		default:
			return fmt.Errorf("HEADING_SOURCE must be hmc5883, nmea or mock, got %q", value)
		}
	case "LEVEL_SOURCE":
		switch value {
		case "mpu9250", "mock":
			c.LevelSource = value
		default:
			return fmt.Errorf("LEVEL_SOURCE must be mpu9250 or mock, got %q", value)
		}

	// Heading hardware
	case "MAG_I2C_BUS":
		c.MagI2CBus = value
	case "COMPASS_SERIAL_PORT":
		c.CompassSerialPort = value
	case "COMPASS_BAUD_RATE":
		rate, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid COMPASS_BAUD_RATE %q: %w", value, err)
		}
		c.CompassBaudRate = uint(rate)

	// Level hardware
	case "ACCEL_SPI_DEVICE":
		c.AccelSPIDevice = value
	case "ACCEL_CS_PIN":
		c.AccelCSPin = value

	// Lamp
	case "LAMP_GPIO_PIN":
		c.LampGPIOPin = value
	case "MORSE_UNIT_MS":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid MORSE_UNIT_MS %q: %w", value, err)
		}
		if ms <= 0 {
			return fmt.Errorf("MORSE_UNIT_MS must be positive, got %d", ms)
		}
		c.MorseUnitMS = ms

	// Timing
	case "SAMPLE_INTERVAL_MS":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_INTERVAL_MS %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("SAMPLE_INTERVAL_MS must be positive, got %d", interval)
		}
		c.SampleIntervalMS = interval

	// Display
	case "DISPLAY_UPDATE_INTERVAL_MS":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid DISPLAY_UPDATE_INTERVAL_MS %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("DISPLAY_UPDATE_INTERVAL_MS must be positive, got %d", interval)
		}
		c.DisplayUpdateIntervalMS = interval

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port
	case "FEEDBACK_URL":
		c.FeedbackURL = value

	// Preferences
	case "PREFS_PATH":
		c.PrefsPath = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.HeadingSource == "nmea" && c.CompassSerialPort == "" {
		return fmt.Errorf("COMPASS_SERIAL_PORT is required when HEADING_SOURCE=nmea")
	}
	if c.LevelSource == "mpu9250" && c.AccelSPIDevice == "" {
		return fmt.Errorf("ACCEL_SPI_DEVICE is required when LEVEL_SOURCE=mpu9250")
	}
	if c.LevelSource == "mpu9250" && c.AccelCSPin == "" {
		return fmt.Errorf("ACCEL_CS_PIN is required when LEVEL_SOURCE=mpu9250")
	}
	if c.LampGPIOPin == "" {
		return fmt.Errorf("LAMP_GPIO_PIN is required")
	}
	return nil
}
