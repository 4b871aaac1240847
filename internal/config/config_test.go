package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "instruments_config.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "MQTT_BROKER=tcp://localhost:1883\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tcp://localhost:1883", cfg.MQTTBroker)
	assert.Equal(t, "instruments/heading", cfg.TopicHeading)
	assert.Equal(t, "instruments/level", cfg.TopicLevel)
	assert.Equal(t, 16, cfg.SampleIntervalMS)
	assert.Equal(t, 200, cfg.MorseUnitMS)
	assert.Equal(t, 250, cfg.DisplayUpdateIntervalMS)
}

func TestLoadParsesValues(t *testing.T) {
	path := writeConfig(t, `
# pocket instruments
MQTT_BROKER=tcp://pi:1883
HEADING_SOURCE=nmea
COMPASS_SERIAL_PORT=/dev/ttyUSB0
COMPASS_BAUD_RATE=9600
LEVEL_SOURCE=mock
LAMP_GPIO_PIN=22
MORSE_UNIT_MS=150
SAMPLE_INTERVAL_MS=20
DISPLAY_UPDATE_INTERVAL_MS=100
WEB_SERVER_PORT=9090
FEEDBACK_URL=https://collector.example.com/feedback
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nmea", cfg.HeadingSource)
	assert.Equal(t, "/dev/ttyUSB0", cfg.CompassSerialPort)
	assert.Equal(t, uint(9600), cfg.CompassBaudRate)
	assert.Equal(t, "mock", cfg.LevelSource)
	assert.Equal(t, "22", cfg.LampGPIOPin)
	assert.Equal(t, 150, cfg.MorseUnitMS)
	assert.Equal(t, 20, cfg.SampleIntervalMS)
	assert.Equal(t, 100, cfg.DisplayUpdateIntervalMS)
	assert.Equal(t, 9090, cfg.WebServerPort)
	assert.Equal(t, "https://collector.example.com/feedback", cfg.FeedbackURL)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "MQTT_BROKER=tcp://localhost:1883\nNO_SUCH_KEY=1\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown config key")
}

func TestLoadRejectsInvalidSource(t *testing.T) {
	path := writeConfig(t, "MQTT_BROKER=tcp://localhost:1883\nHEADING_SOURCE=gps\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "HEADING_SOURCE")
}

func TestValidateRequiresBroker(t *testing.T) {
	path := writeConfig(t, "LEVEL_SOURCE=mock\nHEADING_SOURCE=mock\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "MQTT_BROKER is required")
}

func TestValidateRequiresSerialPortForNMEA(t *testing.T) {
	path := writeConfig(t, "MQTT_BROKER=tcp://localhost:1883\nHEADING_SOURCE=nmea\nLEVEL_SOURCE=mock\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "COMPASS_SERIAL_PORT")
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	path := writeConfig(t, "MQTT_BROKER=tcp://localhost:1883\nSAMPLE_INTERVAL_MS=0\n")

	_, err := Load(path)
	assert.ErrorContains(t, err, "SAMPLE_INTERVAL_MS")
}

func TestDemoNeedsNoHardware(t *testing.T) {
	cfg := Demo()
	assert.Equal(t, "mock", cfg.HeadingSource)
	assert.Equal(t, "mock", cfg.LevelSource)
	assert.NotEmpty(t, cfg.MQTTBroker)
}
