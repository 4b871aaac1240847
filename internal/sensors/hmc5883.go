package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// HMC5883L register map (datasheet section 5).
const (
	hmcAddr = 0x1E

	hmcRegConfigA = 0x00
	hmcRegConfigB = 0x01
	hmcRegMode    = 0x02
	hmcRegDataX   = 0x03
	hmcRegIDA     = 0x0A
)

// HMC5883L reads the horizontal magnetic field from the 3-axis magnetometer
// over I2C. Raw counts are fine for the heading tracker: atan2 only needs
// the ratio of the two axes, not physical units.
type HMC5883L struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewHMC5883L opens the I2C bus (empty name picks the first available one),
// verifies the chip identification and switches it to continuous
// measurement mode.
func NewHMC5883L(busName string) (*HMC5883L, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("i2c open: %w", err)
	}

	m := &HMC5883L{bus: bus, dev: i2c.Dev{Bus: bus, Addr: hmcAddr}}

	id := make([]byte, 3)
	if err := m.dev.Tx([]byte{hmcRegIDA}, id); err != nil {
		bus.Close()
		return nil, fmt.Errorf("hmc5883: read id: %w", err)
	}
	if string(id) != "H43" {
		bus.Close()
		return nil, fmt.Errorf("hmc5883: unexpected id %q", id)
	}

	// 8-sample averaging, 15Hz output, normal measurement; gain ±1.3Ga;
	// continuous measurement mode.
	for _, w := range [][2]byte{
		{hmcRegConfigA, 0x70},
		{hmcRegConfigB, 0x20},
		{hmcRegMode, 0x00},
	} {
		if err := m.dev.Tx(w[:], nil); err != nil {
			bus.Close()
			return nil, fmt.Errorf("hmc5883: write reg 0x%02X: %w", w[0], err)
		}
	}

	return m, nil
}

// Next reads the current field and returns its horizontal components.
func (m *HMC5883L) Next() (Sample, error) {
	buf := make([]byte, 6)
	if err := m.dev.Tx([]byte{hmcRegDataX}, buf); err != nil {
		return Sample{}, fmt.Errorf("hmc5883: read data: %w", err)
	}

	// Output register order is X, Z, Y, big-endian int16 each.
	x := int16(uint16(buf[0])<<8 | uint16(buf[1]))
	y := int16(uint16(buf[4])<<8 | uint16(buf[5]))

	return Sample{X: float64(x), Y: float64(y)}, nil
}

func (m *HMC5883L) Close() error {
	return m.bus.Close()
}
