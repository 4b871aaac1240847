package lamp

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// GPIO drives a lamp wired to a single GPIO pin via periph.io.
type GPIO struct {
	pin gpio.PinOut
}

// NewGPIO initializes the periph host, looks up the pin by name (e.g. "18")
// and applies the initial level. The launch preference is passed in
// explicitly here rather than read from some shared container, so the pin
// owner is unambiguous from the start.
func NewGPIO(pinName string, onAtStart bool) (*GPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("lamp pin %q not found", pinName)
	}

	l := &GPIO{pin: pin}
	if err := l.Set(onAtStart); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *GPIO) Set(on bool) error {
	lvl := gpio.Low
	if on {
		lvl = gpio.High
	}
	if err := l.pin.Out(lvl); err != nil {
		return fmt.Errorf("lamp pin out: %w", err)
	}
	return nil
}
