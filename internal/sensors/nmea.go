package sensors

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	nmea "github.com/adrianmo/go-nmea"
	serial "github.com/jacobsa/go-serial/serial"
)

// NMEACompass reads heading sentences (HDT, HDG) from a serial-attached
// compass and synthesizes the equivalent horizontal field vector, so the
// same heading tracker serves both raw magnetometers and NMEA devices.
type NMEACompass struct {
	port   io.ReadCloser
	reader *bufio.Reader
}

// NewNMEACompass opens the serial port at the given baud rate.
func NewNMEACompass(portName string, baudRate uint) (*NMEACompass, error) {
	port, err := serial.Open(serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baudRate,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	})
	if err != nil {
		return nil, fmt.Errorf("compass serial open: %w", err)
	}

	return &NMEACompass{port: port, reader: bufio.NewReader(port)}, nil
}

// Next blocks until the next heading sentence arrives. Partial or
// unparseable lines are skipped; a noisy compass emits plenty of both.
func (c *NMEACompass) Next() (Sample, error) {
	for {
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return Sample{}, fmt.Errorf("compass read: %w", err)
		}

		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "$") {
			continue
		}

		sentence, err := nmea.Parse(line)
		if err != nil {
			continue
		}

		var hdg float64
		switch sentence.DataType() {
		case nmea.TypeHDT:
			hdg = sentence.(nmea.HDT).Heading
		case nmea.TypeHDG:
			hdg = sentence.(nmea.HDG).Heading
		default:
			continue
		}

		return FieldVector(hdg), nil
	}
}

func (c *NMEACompass) Close() error {
	return c.port.Close()
}

// FieldVector converts a known heading in degrees back into the two-axis
// sample that produces it: the tracker computes atan2(-y, x), so x=cos(h),
// y=-sin(h) round-trips exactly.
func FieldVector(headingDeg float64) Sample {
	rad := headingDeg * math.Pi / 180
	return Sample{X: math.Cos(rad), Y: -math.Sin(rad)}
}
