package sensors

import (
	"fmt"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"
)

// accelCountsPerG converts raw accelerometer counts at the default ±2g
// range into g. The level math expects g units (the vertical axis is
// assumed to sit near 1g).
const accelCountsPerG = 16384.0

type mpuAccelerometer struct {
	imu *mpu9250.MPU9250
}

// NewMPU9250Accelerometer initializes the MPU-9250 over SPI and returns a
// Source yielding the two horizontal acceleration components in g.
func NewMPU9250Accelerometer(spiDev, csPin string) (Source, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}

	cs := gpioreg.ByName(csPin)
	if cs == nil {
		return nil, fmt.Errorf("accel CS pin %q not found", csPin)
	}

	tr, err := mpu9250.NewSpiTransport(spiDev, cs)
	if err != nil {
		return nil, fmt.Errorf("accel SPI transport: %w", err)
	}

	imu, err := mpu9250.New(*tr)
	if err != nil {
		return nil, fmt.Errorf("accel new device: %w", err)
	}

	if err := imu.Init(); err != nil {
		return nil, fmt.Errorf("accel init: %w", err)
	}

	return &mpuAccelerometer{imu: imu}, nil
}

func (s *mpuAccelerometer) Next() (Sample, error) {
	ax, err := s.imu.GetAccelerationX()
	if err != nil {
		return Sample{}, fmt.Errorf("accel X: %w", err)
	}
	ay, err := s.imu.GetAccelerationY()
	if err != nil {
		return Sample{}, fmt.Errorf("accel Y: %w", err)
	}

	return Sample{
		X: float64(ax) / accelCountsPerG,
		Y: float64(ay) / accelCountsPerG,
	}, nil
}
