// Package sensors provides the two-axis sample sources feeding the heading
// and level trackers: real hardware (HMC5883L magnetometer, MPU-9250
// accelerometer), a serial NMEA compass, and mock sources for development.
package sensors

// Sample is one raw two-axis sensor reading. Samples are ephemeral: pushed
// into a tracker at a fixed cadence, never stored.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Source is anything that can provide samples over time: real hardware,
// a serial compass, or a mock.
type Source interface {
	Next() (Sample, error)
}
