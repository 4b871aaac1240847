package level

import "math"

// Threshold is the tilt magnitude, in degrees, under which the device counts
// as level on both axes.
const Threshold = 2.0

// Reading is one derived tilt reading, suitable for JSON and MQTT.
type Reading struct {
	XAngle float64 `json:"x_angle"` // degrees, roughly (-90, 90)
	YAngle float64 `json:"y_angle"`
	Level  bool    `json:"level"`
}

// Compute derives per-axis tilt angles from acceleration components in g.
// The vertical component is assumed near 1g, which is where the constant
// under the square root comes from.
//
// Level detection is angle-based rather than raw-acceleration-based because
// the angle is stable under sensor calibration offset drift. The raw value
// only ever feeds the decorative bubble offset (see BubbleOffset).
func Compute(ax, ay float64) Reading {
	x := math.Atan2(ax, math.Sqrt(ay*ay+1)) * 180 / math.Pi
	y := math.Atan2(ay, math.Sqrt(ax*ax+1)) * 180 / math.Pi

	return Reading{
		XAngle: x,
		YAngle: y,
		Level:  math.Abs(x) < Threshold && math.Abs(y) < Threshold,
	}
}

// BubbleOffset maps an acceleration component onto a clamped display offset:
// scale is a presentation factor, max the bubble's travel limit. The result
// carries no semantic meaning and must never feed level detection.
func BubbleOffset(a, scale, max float64) float64 {
	v := a * scale
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}
