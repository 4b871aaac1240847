package heading

import "math"

// directions are the eight cardinal/intercardinal names in 45° steps,
// clockwise from magnetic North.
var directions = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Reading is one derived compass reading, suitable for JSON and MQTT.
type Reading struct {
	// Heading is the compass bearing in degrees, [0,360), 0 = magnetic North.
	Heading float64 `json:"heading"`
	// Rotation is the cumulative rotation in degrees. It is unbounded (may
	// exceed ±360) so a needle animated from it never snaps the long way
	// around at the North boundary.
	Rotation  float64 `json:"rotation"`
	Direction string  `json:"direction"`
	NearNorth bool    `json:"near_north"`
}

// Tracker converts raw two-axis magnetic field samples into headings and a
// continuously-animatable cumulative rotation. It keeps only the previous
// angle between samples; it does no throttling and no input validation
// (NaN propagates). Not safe for concurrent use.
type Tracker struct {
	previous float64
	rotation float64
	primed   bool
}

func New() *Tracker {
	return &Tracker{}
}

// OnSample derives a reading from the horizontal field components.
// The per-sample delta is normalized to the shortest path, so the reported
// rotation never jumps by more than 180° between consecutive samples.
func (t *Tracker) OnSample(x, y float64) Reading {
	raw := math.Atan2(-y, x) * 180 / math.Pi
	raw = math.Mod(raw+360, 360)

	if !t.primed {
		t.previous = raw
		t.rotation = raw
		t.primed = true
	} else {
		delta := raw - t.previous
		if delta > 180 {
			delta -= 360
		} else if delta < -180 {
			delta += 360
		}
		t.rotation += delta
		t.previous = raw
	}

	return Reading{
		Heading:   raw,
		Rotation:  t.rotation,
		Direction: Direction(raw),
		NearNorth: NearNorth(raw),
	}
}

// Reset forgets the previous sample; the next one re-primes the tracker.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Direction returns the cardinal name nearest to heading.
func Direction(heading float64) string {
	return directions[int(math.Round(heading/45))%8]
}

// NearNorth reports whether heading is within 5° of magnetic North.
// Debouncing (e.g. for haptic feedback) is the caller's job.
func NearNorth(heading float64) bool {
	return heading <= 5 || heading >= 355
}
