package heading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldFor returns the two-axis sample that produces the given heading:
// the tracker computes atan2(-y, x), so x=cos(h), y=-sin(h).
func fieldFor(deg float64) (x, y float64) {
	rad := deg * math.Pi / 180
	return math.Cos(rad), -math.Sin(rad)
}

func feed(t *testing.T, tr *Tracker, deg float64) Reading {
	t.Helper()
	x, y := fieldFor(deg)
	return tr.OnSample(x, y)
}

func TestFirstSamplePrimes(t *testing.T) {
	tr := New()
	r := feed(t, tr, 90)

	assert.InDelta(t, 90, r.Heading, 1e-9)
	assert.InDelta(t, 90, r.Rotation, 1e-9)
	assert.Equal(t, "E", r.Direction)
}

func TestWraparoundThroughNorth(t *testing.T) {
	tr := New()
	feed(t, tr, 350)
	r := feed(t, tr, 10)

	// 350° → 10° goes +20° through North, not -340° the long way around.
	assert.InDelta(t, 10, r.Heading, 1e-9)
	assert.InDelta(t, 370, r.Rotation, 1e-9)

	// And back again.
	r = feed(t, tr, 350)
	assert.InDelta(t, 350, r.Rotation, 1e-9)
}

func TestRotationUnbounded(t *testing.T) {
	tr := New()
	feed(t, tr, 0)

	// Three full clockwise turns in 90° steps.
	deg := 0.0
	var r Reading
	for i := 0; i < 12; i++ {
		deg = math.Mod(deg+90, 360)
		r = feed(t, tr, deg)
	}
	assert.InDelta(t, 1080, r.Rotation, 1e-6)

	// Counter-clockwise goes negative.
	for i := 0; i < 24; i++ {
		deg = math.Mod(deg-90+360, 360)
		r = feed(t, tr, deg)
	}
	assert.InDelta(t, -1080, r.Rotation, 1e-6)
}

func TestShortestPathBound(t *testing.T) {
	// Whatever the sample sequence, the per-step rotation delta never
	// exceeds 180° in magnitude.
	headings := []float64{0, 179, 1, 359, 181, 90, 271, 350.5, 10.25, 170, 190.01, 0}

	tr := New()
	prev := feed(t, tr, headings[0]).Rotation
	for _, h := range headings[1:] {
		r := feed(t, tr, h)
		delta := r.Rotation - prev
		require.LessOrEqual(t, math.Abs(delta), 180.0, "heading %v", h)
		prev = r.Rotation
	}
}

func TestReset(t *testing.T) {
	tr := New()
	feed(t, tr, 350)
	feed(t, tr, 10)

	tr.Reset()
	r := feed(t, tr, 200)
	assert.InDelta(t, 200, r.Rotation, 1e-9)
}

func TestDirection(t *testing.T) {
	tests := []struct {
		heading float64
		want    string
	}{
		{0, "N"},
		{22, "N"},
		{23, "NE"},
		{45, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{337, "NW"},
		{338, "N"},
		{359.9, "N"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Direction(tt.heading), "heading %v", tt.heading)
	}
}

func TestNearNorth(t *testing.T) {
	assert.True(t, NearNorth(0))
	assert.True(t, NearNorth(5))
	assert.True(t, NearNorth(355))
	assert.True(t, NearNorth(359.9))
	assert.False(t, NearNorth(5.1))
	assert.False(t, NearNorth(354.9))
	assert.False(t, NearNorth(180))
}

func TestNaNPropagates(t *testing.T) {
	tr := New()
	r := tr.OnSample(math.NaN(), 1)
	assert.True(t, math.IsNaN(r.Heading))
}
