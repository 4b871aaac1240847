package morse

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func on(n int, unit time.Duration) Segment {
	return Segment{Duration: time.Duration(n) * unit, On: true}
}
func off(n int, unit time.Duration) Segment {
	return Segment{Duration: time.Duration(n) * unit, On: false}
}

func TestCodeTableBijection(t *testing.T) {
	assert.Len(t, codes, 36)

	seen := make(map[string]rune, len(codes))
	for r, pattern := range codes {
		require.NotEmpty(t, pattern, "rune %q", r)
		for _, sym := range pattern {
			require.Contains(t, []rune{'.', '-'}, sym, "rune %q", r)
		}
		prev, dup := seen[pattern]
		require.False(t, dup, "pattern %q maps to both %q and %q", pattern, prev, r)
		seen[pattern] = r
	}
}

func TestPattern(t *testing.T) {
	p, ok := Pattern('S')
	require.True(t, ok)
	assert.Equal(t, "...", p)

	_, ok = Pattern('!')
	assert.False(t, ok)
}

func TestSOSPlanLayout(t *testing.T) {
	u := 200 * time.Millisecond
	want := Plan{
		// three short
		on(1, u), off(1, u), on(1, u), off(1, u), on(1, u),
		off(2, u),
		// three long
		on(3, u), off(1, u), on(3, u), off(1, u), on(3, u),
		off(2, u),
		// three short
		on(1, u), off(1, u), on(1, u), off(1, u), on(1, u),
		// pause before the cycle repeats
		off(4, u),
	}

	got := SOSPlan(u)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SOS plan mismatch (-want +got):\n%s", diff)
	}
}

func TestTextPlanSOS(t *testing.T) {
	u := time.Millisecond
	want := Plan{
		// S = ...
		on(1, u), off(1, u), on(1, u), off(1, u), on(1, u),
		off(3, u),
		// O = ---
		on(3, u), off(1, u), on(3, u), off(1, u), on(3, u),
		off(3, u),
		// S = ...
		on(1, u), off(1, u), on(1, u), off(1, u), on(1, u),
	}

	got, err := TextPlan("SOS", u)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SOS text plan mismatch (-want +got):\n%s", diff)
	}
}

func TestTextPlanLowercased(t *testing.T) {
	u := time.Millisecond
	upper, err := TextPlan("SOS", u)
	require.NoError(t, err)
	lower, err := TextPlan("sos", u)
	require.NoError(t, err)
	assert.Equal(t, upper, lower)
}

func TestTextPlanWordGap(t *testing.T) {
	u := time.Millisecond
	want := Plan{
		// E = .
		on(1, u),
		off(7, u),
		// T = -
		on(3, u),
	}

	got, err := TextPlan("E T", u)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("word gap plan mismatch (-want +got):\n%s", diff)
	}
}

func TestTextPlanSplitsOnWhitespaceRuns(t *testing.T) {
	u := time.Millisecond
	single, err := TextPlan("E T", u)
	require.NoError(t, err)
	runs, err := TextPlan("  E \t\t T  ", u)
	require.NoError(t, err)
	assert.Equal(t, single, runs)
}

func TestUnknownCharacterHoldsLetterGap(t *testing.T) {
	u := time.Millisecond
	want := Plan{
		// A = .-
		on(1, u), off(1, u), on(3, u),
		off(3, u),
		// 1 = .----
		on(1, u), off(1, u), on(3, u), off(1, u), on(3, u), off(1, u), on(3, u), off(1, u), on(3, u),
		off(3, u),
		// '!' transmits nothing but still holds its letter gap
		off(3, u),
		// B = -...
		on(3, u), off(1, u), on(1, u), off(1, u), on(1, u), off(1, u), on(1, u),
	}

	got, err := TextPlan("A1!B", u)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unknown-character plan mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyMessageRejected(t *testing.T) {
	for _, text := range []string{"", "   ", " \t\n "} {
		_, err := TextPlan(text, time.Millisecond)
		assert.ErrorIs(t, err, ErrEmptyMessage, "text %q", text)
	}
}

func TestPlanTotal(t *testing.T) {
	u := 200 * time.Millisecond

	// SOS cycle: 15 units of light (3·1 + 3·3 + 3·1), 6 units of intra-group
	// gaps, 4 of inter-group gaps, 4 for the repeat pause: 29 units.
	assert.Equal(t, 29*u, SOSPlan(u).Total())
}
