package morse

import (
	"errors"
	"strings"
	"time"
)

// DefaultUnit is the base timing unit T. A dot is 1T, a dash 3T, per
// International Morse Code timing.
const DefaultUnit = 200 * time.Millisecond

// ErrEmptyMessage rejects transmissions with no encodable content.
var ErrEmptyMessage = errors.New("morse: empty message")

// codes maps A–Z and 0–9 to their dot/dash patterns.
var codes = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

// Pattern returns the dot/dash pattern for r (already upper-cased), and
// whether r has an encoding at all.
func Pattern(r rune) (string, bool) {
	p, ok := codes[r]
	return p, ok
}

// Segment is one timed step of a transmission: hold the lamp On (or off)
// for Duration.
type Segment struct {
	Duration time.Duration
	On       bool
}

// Plan is an ordered pulse sequence. Plans are transient: built per
// transmission and discarded afterwards.
type Plan []Segment

// Total returns the wall-clock duration of the whole plan.
func (p Plan) Total() time.Duration {
	var d time.Duration
	for _, s := range p {
		d += s.Duration
	}
	return d
}

// TextPlan encodes text into a pulse plan with base unit T: dot=1T, dash=3T,
// gap within a letter 1T, between letters 3T, between words 7T; trailing
// gaps are omitted. Input is upper-cased and split on whitespace runs.
//
// A character without an encoding emits no light but still holds its letter
// gap, so the cadence of the surrounding message is preserved. Text with
// nothing but whitespace is rejected with ErrEmptyMessage before any lamp
// activity.
func TextPlan(text string, unit time.Duration) (Plan, error) {
	words := strings.Fields(strings.ToUpper(text))
	if len(words) == 0 {
		return nil, ErrEmptyMessage
	}

	var plan Plan
	for wi, word := range words {
		letters := []rune(word)
		for li, r := range letters {
			if pattern, ok := codes[r]; ok {
				for si, sym := range pattern {
					d := unit
					if sym == '-' {
						d = 3 * unit
					}
					plan = append(plan, Segment{Duration: d, On: true})
					if si < len(pattern)-1 {
						plan = append(plan, Segment{Duration: unit, On: false})
					}
				}
			}
			if li < len(letters)-1 {
				plan = append(plan, Segment{Duration: 3 * unit, On: false})
			}
		}
		if wi < len(words)-1 {
			plan = append(plan, Segment{Duration: 7 * unit, On: false})
		}
	}
	return plan, nil
}

// SOSPlan builds one cycle of the distress pattern: three short pulses,
// three long, three short. Gaps inside a group are 1T (omitted after the
// last pulse of a group), between groups 2T, and the cycle ends with a 4T
// pause before the caller repeats it.
func SOSPlan(unit time.Duration) Plan {
	pulses := []time.Duration{unit, 3 * unit, unit}

	var plan Plan
	for gi, pulse := range pulses {
		for i := 0; i < 3; i++ {
			plan = append(plan, Segment{Duration: pulse, On: true})
			if i < 2 {
				plan = append(plan, Segment{Duration: unit, On: false})
			}
		}
		if gi < len(pulses)-1 {
			plan = append(plan, Segment{Duration: 2 * unit, On: false})
		}
	}
	return append(plan, Segment{Duration: 4 * unit, On: false})
}
