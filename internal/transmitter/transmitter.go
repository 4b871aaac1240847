// Package transmitter sequences the lamp through timed pulse plans: the
// repeating SOS pattern or a one-shot Morse-encoded message. At most one
// transmission is active at a time and the transmitter owns the lamp for
// its whole duration.
package transmitter

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/relabs-tech/pocket_instruments/internal/lamp"
	"github.com/relabs-tech/pocket_instruments/internal/morse"
)

// State of the transmitter. Exactly one transmission mode can be active;
// starting one while the other runs stops the other first.
type State int

const (
	Idle State = iota
	RunningSOS
	RunningMorse
)

func (s State) String() string {
	switch s {
	case RunningSOS:
		return "sos"
	case RunningMorse:
		return "morse"
	default:
		return "idle"
	}
}

// ErrTransmitting rejects manual lamp control while a transmission owns
// the lamp.
var ErrTransmitting = errors.New("transmitter: transmission in progress")

// Transmitter drives a lamp through pulse plans. Cancellation is carried by
// a context distinct from any UI-observable state, checked before every
// segment, so a stop request takes effect within one segment's duration
// regardless of pending UI reads.
type Transmitter struct {
	lamp lamp.Lamp
	unit time.Duration

	mu     sync.Mutex
	state  State
	manual bool
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds a transmitter around l. unit <= 0 selects morse.DefaultUnit.
func New(l lamp.Lamp, unit time.Duration) *Transmitter {
	if unit <= 0 {
		unit = morse.DefaultUnit
	}
	return &Transmitter{lamp: l, unit: unit}
}

// State returns the current transmission state.
func (t *Transmitter) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// ManualOn reports whether the lamp is lit by the manual toggle.
func (t *Transmitter) ManualOn() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.manual
}

// StartSOS begins the repeating distress pattern. Any active transmission
// is stopped (lamp off) before the first pulse.
func (t *Transmitter) StartSOS() {
	t.start(RunningSOS, morse.SOSPlan(t.unit), true)
}

// StartMorse transmits text once and returns to Idle on completion. Blank
// input is rejected with morse.ErrEmptyMessage before any state change.
// Any active transmission is stopped (lamp off) before the first pulse.
func (t *Transmitter) StartMorse(text string) error {
	plan, err := morse.TextPlan(text, t.unit)
	if err != nil {
		return err
	}
	t.start(RunningMorse, plan, false)
	return nil
}

func (t *Transmitter) start(s State, plan morse.Plan, repeat bool) {
	t.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.mu.Lock()
	t.state = s
	t.manual = false
	t.cancel = cancel
	t.done = done
	t.mu.Unlock()

	go t.run(ctx, plan, repeat, done)
}

// Stop cancels the active transmission and waits until the pulse loop has
// released the lamp (off) and the state is Idle. No-op when already Idle.
func (t *Transmitter) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the active transmission completes or is stopped.
func (t *Transmitter) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Toggle flips the lamp manually. Rejected with ErrTransmitting while a
// transmission is active: the transmission owns the lamp until it ends.
func (t *Transmitter) Toggle() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != Idle {
		return ErrTransmitting
	}
	t.manual = !t.manual
	return t.lamp.Set(t.manual)
}

// Close is teardown: stop whichever mode is active and leave the lamp off.
func (t *Transmitter) Close() error {
	t.Stop()
	t.mu.Lock()
	t.manual = false
	t.mu.Unlock()
	return t.lamp.Set(false)
}

// run executes plan segment by segment, looping when repeat is set. The
// context is checked before every segment, never only at plan boundaries,
// so stop latency is bounded by the longest single segment. Every exit path
// forces the lamp off before the state becomes Idle.
func (t *Transmitter) run(ctx context.Context, plan morse.Plan, repeat bool, done chan struct{}) {
	defer func() {
		if err := t.lamp.Set(false); err != nil {
			log.Printf("transmitter: lamp off: %v", err)
		}
		t.mu.Lock()
		t.state = Idle
		if t.done == done {
			t.cancel, t.done = nil, nil
		}
		t.mu.Unlock()
		close(done)
	}()

	for {
		for _, seg := range plan {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := t.lamp.Set(seg.On); err != nil {
				log.Printf("transmitter: lamp set: %v", err)
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(seg.Duration):
			}
		}
		if !repeat {
			return
		}
	}
}
