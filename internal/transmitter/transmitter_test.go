package transmitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/pocket_instruments/internal/lamp"
	"github.com/relabs-tech/pocket_instruments/internal/morse"
)

func TestMorseRunsToCompletion(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)
	defer tx.Close()

	require.NoError(t, tx.StartMorse("E"))
	tx.Wait()

	assert.Equal(t, Idle, tx.State())
	assert.False(t, mock.On())

	// One dot, then the forced off on exit.
	assert.Equal(t, []bool{true, false}, mock.Transitions())
}

func TestStopWhenIdleIsNoop(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)

	tx.Stop()
	tx.Stop()

	assert.Equal(t, Idle, tx.State())
	assert.Empty(t, mock.Transitions())
}

func TestStopLeavesLampOffWithinOneSegment(t *testing.T) {
	mock := lamp.NewMock()
	unit := 20 * time.Millisecond
	tx := New(mock, unit)
	defer tx.Close()

	tx.StartSOS()
	require.Eventually(t, func() bool { return tx.State() == RunningSOS },
		time.Second, time.Millisecond)

	// Land somewhere in the middle of a segment.
	time.Sleep(unit + unit/2)

	start := time.Now()
	tx.Stop()
	elapsed := time.Since(start)

	assert.Equal(t, Idle, tx.State())
	assert.False(t, mock.On())
	// Bounded by the longest segment (the 4-unit repeat pause), with slack
	// for scheduling.
	assert.Less(t, elapsed, 4*unit+50*time.Millisecond)
}

func TestStartMorseStopsRunningSOS(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, 10*time.Millisecond)
	defer tx.Close()

	tx.StartSOS()
	require.Eventually(t, func() bool { return tx.State() == RunningSOS },
		time.Second, time.Millisecond)
	time.Sleep(15 * time.Millisecond)

	require.NoError(t, tx.StartMorse("A"))
	assert.Equal(t, RunningMorse, tx.State())

	tx.Wait()
	assert.Equal(t, Idle, tx.State())
	assert.False(t, mock.On())

	// The SOS loop must have released the lamp (off) before the first Morse
	// pulse: A = .- is on/off/on plus the forced off, preceded by the off
	// that ended SOS.
	tr := mock.Transitions()
	require.GreaterOrEqual(t, len(tr), 5)
	assert.Equal(t, []bool{false, true, false, true, false}, tr[len(tr)-5:])
}

func TestSOSRepeatsUntilStopped(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)
	defer tx.Close()

	tx.StartSOS()

	// One SOS cycle is 29ms at this unit; after several times that the
	// transmission must still be running.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, RunningSOS, tx.State())

	tx.Stop()
	assert.Equal(t, Idle, tx.State())
	assert.False(t, mock.On())
}

func TestEmptyMorseRejectedBeforeStateChange(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)

	err := tx.StartMorse("   ")
	assert.ErrorIs(t, err, morse.ErrEmptyMessage)
	assert.Equal(t, Idle, tx.State())
	assert.Empty(t, mock.Transitions())
}

func TestToggleRejectedWhileTransmitting(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)
	defer tx.Close()

	tx.StartSOS()
	require.Eventually(t, func() bool { return tx.State() == RunningSOS },
		time.Second, time.Millisecond)

	assert.ErrorIs(t, tx.Toggle(), ErrTransmitting)
	assert.False(t, tx.ManualOn())

	tx.Stop()
	require.NoError(t, tx.Toggle())
	assert.True(t, tx.ManualOn())
	assert.True(t, mock.On())

	require.NoError(t, tx.Toggle())
	assert.False(t, mock.On())
}

func TestStartClearsManualLamp(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)
	defer tx.Close()

	require.NoError(t, tx.Toggle())
	require.True(t, mock.On())

	tx.StartSOS()
	tx.Stop()

	assert.False(t, tx.ManualOn())
	assert.False(t, mock.On())
}

func TestCloseStopsActiveTransmission(t *testing.T) {
	mock := lamp.NewMock()
	tx := New(mock, time.Millisecond)

	tx.StartSOS()
	require.Eventually(t, func() bool { return tx.State() == RunningSOS },
		time.Second, time.Millisecond)

	require.NoError(t, tx.Close())
	assert.Equal(t, Idle, tx.State())
	assert.False(t, mock.On())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "sos", RunningSOS.String())
	assert.Equal(t, "morse", RunningMorse.String())
}
