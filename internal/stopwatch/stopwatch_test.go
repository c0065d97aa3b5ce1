package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/store"
)

func newStopwatch(t *testing.T) (*Stopwatch, *store.Store, *clock.Fake) {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	clk := clock.NewFake(time.Date(2026, 3, 12, 9, 0, 0, 0, time.Local))
	sw := New(s, Options{Clock: clk})
	sw.Recover()
	return sw, s, clk
}

func TestStartPauseResumeWithoutDrift(t *testing.T) {
	sw, _, clk := newStopwatch(t)
	sw.Start()
	clk.Advance(90 * time.Second)
	sw.Pause()
	assert.Equal(t, 90*time.Second, sw.Elapsed())

	clk.Advance(time.Hour)
	sw.Toggle()
	clk.Advance(10 * time.Second)
	sw.Tick()
	assert.Equal(t, 100*time.Second, sw.Elapsed())
}

func TestTickReportsWholeSeconds(t *testing.T) {
	sw, _, clk := newStopwatch(t)
	sw.Start()
	assert.True(t, sw.Tick())

	clk.Advance(400 * time.Millisecond)
	assert.False(t, sw.Tick())
	clk.Advance(700 * time.Millisecond)
	assert.True(t, sw.Tick())
}

func TestLapsPersistImmediately(t *testing.T) {
	sw, s, clk := newStopwatch(t)
	sw.Start()
	clk.Advance(65 * time.Second)
	first := sw.Lap()
	clk.Advance(3600 * time.Second)
	sw.Lap()

	assert.Equal(t, Lap{Idx: 1, Time: "00:01:05"}, first)
	laps := store.Get(s, store.KeyStopwatchLaps, []Lap{})
	require.Len(t, laps, 2)
	assert.Equal(t, Lap{Idx: 2, Time: "01:01:05"}, laps[0])
}

func TestRecoverRunning(t *testing.T) {
	sw, s, clk := newStopwatch(t)
	sw.Start()
	sw.Lap()
	clk.Advance(2 * time.Minute)

	restored := New(s, Options{Clock: clk})
	restored.Recover()
	assert.Equal(t, Running, restored.State())
	assert.Equal(t, 2*time.Minute, restored.Elapsed())
	assert.Len(t, restored.Laps(), 1)
}

func TestRecoverPaused(t *testing.T) {
	sw, s, clk := newStopwatch(t)
	sw.Start()
	clk.Advance(42 * time.Second)
	sw.Pause()
	clk.Advance(time.Hour)

	restored := New(s, Options{Clock: clk})
	restored.Recover()
	assert.Equal(t, Paused, restored.State())
	assert.Equal(t, 42*time.Second, restored.Elapsed())
}

func TestResetClearsEverything(t *testing.T) {
	sw, s, clk := newStopwatch(t)
	sw.SetTask("reading")
	sw.Start()
	clk.Advance(time.Minute)
	sw.Lap()
	sw.Reset()

	assert.Equal(t, Idle, sw.State())
	assert.Zero(t, sw.Elapsed())
	assert.Empty(t, sw.Laps())
	assert.Empty(t, sw.Task())
	for _, k := range []string{store.KeyStopwatchState, store.KeyStopwatchStart, store.KeyStopwatchElapsed, store.KeyStopwatchLaps} {
		var v any
		assert.False(t, s.Load(k, &v), k)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00:00", Format(0))
	assert.Equal(t, "10:00:01", Format(10*time.Hour+time.Second))
}
