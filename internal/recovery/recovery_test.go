package recovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/stopwatch"
	"github.com/sujoyonweb/blok/internal/store"
	"github.com/sujoyonweb/blok/internal/timer"
)

type countingEngine struct {
	recovers, resyncs int
}

func (e *countingEngine) Recover() { e.recovers++ }
func (e *countingEngine) Resync()  { e.resyncs++ }

func TestRestoreAndResume(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	a, b := &countingEngine{}, &countingEngine{}
	c := New(clk, nil, a, b)

	c.Restore()
	c.Resume()
	assert.Equal(t, 1, a.recovers)
	assert.Equal(t, 1, b.resyncs)
}

func TestBeatDetectsGap(t *testing.T) {
	clk := clock.NewFake(time.Unix(1_700_000_000, 0))
	e := &countingEngine{}
	c := New(clk, nil, e)
	c.Restore()

	clk.Advance(100 * time.Millisecond)
	assert.False(t, c.Beat())

	clk.Advance(30 * time.Second)
	assert.True(t, c.Beat())
	assert.Equal(t, 1, e.resyncs)

	clk.Advance(100 * time.Millisecond)
	assert.False(t, c.Beat())
}

func TestSuspendedEnginesCatchUp(t *testing.T) {
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	clk := clock.NewFake(time.Date(2026, 3, 12, 9, 0, 0, 0, time.Local))

	tm := timer.New(s, timer.Options{Clock: clk})
	sw := stopwatch.New(s, stopwatch.Options{Clock: clk})
	c := New(clk, nil, tm, sw)
	c.Restore()

	require.NoError(t, tm.Set(0, 2, 0, ""))
	require.NoError(t, tm.Start())
	sw.Start()

	clk.Advance(45 * time.Second)
	require.True(t, c.Beat())
	assert.Equal(t, int64(75), tm.Display())
	assert.Equal(t, 45*time.Second, sw.Elapsed())
}
