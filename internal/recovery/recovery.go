// Package recovery reconstructs engine state after the process was suspended
// or restarted. Engines rebuild from wall-clock anchors in the store; the
// coordinator only decides when.
package recovery

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/clock"
)

// DefaultGap is the tick silence treated as a suspension.
const DefaultGap = 2 * time.Second

// Engine is a state machine that can rebuild itself from the store.
type Engine interface {
	// Recover loads persisted state on process start.
	Recover()
	// Resync recomputes in-memory state from wall-clock deltas after a suspension.
	Resync()
}

// Coordinator runs recovery for a set of engines and spots suspensions
// from gaps between ticks.
type Coordinator struct {
	engines []Engine
	clock   clock.Clock
	log     *log.Logger
	gap     time.Duration
	last    time.Time
}

func New(c clock.Clock, logger *log.Logger, engines ...Engine) *Coordinator {
	if c == nil {
		c = clock.Real{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{engines: engines, clock: c, log: logger, gap: DefaultGap}
}

// SetGap changes the suspension threshold.
func (c *Coordinator) SetGap(d time.Duration) {
	if d > 0 {
		c.gap = d
	}
}

// Restore recovers every engine from the store. Call once at startup.
func (c *Coordinator) Restore() {
	for _, e := range c.engines {
		e.Recover()
	}
	c.last = c.clock.Now()
}

// Resume resyncs every engine. Called when the terminal regains focus.
func (c *Coordinator) Resume() {
	for _, e := range c.engines {
		e.Resync()
	}
	c.last = c.clock.Now()
}

// Beat is called at the top of every tick, before the engines tick. When the
// previous beat is further back than the gap the process was suspended, and
// the engines resync first. Reports whether a resync happened.
func (c *Coordinator) Beat() bool {
	now := c.clock.Now()
	prev := c.last
	c.last = now
	if prev.IsZero() || now.Sub(prev) <= c.gap {
		return false
	}
	c.log.Info("tick gap detected, resyncing", "gap", now.Sub(prev).Round(time.Millisecond))
	for _, e := range c.engines {
		e.Resync()
	}
	return true
}
