// Package stopwatch implements the count-up engine with laps.
package stopwatch

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/store"
)

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "idle"
}

// Lap is one recorded split, numbered from 1.
type Lap struct {
	Idx  int    `json:"idx"`
	Time string `json:"time"`
}

type Options struct {
	Clock  clock.Clock
	Logger *log.Logger
}

type Stopwatch struct {
	kv    store.KV
	clock clock.Clock
	log   *log.Logger

	state   State
	start   time.Time
	elapsed time.Duration
	laps    []Lap
	lastSec int64
}

func New(kv store.KV, opts Options) *Stopwatch {
	sw := &Stopwatch{kv: kv, clock: opts.Clock, log: opts.Logger, lastSec: -1}
	if sw.clock == nil {
		sw.clock = clock.Real{}
	}
	if sw.log == nil {
		sw.log = log.New(io.Discard)
	}
	return sw
}

// Recover restores laps and any running or paused count from the store.
func (sw *Stopwatch) Recover() {
	sw.laps = store.Get(sw.kv, store.KeyStopwatchLaps, []Lap{})
	sw.state = Idle
	sw.elapsed = 0

	switch store.Get(sw.kv, store.KeyStopwatchState, "") {
	case Running.String():
		startMs := store.Get[int64](sw.kv, store.KeyStopwatchStart, 0)
		if startMs <= 0 {
			return
		}
		sw.elapsed = sw.clock.Now().Sub(time.UnixMilli(startMs))
		if sw.elapsed < 0 {
			sw.elapsed = 0
		}
		sw.Start()
		sw.log.Info("recovered running stopwatch", "elapsed", sw.elapsed)
	case Paused.String():
		ms := store.Get[int64](sw.kv, store.KeyStopwatchElapsed, 0)
		sw.elapsed = time.Duration(ms) * time.Millisecond
		sw.state = Paused
	}
}

// Resync recomputes elapsed time after a suspension.
func (sw *Stopwatch) Resync() {
	sw.Tick()
}

// Start begins counting from the current elapsed time.
func (sw *Stopwatch) Start() {
	if sw.state == Running {
		return
	}
	sw.state = Running
	sw.start = sw.clock.Now().Add(-sw.elapsed)
	sw.save(store.KeyStopwatchState, Running.String())
	sw.save(store.KeyStopwatchStart, clock.Millis(sw.start))
}

func (sw *Stopwatch) Pause() {
	if sw.state != Running {
		return
	}
	sw.elapsed = sw.clock.Now().Sub(sw.start)
	sw.state = Paused
	sw.save(store.KeyStopwatchState, Paused.String())
	sw.save(store.KeyStopwatchElapsed, sw.elapsed.Milliseconds())
}

func (sw *Stopwatch) Toggle() {
	if sw.state == Running {
		sw.Pause()
		return
	}
	sw.Start()
}

// Tick refreshes elapsed time and reports whether the whole second changed.
func (sw *Stopwatch) Tick() bool {
	if sw.state != Running {
		return false
	}
	sw.elapsed = sw.clock.Now().Sub(sw.start)
	sec := int64(sw.elapsed / time.Second)
	if sec == sw.lastSec {
		return false
	}
	sw.lastSec = sec
	return true
}

// Lap records the current elapsed time. Laps are persisted immediately.
func (sw *Stopwatch) Lap() Lap {
	if sw.state == Running {
		sw.elapsed = sw.clock.Now().Sub(sw.start)
	}
	l := Lap{Idx: len(sw.laps) + 1, Time: Format(sw.elapsed)}
	sw.laps = append([]Lap{l}, sw.laps...)
	sw.save(store.KeyStopwatchLaps, sw.laps)
	return l
}

// Reset clears elapsed time, laps and the stopwatch task.
func (sw *Stopwatch) Reset() {
	sw.state = Idle
	sw.elapsed = 0
	sw.laps = nil
	sw.lastSec = -1
	for _, k := range []string{
		store.KeyStopwatchState,
		store.KeyStopwatchStart,
		store.KeyStopwatchElapsed,
		store.KeyStopwatchLaps,
		store.KeyTaskStopwatch,
	} {
		if err := sw.kv.Remove(k); err != nil {
			sw.log.Warn("clear stopwatch state", "key", k, "err", err)
		}
	}
}

func (sw *Stopwatch) State() State           { return sw.state }
func (sw *Stopwatch) Elapsed() time.Duration { return sw.elapsed }

// Laps returns recorded laps, newest first.
func (sw *Stopwatch) Laps() []Lap {
	return append([]Lap(nil), sw.laps...)
}

func (sw *Stopwatch) Task() string {
	return store.Get(sw.kv, store.KeyTaskStopwatch, "")
}

func (sw *Stopwatch) SetTask(text string) {
	sw.save(store.KeyTaskStopwatch, text)
}

func (sw *Stopwatch) save(key string, v any) {
	if err := sw.kv.Save(key, v); err != nil {
		sw.log.Warn("persist stopwatch state", "key", key, "err", err)
	}
}

// Format renders d as HH:MM:SS.
func Format(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
