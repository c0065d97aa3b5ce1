package timer

import (
	"fmt"
	"time"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/store"
)

type transitionKind int

const (
	swapPhase transitionKind = iota
	autoStart
	resetAfterFinish
)

// Hand-off stages persisted between a finished auto-flow phase and the next start.
const (
	handoffSwap  = "swap"
	handoffStart = "start"
)

// transition is a deferred step executed by the first tick past its deadline.
type transition struct {
	kind transitionKind
	at   time.Time
}

// Start begins or resumes the countdown. A paused momentum session resumes its overtime clock.
func (t *Timer) Start() error {
	if t.awaiting {
		return ErrAwaitingReflection
	}
	if t.clock.Now().Before(t.lockUntil) {
		return ErrStarting
	}
	if t.state == Running {
		return nil
	}
	if t.state == Paused && t.inMomentum {
		t.startMomentum(true)
		return nil
	}
	if t.remaining <= 0 {
		return fmt.Errorf("%w: nothing left to count down", ErrInvalidDuration)
	}
	t.start(t.state == Paused && t.sessionID != "")
	return nil
}

// Toggle pauses a running timer and starts anything else.
func (t *Timer) Toggle() error {
	if t.clock.Now().Before(t.lockUntil) {
		return ErrStarting
	}
	if t.state == Running {
		t.Pause()
		return nil
	}
	return t.Start()
}

func (t *Timer) start(resume bool) {
	now := t.clock.Now()
	if !resume && t.autoFlow && t.phase == Focus && t.remaining == t.duration {
		t.base = t.duration
		t.save(store.KeySessionBase, t.base)
	}
	if !resume {
		t.lockUntil = now.Add(StartLock)
		t.sessionID = newSessionID()
		t.save(store.KeySessionID, t.sessionID)
	}
	t.state = Running
	t.inMomentum = false
	t.end = now.Add(time.Duration(t.remaining) * time.Second)
	t.remove(store.KeyTimerHandoff)
	t.save(store.KeyTimerState, Running.String())
	t.save(store.KeyTimerEnd, clock.Millis(t.end))
	t.emit(Event{Kind: EventStarted, Phase: t.phase})
}

// startMomentum switches to counting overtime from momentumSeconds.
func (t *Timer) startMomentum(resume bool) {
	now := t.clock.Now()
	t.state = Running
	t.inMomentum = true
	t.remaining = 0
	if !resume {
		t.sessionID = newSessionID()
		t.save(store.KeySessionID, t.sessionID)
		t.emit(Event{Kind: EventAlarm, Phase: t.phase})
		t.emit(Event{Kind: EventMomentumStarted, Phase: t.phase})
		t.notify("Time's up", "Momentum: counting overtime")
	}
	t.momentumStart = now.Add(-time.Duration(t.momentumSeconds) * time.Second)
	// The anchor doubles as the end timestamp so recovery derives the same overtime.
	t.save(store.KeyTimerState, Running.String())
	t.save(store.KeyTimerEnd, clock.Millis(t.momentumStart))
	t.save(store.KeyTimerMomentum, t.momentumSeconds)
	if resume {
		t.emit(Event{Kind: EventStarted, Phase: t.phase})
	}
}

// Pause freezes the countdown or the overtime clock.
func (t *Timer) Pause() {
	if t.state != Running {
		return
	}
	// An end that already passed completes the run instead.
	t.Tick()
	if t.state != Running {
		return
	}
	now := t.clock.Now()
	t.state = Paused
	t.lockUntil = time.Time{}
	t.save(store.KeyTimerState, Paused.String())
	if t.inMomentum {
		t.momentumSeconds = int64(now.Sub(t.momentumStart) / time.Second)
		t.save(store.KeyTimerMomentum, t.momentumSeconds)
	} else {
		if d := t.end.Sub(now); d > 0 {
			t.remaining = ceilSeconds(d)
		}
		t.save(store.KeyTimerRemaining, t.remaining)
		t.remove(store.KeyTimerEnd)
	}
	t.emit(Event{Kind: EventPaused, Phase: t.phase})
}

// Tick recomputes the clock from the wall-clock anchor and runs any due
// deferred step. It reports whether the display changed.
func (t *Timer) Tick() bool {
	now := t.clock.Now()
	changed := t.runPending(now)
	if t.state != Running {
		return changed
	}

	if t.inMomentum {
		secs := int64(now.Sub(t.momentumStart) / time.Second)
		if secs == t.momentumSeconds {
			return changed
		}
		t.momentumSeconds = secs
		t.save(store.KeyTimerMomentum, secs)
		return true
	}

	delta := t.end.Sub(now)
	if delta > 0 {
		rem := ceilSeconds(delta)
		if rem == t.remaining {
			return changed
		}
		t.remaining = rem
		return true
	}

	t.remaining = 0
	if t.momentumMode {
		t.momentumSeconds = int64(-delta / time.Second)
		t.startMomentum(false)
	} else {
		t.finish()
	}
	return true
}

func (t *Timer) runPending(now time.Time) bool {
	ran := false
	for len(t.pending) > 0 && !now.Before(t.pending[0].at) {
		next := t.pending[0]
		t.pending = t.pending[1:]
		ran = true
		switch next.kind {
		case swapPhase:
			t.swapPhase()
		case autoStart:
			t.start(true)
		case resetAfterFinish:
			t.Reset()
		}
	}
	return ran
}

func (t *Timer) schedule(kind transitionKind, after time.Duration) {
	t.pending = append(t.pending, transition{kind: kind, at: t.clock.Now().Add(after)})
}

// NextDeadline reports when the earliest deferred step falls due.
func (t *Timer) NextDeadline() (time.Time, bool) {
	if len(t.pending) == 0 {
		return time.Time{}, false
	}
	return t.pending[0].at, true
}

// Reset returns to idle at the full duration and forgets the current run.
// With auto-flow on, resetting during a break bounces back to focus.
func (t *Timer) Reset() {
	t.state = Idle
	t.inMomentum = false
	t.momentumSeconds = 0
	t.awaiting = false
	t.pending = nil
	t.lockUntil = time.Time{}

	if t.autoFlow && t.phase == Break {
		t.duration = t.base
		if t.duration <= 0 {
			t.duration = DefaultDuration
		}
		t.label = focusLabel(t.duration)
		t.save(store.KeyTimerDuration, t.duration)
		t.save(store.KeyLastPreset, lastPreset{Time: t.duration, Label: t.label})
	}

	t.remaining = t.duration
	t.end = time.Time{}
	t.clearPersistence()
	t.clearSessionTrackers()
	t.emit(Event{Kind: EventReset, Phase: t.phase})
}

// Set replaces the duration and label and resets to idle.
func (t *Timer) Set(h, m, s int, label string) error {
	if h < 0 || m < 0 || s < 0 {
		return fmt.Errorf("%w: negative component", ErrInvalidDuration)
	}
	total := int64(h)*3600 + int64(m)*60 + int64(s)
	if total <= 0 {
		return fmt.Errorf("%w: zero-length timer", ErrInvalidDuration)
	}
	if total > MaxDuration {
		return fmt.Errorf("%w: %ds exceeds 99:59:59", ErrInvalidDuration, total)
	}
	if label == "" {
		label = "Custom"
	}

	t.Reset()
	t.duration = total
	t.remaining = total
	t.label = label
	t.phase = PhaseFor(label)
	t.save(store.KeySessionPhase, string(t.phase))
	t.save(store.KeyTimerDuration, total)
	t.save(store.KeyLastPreset, lastPreset{Time: total, Label: label})
	return nil
}

// SetPreset applies a named preset.
func (t *Timer) SetPreset(name string) error {
	p, ok := FindPreset(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	return t.Set(0, p.Minutes, 0, p.Name)
}

func (t *Timer) clearPersistence() {
	for _, k := range []string{
		store.KeyTimerState,
		store.KeyTimerEnd,
		store.KeyTimerRemaining,
		store.KeyTimerMomentum,
		store.KeyTimerHandoff,
		store.KeySessionID,
	} {
		t.remove(k)
	}
	t.sessionID = ""
}

func (t *Timer) saveSessionTrackers() {
	t.save(store.KeySessionPhase, string(t.phase))
	t.save(store.KeySessionFocusTally, t.focusTally)
	t.save(store.KeySessionBreakTally, t.breakTally)
}

// clearSessionTrackers ends an auto-flow run. The phase falls back to what the label says.
func (t *Timer) clearSessionTrackers() {
	t.phase = PhaseFor(t.label)
	t.focusTally = 0
	t.breakTally = 0
	for _, k := range []string{
		store.KeySessionPhase,
		store.KeySessionBase,
		store.KeySessionFocusTally,
		store.KeySessionBreakTally,
	} {
		t.remove(k)
	}
}
