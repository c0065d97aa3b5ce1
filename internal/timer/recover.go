package timer

import (
	"time"

	"github.com/sujoyonweb/blok/internal/store"
)

// Recover rebuilds the engine from the store: settings, the chosen duration,
// auto-flow trackers and any run that was in flight when the process stopped.
// A countdown that expired while the process was gone completes now; the saved
// sessions list keeps it from being recorded twice. An auto-flow hand-off that
// was cut short picks up where it stopped without banking the phase again.
func (t *Timer) Recover() {
	now := t.clock.Now()

	t.pending = nil
	t.awaiting = false
	t.state = Idle
	t.inMomentum = false
	t.momentumSeconds = 0

	t.sessionID = store.Get(t.kv, store.KeySessionID, "")
	t.momentumMode = store.Get(t.kv, store.KeyMomentumMode, false)
	t.autoFlow = store.Get(t.kv, store.KeyAutoFlow, false)
	if t.autoFlow && t.momentumMode {
		t.momentumMode = false
	}
	t.breakPref = store.Get[int64](t.kv, store.KeyBreakPref, DefaultBreakMinutes)
	if t.breakPref <= 0 {
		t.breakPref = DefaultBreakMinutes
	}
	t.base = store.Get[int64](t.kv, store.KeySessionBase, 0)
	t.focusTally = store.Get[int64](t.kv, store.KeySessionFocusTally, 0)
	t.breakTally = store.Get[int64](t.kv, store.KeySessionBreakTally, 0)

	last := store.Get(t.kv, store.KeyLastPreset, lastPreset{})
	if dur := store.Get[int64](t.kv, store.KeyTimerDuration, 0); dur > 0 {
		t.duration = dur
		if last.Label != "" {
			t.label = last.Label
		}
	} else if last.Time > 0 {
		t.duration = last.Time
		t.label = last.Label
	} else {
		t.duration = t.defaultDur
		t.label = t.defaultLabel
	}
	t.remaining = t.duration

	if p := store.Get(t.kv, store.KeySessionPhase, ""); p == string(Focus) || p == string(Break) {
		t.phase = Phase(p)
	} else {
		t.phase = PhaseFor(t.label)
	}

	switch store.Get(t.kv, store.KeyTimerState, "") {
	case Running.String():
		endMs := store.Get[int64](t.kv, store.KeyTimerEnd, 0)
		if endMs <= 0 {
			return
		}
		end := time.UnixMilli(endMs)
		switch {
		case end.After(now):
			t.remaining = ceilSeconds(end.Sub(now))
			t.start(true)
			t.end = end
			t.save(store.KeyTimerEnd, endMs)
		case t.momentumMode:
			t.momentumSeconds = int64(now.Sub(end) / time.Second)
			t.startMomentum(true)
		default:
			t.state = Running
			t.end = end
			t.remaining = 0
			t.finish()
		}
		t.log.Info("recovered running timer", "remaining", t.remaining, "momentum", t.momentumSeconds)

	case Paused.String():
		var overtime int64
		if t.kv.Load(store.KeyTimerMomentum, &overtime) {
			t.inMomentum = true
			t.momentumSeconds = overtime
			t.remaining = 0
		} else if rem := store.Get[int64](t.kv, store.KeyTimerRemaining, 0); rem > 0 {
			t.remaining = rem
		}
		t.state = Paused

	default:
		t.resumeHandoff()
	}
}

func (t *Timer) resumeHandoff() {
	stage := store.Get(t.kv, store.KeyTimerHandoff, "")
	if stage == "" {
		return
	}
	if !t.autoFlow {
		t.remove(store.KeyTimerHandoff)
		return
	}
	if stage == handoffSwap {
		t.swapPhase()
	}
	t.start(true)
	t.log.Info("resumed auto-flow hand-off", "stage", stage, "phase", t.phase)
}

// Resync recomputes the clock after the process was suspended, ahead of the
// next regular tick.
func (t *Timer) Resync() {
	if t.state != Running && len(t.pending) == 0 {
		return
	}
	t.Tick()
}
