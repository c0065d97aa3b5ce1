package timer

import (
	"fmt"
	"slices"

	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/store"
)

// finish completes a countdown that reached zero outside momentum mode.
func (t *Timer) finish() {
	t.state = Idle
	t.remaining = 0
	t.save(store.KeyTimerState, Idle.String())
	t.remove(store.KeyTimerEnd)

	if t.autoFlow {
		t.finishFlow()
		return
	}

	t.emit(Event{Kind: EventAlarm, Phase: t.phase})
	isBreak := PhaseFor(t.label) == Break
	if !isBreak && t.duration >= t.grace {
		t.saveFocus(t.duration)
		t.clearTask()
		t.clearPersistence()
		t.awaiting = true
		t.emit(Event{Kind: EventRatingPrompt, Phase: Focus})
		t.notify("Session complete", "How was your focus?")
		return
	}
	if isBreak && t.duration >= t.grace {
		t.saveBreak(t.duration)
		t.notify("Break over", "Ready for the next session")
	}
	t.schedule(resetAfterFinish, ResetDelay)
}

// finishFlow banks the finished phase and queues the swap to the next one.
func (t *Timer) finishFlow() {
	if t.phase == Focus {
		t.focusTally += t.duration
		t.saveFocus(t.duration)
		t.notify("Focus complete", "Break starts now")
	} else {
		t.breakTally += t.duration
		t.saveBreak(t.duration)
		t.notify("Break over", "Back to focus")
	}
	t.saveSessionTrackers()
	t.save(store.KeyTimerHandoff, handoffSwap)
	t.emit(Event{Kind: EventAlarm, Phase: t.phase})

	t.pending = nil
	t.schedule(swapPhase, SwapDelay)
	t.schedule(autoStart, AutoStartDelay)
}

// swapPhase flips focus and break under a fresh session id so the firewall
// does not mistake the next phase for the one just saved.
func (t *Timer) swapPhase() {
	t.sessionID = newSessionID()
	t.save(store.KeySessionID, t.sessionID)

	if t.phase == Focus {
		t.phase = Break
		t.duration = t.breakPref * 60
		t.label = "Break"
	} else {
		t.phase = Focus
		t.duration = t.base
		if t.duration <= 0 {
			t.duration = DefaultDuration
		}
		t.label = "Focus"
	}
	t.remaining = t.duration

	t.save(store.KeyTimerDuration, t.duration)
	t.save(store.KeyLastPreset, lastPreset{Time: t.duration, Label: t.label})
	t.saveSessionTrackers()
	t.save(store.KeyTimerHandoff, handoffStart)
	t.emit(Event{Kind: EventPhaseSwapped, Phase: t.phase})
}

// Stop ends the current run early. Depending on mode it discards a short
// session, saves it and prompts for a rating, offers the momentum choice, or
// closes an auto-flow run with a summary.
func (t *Timer) Stop() {
	if t.awaiting {
		return
	}
	if t.state == Idle {
		if t.autoFlow && len(t.pending) > 0 {
			t.stopHandoff()
		}
		return
	}
	if t.state == Running {
		t.Tick()
		if t.state == Idle {
			return
		}
	}
	elapsed := t.duration - t.remaining

	switch {
	case t.inMomentum:
		total := t.duration + t.momentumSeconds
		if total < t.grace {
			t.Reset()
			t.clearTask()
			return
		}
		t.Pause()
		t.awaiting = true
		t.emit(Event{Kind: EventMomentumChoice, Total: total, Extra: t.momentumSeconds})

	case t.autoFlow:
		focus, brk := t.focusTally, t.breakTally
		if t.phase == Focus {
			focus += elapsed
		} else {
			brk += elapsed
		}
		if focus+brk < t.grace {
			t.Reset()
			t.clearTask()
			return
		}
		t.Pause()
		if elapsed > 0 {
			if t.phase == Focus {
				t.saveFocus(elapsed)
			} else {
				t.saveBreak(elapsed)
			}
		}
		t.awaiting = true
		t.emit(Event{Kind: EventFlowSummary, Focus: focus, Break: brk})
		t.clearSessionTrackers()

	default:
		isBreak := PhaseFor(t.label) == Break
		if elapsed < t.grace {
			t.Reset()
			if !isBreak {
				t.clearTask()
			}
			return
		}
		t.Pause()
		if isBreak {
			t.saveBreak(elapsed)
			t.Reset()
			return
		}
		t.saveFocus(elapsed)
		t.clearTask()
		t.awaiting = true
		t.emit(Event{Kind: EventRatingPrompt, Phase: Focus})
	}
}

// stopHandoff closes an auto-flow run caught between two phases. The finished
// phase is already in the tallies.
func (t *Timer) stopHandoff() {
	t.pending = nil
	t.remove(store.KeyTimerHandoff)
	focus, brk := t.focusTally, t.breakTally
	if focus+brk < t.grace {
		t.Reset()
		t.clearTask()
		return
	}
	t.awaiting = true
	t.emit(Event{Kind: EventFlowSummary, Focus: focus, Break: brk})
	t.clearSessionTrackers()
}

// StopAndSave closes a momentum session, saving the base duration plus overtime
// unless discardExtra is set, then resets.
func (t *Timer) StopAndSave(discardExtra bool) {
	if !t.inMomentum {
		return
	}
	t.state = Idle
	seconds := t.duration
	if !discardExtra {
		seconds += t.momentumSeconds
	}
	if PhaseFor(t.label) == Break {
		t.saveBreak(seconds)
	} else {
		t.saveFocus(seconds)
	}
	t.Reset()
}

// Reflect rates the session just finished and resets. A pending momentum
// session is saved in full first.
func (t *Timer) Reflect(q journal.Quality) error {
	if !q.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuality, q)
	}
	if t.inMomentum {
		t.StopAndSave(false)
		t.rate(q)
		return nil
	}
	t.rate(q)
	t.Reset()
	return nil
}

func (t *Timer) rate(q journal.Quality) {
	if t.ledger == nil {
		return
	}
	n := t.ledger.UpdateLastReflection(q)
	t.log.Debug("reflection applied", "quality", q, "records", n)
}

func (t *Timer) saveFocus(seconds int64) {
	if !t.claim() {
		return
	}
	if t.stats != nil {
		t.stats.AddFocus(seconds)
	}
	if t.ledger == nil {
		return
	}
	if rec, ok := t.ledger.RecordSession(seconds, t.Task()); ok {
		t.emit(Event{Kind: EventSessionSaved, Phase: Focus, Record: rec})
	}
}

func (t *Timer) saveBreak(seconds int64) {
	if !t.claim() {
		return
	}
	if t.ledger == nil {
		return
	}
	if rec, ok := t.ledger.RecordBreak(seconds); ok {
		t.emit(Event{Kind: EventSessionSaved, Phase: Break, Record: rec})
	}
}

// claim marks the current session id as saved. It refuses sessions without an
// id and ids already in the recent-saves list.
func (t *Timer) claim() bool {
	id := t.sessionID
	if id == "" {
		id = store.Get(t.kv, store.KeySessionID, "")
	}
	if id == "" {
		t.log.Debug("ghost session, not saved")
		return false
	}

	saved := store.Get(t.kv, store.KeySavedSessions, []string{})
	if slices.Contains(saved, id) {
		t.log.Debug("duplicate save prevented", "session", id)
		t.emit(Event{Kind: EventDuplicateSkipped})
		return false
	}
	saved = append(saved, id)
	if len(saved) > savedSessionsCap {
		saved = saved[len(saved)-savedSessionsCap:]
	}
	t.save(store.KeySavedSessions, saved)
	return true
}

func (t *Timer) notify(title, body string) {
	if t.notifier != nil {
		t.notifier.Notify(title, body)
	}
}
