package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/stats"
	"github.com/sujoyonweb/blok/internal/store"
)

type recordingNotifier struct {
	titles []string
}

func (r *recordingNotifier) Notify(title, body string) {
	r.titles = append(r.titles, title)
}

type harness struct {
	store    *store.Store
	clock    *clock.Fake
	journal  *journal.Journal
	stats    *stats.Tracker
	notifier *recordingNotifier
	timer    *Timer
}

func newHarness(t *testing.T, grace int64) *harness {
	t.Helper()
	s, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	h := &harness{
		store:    s,
		clock:    clock.NewFake(time.Date(2026, 3, 12, 9, 0, 0, 0, time.Local)),
		notifier: &recordingNotifier{},
	}
	h.journal = journal.New(s, journal.Options{Clock: h.clock, GraceSeconds: grace})
	h.stats = stats.New(s, stats.Options{Clock: h.clock})
	h.timer = h.newTimer(grace)
	return h
}

// newTimer builds a second engine over the same store, like a second window.
func (h *harness) newTimer(grace int64) *Timer {
	tm := New(h.store, Options{
		Clock:        h.clock,
		Ledger:       h.journal,
		Stats:        h.stats,
		Notifier:     h.notifier,
		GraceSeconds: grace,
	})
	tm.Recover()
	return tm
}

func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind)
	}
	return out
}

// ==================== Start, pause, set ====================

func TestDefaults(t *testing.T) {
	h := newHarness(t, 0)
	snap := h.timer.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, int64(DefaultDuration), snap.Duration)
	assert.Equal(t, "Pomodoro", snap.Label)
	assert.Equal(t, Focus, snap.Phase)
	assert.Equal(t, int64(DefaultBreakMinutes), snap.BreakMinutes)
}

func TestSetRejectsZeroDuration(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 30, 0, "Study"))

	err := h.timer.Set(0, 0, 0, "Custom")
	assert.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, int64(1800), h.timer.Snapshot().Duration)
	assert.Equal(t, "Study", h.timer.Snapshot().Label)

	assert.ErrorIs(t, h.timer.Set(100, 0, 0, ""), ErrInvalidDuration)
}

func TestSetPersistsAcrossRestart(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.SetPreset("short break"))

	tm := h.newTimer(0)
	snap := tm.Snapshot()
	assert.Equal(t, int64(300), snap.Duration)
	assert.Equal(t, "Short Break", snap.Label)
	assert.Equal(t, Break, snap.Phase)
}

func TestStartLockSwallowsDoubleInput(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Start())
	id := h.timer.SessionID()
	require.NotEmpty(t, id)

	h.advance(100 * time.Millisecond)
	assert.ErrorIs(t, h.timer.Toggle(), ErrStarting)
	assert.Equal(t, Running, h.timer.State())

	h.advance(300 * time.Millisecond)
	require.NoError(t, h.timer.Start())
	assert.Equal(t, id, h.timer.SessionID())

	require.NoError(t, h.timer.Toggle())
	assert.Equal(t, Paused, h.timer.State())
}

func TestTickCountsDownFromWallClock(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 1, 0, ""))
	require.NoError(t, h.timer.Start())

	h.advance(10*time.Second + 500*time.Millisecond)
	assert.True(t, h.timer.Tick())
	assert.Equal(t, int64(50), h.timer.Display())
	assert.False(t, h.timer.Tick())
}

func TestPauseAndResumeKeepsSession(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Start())
	id := h.timer.SessionID()

	h.advance(90 * time.Second)
	h.timer.Pause()
	assert.Equal(t, int64(1410), h.timer.Display())
	assert.Equal(t, int64(1410), store.Get[int64](h.store, store.KeyTimerRemaining, 0))

	h.advance(time.Hour)
	require.NoError(t, h.timer.Start())
	assert.Equal(t, id, h.timer.SessionID())
	h.advance(10 * time.Second)
	h.timer.Tick()
	assert.Equal(t, int64(1400), h.timer.Display())
}

func TestResetClearsRun(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Start())
	h.advance(30 * time.Second)
	h.timer.Reset()

	snap := h.timer.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, snap.Duration, snap.Remaining)
	assert.Empty(t, snap.SessionID)
	assert.Equal(t, "", store.Get(h.store, store.KeyTimerState, ""))
	assert.Equal(t, "", store.Get(h.store, store.KeySessionID, ""))
}

// ==================== Recovery ====================

func TestRecoverRunningAfterSuspension(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 2, 0, ""))
	require.NoError(t, h.timer.Start())
	id := h.timer.SessionID()

	h.advance(45 * time.Second)

	tm := h.newTimer(0)
	assert.Equal(t, Running, tm.State())
	assert.Equal(t, int64(75), tm.Display())
	assert.Equal(t, id, tm.SessionID())

	// The suspended engine catches up the same way.
	h.timer.Resync()
	assert.Equal(t, int64(75), h.timer.Display())
}

func TestPauseAfterEndCompletesRun(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 2, 0, ""))
	require.NoError(t, h.timer.Start())

	h.advance(3 * time.Minute)
	h.timer.Pause()

	assert.NotEqual(t, Paused, h.timer.State())
	assert.Contains(t, kinds(h.timer.Events()), EventRatingPrompt)
	require.Len(t, h.journal.Logs(), 1)
	assert.Equal(t, int64(120), h.journal.Logs()[0].Duration)
}

func TestRecoverPaused(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Start())
	h.advance(5 * time.Minute)
	h.timer.Pause()

	h.advance(time.Hour)
	tm := h.newTimer(0)
	assert.Equal(t, Paused, tm.State())
	assert.Equal(t, int64(20*60), tm.Display())
}

func TestRecoverExpiredCompletesSession(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 2, 0, ""))
	require.NoError(t, h.timer.Start())

	h.advance(10 * time.Minute)
	tm := h.newTimer(0)
	assert.Contains(t, kinds(tm.Events()), EventRatingPrompt)
	require.Len(t, h.journal.Logs(), 1)
	assert.Equal(t, int64(120), h.journal.Logs()[0].Duration)
}

func TestRecoverExpiredMomentum(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetMomentumMode(true)
	require.NoError(t, h.timer.Set(0, 1, 0, ""))
	require.NoError(t, h.timer.Start())

	h.advance(90 * time.Second)
	tm := h.newTimer(0)
	snap := tm.Snapshot()
	assert.True(t, snap.InMomentum)
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, int64(30), snap.MomentumSeconds)
}

// ==================== Completion ====================

func TestFinishRecordsAndPromptsForRating(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 1, 0, "Pomodoro"))
	h.timer.SetTask("read calculus notes")
	require.NoError(t, h.timer.Start())
	h.timer.Events()

	h.advance(61 * time.Second)
	h.timer.Tick()

	assert.Equal(t, []EventKind{EventAlarm, EventSessionSaved, EventRatingPrompt}, kinds(h.timer.Events()))
	assert.Equal(t, int64(0), h.timer.Display())
	assert.Equal(t, int64(60), h.stats.TodayTotal())
	assert.Empty(t, h.timer.Task())
	assert.Equal(t, []string{"Session complete"}, h.notifier.titles)

	logs := h.journal.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, "Mathematics", logs[0].Subject)
	assert.Equal(t, journal.Unrated, logs[0].Quality)

	assert.ErrorIs(t, h.timer.Start(), ErrAwaitingReflection)
	require.NoError(t, h.timer.Reflect(journal.Deep))
	assert.Equal(t, journal.Deep, h.journal.Logs()[0].Quality)
	assert.Equal(t, int64(60), h.timer.Display())
	assert.Equal(t, Idle, h.timer.State())
}

func TestShortSessionIsNotRecorded(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 0, 30, ""))
	require.NoError(t, h.timer.Start())

	h.advance(31 * time.Second)
	h.timer.Tick()
	assert.Empty(t, h.journal.Logs())
	assert.Equal(t, int64(0), h.timer.Display())

	h.advance(ResetDelay)
	h.timer.Tick()
	assert.Equal(t, int64(30), h.timer.Display())
}

func TestSameSessionSavedOnce(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Set(0, 2, 0, ""))
	require.NoError(t, h.timer.Start())

	h.advance(30 * time.Second)
	other := h.newTimer(0)
	require.Equal(t, h.timer.SessionID(), other.SessionID())

	h.advance(2 * time.Minute)
	h.timer.Tick()
	other.Tick()

	assert.Len(t, h.journal.Logs(), 1)
	assert.Contains(t, kinds(other.Events()), EventDuplicateSkipped)
	assert.Equal(t, int64(120), h.stats.TodayTotal())
}

func TestGhostSessionNotSaved(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.sessionID = ""
	h.timer.saveFocus(600)
	assert.Empty(t, h.journal.Logs())
	assert.Equal(t, int64(0), h.stats.TodayTotal())
}

func TestSavedSessionsListIsCapped(t *testing.T) {
	h := newHarness(t, 0)
	for i := 0; i < 15; i++ {
		h.timer.sessionID = newSessionID()
		h.timer.saveBreak(60)
	}
	saved := store.Get(h.store, store.KeySavedSessions, []string{})
	assert.Len(t, saved, 10)
	assert.Equal(t, h.timer.sessionID, saved[len(saved)-1])
}

// ==================== Manual stop ====================

func TestStopShortSessionDiscards(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetTask("emails")
	require.NoError(t, h.timer.Start())
	h.advance(30 * time.Second)
	h.timer.Stop()

	assert.Equal(t, Idle, h.timer.State())
	assert.Empty(t, h.journal.Logs())
	assert.Empty(t, h.timer.Task())
}

func TestStopFocusSavesElapsed(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.Start())
	h.advance(10 * time.Minute)
	h.timer.Stop()

	assert.Equal(t, Paused, h.timer.State())
	assert.Contains(t, kinds(h.timer.Events()), EventRatingPrompt)
	require.Len(t, h.journal.Logs(), 1)
	assert.Equal(t, int64(600), h.journal.Logs()[0].Duration)

	require.NoError(t, h.timer.Reflect(journal.Balanced))
	assert.Equal(t, journal.Balanced, h.journal.Logs()[0].Quality)
	assert.Equal(t, Idle, h.timer.State())
}

func TestStopBreakRecordsRecovery(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.timer.SetPreset("Short Break"))
	require.NoError(t, h.timer.Start())
	h.advance(2 * time.Minute)
	h.timer.Stop()

	assert.Equal(t, Idle, h.timer.State())
	logs := h.journal.Logs()
	require.Len(t, logs, 1)
	assert.True(t, logs[0].IsRecovery())
	assert.Equal(t, int64(120), logs[0].Duration)
	assert.Equal(t, int64(0), h.stats.TodayTotal())
}

func TestReflectRejectsUnknownQuality(t *testing.T) {
	h := newHarness(t, 0)
	assert.ErrorIs(t, h.timer.Reflect(journal.Unrated), ErrInvalidQuality)
}

// ==================== Momentum ====================

func startMomentum(t *testing.T, h *harness) {
	t.Helper()
	h.timer.SetMomentumMode(true)
	require.NoError(t, h.timer.Set(0, 25, 0, "Pomodoro"))
	require.NoError(t, h.timer.Start())
	h.advance(25 * time.Minute)
	h.timer.Tick()
	require.True(t, h.timer.Snapshot().InMomentum)
	h.advance(10 * time.Second)
	h.timer.Tick()
	require.Equal(t, int64(10), h.timer.Display())
}

func TestMomentumStartsWithNewSession(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetMomentumMode(true)
	require.NoError(t, h.timer.Set(0, 1, 0, ""))
	require.NoError(t, h.timer.Start())
	first := h.timer.SessionID()
	h.timer.Events()

	h.advance(time.Minute)
	h.timer.Tick()
	assert.Equal(t, []EventKind{EventAlarm, EventMomentumStarted}, kinds(h.timer.Events()))
	assert.NotEqual(t, first, h.timer.SessionID())
	assert.Empty(t, h.journal.Logs())
}

func TestMomentumDiscardExtra(t *testing.T) {
	h := newHarness(t, 0)
	startMomentum(t, h)

	h.timer.Stop()
	ev := h.timer.Events()
	require.NotEmpty(t, ev)
	last := ev[len(ev)-1]
	assert.Equal(t, EventMomentumChoice, last.Kind)
	assert.Equal(t, int64(1510), last.Total)
	assert.Equal(t, int64(10), last.Extra)

	h.timer.StopAndSave(true)
	logs := h.journal.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, int64(1500), logs[0].Duration)
	assert.Equal(t, Idle, h.timer.State())
	assert.Equal(t, int64(1500), h.timer.Display())
}

func TestMomentumReflectSavesTotal(t *testing.T) {
	h := newHarness(t, 0)
	startMomentum(t, h)
	h.timer.Stop()

	require.NoError(t, h.timer.Reflect(journal.Deep))
	logs := h.journal.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, int64(1510), logs[0].Duration)
	assert.Equal(t, journal.Deep, logs[0].Quality)
}

func TestMomentumPauseResume(t *testing.T) {
	h := newHarness(t, 0)
	startMomentum(t, h)
	h.timer.Pause()
	h.advance(time.Hour)

	tm := h.newTimer(0)
	assert.True(t, tm.Snapshot().InMomentum)
	assert.Equal(t, int64(10), tm.Display())

	require.NoError(t, tm.Toggle())
	h.advance(5 * time.Second)
	tm.Tick()
	assert.Equal(t, int64(15), tm.Display())
}

func TestMomentumShortSessionDiscarded(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetMomentumMode(true)
	require.NoError(t, h.timer.Set(0, 0, 20, ""))
	require.NoError(t, h.timer.Start())
	h.advance(25 * time.Second)
	h.timer.Tick()
	h.timer.Stop()

	assert.Equal(t, Idle, h.timer.State())
	assert.Empty(t, h.journal.Logs())
}

// ==================== Auto-flow ====================

func TestModesAreMutuallyExclusive(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetMomentumMode(true)
	h.timer.SetAutoFlow(true)
	assert.False(t, h.timer.Snapshot().MomentumMode)

	h.timer.SetMomentumMode(true)
	snap := h.timer.Snapshot()
	assert.False(t, snap.AutoFlow)
	assert.True(t, snap.MomentumMode)
	assert.False(t, store.Get(h.store, store.KeyAutoFlow, true))
}

func TestAutoFlowCycle(t *testing.T) {
	h := newHarness(t, 1)
	h.timer.SetAutoFlow(true)
	require.NoError(t, h.timer.SetBreakMinutes(1))
	require.NoError(t, h.timer.Set(0, 0, 1, "Focus"))
	require.NoError(t, h.timer.Start())
	focusID := h.timer.SessionID()

	h.advance(time.Second)
	h.timer.Tick()
	logs := h.journal.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, int64(1), logs[0].Duration)
	assert.False(t, logs[0].IsRecovery())

	h.advance(SwapDelay)
	h.timer.Tick()
	snap := h.timer.Snapshot()
	assert.Equal(t, Break, snap.Phase)
	assert.Equal(t, "Break", snap.Label)
	assert.Equal(t, int64(60), snap.Duration)
	assert.Equal(t, int64(1), snap.FocusTally)
	assert.NotEqual(t, focusID, snap.SessionID)
	assert.NotEmpty(t, snap.SessionID)

	h.advance(AutoStartDelay - SwapDelay)
	h.timer.Tick()
	assert.Equal(t, Running, h.timer.State())

	// The break runs out and focus comes back at the remembered length.
	h.advance(time.Minute)
	h.timer.Tick()
	h.advance(AutoStartDelay)
	h.timer.Tick()
	snap = h.timer.Snapshot()
	assert.Equal(t, Focus, snap.Phase)
	assert.Equal(t, int64(1), snap.Duration)
	assert.Equal(t, Running, snap.State)

	logs = h.journal.Logs()
	require.Len(t, logs, 2)
	assert.True(t, logs[0].IsRecovery())
}

func TestAutoFlowStopSummarizes(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetAutoFlow(true)
	require.NoError(t, h.timer.Start())
	h.advance(10 * time.Minute)
	h.timer.Stop()

	ev := h.timer.Events()
	last := ev[len(ev)-1]
	assert.Equal(t, EventFlowSummary, last.Kind)
	assert.Equal(t, int64(600), last.Focus)
	assert.Equal(t, int64(0), last.Break)
	assert.Equal(t, int64(0), h.timer.Snapshot().FocusTally)

	require.NoError(t, h.timer.Reflect(journal.Distracted))
	logs := h.journal.Logs()
	require.Len(t, logs, 1)
	assert.Equal(t, journal.Distracted, logs[0].Quality)
}

func TestAutoFlowStopShortDiscards(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetAutoFlow(true)
	require.NoError(t, h.timer.Start())
	h.advance(20 * time.Second)
	h.timer.Stop()

	assert.Equal(t, Idle, h.timer.State())
	assert.Empty(t, h.journal.Logs())
}

func TestAutoFlowResetDuringBreakBouncesBack(t *testing.T) {
	h := newHarness(t, 0)
	h.timer.SetAutoFlow(true)

	// Never started a focus phase: falls back to the default length.
	require.NoError(t, h.timer.SetPreset("Short Break"))
	h.timer.Reset()
	snap := h.timer.Snapshot()
	assert.Equal(t, int64(DefaultDuration), snap.Duration)
	assert.Equal(t, "Focus", snap.Label)
	assert.Equal(t, Focus, snap.Phase)

	h.timer.base = 40 * 60
	h.timer.phase = Break
	h.timer.Reset()
	snap = h.timer.Snapshot()
	assert.Equal(t, int64(2400), snap.Duration)
	assert.Equal(t, "Custom", snap.Label)
}

func TestResetCancelsPendingSwap(t *testing.T) {
	h := newHarness(t, 1)
	h.timer.SetAutoFlow(true)
	require.NoError(t, h.timer.Set(0, 0, 2, "Focus"))
	require.NoError(t, h.timer.Start())
	h.advance(2 * time.Second)
	h.timer.Tick()
	due, ok := h.timer.NextDeadline()
	require.True(t, ok)
	assert.Equal(t, h.clock.Now().Add(SwapDelay), due)

	h.timer.Reset()
	_, ok = h.timer.NextDeadline()
	assert.False(t, ok)
	h.advance(AutoStartDelay)
	h.timer.Tick()
	snap := h.timer.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Equal(t, Focus, snap.Phase)
}

func startFlowFocus(t *testing.T, h *harness) {
	t.Helper()
	h.timer.SetAutoFlow(true)
	require.NoError(t, h.timer.Set(0, 2, 0, "Focus"))
	require.NoError(t, h.timer.Start())
	h.advance(2 * time.Minute)
	h.timer.Tick()
	require.Len(t, h.journal.Logs(), 1)
}

func TestFinishedPhaseIsNotPersistedAsRunning(t *testing.T) {
	h := newHarness(t, 60)
	startFlowFocus(t, h)

	assert.Equal(t, Idle.String(), store.Get(h.store, store.KeyTimerState, ""))
	assert.Equal(t, int64(0), store.Get[int64](h.store, store.KeyTimerEnd, 0))
	assert.Equal(t, handoffSwap, store.Get(h.store, store.KeyTimerHandoff, ""))
}

func TestRecoverBeforeSwapKeepsTally(t *testing.T) {
	h := newHarness(t, 60)
	startFlowFocus(t, h)
	h.advance(100 * time.Millisecond)

	tm := h.newTimer(60)
	snap := tm.Snapshot()
	assert.Equal(t, int64(120), snap.FocusTally)
	assert.Equal(t, Break, snap.Phase)
	assert.Equal(t, Running, snap.State)
	assert.Len(t, h.journal.Logs(), 1)
}

func TestRecoverAfterSwapStartsNextPhase(t *testing.T) {
	h := newHarness(t, 60)
	startFlowFocus(t, h)
	h.advance(700 * time.Millisecond)
	h.timer.Tick()
	require.Equal(t, Break, h.timer.Snapshot().Phase)
	breakID := h.timer.SessionID()

	tm := h.newTimer(60)
	snap := tm.Snapshot()
	assert.Equal(t, Running, snap.State)
	assert.Equal(t, Break, snap.Phase)
	assert.Equal(t, int64(DefaultBreakMinutes*60), snap.Remaining)
	assert.Equal(t, int64(120), snap.FocusTally)
	assert.Equal(t, breakID, snap.SessionID)
	assert.Equal(t, "", store.Get(h.store, store.KeyTimerHandoff, ""))

	// Nothing was banked for the break that never ran.
	assert.Len(t, h.journal.Logs(), 1)
}

func TestStopDuringHandoffSummarizes(t *testing.T) {
	h := newHarness(t, 60)
	startFlowFocus(t, h)
	h.advance(700 * time.Millisecond)
	h.timer.Tick()

	h.timer.Stop()
	ev := h.timer.Events()
	last := ev[len(ev)-1]
	assert.Equal(t, EventFlowSummary, last.Kind)
	assert.Equal(t, int64(120), last.Focus)
	assert.Equal(t, int64(0), last.Break)
	assert.True(t, h.timer.Snapshot().Awaiting)
	_, ok := h.timer.NextDeadline()
	assert.False(t, ok)

	h.advance(AutoStartDelay)
	h.timer.Tick()
	assert.Equal(t, Idle, h.timer.State())
	assert.Equal(t, "", store.Get(h.store, store.KeyTimerHandoff, ""))

	require.NoError(t, h.timer.Reflect(journal.Deep))
	assert.Len(t, h.journal.Logs(), 1)
}

func TestSetBreakMinutesBounds(t *testing.T) {
	h := newHarness(t, 0)
	assert.ErrorIs(t, h.timer.SetBreakMinutes(0), ErrInvalidDuration)
	require.NoError(t, h.timer.SetBreakMinutes(15))
	assert.Equal(t, int64(15), h.newTimer(0).Snapshot().BreakMinutes)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "1:00:05", FormatClock(3605))
	assert.Equal(t, "00:00", FormatClock(-3))
}
