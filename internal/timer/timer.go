// Package timer implements the countdown engine: fixed sessions, momentum
// overtime and auto-flow focus/break cycling. State is mirrored to the store on
// every transition so a restarted process can pick up where it left off.
package timer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/store"
)

const (
	DefaultDuration     = 25 * 60
	DefaultBreakMinutes = 5
	MaxBreakMinutes     = 60
	MaxDuration         = 99*3600 + 59*60 + 59

	// StartLock swallows repeated start/toggle input right after a start.
	StartLock = 300 * time.Millisecond
	// SwapDelay and AutoStartDelay pace the auto-flow hand-off after expiry.
	SwapDelay      = 650 * time.Millisecond
	AutoStartDelay = 1600 * time.Millisecond
	// ResetDelay keeps a finished short session on screen before it resets.
	ResetDelay = 1500 * time.Millisecond

	savedSessionsCap = 10
)

var (
	ErrInvalidDuration    = errors.New("invalid duration")
	ErrStarting           = errors.New("timer is starting")
	ErrAwaitingReflection = errors.New("session awaiting reflection")
	ErrInvalidQuality     = errors.New("invalid quality")
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

type Phase string

const (
	Focus Phase = "focus"
	Break Phase = "break"
)

// Ledger records finished sessions.
type Ledger interface {
	RecordSession(seconds int64, task string) (journal.Record, bool)
	RecordBreak(seconds int64) (journal.Record, bool)
	UpdateLastReflection(q journal.Quality) int
}

// Stats is credited with every saved focus session.
type Stats interface {
	AddFocus(seconds int64) int64
}

type Notifier interface {
	Notify(title, body string)
}

type Options struct {
	Clock    clock.Clock
	Logger   *log.Logger
	Ledger   Ledger
	Stats    Stats
	Notifier Notifier

	// GraceSeconds is the shortest session worth saving. Zero means the journal default.
	GraceSeconds int64
	// DefaultDuration applies when nothing was ever set. Zero means 25 minutes.
	DefaultDuration int64
	// DefaultLabel names DefaultDuration.
	DefaultLabel string
}

// Timer is the countdown engine. It is driven from a single goroutine and is
// not safe for concurrent use.
type Timer struct {
	kv       store.KV
	clock    clock.Clock
	log      *log.Logger
	ledger   Ledger
	stats    Stats
	notifier Notifier

	grace        int64
	defaultDur   int64
	defaultLabel string

	state     State
	duration  int64
	remaining int64
	end       time.Time
	lockUntil time.Time
	label     string
	sessionID string

	momentumMode    bool
	inMomentum      bool
	momentumStart   time.Time
	momentumSeconds int64

	autoFlow   bool
	phase      Phase
	breakPref  int64
	base       int64
	focusTally int64
	breakTally int64

	awaiting bool
	pending  []transition
	events   []Event
}

// New builds an idle timer with default settings. Call Recover to load persisted state.
func New(kv store.KV, opts Options) *Timer {
	t := &Timer{
		kv:           kv,
		clock:        opts.Clock,
		log:          opts.Logger,
		ledger:       opts.Ledger,
		stats:        opts.Stats,
		notifier:     opts.Notifier,
		grace:        opts.GraceSeconds,
		defaultDur:   opts.DefaultDuration,
		defaultLabel: opts.DefaultLabel,
	}
	if t.clock == nil {
		t.clock = clock.Real{}
	}
	if t.log == nil {
		t.log = log.New(io.Discard)
	}
	if t.grace <= 0 {
		t.grace = journal.DefaultGraceSeconds
	}
	if t.defaultDur <= 0 {
		t.defaultDur = DefaultDuration
	}
	if t.defaultLabel == "" {
		t.defaultLabel = "Pomodoro"
	}
	t.duration = t.defaultDur
	t.remaining = t.defaultDur
	t.label = t.defaultLabel
	t.phase = PhaseFor(t.label)
	t.breakPref = DefaultBreakMinutes
	return t
}

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	State           State
	Duration        int64
	Remaining       int64
	Label           string
	SessionID       string
	Starting        bool
	MomentumMode    bool
	InMomentum      bool
	MomentumSeconds int64
	AutoFlow        bool
	Phase           Phase
	BreakMinutes    int64
	BaseDuration    int64
	FocusTally      int64
	BreakTally      int64
	Awaiting        bool
}

func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		State:           t.state,
		Duration:        t.duration,
		Remaining:       t.remaining,
		Label:           t.label,
		SessionID:       t.sessionID,
		Starting:        t.clock.Now().Before(t.lockUntil),
		MomentumMode:    t.momentumMode,
		InMomentum:      t.inMomentum,
		MomentumSeconds: t.momentumSeconds,
		AutoFlow:        t.autoFlow,
		Phase:           t.phase,
		BreakMinutes:    t.breakPref,
		BaseDuration:    t.base,
		FocusTally:      t.focusTally,
		BreakTally:      t.breakTally,
		Awaiting:        t.awaiting,
	}
}

// Display returns the seconds the clock face should show.
func (t *Timer) Display() int64 {
	if t.inMomentum {
		return t.momentumSeconds
	}
	return t.remaining
}

func (t *Timer) State() State { return t.state }
func (t *Timer) Phase() Phase { return t.phase }

// SessionID returns the id of the current run, empty when none.
func (t *Timer) SessionID() string { return t.sessionID }

// Task returns the persisted task intent for the countdown.
func (t *Timer) Task() string {
	return store.Get(t.kv, store.KeyTaskTimer, "")
}

func (t *Timer) SetTask(text string) {
	t.save(store.KeyTaskTimer, text)
}

func (t *Timer) clearTask() {
	t.remove(store.KeyTaskTimer)
}

// SetMomentumMode toggles overtime counting. Turning it on switches auto-flow off.
func (t *Timer) SetMomentumMode(on bool) {
	if on && t.autoFlow {
		t.SetAutoFlow(false)
	}
	t.momentumMode = on
	t.save(store.KeyMomentumMode, on)
}

// SetAutoFlow toggles focus/break cycling. Turning it on switches momentum off.
func (t *Timer) SetAutoFlow(on bool) {
	t.autoFlow = on
	if on && t.momentumMode {
		t.momentumMode = false
		t.save(store.KeyMomentumMode, false)
	}
	t.save(store.KeyAutoFlow, on)
}

// SetBreakMinutes sets the auto-flow break length.
func (t *Timer) SetBreakMinutes(minutes int64) error {
	if minutes < 1 || minutes > MaxBreakMinutes {
		return fmt.Errorf("%w: break of %d minutes", ErrInvalidDuration, minutes)
	}
	t.breakPref = minutes
	t.save(store.KeyBreakPref, minutes)
	return nil
}

func (t *Timer) save(key string, v any) {
	if err := t.kv.Save(key, v); err != nil {
		t.log.Warn("persist timer state", "key", key, "err", err)
	}
}

func (t *Timer) remove(key string) {
	if err := t.kv.Remove(key); err != nil {
		t.log.Warn("clear timer state", "key", key, "err", err)
	}
}

func newSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func ceilSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}
