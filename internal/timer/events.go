package timer

import "github.com/sujoyonweb/blok/internal/journal"

type EventKind int

const (
	EventStarted EventKind = iota
	EventPaused
	EventReset
	EventAlarm
	EventMomentumStarted
	EventRatingPrompt
	EventMomentumChoice
	EventFlowSummary
	EventPhaseSwapped
	EventSessionSaved
	EventDuplicateSkipped
)

func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventPaused:
		return "paused"
	case EventReset:
		return "reset"
	case EventAlarm:
		return "alarm"
	case EventMomentumStarted:
		return "momentum-started"
	case EventRatingPrompt:
		return "rating-prompt"
	case EventMomentumChoice:
		return "momentum-choice"
	case EventFlowSummary:
		return "flow-summary"
	case EventPhaseSwapped:
		return "phase-swapped"
	case EventSessionSaved:
		return "session-saved"
	case EventDuplicateSkipped:
		return "duplicate-skipped"
	}
	return "unknown"
}

// Event is a state change the presentation layer reacts to.
type Event struct {
	Kind  EventKind
	Phase Phase

	// MomentumChoice: Total = duration + overtime, Extra = overtime.
	Total int64
	Extra int64

	// FlowSummary tallies in seconds.
	Focus int64
	Break int64

	// SessionSaved.
	Record journal.Record
}

func (t *Timer) emit(e Event) {
	t.events = append(t.events, e)
}

// Events drains pending events, oldest first.
func (t *Timer) Events() []Event {
	ev := t.events
	t.events = nil
	return ev
}
