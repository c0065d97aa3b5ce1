// Package stats aggregates daily totals, streaks, goal progress and focus quality.
package stats

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/store"
)

const (
	DefaultGoalSeconds = 6 * 3600
	MinGoalHours       = 1
	MaxGoalHours       = 15
)

var ErrInvalidGoal = errors.New("invalid daily goal")

type Options struct {
	Clock  clock.Clock
	Logger *log.Logger
}

// Tracker owns the daily total, the per-day history map and the goal ring watermark.
type Tracker struct {
	kv    store.KV
	clock clock.Clock
	log   *log.Logger

	goal      int64
	daily     int64
	day       string
	watermark int
}

func New(kv store.KV, opts Options) *Tracker {
	t := &Tracker{kv: kv, clock: opts.Clock, log: opts.Logger}
	if t.clock == nil {
		t.clock = clock.Real{}
	}
	if t.log == nil {
		t.log = log.New(io.Discard)
	}
	t.Reload()
	t.watermark = t.Ring().Level
	return t
}

// Reload re-reads goal and today's total from the store, rolling the total over on a new day.
func (t *Tracker) Reload() {
	t.goal = store.Get[int64](t.kv, store.KeyDailyGoal, DefaultGoalSeconds)
	if t.goal <= 0 {
		t.goal = DefaultGoalSeconds
	}

	today := clock.DayKey(t.clock.Now())
	saved := store.Get(t.kv, store.KeyDailyDate, "")
	t.day = today
	if saved != today {
		t.daily = 0
		t.persistDaily()
		return
	}
	t.daily = store.Get[int64](t.kv, store.KeyDailyTotal, 0)
}

func (t *Tracker) rollover() {
	today := clock.DayKey(t.clock.Now())
	if today == t.day {
		return
	}
	t.day = today
	t.daily = 0
	t.watermark = 0
	t.persistDaily()
}

func (t *Tracker) persistDaily() {
	if err := t.kv.Save(store.KeyDailyDate, t.day); err != nil {
		t.log.Warn("save daily date", "err", err)
	}
	if err := t.kv.Save(store.KeyDailyTotal, t.daily); err != nil {
		t.log.Warn("save daily total", "err", err)
	}
}

// AddFocus credits seconds of focus to today and to the history map. Returns today's total.
func (t *Tracker) AddFocus(seconds int64) int64 {
	t.rollover()
	t.daily += seconds
	t.persistDaily()

	history := t.History()
	history[t.day] += seconds
	if err := t.kv.Save(store.KeyHistory, history); err != nil {
		t.log.Warn("save history", "err", err)
	}
	return t.daily
}

// TodayTotal returns today's focus seconds.
func (t *Tracker) TodayTotal() int64 {
	t.rollover()
	return t.daily
}

func (t *Tracker) Goal() int64 { return t.goal }

// SetGoalHours changes the daily goal. Hours must be within 1..15.
func (t *Tracker) SetGoalHours(hours int) error {
	if hours < MinGoalHours || hours > MaxGoalHours {
		return fmt.Errorf("%w: %d hours (want %d-%d)", ErrInvalidGoal, hours, MinGoalHours, MaxGoalHours)
	}
	goal := int64(hours) * 3600
	if err := t.kv.Save(store.KeyDailyGoal, goal); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	t.goal = goal
	return nil
}

// History returns the date-key -> seconds map. The map is a fresh copy.
func (t *Tracker) History() map[string]int64 {
	h := store.Get(t.kv, store.KeyHistory, map[string]int64{})
	if h == nil {
		h = map[string]int64{}
	}
	return h
}

// Streak counts consecutive days with recorded focus ending today.
func (t *Tracker) Streak() int {
	return Streak(t.History(), t.clock.Now())
}
