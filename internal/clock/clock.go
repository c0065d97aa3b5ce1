// Package clock abstracts the wall clock so engines can be driven deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// DayLayout is the calendar-day key used by history maps and journal records.
const DayLayout = "Mon Jan 02 2006"

// Clock reports the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// Real is the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fake is a manually advanced clock.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// DayKey returns the history key for the local calendar day of t.
func DayKey(t time.Time) string {
	return t.Local().Format(DayLayout)
}

// ClockTime renders t as the HH:MM string stored on journal records.
func ClockTime(t time.Time) string {
	return t.Local().Format("15:04")
}

// ParseDay parses a history key back into local midnight.
func ParseDay(key string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, key, time.Local)
}

// Millis returns t as unix milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
