package stats

import (
	"time"

	"github.com/sujoyonweb/blok/internal/clock"
)

// Streak counts today when it has focus, then walks back from yesterday until a day
// without focus. An empty today does not break a streak that ended yesterday.
func Streak(history map[string]int64, now time.Time) int {
	streak := 0
	d := now
	if history[clock.DayKey(d)] > 0 {
		streak++
	}
	for {
		d = d.AddDate(0, 0, -1)
		if history[clock.DayKey(d)] <= 0 {
			return streak
		}
		streak++
	}
}
