package stats

import (
	"time"

	"github.com/sujoyonweb/blok/internal/clock"
)

// Day is one bar of the week chart.
type Day struct {
	Key     string
	Date    time.Time
	Seconds int64
	Label   string
	Today   bool
}

// Week is the last seven days, oldest first. Max scales the bars and is never below a minute.
type Week struct {
	Days []Day
	Max  int64
}

// Week builds the chart from history, letting the live daily total stand in for
// today when it is ahead of the stored history.
func (t *Tracker) Week() Week {
	return BuildWeek(t.History(), t.TodayTotal(), t.clock.Now())
}

func BuildWeek(history map[string]int64, live int64, now time.Time) Week {
	display := make(map[string]int64, len(history)+1)
	for k, v := range history {
		display[k] = v
	}
	today := clock.DayKey(now)
	if live >= display[today] {
		display[today] = live
	}

	w := Week{Max: 60}
	for _, v := range display {
		if v > w.Max {
			w.Max = v
		}
	}
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := clock.DayKey(d)
		sec := display[key]
		w.Days = append(w.Days, Day{
			Key:     key,
			Date:    d,
			Seconds: sec,
			Label:   ChartLabel(sec),
			Today:   i == 0,
		})
	}
	return w
}
