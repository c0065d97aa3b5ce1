package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/journal"
)

type Range int

const (
	Today Range = iota
	ThisWeek
)

func (r Range) String() string {
	if r == ThisWeek {
		return "week"
	}
	return "today"
}

const (
	maxMicros = 12
	maxRecent = 20
)

// Macro categories in display order.
var Macros = []string{"Study", "Work", "Others"}

// Bar is one labelled share of a breakdown.
type Bar struct {
	Name    string
	Seconds int64
	Percent int
}

// Report is the insights view for one range.
type Report struct {
	Range      Range
	Total      int64
	Focus      int64
	Recovery   int64
	Yesterday  int64
	Delta      int64 // today only
	GoalTarget int64
	GoalPct    int
	Quality    Score
	Macros     []Bar
	Micros     []Bar
	Efficiency []Bar
	Highlight  string
	Recent     []journal.Record
}

// Filter keeps the records of the range. The week range spans records dated on or
// after the instant seven days before now.
func Filter(records []journal.Record, rng Range, now time.Time) []journal.Record {
	var out []journal.Record
	if rng == Today {
		key := clock.DayKey(now)
		for _, r := range records {
			if r.Date == key {
				out = append(out, r)
			}
		}
		return out
	}
	weekAgo := now.AddDate(0, 0, -7)
	for _, r := range records {
		d, err := clock.ParseDay(r.Date)
		if err != nil {
			continue
		}
		if !d.Before(weekAgo) {
			out = append(out, r)
		}
	}
	return out
}

// Insights aggregates the journal for the given range against a daily goal.
func Insights(records []journal.Record, rng Range, goal int64, now time.Time) Report {
	if goal <= 0 {
		goal = DefaultGoalSeconds
	}
	logs := Filter(records, rng, now)
	rep := Report{Range: rng, GoalTarget: goal}
	if rng == ThisWeek {
		rep.GoalTarget = goal * 7
	}

	macro := map[string]int64{}
	micro := map[string]int64{}
	var microOrder []string
	var focusLogs []journal.Record
	for _, r := range logs {
		rep.Total += r.Duration
		if r.IsRecovery() {
			rep.Recovery += r.Duration
			continue
		}
		rep.Focus += r.Duration
		focusLogs = append(focusLogs, r)
		macro[macroName(r.Bucket)] += r.Duration

		subject := r.Subject
		if subject == "Deep Focus" || subject == "Deep Work" || subject == "" {
			subject = journal.Uncategorized
		}
		if _, ok := micro[subject]; !ok {
			microOrder = append(microOrder, subject)
		}
		micro[subject] += r.Duration
	}

	yesterday := clock.DayKey(now.AddDate(0, 0, -1))
	for _, r := range records {
		if r.Date == yesterday {
			rep.Yesterday += r.Duration
		}
	}
	if rng == Today {
		rep.Delta = rep.Total - rep.Yesterday
	}

	rep.GoalPct = percent(rep.Focus, rep.GoalTarget)
	rep.Quality = QualityScore(focusLogs)

	for _, name := range Macros {
		rep.Macros = append(rep.Macros, Bar{Name: name, Seconds: macro[name], Percent: percent(macro[name], rep.Focus)})
	}

	for _, name := range microOrder {
		if micro[name] <= 0 {
			continue
		}
		rep.Micros = append(rep.Micros, Bar{Name: name, Seconds: micro[name], Percent: percent(micro[name], rep.Focus)})
	}
	sort.SliceStable(rep.Micros, func(i, j int) bool { return rep.Micros[i].Seconds > rep.Micros[j].Seconds })
	if len(rep.Micros) > maxMicros {
		rep.Micros = rep.Micros[:maxMicros]
	}

	rep.Efficiency = []Bar{
		{Name: "Focus", Seconds: rep.Focus, Percent: percent(rep.Focus, rep.Total)},
		{Name: "Recovery", Seconds: rep.Recovery, Percent: percent(rep.Recovery, rep.Total)},
	}
	rep.Highlight = "—"
	if len(rep.Micros) > 0 {
		rep.Highlight = rep.Micros[0].Name
	}

	rep.Recent = focusLogs
	if len(rep.Recent) > maxRecent {
		rep.Recent = rep.Recent[:maxRecent]
	}
	return rep
}

// macroName strips the emoji prefix of a bucket name. Unknown buckets count as Others.
func macroName(bucket string) string {
	if i := strings.IndexByte(bucket, ' '); i >= 0 {
		bucket = bucket[i+1:]
	}
	for _, m := range Macros {
		if bucket == m {
			return m
		}
	}
	return "Others"
}

func percent(part, whole int64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
