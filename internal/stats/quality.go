package stats

import (
	"math"

	"github.com/sujoyonweb/blok/internal/journal"
)

// Score is the time-weighted share of rated focus marked deep.
type Score struct {
	Rated   int64
	Deep    int64
	Percent int
	Pending bool
}

// QualityScore weighs focus records by duration. Recovery records and unrated
// sessions do not count; with nothing rated the score is pending.
func QualityScore(records []journal.Record) Score {
	var s Score
	for _, r := range records {
		if r.IsRecovery() || r.Quality == journal.Unrated || r.Quality == "" {
			continue
		}
		s.Rated += r.Duration
		if r.Quality == journal.Deep {
			s.Deep += r.Duration
		}
	}
	if s.Rated == 0 {
		s.Pending = true
		return s
	}
	s.Percent = int(math.Round(float64(s.Deep) / float64(s.Rated) * 100))
	return s
}

// Label is the short verdict shown next to the percentage.
func (s Score) Label() string {
	switch {
	case s.Pending:
		return "Pending"
	case s.Percent >= 80:
		return "Strong"
	case s.Percent >= 60:
		return "Good"
	}
	return "Distracted"
}

// Badge is the insights badge text. Empty while pending.
func (s Score) Badge() string {
	switch {
	case s.Pending:
		return ""
	case s.Percent >= 80:
		return "Excellent"
	case s.Percent >= 60:
		return "Good"
	}
	return "Needs Work"
}
