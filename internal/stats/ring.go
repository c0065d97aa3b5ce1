package stats

// Ring describes the three stacked goal rings: green up to 1x the goal, purple up to 2x,
// gold up to 3x. Fills are in [0, 1].
type Ring struct {
	Ratio  float64
	Level  int
	Green  float64
	Purple float64
	Gold   float64
}

func NewRing(total, goal int64) Ring {
	if goal <= 0 {
		goal = DefaultGoalSeconds
	}
	ratio := float64(total) / float64(goal)
	return Ring{
		Ratio:  ratio,
		Level:  Level(ratio),
		Green:  clamp01(ratio),
		Purple: clamp01(ratio - 1),
		Gold:   clamp01(ratio - 2),
	}
}

// Level maps a goal ratio to 0..3.
func Level(ratio float64) int {
	switch {
	case ratio >= 3:
		return 3
	case ratio >= 2:
		return 2
	case ratio >= 1:
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Ring returns today's ring state.
func (t *Tracker) Ring() Ring {
	return NewRing(t.TodayTotal(), t.goal)
}

// Celebrate reports a newly reached ring level. Each level fires once per day.
func (t *Tracker) Celebrate() (int, bool) {
	level := t.Ring().Level
	if level <= t.watermark {
		return level, false
	}
	t.watermark = level
	return level, true
}
