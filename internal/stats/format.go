package stats

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatDuration renders seconds as "0h 00m", "< 1m", "45m" or "2h 05m".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0h 00m"
	}
	if seconds < 60 {
		return "< 1m"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// TodayLine is the one-line daily total shown under the timer.
func TodayLine(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if seconds > 0 && h == 0 && m == 0 {
		return "Today: < 1m"
	}
	return fmt.Sprintf("Today: %dh %dm", h, m)
}

// ChartLabel is the compact bar label of the week chart.
func ChartLabel(seconds int64) string {
	switch {
	case seconds <= 0:
		return ""
	case seconds < 60:
		return "<1m"
	case seconds >= 3600:
		s := strconv.FormatFloat(float64(seconds)/3600, 'f', 1, 64)
		return strings.TrimSuffix(s, ".0") + "h"
	}
	return fmt.Sprintf("%dm", seconds/60)
}
