package timer

import (
	"fmt"
	"strings"
)

type Preset struct {
	Name    string
	Minutes int
}

var Presets = []Preset{
	{Name: "Pomodoro", Minutes: 25},
	{Name: "Study", Minutes: 30},
	{Name: "Meditation", Minutes: 48},
	{Name: "Short Break", Minutes: 5},
	{Name: "Long Break", Minutes: 10},
}

// FindPreset looks a preset up by case-insensitive name.
func FindPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// PhaseFor classifies a label: anything naming a break is a break.
func PhaseFor(label string) Phase {
	if strings.Contains(strings.ToLower(label), "break") {
		return Break
	}
	return Focus
}

// focusLabel names a bounced-back focus duration.
func focusLabel(seconds int64) string {
	switch seconds {
	case 25 * 60, 30 * 60, 48 * 60:
		return "Focus"
	}
	return "Custom"
}

// lastPreset is the persisted shape of the most recent duration choice.
type lastPreset struct {
	Time  int64  `json:"time"`
	Label string `json:"label"`
}

// FormatClock renders seconds as MM:SS, or H:MM:SS past the hour.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
