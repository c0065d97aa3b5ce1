package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/sujoyonweb/blok/internal/stats"
	"github.com/sujoyonweb/blok/internal/timer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewStopwatch
	viewInsights
	viewJournal
	viewSettings
)

var viewNames = []string{"Timer", "Stopwatch", "Insights", "Journal", "Settings"}

// viewModes are the values persisted under the mode key, one per view.
var viewModes = []string{"timer", "stopwatch", "insights", "journal", "settings"}

func viewFromMode(mode string) viewState {
	for i, m := range viewModes {
		if m == mode {
			return viewState(i)
		}
	}
	return viewTimer
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

type importDoneMsg struct {
	text string
}

// dataChangedMsg asks the data-backed views to reload.
type dataChangedMsg struct{}

// --- Helpers ---

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func statusCmd(text string, isError bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isError: isError}
	}
}

func dataChanged() tea.Msg {
	return dataChangedMsg{}
}

func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		fmt.Fprint(w, "\a")
		return nil
	}
}

// describeEvent turns an engine event into a status line. Events that open a
// prompt in the timer view return "".
func describeEvent(e timer.Event) string {
	switch e.Kind {
	case timer.EventAlarm:
		return "Time's up"
	case timer.EventMomentumStarted:
		return "Momentum: counting overtime"
	case timer.EventPhaseSwapped:
		if e.Phase == timer.Break {
			return "Break time"
		}
		return "Back to focus"
	case timer.EventSessionSaved:
		r := e.Record
		if r.IsRecovery() {
			return "Saved break " + stats.FormatDuration(r.Duration)
		}
		return fmt.Sprintf("Saved %s · %s", stats.FormatDuration(r.Duration), r.Subject)
	case timer.EventDuplicateSkipped:
		return "Session already saved"
	}
	return ""
}

func ringName(level int) string {
	switch level {
	case 1:
		return "green"
	case 2:
		return "purple"
	case 3:
		return "gold"
	}
	return ""
}

// fit pads or truncates s to exactly w terminal cells.
func fit(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
