package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stats"
	"github.com/sujoyonweb/blok/internal/timer"
)

// padRight pads s to w terminal cells. Bucket names carry emoji, so byte or
// rune counts would misalign the columns.
func padRight(s string, w int) string {
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "…")
	}
	return runewidth.FillRight(s, w)
}

// printEvents reports what the timer did in response to a command.
func printEvents(w io.Writer, events []timer.Event) {
	for _, e := range events {
		if line := describeEvent(e); line != "" {
			fmt.Fprintln(w, line)
		}
	}
}

func describeEvent(e timer.Event) string {
	switch e.Kind {
	case timer.EventStarted:
		return fmt.Sprintf("started %s", e.Phase)
	case timer.EventPaused:
		return "paused"
	case timer.EventReset:
		return "reset"
	case timer.EventAlarm:
		return "\atime's up"
	case timer.EventMomentumStarted:
		return "momentum: counting overtime"
	case timer.EventRatingPrompt:
		return "rate it with: blok timer rate deep|balanced|distracted"
	case timer.EventMomentumChoice:
		return fmt.Sprintf("session total %s (overtime %s)",
			stats.FormatDuration(e.Total), timer.FormatClock(e.Extra))
	case timer.EventFlowSummary:
		return fmt.Sprintf("flow summary: focus %s, break %s",
			stats.FormatDuration(e.Focus), stats.FormatDuration(e.Break))
	case timer.EventPhaseSwapped:
		return fmt.Sprintf("switched to %s", e.Phase)
	case timer.EventSessionSaved:
		r := e.Record
		if r.IsRecovery() {
			return fmt.Sprintf("saved break %s", stats.FormatDuration(r.Duration))
		}
		return fmt.Sprintf("saved %s · %s · %s", stats.FormatDuration(r.Duration), r.Subject, r.Task)
	case timer.EventDuplicateSkipped:
		return "session already saved"
	}
	return ""
}

func printTimer(w io.Writer, a *app.App) {
	s := a.Timer.Snapshot()
	face := timer.FormatClock(a.Timer.Display())
	if s.InMomentum {
		face = "+" + face
	}
	var modes []string
	if s.MomentumMode {
		modes = append(modes, "momentum")
	}
	if s.AutoFlow {
		modes = append(modes, fmt.Sprintf("auto-flow, %dm breaks", s.BreakMinutes))
	}
	line := fmt.Sprintf("%s %-8s %-8s %s (%s)", padRight("Timer", 10), face, s.State, s.Label, s.Phase)
	if len(modes) > 0 {
		line += " [" + strings.Join(modes, "; ") + "]"
	}
	fmt.Fprintln(w, line)
	if task := a.Timer.Task(); task != "" {
		fmt.Fprintf(w, "%s %s\n", padRight("", 10), task)
	}
}
