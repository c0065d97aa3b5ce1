package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stats"
)

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the timer, stopwatch and today's progress",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			out := cmd.OutOrStdout()
			a.Settle(settleWindow)
			printEvents(out, a.Timer.Events())
			printTimer(out, a)
			printStopwatch(out, a, false)
			printToday(out, a)
			return nil
		}),
	}
}

func printToday(w io.Writer, a *app.App) {
	ring := a.Stats.Ring()
	streak := a.Stats.Streak()
	fmt.Fprintf(w, "%s  goal %s (%d%%)  streak %d day%s\n",
		stats.TodayLine(a.Stats.TodayTotal()),
		stats.FormatDuration(a.Stats.Goal()),
		int(ring.Ratio*100),
		streak, plural(streak))
}

func newStatsCmd(o *rootOptions) *cobra.Command {
	var week bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show insights for today or the last week",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			rng := stats.Today
			if week {
				rng = stats.ThisWeek
			}
			rep := stats.Insights(a.Journal.AllLogs(), rng, a.Stats.Goal(), a.Clock.Now())
			out := cmd.OutOrStdout()
			printReport(out, rep)
			if week {
				fmt.Fprintln(out)
				printWeek(out, a.Stats.Week())
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&week, "week", false, "cover the last seven days")
	return cmd
}

func printReport(w io.Writer, rep stats.Report) {
	title := "Today"
	if rep.Range == stats.ThisWeek {
		title = "This week"
	}
	fmt.Fprintf(w, "%s: %s focus, %s recovery\n", title,
		stats.FormatDuration(rep.Focus), stats.FormatDuration(rep.Recovery))
	if rep.Range == stats.Today {
		sign := "+"
		delta := rep.Delta
		if delta < 0 {
			sign = "-"
			delta = -delta
		}
		fmt.Fprintf(w, "vs yesterday: %s%s\n", sign, stats.FormatDuration(delta))
	}
	fmt.Fprintf(w, "goal: %d%% of %s\n", rep.GoalPct, stats.FormatDuration(rep.GoalTarget))
	if rep.Quality.Pending {
		fmt.Fprintln(w, "quality: pending")
	} else {
		fmt.Fprintf(w, "quality: %d%% %s\n", rep.Quality.Percent, rep.Quality.Label())
	}
	fmt.Fprintf(w, "highlight: %s\n", rep.Highlight)

	fmt.Fprintln(w, "\ncategories")
	printBars(w, rep.Macros)
	if len(rep.Micros) > 0 {
		fmt.Fprintln(w, "\nsubjects")
		printBars(w, rep.Micros)
	}
	fmt.Fprintln(w, "\nefficiency")
	printBars(w, rep.Efficiency)

	if len(rep.Recent) > 0 {
		fmt.Fprintln(w, "\nrecent")
		for _, r := range rep.Recent {
			fmt.Fprintf(w, "  %s %s  %s %s %s %s\n",
				r.Date, r.Time, padRight(stats.FormatDuration(r.Duration), 7),
				padRight(r.Subject, 18), padRight(r.Task, 28), r.Quality)
		}
	}
}

func printBars(w io.Writer, bars []stats.Bar) {
	for _, b := range bars {
		fill := b.Percent / 5
		fmt.Fprintf(w, "  %s %s %3d%% %s\n",
			padRight(b.Name, 18), padRight(stats.FormatDuration(b.Seconds), 7), b.Percent,
			strings.Repeat("█", fill))
	}
}

func printWeek(w io.Writer, wk stats.Week) {
	const width = 30
	for _, d := range wk.Days {
		n := int(d.Seconds * width / wk.Max)
		marker := " "
		if d.Today {
			marker = "*"
		}
		fmt.Fprintf(w, "%s%s %s %s\n", marker, d.Date.Format("Mon 02"),
			padRight(strings.Repeat("█", n), width), stats.ChartLabel(d.Seconds))
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
