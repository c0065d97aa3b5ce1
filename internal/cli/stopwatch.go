package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stopwatch"
)

func newStopwatchCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stopwatch",
		Aliases: []string{"sw"},
		Short:   "Control the stopwatch",
		Args:    cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			printStopwatch(cmd.OutOrStdout(), a, true)
			return nil
		}),
	}

	action := func(use, short string, fn func(sw *stopwatch.Stopwatch)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
				fn(a.Stopwatch)
				printStopwatch(cmd.OutOrStdout(), a, false)
				return nil
			}),
		}
	}
	cmd.AddCommand(action("start", "Start or resume", func(sw *stopwatch.Stopwatch) { sw.Start() }))
	cmd.AddCommand(action("pause", "Pause", func(sw *stopwatch.Stopwatch) { sw.Pause() }))
	cmd.AddCommand(action("reset", "Reset and clear laps", func(sw *stopwatch.Stopwatch) { sw.Reset() }))
	cmd.AddCommand(&cobra.Command{
		Use:   "lap",
		Short: "Record a lap",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if a.Stopwatch.State() == stopwatch.Idle {
				return fmt.Errorf("stopwatch is not running")
			}
			lap := a.Stopwatch.Lap()
			fmt.Fprintf(cmd.OutOrStdout(), "lap %d  %s\n", lap.Idx, lap.Time)
			return nil
		}),
	})
	cmd.AddCommand(newTaskCmd(o, "Show or set the stopwatch task",
		func(a *app.App) string { return a.Stopwatch.Task() },
		func(a *app.App, text string) { a.Stopwatch.SetTask(text) }))
	return cmd
}

func printStopwatch(w io.Writer, a *app.App, laps bool) {
	sw := a.Stopwatch
	sw.Tick()
	fmt.Fprintf(w, "%s %-8s %s\n", padRight("Stopwatch", 10), stopwatch.Format(sw.Elapsed()), sw.State())
	if task := sw.Task(); task != "" {
		fmt.Fprintf(w, "%s %s\n", padRight("", 10), task)
	}
	if !laps {
		return
	}
	for _, l := range sw.Laps() {
		fmt.Fprintf(w, "%s lap %-3d %s\n", padRight("", 10), l.Idx, l.Time)
	}
}
