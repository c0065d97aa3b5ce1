package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/timer"
)

// settleWindow covers the auto-flow hand-off: swap, then auto-start.
const settleWindow = timer.AutoStartDelay + 100*time.Millisecond

func newTimerCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Control the countdown",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			printTimer(cmd.OutOrStdout(), a)
			return nil
		}),
	}
	cmd.AddCommand(newTimerStartCmd(o))
	cmd.AddCommand(&cobra.Command{
		Use:   "pause",
		Short: "Pause the countdown",
		Args:  cobra.NoArgs,
		RunE: timerAction(o, func(a *app.App) error {
			a.Timer.Pause()
			return nil
		}),
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset to the full duration and forget the current run",
		Args:  cobra.NoArgs,
		RunE: timerAction(o, func(a *app.App) error {
			a.Timer.Reset()
			return nil
		}),
	})
	cmd.AddCommand(newTimerStopCmd(o))
	cmd.AddCommand(newTimerSetCmd(o))
	cmd.AddCommand(newTimerPresetCmd(o))
	cmd.AddCommand(newTimerRateCmd(o))
	cmd.AddCommand(newTaskCmd(o, "Show or set the countdown task",
		func(a *app.App) string { return a.Timer.Task() },
		func(a *app.App, text string) { a.Timer.SetTask(text) }))
	return cmd
}

// withApp opens the App around fn.
func withApp(o *rootOptions, fn func(cmd *cobra.Command, a *app.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := o.open(cmd)
		if err != nil {
			return err
		}
		defer closeApp(cmd, a)
		return fn(cmd, a, args)
	}
}

// timerAction runs fn, lets pending transitions settle and reports the result.
func timerAction(o *rootOptions, fn func(a *app.App) error) func(*cobra.Command, []string) error {
	return withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
		out := cmd.OutOrStdout()
		a.Settle(settleWindow)
		printEvents(out, a.Timer.Events())
		if err := fn(a); err != nil {
			return err
		}
		a.Settle(settleWindow)
		printEvents(out, a.Timer.Events())
		printTimer(out, a)
		return nil
	})
}

func newTimerStartCmd(o *rootOptions) *cobra.Command {
	var (
		preset  string
		minutes int
		task    string
	)
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start or resume the countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return timerAction(o, func(a *app.App) error {
				if preset != "" && minutes > 0 {
					return fmt.Errorf("use either --preset or --minutes")
				}
				if preset != "" {
					if err := a.Timer.SetPreset(preset); err != nil {
						return err
					}
				}
				if minutes > 0 {
					if err := a.Timer.Set(0, minutes, 0, ""); err != nil {
						return err
					}
				}
				if task != "" {
					a.Timer.SetTask(task)
				}
				return a.Timer.Start()
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "start a preset (see `blok timer preset`)")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "start a custom countdown of this many minutes")
	cmd.Flags().StringVar(&task, "task", "", "what this session is for")
	return cmd
}

func newTimerStopCmd(o *rootOptions) *cobra.Command {
	var (
		discardExtra bool
		rate         string
	)
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "End the session early, saving it when long enough",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var q journal.Quality
			if rate != "" {
				q = journal.Quality(strings.ToLower(rate))
				if !q.Valid() {
					return fmt.Errorf("%w: %q", timer.ErrInvalidQuality, rate)
				}
			}
			return timerAction(o, func(a *app.App) error {
				a.Timer.Stop()
				if a.Timer.Snapshot().InMomentum {
					a.Timer.StopAndSave(discardExtra)
				}
				if q != "" {
					if a.Timer.Snapshot().Awaiting {
						return a.Timer.Reflect(q)
					}
					a.Journal.UpdateLastReflection(q)
				}
				if a.Timer.Snapshot().Awaiting {
					a.Timer.Reset()
				}
				return nil
			})(cmd, args)
		},
	}
	cmd.Flags().BoolVar(&discardExtra, "discard-extra", false, "save only the planned duration of a momentum session")
	cmd.Flags().StringVar(&rate, "rate", "", "rate the session: deep, balanced or distracted")
	return cmd
}

func newTimerSetCmd(o *rootOptions) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "set <duration>",
		Short: "Set a custom duration, e.g. 45m or 1h30m",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("%w: %v", timer.ErrInvalidDuration, err)
			}
			secs := int(d / time.Second)
			return timerAction(o, func(a *app.App) error {
				return a.Timer.Set(secs/3600, (secs%3600)/60, secs%60, label)
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "label shown with the countdown")
	return cmd
}

func newTimerPresetCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "preset [name]",
		Short: "List presets or select one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, p := range timer.Presets {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %dm\n", padRight(p.Name, 12), p.Minutes)
				}
				return nil
			}
			return timerAction(o, func(a *app.App) error {
				return a.Timer.SetPreset(args[0])
			})(cmd, args)
		},
	}
}

func newTimerRateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <deep|balanced|distracted>",
		Short: "Rate today's latest unrated sessions",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, args []string) error {
			q := journal.Quality(strings.ToLower(args[0]))
			if !q.Valid() {
				return fmt.Errorf("%w: %q", timer.ErrInvalidQuality, args[0])
			}
			n := a.Journal.UpdateLastReflection(q)
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to rate today")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rated %d session(s) %s\n", n, q)
			return nil
		}),
	}
}

func newTaskCmd(o *rootOptions, short string, get func(*app.App) string, set func(*app.App, string)) *cobra.Command {
	var unset bool
	cmd := &cobra.Command{
		Use:   "task [text]",
		Short: short,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, args []string) error {
			switch {
			case unset:
				set(a, "")
			case len(args) > 0:
				set(a, strings.Join(args, " "))
			}
			task := get(a)
			if task == "" {
				task = "(none)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), task)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&unset, "clear", false, "clear the task")
	return cmd
}
