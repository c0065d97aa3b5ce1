package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/stats"
)

func newSettingsCmd(o *rootOptions) *cobra.Command {
	var (
		goal          int
		breakMinutes  int
		momentum      bool
		autoFlow      bool
		notifications bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change goal, break length and mode toggles",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			f := cmd.Flags()
			if f.Changed("goal") {
				if err := a.Stats.SetGoalHours(goal); err != nil {
					return err
				}
			}
			if f.Changed("break") {
				if err := a.Timer.SetBreakMinutes(int64(breakMinutes)); err != nil {
					return err
				}
			}
			if f.Changed("momentum") {
				a.Timer.SetMomentumMode(momentum)
			}
			if f.Changed("auto-flow") {
				a.Timer.SetAutoFlow(autoFlow)
			}
			if f.Changed("notifications") {
				if err := a.Notify.SetEnabled(notifications); err != nil {
					return err
				}
			}

			s := a.Timer.Snapshot()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", padRight("goal", 14), stats.FormatDuration(a.Stats.Goal()))
			fmt.Fprintf(out, "%s %dm\n", padRight("break", 14), s.BreakMinutes)
			fmt.Fprintf(out, "%s %s\n", padRight("momentum", 14), onOff(s.MomentumMode))
			fmt.Fprintf(out, "%s %s\n", padRight("auto-flow", 14), onOff(s.AutoFlow))
			fmt.Fprintf(out, "%s %s\n", padRight("notifications", 14), onOff(a.Notify.Enabled()))
			return nil
		}),
	}
	cmd.Flags().IntVar(&goal, "goal", 0, "daily goal in hours (1-15)")
	cmd.Flags().IntVar(&breakMinutes, "break", 0, "auto-flow break length in minutes (1-60)")
	cmd.Flags().BoolVar(&momentum, "momentum", false, "count overtime after the countdown ends")
	cmd.Flags().BoolVar(&autoFlow, "auto-flow", false, "cycle focus and break automatically")
	cmd.Flags().BoolVar(&notifications, "notifications", false, "send desktop notifications")
	return cmd
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
