package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/store"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	var (
		format string
		days   int
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal as CSV or a JSON backup",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if outDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolve output directory: %w", err)
				}
				outDir = wd
			}
			var (
				path string
				err  error
			)
			switch strings.ToLower(format) {
			case "csv":
				path, err = a.ExportCSV(outDir, days)
			case "json":
				path, err = a.ExportJSON(outDir)
			default:
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}),
	}
	cmd.Flags().StringVar(&format, "format", "json", "csv or json")
	cmd.Flags().IntVar(&days, "days", 0, "CSV only: limit to the last N days (0 = all)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default: current directory)")
	return cmd
}

func newImportCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup.json>",
		Short: "Merge a JSON backup into the local data",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, args []string) error {
			res, err := a.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "merged: %d day(s) updated, %d session(s) added, %d total\n",
				res.DaysUpdated, res.Added, res.Total)
			return nil
		}),
	}
}

func newResetCmd(o *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all blok data",
		Args:  cobra.NoArgs,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			if !yes {
				return fmt.Errorf("this erases every session and setting; rerun with --yes")
			}
			n, err := a.FactoryReset()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d key(s)\n", n)
			return nil
		}),
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}

func newDumpCmd(o *rootOptions) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:    "dump",
		Short:  "Print raw stored values",
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: withApp(o, func(cmd *cobra.Command, a *app.App, _ []string) error {
			entries, err := a.Store.Entries(prefix)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.Key, e.UpdatedAt, e.Value)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&prefix, "prefix", store.Prefix, "key prefix")
	return cmd
}
