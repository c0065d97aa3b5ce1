// Package cli defines the blok command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/config"
	"github.com/sujoyonweb/blok/internal/tui"
)

type rootOptions struct {
	configPath string
	dbPath     string
	logLevel   string
	grace      int
	tickMS     int
	dictionary string

	// appOpts lets tests swap the clock and notifier.
	appOpts app.Options
}

// NewRootCmd builds the blok command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(app.Options{})
}

func newRootCmd(appOpts app.Options) *cobra.Command {
	def := config.Default()
	o := &rootOptions{appOpts: appOpts}

	rootCmd := &cobra.Command{
		Use:           "blok",
		Short:         "Focus timer, stopwatch and session journal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runTUI(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configPath, "config", def.ConfigPath, "config file path")
	pf.StringVar(&o.dbPath, "db", def.DBPath, "database path")
	pf.StringVar(&o.logLevel, "log-level", def.LogLevel, "log level (debug, info, warn, error)")
	pf.IntVar(&o.grace, "grace-seconds", def.GraceSeconds, "shortest session worth recording")
	pf.IntVar(&o.tickMS, "tick-ms", def.TickMS, "TUI refresh interval in milliseconds")
	pf.StringVar(&o.dictionary, "dictionary", "", "YAML classification dictionary")

	rootCmd.AddCommand(newStatusCmd(o))
	rootCmd.AddCommand(newTimerCmd(o))
	rootCmd.AddCommand(newStopwatchCmd(o))
	rootCmd.AddCommand(newStatsCmd(o))
	rootCmd.AddCommand(newSettingsCmd(o))
	rootCmd.AddCommand(newExportCmd(o))
	rootCmd.AddCommand(newImportCmd(o))
	rootCmd.AddCommand(newResetCmd(o))
	rootCmd.AddCommand(newDumpCmd(o))
	rootCmd.AddCommand(newClassifyCmd(o))
	rootCmd.AddCommand(newConfigCmd(o))

	return rootCmd
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// resolve layers flags over the config file over the defaults.
func (o *rootOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	fileCfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "db", &o.dbPath, fileCfg.DB)
	applyStringConfig(cmd, "log-level", &o.logLevel, fileCfg.LogLevel)
	applyIntConfig(cmd, "grace-seconds", &o.grace, fileCfg.GraceSeconds)
	applyIntConfig(cmd, "tick-ms", &o.tickMS, fileCfg.TickMS)
	applyStringConfig(cmd, "dictionary", &o.dictionary, fileCfg.Dictionary)

	cfg := config.Resolve(fileCfg)
	cfg.ConfigPath = o.configPath
	cfg.DBPath = o.dbPath
	cfg.LogLevel = o.logLevel
	cfg.GraceSeconds = o.grace
	cfg.TickMS = o.tickMS
	cfg.DictionaryPath = o.dictionary
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// open resolves the config and wires an App logging to stderr.
func (o *rootOptions) open(cmd *cobra.Command) (*app.App, error) {
	cfg, err := o.resolve(cmd)
	if err != nil {
		return nil, err
	}
	opts := o.appOpts
	if opts.Logger == nil {
		opts.Logger = app.NewLogger(cfg, cmd.ErrOrStderr())
	}
	a, err := app.Open(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open blok: %w", err)
	}
	return a, nil
}

func (o *rootOptions) runTUI(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive view needs a terminal; try `blok status`")
	}
	cfg, err := o.resolve(cmd)
	if err != nil {
		return err
	}

	logFile, err := app.OpenLogFile(cfg.LogPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	opts := o.appOpts
	opts.Logger = app.NewLogger(cfg, logFile)
	a, err := app.Open(cfg, opts)
	if err != nil {
		return fmt.Errorf("failed to open blok: %w", err)
	}
	defer closeApp(cmd, a)

	if err := tui.Run(a); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func closeApp(cmd *cobra.Command, a *app.App) {
	if err := a.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to close db: %v\n", err)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
