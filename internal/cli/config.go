package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sujoyonweb/blok/internal/config"
	"github.com/sujoyonweb/blok/internal/journal"
)

func newConfigCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := ensureConfig(o.configPath)
			if err != nil {
				return err
			}
			return openEditor(path)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), o.configPath)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the commented default config if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := ensureConfig(o.configPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := [][2]string{
				{"config", cfg.ConfigPath},
				{"db", cfg.DBPath},
				{"log", cfg.LogPath},
				{"log-level", cfg.LogLevel},
				{"grace-seconds", fmt.Sprint(cfg.GraceSeconds)},
				{"tick-ms", fmt.Sprint(cfg.TickMS)},
				{"dictionary", cfg.DictionaryPath},
				{"timer.default-minutes", fmt.Sprint(cfg.DefaultMinutes)},
				{"timer.break-minutes", fmt.Sprint(cfg.BreakMinutes)},
				{"timer.momentum", fmt.Sprint(cfg.Momentum)},
				{"timer.auto-flow", fmt.Sprint(cfg.AutoFlow)},
				{"goal.hours", fmt.Sprint(cfg.GoalHours)},
				{"notify.enabled", fmt.Sprint(cfg.Notifications)},
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%s %s\n", padRight(r[0], 22), r[1])
			}
			return nil
		},
	})
	return cmd
}

func ensureConfig(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return "", fmt.Errorf("failed to write config: %w", err)
		}
	}
	return path, nil
}

func openEditor(path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newClassifyCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text>...",
		Short: "Show how task text would be categorized",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			d := journal.DefaultDictionary()
			if cfg.DictionaryPath != "" {
				if d, err = journal.LoadDictionary(cfg.DictionaryPath); err != nil {
					return err
				}
			}
			c, err := journal.NewClassifier(d)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, text := range args {
				bucket, subject := c.Categorize(text)
				fmt.Fprintf(out, "%s %s %s\n", padRight(text, 30), padRight(bucket, 16), subject)
			}
			return nil
		},
	}
}
