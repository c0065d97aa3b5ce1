// Package app wires the store, engines and side channels into one unit shared
// by the TUI and the CLI commands.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/config"
	"github.com/sujoyonweb/blok/internal/export"
	"github.com/sujoyonweb/blok/internal/journal"
	"github.com/sujoyonweb/blok/internal/notify"
	"github.com/sujoyonweb/blok/internal/recovery"
	"github.com/sujoyonweb/blok/internal/stats"
	"github.com/sujoyonweb/blok/internal/stopwatch"
	"github.com/sujoyonweb/blok/internal/store"
	"github.com/sujoyonweb/blok/internal/timer"
)

// Options overrides the collaborators App would otherwise build itself.
type Options struct {
	Clock    clock.Clock
	Logger   *log.Logger
	Notifier notify.Notifier
	// Sleep waits between settle ticks. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

type App struct {
	Config    config.Config
	Store     *store.Store
	Log       *log.Logger
	Clock     clock.Clock
	Journal   *journal.Journal
	Stats     *stats.Tracker
	Timer     *timer.Timer
	Stopwatch *stopwatch.Stopwatch
	Notify    *notify.Service
	Recovery  *recovery.Coordinator

	sleep func(time.Duration)
}

// Open opens the database at cfg.DBPath and wires every engine over it.
func Open(cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st, err := store.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a, err := New(cfg, st, opts)
	if err != nil {
		st.Close()
		return nil, err
	}
	return a, nil
}

// New wires the engines over an open store and restores their persisted state.
func New(cfg config.Config, st *store.Store, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewLogger(cfg, os.Stderr)
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	st.SetLogger(logger.WithPrefix("store"))

	if err := st.Seed(cfg.Seeds()); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	classifier, err := loadClassifier(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}

	n := opts.Notifier
	if n == nil {
		n = notify.NewDesktop()
	}

	a := &App{Config: cfg, Store: st, Log: logger, Clock: clk, sleep: opts.Sleep}
	if a.sleep == nil {
		a.sleep = time.Sleep
	}
	grace := int64(cfg.GraceSeconds)
	a.Journal = journal.New(st, journal.Options{
		Classifier:   classifier,
		Clock:        clk,
		Logger:       logger.WithPrefix("journal"),
		GraceSeconds: grace,
	})
	a.Stats = stats.New(st, stats.Options{Clock: clk, Logger: logger.WithPrefix("stats")})
	a.Notify = notify.NewService(st, n, logger.WithPrefix("notify"))
	a.Timer = timer.New(st, timer.Options{
		Clock:           clk,
		Logger:          logger.WithPrefix("timer"),
		Ledger:          a.Journal,
		Stats:           a.Stats,
		Notifier:        a.Notify,
		GraceSeconds:    grace,
		DefaultDuration: int64(cfg.DefaultMinutes) * 60,
		DefaultLabel:    defaultLabel(cfg.DefaultMinutes),
	})
	a.Stopwatch = stopwatch.New(st, stopwatch.Options{Clock: clk, Logger: logger.WithPrefix("stopwatch")})
	a.Recovery = recovery.New(clk, logger.WithPrefix("recovery"), a.Timer, a.Stopwatch)
	a.Recovery.Restore()
	return a, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}

func loadClassifier(path string) (*journal.Classifier, error) {
	if path == "" {
		return nil, nil
	}
	d, err := journal.LoadDictionary(path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	c, err := journal.NewClassifier(d)
	if err != nil {
		return nil, fmt.Errorf("compile dictionary: %w", err)
	}
	return c, nil
}

func defaultLabel(minutes int) string {
	for _, p := range timer.Presets {
		if p.Minutes == minutes {
			return p.Name
		}
	}
	return "Custom"
}

// Settle ticks the timer until its deferred auto-flow steps have run, waiting
// at most max. Short-lived CLI processes use it so a finished session hands
// off to the next phase before the process exits.
func (a *App) Settle(max time.Duration) {
	deadline := a.Clock.Now().Add(max)
	for {
		a.Timer.Tick()
		due, ok := a.Timer.NextDeadline()
		if !ok || due.After(deadline) {
			return
		}
		if wait := due.Sub(a.Clock.Now()); wait > 0 {
			a.sleep(wait)
		}
	}
}

// ExportCSV writes the focus sessions of the last days (all when days <= 0) into dir.
func (a *App) ExportCSV(dir string, days int) (string, error) {
	now := a.Clock.Now()
	records := a.Journal.AllLogs()
	if days > 0 {
		records = journal.Window(records, now, days)
	}
	path := filepath.Join(dir, export.Filename("csv", now))
	if err := export.ToCSV(records, path); err != nil {
		return "", err
	}
	a.Log.Info("exported csv", "path", path, "records", len(records))
	return path, nil
}

// ExportJSON writes a full backup into dir.
func (a *App) ExportJSON(dir string) (string, error) {
	now := a.Clock.Now()
	path := filepath.Join(dir, export.Filename("json", now))
	if err := export.ToJSON(export.Snapshot(a.Store), path); err != nil {
		return "", err
	}
	a.Log.Info("exported backup", "path", path)
	return path, nil
}

// Import merges a backup file and reloads the statistics it touched.
func (a *App) Import(path string) (export.MergeResult, error) {
	res, err := export.ImportFile(a.Store, path, a.Clock.Now())
	if err != nil {
		if errors.Is(err, export.ErrImportMalformed) {
			a.Log.Warn("import rejected", "path", path, "err", err)
		}
		return res, err
	}
	a.Stats.Reload()
	a.Log.Info("imported backup", "path", path, "days", res.DaysUpdated, "added", res.Added)
	return res, nil
}

// FactoryReset wipes every blok key, seeds the configured defaults again and
// reloads the engines.
func (a *App) FactoryReset() (int64, error) {
	n, err := a.Store.Clear(store.Prefix)
	if err != nil {
		return 0, err
	}
	if err := a.Store.Seed(a.Config.Seeds()); err != nil {
		return n, fmt.Errorf("seed store: %w", err)
	}
	a.Stats.Reload()
	a.Recovery.Restore()
	a.Log.Info("factory reset", "keys", n)
	return n, nil
}
