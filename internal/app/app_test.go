package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujoyonweb/blok/internal/clock"
	"github.com/sujoyonweb/blok/internal/config"
	"github.com/sujoyonweb/blok/internal/store"
	"github.com/sujoyonweb/blok/internal/timer"
)

type silentNotifier struct{ sent []string }

func (n *silentNotifier) Request() error { return nil }
func (n *silentNotifier) Send(title, _ string) error {
	n.sent = append(n.sent, title)
	return nil
}

func newTestApp(t *testing.T, cfg config.Config) (*App, *clock.Fake, *silentNotifier) {
	t.Helper()
	st, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clk := clock.NewFake(time.Date(2026, 3, 12, 9, 0, 0, 0, time.Local))
	n := &silentNotifier{}
	a, err := New(cfg, st, Options{
		Clock:    clk,
		Logger:   log.New(io.Discard),
		Notifier: n,
		Sleep:    clk.Advance,
	})
	require.NoError(t, err)
	return a, clk, n
}

func TestNewSeedsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.GoalHours = 4
	cfg.BreakMinutes = 10
	cfg.Momentum = true
	a, _, _ := newTestApp(t, cfg)

	assert.Equal(t, int64(4*3600), a.Stats.Goal())
	snap := a.Timer.Snapshot()
	assert.True(t, snap.MomentumMode)
	assert.Equal(t, int64(10), snap.BreakMinutes)
	assert.Equal(t, int64(25*60), snap.Duration)
	assert.Equal(t, "Pomodoro", snap.Label)
}

func TestDefaultLabelFollowsPresets(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultMinutes = 48
	a, _, _ := newTestApp(t, cfg)
	assert.Equal(t, "Meditation", a.Timer.Snapshot().Label)
	assert.Equal(t, "Custom", defaultLabel(17))
}

func TestSettleRunsAutoFlowHandOff(t *testing.T) {
	cfg := config.Default()
	cfg.GraceSeconds = 1
	cfg.AutoFlow = true
	a, clk, _ := newTestApp(t, cfg)

	require.NoError(t, a.Timer.Set(0, 0, 2, "Focus"))
	require.NoError(t, a.Timer.Start())
	clk.Advance(2 * time.Second)
	a.Settle(3 * time.Second)

	snap := a.Timer.Snapshot()
	assert.Equal(t, timer.Break, snap.Phase)
	assert.Equal(t, timer.Running, snap.State)
	require.Len(t, a.Journal.Logs(), 1)
	assert.Equal(t, int64(2), a.Stats.TodayTotal())
}

func TestExportImportRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.GraceSeconds = 1
	a, clk, _ := newTestApp(t, cfg)

	a.Timer.SetTask("calculus homework")
	require.NoError(t, a.Timer.Set(0, 1, 0, "Custom"))
	require.NoError(t, a.Timer.Start())
	clk.Advance(time.Minute)
	a.Timer.Tick()

	dir := t.TempDir()
	jsonPath, err := a.ExportJSON(dir)
	require.NoError(t, err)
	assert.Equal(t, "blok_backup_Mar12_0901.json", filepath.Base(jsonPath))

	csvPath, err := a.ExportCSV(dir, 7)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Mathematics","calculus homework",1m,unrated`)

	b, _, _ := newTestApp(t, config.Default())
	res, err := b.Import(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, int64(60), b.Stats.TodayTotal())
}

func TestImportMalformed(t *testing.T) {
	a, _, _ := newTestApp(t, config.Default())
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"history": [1,2]}`), 0o644))

	_, err := a.Import(path)
	assert.Error(t, err)
	assert.Empty(t, a.Journal.AllLogs())
}

func TestFactoryReset(t *testing.T) {
	cfg := config.Default()
	cfg.GraceSeconds = 1
	a, clk, _ := newTestApp(t, cfg)

	require.NoError(t, a.Timer.Set(0, 0, 30, "Custom"))
	require.NoError(t, a.Timer.Start())
	clk.Advance(10 * time.Second)
	a.Timer.Tick()
	a.Stopwatch.Start()

	n, err := a.FactoryReset()
	require.NoError(t, err)
	assert.Positive(t, n)
	assert.Equal(t, timer.Idle, a.Timer.State())
	assert.Equal(t, int64(25*60), a.Timer.Snapshot().Duration)
	assert.Equal(t, int64(cfg.GoalHours*3600), a.Stats.Goal())
	assert.Zero(t, a.Stopwatch.Elapsed())
}

func TestDictionaryOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
buckets:
  - name: "Work"
    subjects:
      - name: "Gardening"
        keywords: ["roses"]
`), 0o644))

	cfg := config.Default()
	cfg.DictionaryPath = path
	a, _, _ := newTestApp(t, cfg)
	bucket, subject := a.Journal.Categorize("pruning roses")
	assert.Equal(t, "Work", bucket)
	assert.Equal(t, "Gardening", subject)

	cfg.DictionaryPath = filepath.Join(t.TempDir(), "missing.yaml")
	st, err := store.NewMemory()
	require.NoError(t, err)
	defer st.Close()
	_, err = New(cfg, st, Options{Logger: log.New(io.Discard), Notifier: &silentNotifier{}})
	assert.Error(t, err)
}
