package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sujoyonweb/blok/internal/app"
	"github.com/sujoyonweb/blok/internal/clock"
)

type nopNotifier struct{}

func (nopNotifier) Request() error         { return nil }
func (nopNotifier) Send(_, _ string) error { return nil }

type testEnv struct {
	dir   string
	db    string
	cfg   string
	clock *clock.Fake
	opts  app.Options
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	clk := clock.NewFake(time.Date(2026, 3, 12, 9, 0, 0, 0, time.Local))
	return &testEnv{
		dir:   dir,
		db:    filepath.Join(dir, "blok.db"),
		cfg:   filepath.Join(dir, "config.toml"),
		clock: clk,
		opts: app.Options{
			Clock:    clk,
			Logger:   log.New(io.Discard),
			Notifier: nopNotifier{},
			Sleep:    clk.Advance,
		},
	}
}

// run executes one command the way a separate process would.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(e.opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", e.db, "--config", e.cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestTimerSessionAcrossProcesses(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun(t, "timer", "start", "--minutes", "1", "--task", "calculus homework")
	assert.Contains(t, out, "started focus")
	assert.Contains(t, out, "running")

	env.clock.Advance(61 * time.Second)
	out = env.mustRun(t, "status")
	assert.Contains(t, out, "saved 1m · Mathematics · calculus homework")
	assert.Contains(t, out, "Today: 0h 1m")

	out = env.mustRun(t, "timer", "rate", "deep")
	assert.Contains(t, out, "rated 1 session(s) deep")

	out = env.mustRun(t, "stats")
	assert.Contains(t, out, "Today: 1m focus")
	assert.Contains(t, out, "quality: 100% Strong")
	assert.Contains(t, out, "highlight: Mathematics")
}

func TestTimerStopShortSessionDiscards(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "timer", "start", "--minutes", "5")
	env.clock.Advance(10 * time.Second)

	out := env.mustRun(t, "timer", "stop")
	assert.Contains(t, out, "reset")
	assert.Contains(t, out, "idle")

	out = env.mustRun(t, "stats")
	assert.Contains(t, out, "Today: 0h 00m focus")
}

func TestTimerStopWithRating(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "timer", "start", "--preset", "pomodoro")
	env.clock.Advance(10 * time.Minute)

	out := env.mustRun(t, "timer", "stop", "--rate", "balanced")
	assert.Contains(t, out, "saved 10m")
	assert.Contains(t, out, "idle")

	_, err := env.run(t, "timer", "stop", "--rate", "sleepy")
	assert.Error(t, err)
}

func TestTimerSetAndPresets(t *testing.T) {
	env := newEnv(t)
	out := env.mustRun(t, "timer", "set", "1h30m", "--label", "Deep block")
	assert.Contains(t, out, "1:30:00")
	assert.Contains(t, out, "Deep block")

	out = env.mustRun(t, "timer", "preset")
	assert.Contains(t, out, "Meditation")

	_, err := env.run(t, "timer", "set", "0s")
	assert.Error(t, err)
	_, err = env.run(t, "timer", "preset", "nap")
	assert.Error(t, err)
}

func TestStopwatchCommands(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "stopwatch", "start")
	env.clock.Advance(5 * time.Second)

	out := env.mustRun(t, "sw", "lap")
	assert.Contains(t, out, "lap 1  00:00:05")

	env.clock.Advance(2 * time.Second)
	out = env.mustRun(t, "stopwatch")
	assert.Contains(t, out, "00:00:07")
	assert.Contains(t, out, "lap 1")

	out = env.mustRun(t, "stopwatch", "reset")
	assert.Contains(t, out, "00:00:00")
	_, err := env.run(t, "stopwatch", "lap")
	assert.Error(t, err)
}

func TestSettings(t *testing.T) {
	env := newEnv(t)
	out := env.mustRun(t, "settings", "--goal", "8", "--auto-flow", "--break", "10")
	assert.Contains(t, out, "8h 00m")
	assert.Contains(t, out, "10m")
	assert.Regexp(t, `auto-flow\s+on`, out)

	out = env.mustRun(t, "settings", "--momentum")
	assert.Regexp(t, `momentum\s+on`, out)
	assert.Regexp(t, `auto-flow\s+off`, out)

	_, err := env.run(t, "settings", "--goal", "20")
	assert.Error(t, err)
}

func TestExportImportReset(t *testing.T) {
	env := newEnv(t)
	env.mustRun(t, "timer", "start", "--minutes", "2", "--task", "write report")
	env.clock.Advance(2 * time.Minute)
	env.mustRun(t, "status")

	out := env.mustRun(t, "export", "--format", "csv", "--out", env.dir)
	csvPath := strings.TrimSpace(out)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Date,Time,Subject,Task,Duration,Focus Quality\n"))

	out = env.mustRun(t, "export", "--out", env.dir)
	backup := strings.TrimSpace(out)
	assert.Equal(t, "blok_backup_Mar12_0902.json", filepath.Base(backup))

	_, err = env.run(t, "reset")
	assert.Error(t, err)
	env.mustRun(t, "reset", "--yes")
	out = env.mustRun(t, "stats")
	assert.Contains(t, out, "Today: 0h 00m focus")

	out = env.mustRun(t, "import", backup)
	assert.Contains(t, out, "1 session(s) added")
	out = env.mustRun(t, "status")
	assert.Contains(t, out, "Today: 0h 2m")

	_, err = env.run(t, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	env := newEnv(t)
	out := env.mustRun(t, "classify", "calculus", "aftermath")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Mathematics")
	assert.Contains(t, lines[1], "Uncategorized")
}

func TestConfigPrecedence(t *testing.T) {
	env := newEnv(t)
	require.NoError(t, os.WriteFile(env.cfg, []byte("grace-seconds = 30\n[goal]\nhours = 9\n"), 0o644))

	out := env.mustRun(t, "config", "show")
	assert.Regexp(t, `grace-seconds\s+30`, out)
	assert.Regexp(t, `goal.hours\s+9`, out)

	out = env.mustRun(t, "--grace-seconds", "10", "config", "show")
	assert.Regexp(t, `grace-seconds\s+10`, out)

	_, err := env.run(t, "--log-level", "shout", "status")
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	env := newEnv(t)
	env.cfg = filepath.Join(env.dir, "nested", "config.toml")
	out := env.mustRun(t, "config", "init")
	assert.Equal(t, env.cfg, strings.TrimSpace(out))
	data, err := os.ReadFile(env.cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[timer]")
}
