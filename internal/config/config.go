package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sujoyonweb/blok/internal/store"
)

const (
	defaultGraceSeconds   = 60
	defaultTickMS         = 100
	defaultTimerMinutes   = 25
	defaultBreakMinutes   = 5
	defaultGoalHours      = 6
	maxTimerMinutes       = 99*60 + 59
	minTickMS             = 10
	maxTickMS             = 1000
	minGoalHrs            = 1
	maxGoalHr             = 15
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved runtime configuration.
type Config struct {
	ConfigPath     string
	DBPath         string
	LogLevel       string
	LogPath        string
	GraceSeconds   int
	TickMS         int
	DictionaryPath string
	DefaultMinutes int
	BreakMinutes   int
	Momentum       bool
	AutoFlow       bool
	GoalHours      int
	Notifications  bool
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ConfigPath:     DefaultConfigPath(),
		DBPath:         DefaultDBPath(),
		LogLevel:       "info",
		LogPath:        DefaultLogPath(),
		GraceSeconds:   defaultGraceSeconds,
		TickMS:         defaultTickMS,
		DefaultMinutes: defaultTimerMinutes,
		BreakMinutes:   defaultBreakMinutes,
		GoalHours:      defaultGoalHours,
	}
}

// Resolve layers the file's set keys over the defaults.
func Resolve(fc FileConfig) Config {
	c := Default()
	setString(&c.DBPath, fc.DB)
	setString(&c.LogLevel, fc.LogLevel)
	setInt(&c.GraceSeconds, fc.GraceSeconds)
	setInt(&c.TickMS, fc.TickMS)
	setString(&c.DictionaryPath, fc.Dictionary)
	setInt(&c.DefaultMinutes, fc.Timer.DefaultMinutes)
	setInt(&c.BreakMinutes, fc.Timer.BreakMinutes)
	setBool(&c.Momentum, fc.Timer.Momentum)
	setBool(&c.AutoFlow, fc.Timer.AutoFlow)
	setInt(&c.GoalHours, fc.Goal.Hours)
	setBool(&c.Notifications, fc.Notify.Enabled)
	return c
}

func setString(dst, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks ranges. It does not touch the filesystem.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("%w: db path is empty", ErrInvalidConfig)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.GraceSeconds < 1 {
		return fmt.Errorf("%w: grace-seconds must be at least 1", ErrInvalidConfig)
	}
	if c.TickMS < minTickMS || c.TickMS > maxTickMS {
		return fmt.Errorf("%w: tick-ms must be between %d and %d", ErrInvalidConfig, minTickMS, maxTickMS)
	}
	if c.DefaultMinutes < 1 || c.DefaultMinutes > maxTimerMinutes {
		return fmt.Errorf("%w: timer.default-minutes must be between 1 and %d", ErrInvalidConfig, maxTimerMinutes)
	}
	if c.BreakMinutes < 1 || c.BreakMinutes > 60 {
		return fmt.Errorf("%w: timer.break-minutes must be between 1 and 60", ErrInvalidConfig)
	}
	if c.GoalHours < minGoalHrs || c.GoalHours > maxGoalHr {
		return fmt.Errorf("%w: goal.hours must be between %d and %d", ErrInvalidConfig, minGoalHrs, maxGoalHr)
	}
	return nil
}

func (c Config) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Seeds are the store values the config provides on first run. Values already
// in the store win, so toggles changed at runtime survive restarts.
func (c Config) Seeds() map[string]any {
	momentum := c.Momentum && !c.AutoFlow
	return map[string]any{
		store.KeyDailyGoal:     int64(c.GoalHours) * 3600,
		store.KeyBreakPref:     int64(c.BreakMinutes),
		store.KeyMomentumMode:  momentum,
		store.KeyAutoFlow:      c.AutoFlow,
		store.KeyNotifications: c.Notifications,
	}
}

// DefaultTemplate is written by `blok config create`.
func DefaultTemplate() string {
	return fmt.Sprintf(`# blok configuration
# Uncomment a value to enable it. CLI flags override config values.
# Timer toggles and the goal seed the database on first run; after that
# change them from the settings view.

# db = %q
# log-level = "info"        # debug, info, warn, error
# grace-seconds = %d        # shortest session worth recording
# tick-ms = %d
# dictionary = ""           # optional YAML classification dictionary

[timer]
# default-minutes = %d
# break-minutes = %d        # auto-flow break length
# momentum = false
# auto-flow = false

[goal]
# hours = %d

[notify]
# enabled = false
`, DefaultDBPath(), defaultGraceSeconds, defaultTickMS, defaultTimerMinutes, defaultBreakMinutes, defaultGoalHours)
}
