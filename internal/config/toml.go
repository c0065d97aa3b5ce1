package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Unset keys stay nil.
type FileConfig struct {
	DB           *string      `toml:"db"`
	LogLevel     *string      `toml:"log-level"`
	GraceSeconds *int         `toml:"grace-seconds"`
	TickMS       *int         `toml:"tick-ms"`
	Dictionary   *string      `toml:"dictionary"`
	Timer        TimerConfig  `toml:"timer"`
	Goal         GoalConfig   `toml:"goal"`
	Notify       NotifyConfig `toml:"notify"`
}

// TimerConfig maps countdown defaults.
type TimerConfig struct {
	DefaultMinutes *int  `toml:"default-minutes"`
	BreakMinutes   *int  `toml:"break-minutes"`
	Momentum       *bool `toml:"momentum"`
	AutoFlow       *bool `toml:"auto-flow"`
}

type GoalConfig struct {
	Hours *int `toml:"hours"`
}

type NotifyConfig struct {
	Enabled *bool `toml:"enabled"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
