package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// overrides holds settings that can be replaced from the environment.
type overrides struct {
	LogLevel   string `env:"HOLO_LOG_LEVEL"`
	LogFormat  string `env:"HOLO_LOG_FORMAT"`
	LogFile    string `env:"HOLO_LOG_FILE"`
	Gaps       int    `env:"HOLO_GAPS"`
	Workspaces int    `env:"HOLO_WORKSPACES"`
	Terminal   string `env:"HOLO_TERMINAL"`
}

// ApplyEnv overrides cfg with HOLO_* environment variables. Unset variables
// leave the current value.
func ApplyEnv(cfg *Config) error {
	o := overrides{
		LogLevel:   cfg.Log.Level,
		LogFormat:  cfg.Log.Format,
		LogFile:    cfg.Log.File,
		Gaps:       cfg.Gaps,
		Workspaces: cfg.Workspaces,
		Terminal:   cfg.Terminal,
	}
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	cfg.Log.Level = o.LogLevel
	cfg.Log.Format = o.LogFormat
	cfg.Log.File = o.LogFile
	cfg.Gaps = o.Gaps
	cfg.Workspaces = o.Workspaces
	cfg.Terminal = o.Terminal
	return nil
}
