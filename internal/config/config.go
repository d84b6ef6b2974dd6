package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/holo/internal/config/loader"
	"github.com/dshills/holo/internal/input/keymap"
)

// Default values.
const (
	DefaultGaps       = 10
	DefaultWorkspaces = 9
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"

	// MaxWorkspaces bounds the workspace count.
	MaxWorkspaces = 32
)

// Config is the compositor configuration.
type Config struct {
	// Gaps is the spacing in pixels around tiled windows.
	Gaps int `toml:"gaps" yaml:"gaps"`

	// Workspaces is the number of workspaces.
	Workspaces int `toml:"workspaces" yaml:"workspaces"`

	// Terminal is the command for the default spawn binding.
	Terminal string `toml:"terminal" yaml:"terminal"`

	Log LogConfig `toml:"log" yaml:"log"`
	TTY TTYConfig `toml:"tty" yaml:"tty"`

	// Keybindings replaces the built-in bindings when non-empty.
	Keybindings []KeybindingConfig `toml:"keybindings" yaml:"keybindings"`

	// path is the file the configuration was loaded from, if any.
	path string
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	File   string `toml:"file" yaml:"file"`
}

// TTYConfig configures the terminal backend.
type TTYConfig struct {
	// CellWidth and CellHeight are the pixel size of one terminal cell.
	CellWidth  int `toml:"cell_width" yaml:"cell_width"`
	CellHeight int `toml:"cell_height" yaml:"cell_height"`

	// DemoWindows is the number of placeholder windows mapped at startup.
	DemoWindows int `toml:"demo_windows" yaml:"demo_windows"`
}

// KeybindingConfig is one configured keybinding.
type KeybindingConfig struct {
	Keys      string `toml:"keys" yaml:"keys"`
	Action    string `toml:"action" yaml:"action"`
	Workspace int    `toml:"workspace,omitempty" yaml:"workspace,omitempty"`
	Command   string `toml:"command,omitempty" yaml:"command,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Gaps:       DefaultGaps,
		Workspaces: DefaultWorkspaces,
		Terminal:   keymap.DefaultTerminal,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		TTY: TTYConfig{
			CellWidth:  DefaultCellWidth,
			CellHeight: DefaultCellHeight,
		},
	}
}

// Path returns the file the configuration was loaded from, or "" when
// built-in defaults were used.
func (c *Config) Path() string {
	return c.path
}

// DefaultPath returns $XDG_CONFIG_HOME/holo/config.toml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	return filepath.Join(defaultUserConfigDir(), "config.toml")
}

func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "holo")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "holo")
}

// Load reads the configuration at path over the defaults, applies
// environment overrides and validates the result. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading through fsys.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		found, err := loader.LoadFile(fsys, path, cfg)
		if err != nil {
			return nil, err
		}
		if found {
			cfg.path = path
		}
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration, including every keybinding.
func (c *Config) Validate() error {
	if c.Gaps < 0 {
		return &ValidationError{Path: "gaps", Message: "must not be negative", Value: c.Gaps}
	}
	if c.Workspaces < 1 || c.Workspaces > MaxWorkspaces {
		return &ValidationError{
			Path:    "workspaces",
			Message: fmt.Sprintf("must be between 1 and %d", MaxWorkspaces),
			Value:   c.Workspaces,
		}
	}
	if c.TTY.CellWidth < 1 || c.TTY.CellHeight < 1 {
		return &ValidationError{
			Path:    "tty",
			Message: "cell size must be positive",
			Value:   fmt.Sprintf("%dx%d", c.TTY.CellWidth, c.TTY.CellHeight),
		}
	}
	if c.TTY.DemoWindows < 0 {
		return &ValidationError{Path: "tty.demo_windows", Message: "must not be negative", Value: c.TTY.DemoWindows}
	}

	for i, kb := range c.Keybindings {
		if _, err := kb.binding(c.Workspaces); err != nil {
			return &ValidationError{
				Path:    fmt.Sprintf("keybindings[%d]", i),
				Message: err.Error(),
				Value:   kb.Keys,
				Err:     err,
			}
		}
	}
	return nil
}
