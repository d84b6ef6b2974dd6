// Package main is the entry point for the holo compositor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/holo/internal/backend"
	"github.com/dshills/holo/internal/backend/tty"
	"github.com/dshills/holo/internal/compositor"
	"github.com/dshills/holo/internal/config"
	"github.com/dshills/holo/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	Backend    string
	LogLevel   string
	LogFile    string
	NoReload   bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	if opts.ConfigPath == "" {
		opts.ConfigPath = config.DefaultPath()
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFile != "" {
		cfg.Log.File = opts.LogFile
	}

	// The tty backend owns the terminal, so logs go to a file there.
	logFile := cfg.Log.File
	if logFile == "" && opts.Backend == "tty" {
		logFile = logging.DefaultFile()
	}
	var out io.Writer = os.Stderr
	if logFile != "" {
		f, err := logging.OpenFile(logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: out})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("starting", "version", version, "commit", commit, "config", cfg.Path())

	b, err := newBackend(opts.Backend, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create backend: %v\n", err)
		return 1
	}

	var sessionOpts []compositor.Option
	if !opts.NoReload {
		if w := watchConfig(opts.ConfigPath, logger); w != nil {
			defer w.Close()
			sessionOpts = append(sessionOpts, compositor.WithReload(w.Updates()))
		}
	}

	session, err := compositor.New(cfg, b, logger, sessionOpts...)
	if err != nil {
		b.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer session.Close()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Run(ctx); err != nil {
		if errors.Is(err, compositor.ErrQuit) {
			return 0
		}
		logger.Error("session failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newBackend(name string, cfg *config.Config, logger *slog.Logger) (backend.Backend, error) {
	switch name {
	case "tty":
		return tty.New(logging.WithComponent(logger, "tty"),
			tty.WithCellSize(cfg.TTY.CellWidth, cfg.TTY.CellHeight),
		)
	case "headless":
		return backend.NewHeadless(logging.WithComponent(logger, "headless")), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// watchConfig starts live reload. A watcher that cannot start only
// disables reload.
func watchConfig(path string, logger *slog.Logger) *config.Watcher {
	w, err := config.Watch(path, logging.WithComponent(logger, "config"))
	if err != nil {
		logger.Warn("config reload disabled", "path", path, "error", err)
		return nil
	}
	return w
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.Backend, "backend", "tty", "Backend (tty, headless)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.NoReload, "no-reload", false, "Disable config reload")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "holo - tiling compositor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: holo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  holo                        Run nested in this terminal\n")
		fmt.Fprintf(os.Stderr, "  holo -c ~/holo.lua          Use a Lua config\n")
		fmt.Fprintf(os.Stderr, "  holo -backend headless      Run without a display\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("holo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.LogLevel); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	return opts
}
