package config

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/holo/internal/config/loader"
	"github.com/dshills/holo/internal/config/watcher"
)

// Watcher reloads a configuration file when it changes and publishes each
// successfully loaded configuration on Updates. Load failures are published
// on Errors and leave the previous configuration in effect.
type Watcher struct {
	path   string
	fsys   loader.FileSystem
	logger *slog.Logger

	fw      *watcher.Watcher
	updates chan *Config
	errs    chan error

	closeOnce sync.Once
	done      chan struct{}
}

// WatchOption configures a Watcher.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
	fsys     loader.FileSystem
}

// WithReloadDebounce sets how long the file must be quiet before it is
// reloaded.
func WithReloadDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		o.debounce = d
	}
}

// WithFileSystem sets the file system configurations are read through.
func WithFileSystem(fsys loader.FileSystem) WatchOption {
	return func(o *watchOptions) {
		o.fsys = fsys
	}
}

// Watch starts watching path. The returned Watcher must be closed.
func Watch(path string, logger *slog.Logger, opts ...WatchOption) (*Watcher, error) {
	o := watchOptions{debounce: 200 * time.Millisecond, fsys: loader.DefaultFS()}
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Watcher{
		path:    path,
		fsys:    o.fsys,
		logger:  logger,
		updates: make(chan *Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}

	fw, err := watcher.New(
		watcher.WithDebounce(o.debounce),
		watcher.WithErrorHandler(func(err error) {
			w.logger.Warn("config watcher error", "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}
	fw.OnChange(w.handle)
	if err := fw.Watch(path); err != nil {
		fw.Close()
		return nil, err
	}
	w.fw = fw
	return w, nil
}

// Updates delivers reloaded configurations. Only the newest pending
// configuration is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload failures.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fw.Close()
	})
	return err
}

func (w *Watcher) handle(ev watcher.Event) {
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		w.logger.Info("config file removed, keeping current configuration", "path", ev.Path)
		return
	}

	cfg, err := LoadFS(w.fsys, w.path)
	if err != nil {
		w.logger.Warn("config reload failed", "path", w.path, "error", err)
		publish(w.errs, err, w.done)
		return
	}
	w.logger.Info("config reloaded", "path", w.path)
	publish(w.updates, cfg, w.done)
}

// publish replaces any unread value in ch with v.
func publish[T any](ch chan T, v T, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Next waits for the next reloaded configuration or ctx cancellation.
func (w *Watcher) Next(ctx context.Context) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case cfg := <-w.updates:
		return cfg, nil
	case err := <-w.errs:
		return nil, err
	}
}
