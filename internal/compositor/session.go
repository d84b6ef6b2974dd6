// Package compositor owns the running session: the seat and its router, the
// action dispatcher, the workspace set, the process supervisor and the
// backend feeding them.
//
// A Session runs a single event loop. Input events, output changes and
// configuration reloads are applied one at a time on that loop; only the
// backend's device reader and the supervisor's reaper run elsewhere.
package compositor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/dshills/holo/internal/backend"
	"github.com/dshills/holo/internal/config"
	"github.com/dshills/holo/internal/dispatcher"
	"github.com/dshills/holo/internal/logging"
	"github.com/dshills/holo/internal/process"
	"github.com/dshills/holo/internal/protocol"
	"github.com/dshills/holo/internal/seat"
	"github.com/dshills/holo/internal/workspace"
)

// SeatName is the name of the only seat.
const SeatName = "seat0"

// Session is one compositor run.
type Session struct {
	cfg     *config.Config
	logger  *slog.Logger
	backend backend.Backend

	seat       *seat.Seat
	router     *seat.Router
	dispatcher *dispatcher.Dispatcher
	workspaces *workspace.Set
	supervisor *process.Supervisor
	serials    *protocol.SerialCounter

	reload <-chan *config.Config

	running     atomic.Bool
	quit        atomic.Bool
	nextSurface protocol.SurfaceID
	status      string
}

// Option configures a Session.
type Option func(*Session)

// WithReload sets the channel of reloaded configurations.
func WithReload(ch <-chan *config.Config) Option {
	return func(s *Session) {
		s.reload = ch
	}
}

// WithSupervisor replaces the default process supervisor. The session's
// exit logging is only installed on the default supervisor.
func WithSupervisor(sup *process.Supervisor) Option {
	return func(s *Session) {
		s.supervisor = sup
	}
}

// New assembles a session on top of b. A nil logger discards output.
func New(cfg *config.Config, b backend.Backend, logger *slog.Logger, opts ...Option) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Session{
		cfg:         cfg,
		logger:      logger,
		backend:     b,
		serials:     protocol.NewSerialCounter(),
		nextSurface: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	st, err := seat.New(SeatName, b.Keyboard(), b.Pointer())
	if err != nil {
		return nil, &InitError{Component: "seat", Err: err}
	}
	s.seat = st

	table, err := cfg.Keymap()
	if err != nil {
		return nil, &InitError{Component: "keymap", Err: err}
	}

	s.workspaces, err = workspace.NewSet(cfg.Workspaces, cfg.Gaps)
	if err != nil {
		return nil, &InitError{Component: "workspace", Err: err}
	}

	if s.supervisor == nil {
		s.supervisor = process.NewSupervisor(process.WithProcessExitCallback(s.processExited))
	}

	s.dispatcher = dispatcher.New(
		s.workspaces,
		s.supervisor,
		s,
		logging.WithComponent(logger, "dispatcher"),
		dispatcher.DefaultConfig().WithGaps(cfg.Gaps).WithMetrics(),
	)
	s.router = seat.NewRouter(st, s.workspaces, s.dispatcher, table, s.serials, logging.WithComponent(logger, "seat"))
	s.dispatcher.SetLocator(s.router)

	for i := 0; i < cfg.TTY.DemoWindows; i++ {
		s.MapWindow(fmt.Sprintf("demo %d", i+1))
	}

	logger.Info("session ready",
		"backend", b.Name(),
		"workspaces", cfg.Workspaces,
		"bindings", table.Len(),
		"config", cfg.Path(),
	)
	return s, nil
}

// Stop asks the loop to exit before the next event.
func (s *Session) Stop() {
	s.quit.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Session) Stopped() bool {
	return s.quit.Load()
}

// Config returns the configuration in effect.
func (s *Session) Config() *config.Config { return s.cfg }

// Router returns the seat's input router.
func (s *Session) Router() *seat.Router { return s.router }

// Dispatcher returns the action dispatcher.
func (s *Session) Dispatcher() *dispatcher.Dispatcher { return s.dispatcher }

// Workspaces returns the workspace set.
func (s *Session) Workspaces() *workspace.Set { return s.workspaces }

// Supervisor returns the process supervisor.
func (s *Session) Supervisor() *process.Supervisor { return s.supervisor }

// MapWindow creates a window for a new surface on the current workspace.
func (s *Session) MapWindow(title string) *workspace.Window {
	id := s.nextSurface
	s.nextSurface++
	w := workspace.NewWindow(id, title, s.backend.Toplevel(id))
	s.workspaces.Map(w)
	s.logger.Debug("window mapped", "surface", id, "title", title, "workspace", s.workspaces.ActiveID())
	return w
}

// Run processes backend events until Stop is called, ctx is done or the
// backend runs out of input. It returns ErrQuit after Stop or
// cancellation and nil when the backend finishes on its own.
func (s *Session) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	events := make(chan backend.Event, 64)
	errc := make(chan error, 1)
	go func() {
		err := s.backend.Run(ctx, events)
		close(events)
		errc <- err
	}()
	defer func() {
		cancel()
		for range events {
		}
	}()

	s.render()
	for {
		if s.quit.Load() {
			s.logger.Info("session stopping")
			return ErrQuit
		}

		select {
		case <-ctx.Done():
			s.Stop()

		case cfg, ok := <-s.reload:
			if !ok {
				s.reload = nil
				continue
			}
			if err := s.ApplyConfig(cfg); err != nil {
				s.logger.Warn("config not applied", "error", err)
			}
			s.render()

		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					s.Stop()
					continue
				}
				if err := <-errc; err != nil {
					return &OperationError{Op: "backend", Target: s.backend.Name(), Err: err}
				}
				s.logger.Info("backend finished", "backend", s.backend.Name())
				return nil
			}
			s.HandleEvent(ev)
			s.render()
		}
	}
}

// HandleEvent applies one backend event. Action failures are logged and do
// not stop the session.
func (s *Session) HandleEvent(ev backend.Event) {
	switch {
	case ev.Output != nil:
		s.applyOutput(*ev.Output)
	case ev.Input != nil:
		if err := s.router.Process(ev.Input); err != nil {
			s.logger.Warn("action failed", "error", err)
			s.status = err.Error()
		}
	}
}

func (s *Session) applyOutput(c backend.OutputChange) {
	if c.Removed {
		if s.workspaces.RemoveOutput(c.Name) {
			s.logger.Info("output removed", "output", c.Name)
		}
		return
	}
	s.workspaces.SetOutputGeometry(c.Name, c.Geometry)
	s.logger.Info("output configured", "output", c.Name, "geometry", c.Geometry.String())
}

// ApplyConfig swaps in a reloaded configuration. The keybinding table is
// replaced wholesale and the gap size is applied to every workspace. The
// workspace count is fixed for the life of the session.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	table, err := cfg.Keymap()
	if err != nil {
		return &OperationError{Op: "reload", Target: cfg.Path(), Err: err}
	}
	if cfg.Workspaces != s.workspaces.Count() {
		s.logger.Warn("workspace count change needs a restart",
			"current", s.workspaces.Count(), "configured", cfg.Workspaces)
	}

	s.router.SetTable(table)
	s.dispatcher.SetGaps(cfg.Gaps)
	s.workspaces.SetGaps(cfg.Gaps)
	s.cfg = cfg
	s.status = "config reloaded"
	s.logger.Info("config applied", "bindings", table.Len(), "gaps", cfg.Gaps)
	return nil
}

// processExited runs on the supervisor's reaper goroutine.
func (s *Session) processExited(p *process.Process) {
	if code := p.ExitCode(); code != 0 {
		s.logger.Error("spawned command failed",
			"command", p.Command,
			"id", p.ID,
			"exit_code", code,
			"error", p.ExitError(),
		)
		return
	}
	s.logger.Debug("spawned command exited", "command", p.Command, "id", p.ID, "runtime", p.Runtime())
}

// Scene returns the state drawn by renderers.
func (s *Session) Scene() backend.Scene {
	ws := s.workspaces.Current()
	windows := make([]backend.WindowView, 0, ws.Len())
	for _, w := range ws.Windows() {
		windows = append(windows, backend.WindowView{
			Surface:  w.Surface(),
			Title:    w.Title(),
			Geometry: w.Geometry(),
		})
	}
	return backend.Scene{
		ActiveWorkspace: s.workspaces.ActiveID(),
		Workspaces:      s.workspaces.Count(),
		Outputs:         s.workspaces.OutputGeometries(),
		Windows:         windows,
		Pointer:         s.router.PointerLocation(),
		Focus:           s.seat.Keyboard().Focus(),
		Status:          s.status,
	}
}

func (s *Session) render() {
	if r, ok := s.backend.(backend.Renderer); ok {
		r.Render(s.Scene())
	}
}

// Close stops accepting spawn requests and releases the backend. Spawned
// children keep running.
func (s *Session) Close() error {
	s.supervisor.Shutdown()
	if m := s.dispatcher.Metrics(); m != nil {
		s.logger.Info("dispatch summary",
			"actions", m.TotalDispatches(),
			"errors", m.TotalErrors(),
			"avg", m.AverageDuration(),
		)
	}
	return s.backend.Close()
}
