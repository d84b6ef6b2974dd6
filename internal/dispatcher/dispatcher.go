// Package dispatcher executes bound actions against the compositor.
package dispatcher

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dshills/holo/internal/action"
	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/workspace"
)

// Workspaces is the part of the workspace model the dispatcher drives.
type Workspaces interface {
	WindowUnder(p geometry.Point) (*workspace.Window, geometry.Point, bool)
	Activate(id int) error
	MoveWindowToWorkspace(w *workspace.Window, id, gaps int) error
}

// Spawner launches detached shell commands.
type Spawner interface {
	Spawn(command string) error
}

// LoopSignal stops the event loop after the current iteration.
type LoopSignal interface {
	Stop()
}

// Locator reports the current pointer location.
type Locator interface {
	PointerLocation() geometry.Point
}

// Dispatcher executes actions.
type Dispatcher struct {
	workspaces Workspaces
	spawner    Spawner
	loop       LoopSignal
	locator    Locator

	config  Config
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a dispatcher. A nil logger discards output.
func New(ws Workspaces, spawner Spawner, loop LoopSignal, logger *slog.Logger, config Config) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		workspaces: ws,
		spawner:    spawner,
		loop:       loop,
		config:     config,
		logger:     logger,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// SetLocator sets the source of the pointer location.
func (d *Dispatcher) SetLocator(l Locator) {
	d.locator = l
}

// SetGaps changes the gap used for window moves.
func (d *Dispatcher) SetGaps(gaps int) {
	d.config = d.config.WithGaps(gaps)
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Metrics returns the metrics collector, or nil if disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Dispatch executes a.
//
// Debug and ToggleWindowFloating panic with *UnimplementedError.
func (d *Dispatcher) Dispatch(a action.Action) error {
	start := time.Now()
	err := d.dispatch(a)
	if d.metrics != nil {
		d.metrics.RecordDispatch(a.Kind, time.Since(start), err)
	}
	if err != nil {
		return &ActionError{Action: a, Err: err}
	}
	return nil
}

func (d *Dispatcher) dispatch(a action.Action) error {
	d.logger.Debug("dispatch", "action", a.String())

	switch a.Kind {
	case action.Quit:
		d.loop.Stop()
		return nil

	case action.Debug, action.ToggleWindowFloating:
		panic(&UnimplementedError{Action: a})

	case action.Close:
		if w, ok := d.windowUnderPointer(); ok {
			w.SendClose()
		}
		return nil

	case action.Workspace:
		return d.workspaces.Activate(a.Workspace)

	case action.MoveWindowToWorkspace:
		return d.moveWindow(a.Workspace)

	case action.MoveWindowAndSwitchToWorkspace:
		if err := d.moveWindow(a.Workspace); err != nil {
			return err
		}
		return d.workspaces.Activate(a.Workspace)

	case action.Spawn:
		d.spawn(a.Command)
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrInvalidAction, a.Kind)
	}
}

func (d *Dispatcher) pointer() geometry.Point {
	if d.locator == nil {
		return geometry.Point{}
	}
	return d.locator.PointerLocation()
}

func (d *Dispatcher) windowUnderPointer() (*workspace.Window, bool) {
	w, _, ok := d.workspaces.WindowUnder(d.pointer())
	return w, ok
}

func (d *Dispatcher) moveWindow(id int) error {
	w, ok := d.windowUnderPointer()
	if !ok {
		return nil
	}
	return d.workspaces.MoveWindowToWorkspace(w, id, d.config.Gaps)
}

func (d *Dispatcher) spawn(command string) {
	if err := d.spawner.Spawn(command); err != nil {
		d.logger.Error("failed to spawn", "command", command, "error", err)
	}
}
