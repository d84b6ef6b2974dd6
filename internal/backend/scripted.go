package backend

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/protocol"
	"github.com/dshills/holo/internal/seat"
)

// DefaultOutput is the output a headless backend starts with.
var DefaultOutput = OutputChange{
	Name:     "HEADLESS-1",
	Geometry: geometry.Rect{W: 1920, H: 1080},
}

// Scripted is a backend that replays a fixed list of events. Deliveries go
// to a protocol.Journal, which tests inspect.
type Scripted struct {
	journal *protocol.Journal
	logger  *slog.Logger

	mu      sync.Mutex
	outputs []OutputChange
	script  []Event
	hold    bool
	scenes  []Scene
}

// ScriptedOption configures a Scripted backend.
type ScriptedOption func(*Scripted)

// WithOutputs sets the outputs announced before the script runs.
func WithOutputs(outputs ...OutputChange) ScriptedOption {
	return func(s *Scripted) {
		s.outputs = append([]OutputChange(nil), outputs...)
	}
}

// WithScript sets the events to replay.
func WithScript(events ...Event) ScriptedOption {
	return func(s *Scripted) {
		s.script = append(s.script, events...)
	}
}

// WithInputs appends input events to the script.
func WithInputs(events ...seat.Event) ScriptedOption {
	return func(s *Scripted) {
		for _, ev := range events {
			s.script = append(s.script, InputEvent(ev))
		}
	}
}

// WithHold keeps Run blocked after the script until ctx is done.
func WithHold(hold bool) ScriptedOption {
	return func(s *Scripted) {
		s.hold = hold
	}
}

// WithJournal sets the journal receiving deliveries.
func WithJournal(j *protocol.Journal) ScriptedOption {
	return func(s *Scripted) {
		s.journal = j
	}
}

// NewScripted creates a scripted backend. A nil logger discards output.
func NewScripted(logger *slog.Logger, opts ...ScriptedOption) *Scripted {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Scripted{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.journal == nil {
		s.journal = protocol.NewJournal(logger)
	}
	return s
}

// NewHeadless returns a scripted backend with DefaultOutput and no input
// that runs until its context is done.
func NewHeadless(logger *slog.Logger) *Scripted {
	return NewScripted(logger, WithOutputs(DefaultOutput), WithHold(true))
}

// Name implements Backend.
func (s *Scripted) Name() string { return "headless" }

// Keyboard implements Backend.
func (s *Scripted) Keyboard() protocol.Keyboard { return s.journal }

// Pointer implements Backend.
func (s *Scripted) Pointer() protocol.Pointer { return s.journal.Pointer() }

// Toplevel implements Backend.
func (s *Scripted) Toplevel(surface protocol.SurfaceID) protocol.Toplevel {
	return s.journal.Toplevel(surface)
}

// Journal returns the journal receiving deliveries.
func (s *Scripted) Journal() *protocol.Journal {
	return s.journal
}

// Run sends the outputs and the script. Without hold it returns nil once
// the script is sent.
func (s *Scripted) Run(ctx context.Context, events chan<- Event) error {
	s.mu.Lock()
	queue := make([]Event, 0, len(s.outputs)+len(s.script))
	for _, o := range s.outputs {
		queue = append(queue, OutputEvent(o))
	}
	queue = append(queue, s.script...)
	hold := s.hold
	s.mu.Unlock()

	for _, ev := range queue {
		select {
		case <-ctx.Done():
			return nil
		case events <- ev:
		}
	}
	s.logger.Debug("script finished", "events", len(queue))

	if hold {
		<-ctx.Done()
	}
	return nil
}

// Render records the scene.
func (s *Scripted) Render(scene Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scenes = append(s.scenes, scene)
}

// Scenes returns every rendered scene.
func (s *Scripted) Scenes() []Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Scene(nil), s.scenes...)
}

// Close implements Backend.
func (s *Scripted) Close() error { return nil }
