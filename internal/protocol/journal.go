package protocol

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/dshills/holo/internal/geometry"
	"github.com/dshills/holo/internal/input/key"
)

// DeliveryKind identifies what a Delivery carried.
type DeliveryKind uint8

const (
	DeliverKey DeliveryKind = iota + 1
	DeliverKeyboardEnter
	DeliverKeyboardLeave
	DeliverPointerEnter
	DeliverPointerLeave
	DeliverMotion
	DeliverButton
	DeliverAxis
	DeliverClose
)

var deliveryNames = map[DeliveryKind]string{
	DeliverKey:           "key",
	DeliverKeyboardEnter: "keyboard.enter",
	DeliverKeyboardLeave: "keyboard.leave",
	DeliverPointerEnter:  "pointer.enter",
	DeliverPointerLeave:  "pointer.leave",
	DeliverMotion:        "pointer.motion",
	DeliverButton:        "pointer.button",
	DeliverAxis:          "pointer.axis",
	DeliverClose:         "toplevel.close",
}

// String returns the delivery name.
func (k DeliveryKind) String() string {
	if s, ok := deliveryNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DeliveryKind(%d)", uint8(k))
}

// Delivery is one event sent to a client surface.
// Only the fields relevant to Kind are set.
type Delivery struct {
	Kind    DeliveryKind
	Surface SurfaceID
	Serial  Serial
	Time    uint32

	Code     key.Keycode
	KeyState key.State

	// Location is global, Local is relative to the surface origin.
	Location geometry.Point
	Local    geometry.Point

	Button      uint32
	ButtonState ButtonState

	Frame AxisFrame
}

// String returns a one-line description for logs and status displays.
func (d Delivery) String() string {
	switch d.Kind {
	case DeliverKey:
		return fmt.Sprintf("%s surface=%d code=%d %s", d.Kind, d.Surface, d.Code, d.KeyState)
	case DeliverMotion:
		return fmt.Sprintf("%s surface=%d at=%s", d.Kind, d.Surface, d.Local)
	case DeliverButton:
		return fmt.Sprintf("%s surface=%d button=%#x %s", d.Kind, d.Surface, d.Button, d.ButtonState)
	case DeliverAxis:
		return fmt.Sprintf("%s surface=%d %s", d.Kind, d.Surface, d.Frame)
	default:
		return fmt.Sprintf("%s surface=%d", d.Kind, d.Surface)
	}
}

// DefaultJournalLimit is the number of deliveries a Journal retains.
const DefaultJournalLimit = 1024

// Journal is an in-process keyboard and pointer.
//
// It tracks keyboard state with a key.Tracker, keeps keyboard and pointer
// focus, and records every delivery. Events for which no surface has focus
// are dropped and not recorded.
type Journal struct {
	mu sync.Mutex

	tracker *key.Tracker
	logger  *slog.Logger

	keyboardFocus SurfaceID
	pointerFocus  SurfaceID
	pointerOrigin geometry.Point

	deliveries []Delivery
	limit      int
	observers  []func(Delivery)
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithJournalLimit sets the number of retained deliveries.
func WithJournalLimit(n int) JournalOption {
	return func(j *Journal) {
		if n > 0 {
			j.limit = n
		}
	}
}

// WithObserver registers fn to be called after each delivery.
func WithObserver(fn func(Delivery)) JournalOption {
	return func(j *Journal) {
		j.observers = append(j.observers, fn)
	}
}

// NewJournal creates a journal with no focus.
func NewJournal(logger *slog.Logger, opts ...JournalOption) *Journal {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	j := &Journal{
		tracker: key.NewTracker(),
		logger:  logger,
		limit:   DefaultJournalLimit,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Update implements Keyboard.
func (j *Journal) Update(code key.Keycode, state key.State) (key.Modifier, []key.Sym) {
	return j.tracker.Update(code, state)
}

// Modifiers returns the current keyboard modifier state.
func (j *Journal) Modifiers() key.Modifier {
	return j.tracker.Modifiers()
}

// Forward implements Keyboard.
func (j *Journal) Forward(code key.Keycode, state key.State, serial Serial, time uint32) {
	j.mu.Lock()
	focus := j.keyboardFocus
	j.mu.Unlock()

	if focus == NoSurface {
		return
	}
	j.record(Delivery{
		Kind:     DeliverKey,
		Surface:  focus,
		Serial:   serial,
		Time:     time,
		Code:     code,
		KeyState: state,
	})
}

// SetFocus implements Keyboard.
func (j *Journal) SetFocus(surface SurfaceID, serial Serial) {
	j.mu.Lock()
	prev := j.keyboardFocus
	j.keyboardFocus = surface
	j.mu.Unlock()

	if prev == surface {
		return
	}
	if prev != NoSurface {
		j.record(Delivery{Kind: DeliverKeyboardLeave, Surface: prev, Serial: serial})
	}
	if surface != NoSurface {
		j.record(Delivery{Kind: DeliverKeyboardEnter, Surface: surface, Serial: serial})
	}
}

// Focus implements Keyboard.
func (j *Journal) Focus() SurfaceID {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.keyboardFocus
}

// Pointer returns the journal's pointer handle.
func (j *Journal) Pointer() Pointer {
	return journalPointer{j}
}

// Toplevel returns a toplevel handle for surface whose close requests are
// recorded in the journal.
func (j *Journal) Toplevel(surface SurfaceID) Toplevel {
	return journalToplevel{j: j, surface: surface}
}

// Deliveries returns a copy of the retained deliveries, oldest first.
func (j *Journal) Deliveries() []Delivery {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Delivery, len(j.deliveries))
	copy(out, j.deliveries)
	return out
}

// Last returns the most recent delivery.
func (j *Journal) Last() (Delivery, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.deliveries) == 0 {
		return Delivery{}, false
	}
	return j.deliveries[len(j.deliveries)-1], true
}

// Reset clears recorded deliveries, focus and keyboard state.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.deliveries = nil
	j.keyboardFocus = NoSurface
	j.pointerFocus = NoSurface
	j.pointerOrigin = geometry.Point{}
	j.mu.Unlock()
	j.tracker.Reset()
}

func (j *Journal) record(d Delivery) {
	j.mu.Lock()
	j.deliveries = append(j.deliveries, d)
	if over := len(j.deliveries) - j.limit; over > 0 {
		j.deliveries = append(j.deliveries[:0], j.deliveries[over:]...)
	}
	observers := j.observers
	j.mu.Unlock()

	j.logger.Debug("delivery",
		"kind", d.Kind.String(),
		"surface", uint64(d.Surface),
		"serial", uint32(d.Serial),
	)
	for _, fn := range observers {
		fn(d)
	}
}

func (j *Journal) motion(under *Target, ev MotionEvent) {
	j.mu.Lock()
	prev := j.pointerFocus
	next := NoSurface
	if under != nil {
		next = under.Surface
		j.pointerOrigin = under.Origin
	}
	j.pointerFocus = next
	origin := j.pointerOrigin
	j.mu.Unlock()

	if prev != next {
		if prev != NoSurface {
			j.record(Delivery{Kind: DeliverPointerLeave, Surface: prev, Serial: ev.Serial, Time: ev.Time})
		}
		if next != NoSurface {
			j.record(Delivery{
				Kind:     DeliverPointerEnter,
				Surface:  next,
				Serial:   ev.Serial,
				Time:     ev.Time,
				Location: ev.Location,
				Local:    ev.Location.Sub(origin),
			})
		}
	}
	if next == NoSurface {
		return
	}
	j.record(Delivery{
		Kind:     DeliverMotion,
		Surface:  next,
		Serial:   ev.Serial,
		Time:     ev.Time,
		Location: ev.Location,
		Local:    ev.Location.Sub(origin),
	})
}

func (j *Journal) pointerFocused() SurfaceID {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.pointerFocus
}

type journalPointer struct {
	j *Journal
}

func (p journalPointer) Motion(under *Target, ev MotionEvent) {
	p.j.motion(under, ev)
}

func (p journalPointer) Button(ev ButtonEvent) {
	focus := p.j.pointerFocused()
	if focus == NoSurface {
		return
	}
	p.j.record(Delivery{
		Kind:        DeliverButton,
		Surface:     focus,
		Serial:      ev.Serial,
		Time:        ev.Time,
		Button:      ev.Button,
		ButtonState: ev.State,
	})
}

func (p journalPointer) Axis(frame AxisFrame) {
	focus := p.j.pointerFocused()
	if focus == NoSurface || frame.IsEmpty() {
		return
	}
	p.j.record(Delivery{
		Kind:    DeliverAxis,
		Surface: focus,
		Time:    frame.Time,
		Frame:   frame,
	})
}

func (p journalPointer) Focus() SurfaceID {
	return p.j.pointerFocused()
}

type journalToplevel struct {
	j       *Journal
	surface SurfaceID
}

func (t journalToplevel) SendClose() {
	t.j.record(Delivery{Kind: DeliverClose, Surface: t.surface})
}
