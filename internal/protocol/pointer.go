package protocol

import (
	"fmt"
	"strings"

	"github.com/dshills/holo/internal/geometry"
)

// ButtonState is the transition of a pointer button.
type ButtonState uint8

const (
	// ButtonReleased indicates the button went up.
	ButtonReleased ButtonState = iota
	// ButtonPressed indicates the button went down.
	ButtonPressed
)

// String returns "pressed" or "released".
func (s ButtonState) String() string {
	if s == ButtonPressed {
		return "pressed"
	}
	return "released"
}

// Linux input button codes.
const (
	BtnLeft   uint32 = 0x110
	BtnRight  uint32 = 0x111
	BtnMiddle uint32 = 0x112
)

// Axis is a scroll axis.
type Axis uint8

const (
	// Horizontal scroll axis.
	Horizontal Axis = iota
	// Vertical scroll axis.
	Vertical
)

// Axes lists both axes in delivery order.
var Axes = [2]Axis{Horizontal, Vertical}

// String returns the axis name.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// AxisSource describes the device that produced a scroll.
type AxisSource uint8

const (
	// SourceWheel is a mouse wheel with discrete steps.
	SourceWheel AxisSource = iota
	// SourceFinger is a touchpad. Finger scrolls end with an explicit stop.
	SourceFinger
	// SourceContinuous is a continuous device without a natural stop.
	SourceContinuous
	// SourceWheelTilt is a sideways tilt of a mouse wheel.
	SourceWheelTilt
)

// String returns the source name.
func (s AxisSource) String() string {
	switch s {
	case SourceWheel:
		return "wheel"
	case SourceFinger:
		return "finger"
	case SourceContinuous:
		return "continuous"
	case SourceWheelTilt:
		return "wheel-tilt"
	}
	return fmt.Sprintf("AxisSource(%d)", uint8(s))
}

// MotionEvent is a pointer motion in global coordinates.
type MotionEvent struct {
	Location geometry.Point
	Serial   Serial
	Time     uint32
}

// ButtonEvent is a pointer button transition.
type ButtonEvent struct {
	Button uint32
	State  ButtonState
	Serial Serial
	Time   uint32
}

// AxisFrame groups the scroll information of one logical scroll event.
//
// Frames are built with the With methods, each of which returns a modified
// copy.
type AxisFrame struct {
	Time        uint32
	Source      AxisSource
	HasSource   bool
	Value       [2]float64
	HasValue    [2]bool
	Discrete    [2]int32
	HasDiscrete [2]bool
	Stop        [2]bool
}

// NewAxisFrame starts an empty frame.
func NewAxisFrame(time uint32) AxisFrame {
	return AxisFrame{Time: time}
}

// WithSource sets the frame's axis source.
func (f AxisFrame) WithSource(s AxisSource) AxisFrame {
	f.Source = s
	f.HasSource = true
	return f
}

// WithValue sets the scroll amount on an axis.
func (f AxisFrame) WithValue(a Axis, v float64) AxisFrame {
	f.Value[a] = v
	f.HasValue[a] = true
	return f
}

// WithDiscrete sets the discrete step count on an axis.
func (f AxisFrame) WithDiscrete(a Axis, steps int32) AxisFrame {
	f.Discrete[a] = steps
	f.HasDiscrete[a] = true
	return f
}

// WithStop marks the end of scrolling on an axis.
func (f AxisFrame) WithStop(a Axis) AxisFrame {
	f.Stop[a] = true
	return f
}

// IsEmpty reports whether the frame carries no value, step or stop.
func (f AxisFrame) IsEmpty() bool {
	for _, a := range Axes {
		if f.HasValue[a] || f.HasDiscrete[a] || f.Stop[a] {
			return false
		}
	}
	return true
}

// String returns a compact description such as "wheel v=3.00/1".
func (f AxisFrame) String() string {
	var parts []string
	if f.HasSource {
		parts = append(parts, f.Source.String())
	}
	for _, a := range Axes {
		name := a.String()[:1]
		switch {
		case f.HasValue[a] && f.HasDiscrete[a]:
			parts = append(parts, fmt.Sprintf("%s=%.2f/%d", name, f.Value[a], f.Discrete[a]))
		case f.HasValue[a]:
			parts = append(parts, fmt.Sprintf("%s=%.2f", name, f.Value[a]))
		case f.Stop[a]:
			parts = append(parts, name+"=stop")
		}
	}
	return strings.Join(parts, " ")
}
