package protocol

import "sync/atomic"

// Serial orders input events as seen by clients.
type Serial uint32

// SerialCounter hands out strictly increasing serials starting at 1.
// It is safe for concurrent use.
type SerialCounter struct {
	last atomic.Uint32
}

// NewSerialCounter creates a counter whose first serial is 1.
func NewSerialCounter() *SerialCounter {
	return &SerialCounter{}
}

// Next returns a fresh serial.
func (c *SerialCounter) Next() Serial {
	return Serial(c.last.Add(1))
}

// Last returns the most recently issued serial, or 0 if none.
func (c *SerialCounter) Last() Serial {
	return Serial(c.last.Load())
}
