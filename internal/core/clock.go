package core

import "time"

// Clock is a monotonic millisecond time source with an arbitrary epoch.
// It is never tied to wall-clock time.
type Clock interface {
	Millis() int64
}

// MonotonicClock measures milliseconds since it was created.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock starts a clock at zero.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Millis returns the milliseconds elapsed since the clock was created.
func (c *MonotonicClock) Millis() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock only moves when told to. Games advance it by one tick
// duration per Step so the simulation stays reproducible.
type ManualClock struct {
	now int64
}

// Millis returns the current reading.
func (c *ManualClock) Millis() int64 {
	return c.now
}

// Advance moves the clock forward by ms milliseconds.
func (c *ManualClock) Advance(ms int64) {
	c.now += ms
}

// Set jumps the clock to an absolute reading.
func (c *ManualClock) Set(ms int64) {
	c.now = ms
}
