package marketplace

import "time"

// Clock supplies the current time to lifecycle operations as a
// millisecond timestamp. Expiry is pure data comparison against this
// value; nothing in the engine schedules or sleeps.
type Clock interface {
	Now() int64
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// FixedClock reports a settable instant, for tests.
type FixedClock struct {
	Millis int64
}

func (c *FixedClock) Now() int64 {
	return c.Millis
}

// Advance moves the fixed clock forward.
func (c *FixedClock) Advance(millis int64) {
	c.Millis += millis
}
