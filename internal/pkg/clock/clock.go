// Package clock provides the time source used for every session-window
// decision in the system. Exam sessions store naive local timestamps, so all
// comparisons must go through one injected clock pinned to a single fixed
// offset (West Africa Time, UTC+1, by default).
package clock

import "time"

// Clock supplies the current instant in the exam reference zone.
type Clock interface {
	// Now returns the current wall time in the clock's fixed offset.
	Now() time.Time
}

// FixedOffset is a Clock pinned to a fixed UTC offset.
type FixedOffset struct {
	loc *time.Location
}

// NewFixedOffset creates a clock for the named zone at the given whole-hour
// UTC offset.
func NewFixedOffset(name string, offsetHours int) *FixedOffset {
	return &FixedOffset{
		loc: time.FixedZone(name, offsetHours*3600),
	}
}

// NewWAT returns the default West Africa Time (UTC+1) clock.
func NewWAT() *FixedOffset {
	return NewFixedOffset("WAT", 1)
}

// Now returns the current time in the clock's zone.
func (c *FixedOffset) Now() time.Time {
	return time.Now().In(c.loc)
}

// Location returns the clock's fixed zone, for interpreting naive timestamps.
func (c *FixedOffset) Location() *time.Location {
	return c.loc
}

// Naive drops the zone from t while keeping its wall-clock fields. Stored
// session timestamps have no zone, so every comparison and insert normalizes
// through this first.
func Naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Frozen is a Clock that always returns the same instant. Used in tests to
// make window-boundary behavior deterministic.
type Frozen struct {
	Instant time.Time
}

// Now returns the frozen instant.
func (f *Frozen) Now() time.Time {
	return f.Instant
}
