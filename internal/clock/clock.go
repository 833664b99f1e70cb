// Package clock provides the injectable time source shared by the
// scheduling validator and the timeline's now indicator, so both read
// "now" from one place and tests can pin it.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the host clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

// DateString formats the clock's current day as "YYYY-MM-DD".
func DateString(c Clock) string {
	return c.Now().Format("2006-01-02")
}

// MinutesIntoDay returns minutes elapsed since local midnight.
func MinutesIntoDay(c Clock) int {
	now := c.Now()
	return now.Hour()*60 + now.Minute()
}
