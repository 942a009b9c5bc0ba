package testutil

import "time"

// FixedClock is a Clock pinned to a fixed instant.
type FixedClock struct {
	FixedTime time.Time
}

// Now returns the pinned instant.
func (c FixedClock) Now() time.Time {
	return c.FixedTime
}
