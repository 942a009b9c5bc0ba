package shell

import "time"

// Clock supplies the current time. Handlers take it as a dependency so tests
// can pin "now" instead of sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
