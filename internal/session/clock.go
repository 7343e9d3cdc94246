package session

import "time"

// Clock supplies the current time. All deadline and elapsed-time logic reads
// through an injected Clock so tests control time deterministically.
type Clock func() time.Time

// SystemClock is the production clock.
func SystemClock() time.Time {
	return time.Now()
}
