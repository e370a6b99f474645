package ports

import "time"

// Clock abstracts timer creation so playback timing is testable without
// real sleeps. The production implementation wraps package time.
type Clock interface {
	// AfterFunc schedules f to run after d on its own goroutine.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a cancellable pending callback.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the
	// timer was still pending.
	Stop() bool
}
