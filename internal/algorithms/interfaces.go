package algorithms

import "time"

// Backoff computes how long a supervised worker waits before resuming its
// loop after a job panicked.
type Backoff interface {
	// NextDelay returns the pause before the next restart. restarts is
	// 0-indexed (0 = first restart after the first panic).
	NextDelay(restarts int) time.Duration

	// Reset clears any internal state, typically after the worker has run
	// a job successfully again.
	Reset()
}
