package algorithms

import "time"

// BackoffType defines the restart backoff algorithm to use.
type BackoffType int

const (
	// BackoffExponential doubles the delay on every restart (default).
	BackoffExponential BackoffType = iota
	// BackoffJittered adds random jitter so panicking workers do not restart in lockstep.
	BackoffJittered
	// BackoffDecorrelated uses AWS-style decorrelated jitter.
	BackoffDecorrelated
)

// defaultJitterFactor is the ±fraction applied by BackoffJittered.
const defaultJitterFactor = 0.2

// NewBackoff creates a backoff strategy. A non-positive maxDelay means the
// delay never grows past initialDelay.
func NewBackoff(backoffType BackoffType, initialDelay, maxDelay time.Duration) Backoff {
	initialDelay = max(initialDelay, 0)
	maxDelay = max(maxDelay, initialDelay)

	switch backoffType {
	case BackoffJittered:
		return newJitteredBackoff(initialDelay, maxDelay, defaultJitterFactor)

	case BackoffDecorrelated:
		return newDecorrelatedJitterBackoff(initialDelay, maxDelay)

	default:
		return newExponentialBackoff(initialDelay, maxDelay)
	}
}
