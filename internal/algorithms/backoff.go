package algorithms

import (
	"cmp"
	"math/rand"
	"sync"
	"time"
)

const (
	maxShift = 62 // Prevent overflow in the exponential shift
)

// decorrelatedJitterBackoff implements AWS-style decorrelated jitter.
// sleep = min(maxDelay, random(initialDelay, prevSleep * 3))
//
// Each delay depends on the previous one rather than on the restart count,
// which spreads restarts of workers that panicked together.
//
// Reference: AWS Architecture Blog - "Exponential Backoff And Jitter" (Marc Brooker, 2015)
type decorrelatedJitterBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	prevDelay    time.Duration
	rng          *rand.Rand
	mu           sync.Mutex
}

func newDecorrelatedJitterBackoff(initialDelay, maxDelay time.Duration) *decorrelatedJitterBackoff {
	return &decorrelatedJitterBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		prevDelay:    initialDelay,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
	}
}

func (b *decorrelatedJitterBackoff) NextDelay(restarts int) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if restarts <= 0 {
		b.prevDelay = b.initialDelay
		return b.initialDelay
	}

	upper := min(b.prevDelay*3, b.maxDelay)
	span := upper - b.initialDelay
	if span <= 0 {
		b.prevDelay = b.initialDelay
		return b.initialDelay
	}

	delay := b.initialDelay + time.Duration(b.rng.Int63n(int64(span)))
	b.prevDelay = delay
	return delay
}

func (b *decorrelatedJitterBackoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prevDelay = b.initialDelay
}

// jitteredBackoff is exponential backoff scaled by a random factor in
// [1-jitterFactor, 1+jitterFactor].
type jitteredBackoff struct {
	initialDelay, maxDelay time.Duration
	jitterFactor           float64
	rng                    *rand.Rand
	mu                     sync.Mutex // guards rng
}

func newJitteredBackoff(initialDelay, maxDelay time.Duration, jitterFactor float64) *jitteredBackoff {
	return &jitteredBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
		jitterFactor: clamp(jitterFactor, 0, 1),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())), // #nosec G404 -- crypto rand not needed for backoff jitter
	}
}

func (b *jitteredBackoff) NextDelay(restarts int) time.Duration {
	if restarts < 0 {
		return 0
	}

	base := exponentialDelay(restarts, b.initialDelay, b.maxDelay)

	b.mu.Lock()
	factor := 1.0 + (b.rng.Float64()*2-1)*b.jitterFactor
	b.mu.Unlock()

	return clamp(time.Duration(float64(base)*factor), 0, b.maxDelay)
}

func (b *jitteredBackoff) Reset() {}

// exponentialBackoff doubles the delay each restart: initialDelay * 2^restarts,
// capped at maxDelay.
type exponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
}

func newExponentialBackoff(initialDelay, maxDelay time.Duration) *exponentialBackoff {
	return &exponentialBackoff{
		initialDelay: initialDelay,
		maxDelay:     maxDelay,
	}
}

func (b *exponentialBackoff) NextDelay(restarts int) time.Duration {
	return exponentialDelay(restarts, b.initialDelay, b.maxDelay)
}

func (b *exponentialBackoff) Reset() {}

func exponentialDelay(restarts int, initialDelay, maxDelay time.Duration) time.Duration {
	if restarts < 0 {
		return 0
	}
	if restarts >= maxShift {
		return maxDelay
	}

	delay := time.Duration(int64(1)<<uint(restarts)) * initialDelay
	if delay > maxDelay || delay < 0 {
		return maxDelay
	}
	return delay
}

func clamp[N cmp.Ordered](v, lo, hi N) N {
	return min(max(v, lo), hi)
}
