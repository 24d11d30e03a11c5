package pool

import (
	"time"

	"github.com/utkarsh5026/lendpool/internal/algorithms"
	"github.com/utkarsh5026/lendpool/internal/scheduler"
	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a Pool.
type Option func(*config)

// BackoffKind selects the delay curve between supervised worker restarts.
type BackoffKind = algorithms.BackoffType

const (
	BackoffExponential  = algorithms.BackoffExponential
	BackoffJittered     = algorithms.BackoffJittered
	BackoffDecorrelated = algorithms.BackoffDecorrelated
)

const (
	defaultRestartDelay    = 10 * time.Millisecond
	defaultMaxRestartDelay = time.Second
)

type config struct {
	queue       scheduler.Config
	rateLimiter *rate.Limiter
	pinThreads  bool

	panicPolicy     PanicPolicy
	backoffKind     BackoffKind
	restartDelay    time.Duration
	maxRestartDelay time.Duration

	beforeJob func(workerID int)
	afterJob  func(workerID int, elapsed time.Duration)
	onPanic   func(*PanicError)
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		queue:           scheduler.Config{Kind: scheduler.KindDeque},
		panicPolicy:     PanicRetire,
		backoffKind:     BackoffExponential,
		restartDelay:    defaultRestartDelay,
		maxRestartDelay: defaultMaxRestartDelay,
	}

	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithQueueSize bounds the number of jobs waiting for a worker. Once full,
// Submit blocks until a worker frees a slot and TrySubmit fails with
// ErrQueueFull. If not specified, the queue is unbounded and Submit never
// blocks.
func WithQueueSize(size int) Option {
	return func(cfg *config) {
		if size > 0 {
			cfg.queue.Capacity = size
		}
	}
}

// WithQueueKind selects the queue implementation. QueueChannel and QueueRing
// are always bounded; without WithQueueSize they hold 1024 jobs.
func WithQueueKind(kind QueueKind) Option {
	return func(cfg *config) {
		cfg.queue.Kind = kind
	}
}

// WithRateLimit caps how fast jobs start across all workers.
// perSecond is the sustained rate and burst the number of jobs that may
// start back to back. A worker waits for a token after taking a job off the
// queue, so throttled jobs are still never dropped.
//
// Example:
//
//	WithRateLimit(10, 5) // 10 jobs/sec with bursts of 5
func WithRateLimit(perSecond float64, burst int) Option {
	return func(cfg *config) {
		if perSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithThreadPinning pins worker i's OS thread to core i % NumCPU.
// Workers are always locked to their own OS thread; this only adds the
// affinity mask, and silently skips it where the platform has none.
func WithThreadPinning() Option {
	return func(cfg *config) {
		cfg.pinThreads = true
	}
}

// WithPanicPolicy sets what a worker does after one of its jobs panics.
// Defaults to PanicRetire.
func WithPanicPolicy(policy PanicPolicy) Option {
	return func(cfg *config) {
		cfg.panicPolicy = policy
	}
}

// WithRestartBackoff configures the delay before a worker resumes after a
// panic under PanicRestart. Consecutive panics grow the delay from initial
// up to maxDelay; a successful job resets it.
func WithRestartBackoff(kind BackoffKind, initial, maxDelay time.Duration) Option {
	return func(cfg *config) {
		cfg.backoffKind = kind
		if initial >= 0 {
			cfg.restartDelay = initial
		}
		if maxDelay > 0 {
			cfg.maxRestartDelay = maxDelay
		}
	}
}

// WithBeforeJob registers a hook run on the worker right before each job.
func WithBeforeJob(fn func(workerID int)) Option {
	return func(cfg *config) {
		cfg.beforeJob = fn
	}
}

// WithAfterJob registers a hook run on the worker after each job, including
// jobs that panicked.
func WithAfterJob(fn func(workerID int, elapsed time.Duration)) Option {
	return func(cfg *config) {
		cfg.afterJob = fn
	}
}

// WithPanicHandler registers a hook that receives every recovered job panic,
// whatever the panic policy.
func WithPanicHandler(fn func(*PanicError)) Option {
	return func(cfg *config) {
		cfg.onPanic = fn
	}
}
