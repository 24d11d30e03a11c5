package pool

import "github.com/utkarsh5026/lendpool/internal/scheduler"

// Job is a unit of work. It is called exactly once, on exactly one worker,
// with exclusive access to that worker's state. The pointer must not outlive
// the call.
type Job[S any] func(state *S)

// QueueKind selects the data structure behind the shared job queue.
type QueueKind = scheduler.Kind

const (
	// QueueDeque is a mutex and condition variable over a growable ring.
	// It is unbounded unless WithQueueSize is given.
	QueueDeque = scheduler.KindDeque
	// QueueChannel is a buffered Go channel. Always bounded.
	QueueChannel = scheduler.KindChannel
	// QueueRing is a lock-free ring buffer. Always bounded.
	QueueRing = scheduler.KindRing
)

// PanicPolicy decides what happens to a worker after one of its jobs panics.
type PanicPolicy int

const (
	// PanicRetire stops the worker. Its state is abandoned and the other
	// workers keep serving the queue.
	PanicRetire PanicPolicy = iota
	// PanicRestart keeps the worker and its state, resuming the loop after
	// a backoff delay. Use it only when a job cannot leave the state
	// half-updated, or when the state tolerates it.
	PanicRestart
)

func (p PanicPolicy) String() string {
	switch p {
	case PanicRetire:
		return "retire"
	case PanicRestart:
		return "restart"
	default:
		return "unknown"
	}
}
