package scheduler

import "context"

// Queue is the shared multi-producer, multi-consumer channel through which
// jobs travel from submitters to whichever worker becomes idle first.
//
// Every implementation guarantees FIFO dequeue order, delivers each pushed
// item to exactly one consumer, and keeps already queued items poppable
// after Close so consumers can drain them.
type Queue[J any] interface {
	// Push enqueues an item. Unbounded queues never block. Bounded queues
	// block while full until space frees up, ctx is done, or the queue is
	// closed.
	Push(ctx context.Context, item J) error

	// TryPush enqueues without blocking, returning ErrQueueFull when a
	// bounded queue has no room.
	TryPush(item J) error

	// Pop blocks until an item is available. It reports false only once
	// the queue is closed and empty.
	Pop() (J, bool)

	// TryPop dequeues without blocking.
	TryPop() (J, bool)

	// Close stops accepting items and wakes blocked producers and
	// consumers. Safe to call more than once.
	Close()

	// Len returns the approximate number of queued items.
	Len() int

	// Cap returns the queue bound, or 0 when unbounded.
	Cap() int
}

// New builds the queue described by conf.
func New[J any](conf Config) Queue[J] {
	capacity := conf.Capacity
	if conf.Kind != KindDeque && capacity <= 0 {
		capacity = DefaultCapacity
	}

	switch conf.Kind {
	case KindChannel:
		return newChannelQueue[J](capacity)
	case KindRing:
		return newRingQueue[J](capacity)
	case KindDeque:
		fallthrough
	default:
		return newDequeQueue[J](capacity)
	}
}
