package scheduler

import "errors"

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Kind selects the data structure backing a task queue.
type Kind int

const (
	// KindDeque is an unbounded FIFO guarded by a mutex and condition variable.
	KindDeque Kind = iota
	// KindChannel is a bounded FIFO built on a buffered Go channel.
	KindChannel
	// KindRing is a bounded lock-free ring buffer.
	KindRing
)

func (k Kind) String() string {
	switch k {
	case KindDeque:
		return "deque"
	case KindChannel:
		return "channel"
	case KindRing:
		return "ring"
	default:
		return "unknown"
	}
}

// Config describes the queue a pool dispatches through.
type Config struct {
	// Kind of queue to build.
	Kind Kind

	// Capacity bounds the number of pending items. Zero means unbounded,
	// which is only meaningful for KindDeque; bounded kinds fall back to
	// DefaultCapacity.
	Capacity int
}

// DefaultCapacity is used by bounded kinds when no capacity is configured.
const DefaultCapacity = 1024
