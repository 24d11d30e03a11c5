package scheduler

import (
	"context"
	"sync"
)

// channelQueue is a bounded FIFO built on a buffered Go channel.
//
// The data channel is never closed, since a send racing a close would panic.
// Instead Close first closes stopPush to release blocked producers, then
// takes the write lock so no push is still in flight, and only then closes
// drained. Consumers that observe drained can therefore empty the buffer
// knowing nothing else will arrive.
type channelQueue[J any] struct {
	items     chan J
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	stopPush  chan struct{}
	drained   chan struct{}
}

func newChannelQueue[J any](capacity int) *channelQueue[J] {
	return &channelQueue[J]{
		items:    make(chan J, capacity),
		stopPush: make(chan struct{}),
		drained:  make(chan struct{}),
	}
}

func (q *channelQueue[J]) Push(ctx context.Context, item J) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- item:
		return nil
	case <-q.stopPush:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *channelQueue[J]) TryPush(item J) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- item:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *channelQueue[J]) Pop() (J, bool) {
	select {
	case item := <-q.items:
		return item, true
	case <-q.drained:
		return q.TryPop()
	}
}

func (q *channelQueue[J]) TryPop() (J, bool) {
	select {
	case item := <-q.items:
		return item, true
	default:
		var zero J
		return zero, false
	}
}

func (q *channelQueue[J]) Close() {
	q.closeOnce.Do(func() {
		close(q.stopPush)

		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()

		close(q.drained)
	})
}

func (q *channelQueue[J]) Len() int {
	return len(q.items)
}

func (q *channelQueue[J]) Cap() int {
	return cap(q.items)
}
