package scheduler

import (
	"context"
	"sync"

	"github.com/eapache/queue"
)

// dequeQueue is a FIFO over a growable ring buffer. A single mutex guards the
// buffer; consumers wait on notEmpty and bounded producers wait on notFull.
type dequeQueue[J any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    *queue.Queue
	capacity int // 0 = unbounded
	closed   bool
}

func newDequeQueue[J any](capacity int) *dequeQueue[J] {
	q := &dequeQueue[J]{
		items:    queue.New(),
		capacity: max(capacity, 0),
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

func (q *dequeQueue[J]) Push(ctx context.Context, item J) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.capacity > 0 && q.items.Length() >= q.capacity {
		// sync.Cond cannot select on ctx, so a watcher broadcasts on cancel.
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.notFull.Broadcast()
			q.mu.Unlock()
		})
		defer stop()

		for !q.closed && q.items.Length() >= q.capacity {
			if err := ctx.Err(); err != nil {
				return err
			}
			q.notFull.Wait()
		}
	}

	if q.closed {
		return ErrQueueClosed
	}

	q.items.Add(item)
	q.notEmpty.Signal()
	return nil
}

func (q *dequeQueue[J]) TryPush(item J) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	if q.capacity > 0 && q.items.Length() >= q.capacity {
		return ErrQueueFull
	}

	q.items.Add(item)
	q.notEmpty.Signal()
	return nil
}

func (q *dequeQueue[J]) Pop() (J, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.items.Length() == 0 {
		if q.closed {
			var zero J
			return zero, false
		}
		q.notEmpty.Wait()
	}

	return q.remove(), true
}

func (q *dequeQueue[J]) TryPop() (J, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 {
		var zero J
		return zero, false
	}
	return q.remove(), true
}

// remove must be called with mu held and a non-empty buffer.
func (q *dequeQueue[J]) remove() J {
	item := q.items.Remove().(J)
	if q.capacity > 0 {
		q.notFull.Broadcast()
	}
	return item
}

func (q *dequeQueue[J]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

func (q *dequeQueue[J]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

func (q *dequeQueue[J]) Cap() int {
	return q.capacity
}
