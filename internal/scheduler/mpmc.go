package scheduler

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

const (
	// Cache line size for padding to prevent false sharing
	cacheLinePadding = 128
	// Maximum spin attempts before parking
	maxSpinAttempts = 10
)

// ringSlot is one cell of the ring buffer. The sequence number says whether
// the cell is ready for a producer (seq == pos) or a consumer (seq == pos+1).
type ringSlot[J any] struct {
	sequence uint64
	value    J
	_        [cacheLinePadding - 16]byte
}

// ringQueue is a bounded lock-free multi-producer multi-consumer queue.
//
// Slots are claimed with CAS on head and tail. The RWMutex is only used to
// order Close against in-flight producers: pushes hold the read side, so
// once Close owns the write side every claimed slot has been published.
type ringQueue[J any] struct {
	ring []ringSlot[J]
	mask uint64

	_    [cacheLinePadding]byte
	head uint64
	_    [cacheLinePadding - 8]byte
	tail uint64
	_    [cacheLinePadding - 8]byte

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once

	// notifyC is buffered and never closed; it wakes one parked consumer.
	notifyC chan struct{}
	// stopPush releases producers spinning on a full ring.
	stopPush chan struct{}
	// drained is closed once no producer can publish anymore.
	drained chan struct{}

	capacity int
}

func newRingQueue[J any](capacity int) *ringQueue[J] {
	capacity = nextPowerOfTwo(capacity)
	ring := make([]ringSlot[J], capacity)

	for i := range ring {
		ring[i].sequence = uint64(i) // #nosec G115 -- i is loop index within valid ring bounds
	}

	return &ringQueue[J]{
		ring:     ring,
		mask:     uint64(capacity - 1), // #nosec G115 -- capacity is validated positive, no overflow possible
		capacity: capacity,
		notifyC:  make(chan struct{}, 1),
		stopPush: make(chan struct{}),
		drained:  make(chan struct{}),
	}
}

func (q *ringQueue[J]) Push(ctx context.Context, item J) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	spinCount := 0
	for {
		if q.enqueue(item) {
			return nil
		}

		select {
		case <-q.stopPush:
			return ErrQueueClosed
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		spinCount++
		if spinCount > maxSpinAttempts {
			runtime.Gosched()
			spinCount = 0
		}
	}
}

func (q *ringQueue[J]) TryPush(item J) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}
	if !q.enqueue(item) {
		return ErrQueueFull
	}
	return nil
}

// enqueue claims the tail slot and publishes item. It reports false only when
// the ring is full.
func (q *ringQueue[J]) enqueue(item J) bool {
	for {
		tail := atomic.LoadUint64(&q.tail)
		slot := &q.ring[tail&q.mask]
		diff := int64(atomic.LoadUint64(&slot.sequence)) - int64(tail) // #nosec G115 -- intentional conversion for sequence comparison

		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				slot.value = item
				atomic.StoreUint64(&slot.sequence, tail+1)
				q.notify()
				return true
			}
		case diff < 0:
			return false
		}
	}
}

func (q *ringQueue[J]) Pop() (J, bool) {
	spinCount := 0
	for {
		if item, ok := q.dequeue(); ok {
			if q.Len() > 0 {
				q.notify()
			}
			return item, true
		}

		spinCount++
		if spinCount < maxSpinAttempts {
			runtime.Gosched()
			continue
		}
		spinCount = 0

		select {
		case <-q.notifyC:
		case <-q.drained:
			return q.dequeue()
		}
	}
}

func (q *ringQueue[J]) TryPop() (J, bool) {
	return q.dequeue()
}

// dequeue claims the head slot if it has been published.
func (q *ringQueue[J]) dequeue() (J, bool) {
	var zero J
	for {
		head := atomic.LoadUint64(&q.head)
		slot := &q.ring[head&q.mask]
		diff := int64(atomic.LoadUint64(&slot.sequence)) - int64(head+1) // #nosec G115 -- intentional conversion for sequence comparison

		switch {
		case diff == 0:
			if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
				item := slot.value
				slot.value = zero
				// hand the slot back to producers for the next lap
				atomic.StoreUint64(&slot.sequence, head+q.mask+1)
				return item, true
			}
		case diff < 0:
			return zero, false
		}
	}
}

func (q *ringQueue[J]) notify() {
	select {
	case q.notifyC <- struct{}{}:
	default:
	}
}

func (q *ringQueue[J]) Close() {
	q.closeOnce.Do(func() {
		close(q.stopPush)

		q.mu.Lock()
		q.closed = true
		q.mu.Unlock()

		close(q.drained)
	})
}

// Len returns the approximate number of items in the queue
func (q *ringQueue[J]) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)

	if tail > head {
		return int(tail - head) // #nosec G115 -- safe conversion, tail > head guarantees result fits in int
	}
	return 0
}

func (q *ringQueue[J]) Cap() int {
	return q.capacity
}
