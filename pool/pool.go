package pool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utkarsh5026/lendpool/internal/scheduler"
	"golang.org/x/sync/errgroup"
)

// Pool is a fixed set of workers, each permanently owning one state value
// of type S, fed from a single shared job queue.
//
// A Pool is safe for concurrent use: any number of goroutines may submit
// while others call Stats or Join.
type Pool[S any] struct {
	conf    *config
	queue   scheduler.Queue[Job[S]]
	workers []*worker[S]

	closed    atomic.Bool
	closeOnce sync.Once
	done      chan struct{} // closed once every worker has exited

	submitted atomic.Int64

	resultOnce sync.Once
	joinErr    error
}

// New starts one worker per element of states, in order, and returns the
// pool feeding them.
//
// Each element is moved into its worker: New zeroes the caller's slice
// elements after copying them, and from then on a state value is reachable
// only through the pointer its worker lends to a running job.
//
// An empty states slice is accepted but no job will ever run. Submit still
// accepts jobs (a bounded queue eventually blocks) and Join reports them
// with ErrJobsAbandoned.
//
// Example:
//
//	p := pool.New([]int{0, 100}, pool.WithQueueSize(8))
//	defer p.Close()
//	p.Submit(func(n *int) { *n++ })
func New[S any](states []S, opts ...Option) *Pool[S] {
	conf := newConfig(opts...)

	p := &Pool[S]{
		conf:    conf,
		queue:   scheduler.New[Job[S]](conf.queue),
		workers: make([]*worker[S], len(states)),
		done:    make(chan struct{}),
	}

	for i := range states {
		p.workers[i] = newWorker(i, states[i], p.queue, conf)
	}
	clear(states)

	var g errgroup.Group
	for _, w := range p.workers {
		g.Go(w.run)
	}

	go func() {
		// Worker faults are collected from each worker once all have exited.
		_ = g.Wait()
		close(p.done)
	}()

	debugLog("started %d workers (queue=%s cap=%d)", len(p.workers), conf.queue.Kind, p.queue.Cap())
	return p
}

// Submit queues job for the next idle worker. With the default unbounded
// queue it never blocks; with WithQueueSize it blocks while the queue is full.
//
// Returns ErrPoolClosed once Join, Close, Shutdown or Reclaim has been
// called, and ErrNilJob for a nil job.
func (p *Pool[S]) Submit(job Job[S]) error {
	return p.SubmitContext(context.Background(), job)
}

// SubmitContext is Submit with a way out: on a full bounded queue it gives
// up when ctx is done and returns ctx.Err(). A job that was accepted cannot
// be cancelled afterwards.
func (p *Pool[S]) SubmitContext(ctx context.Context, job Job[S]) error {
	if job == nil {
		return ErrNilJob
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if p.queue.Cap() > 0 && p.queue.Len() >= p.queue.Cap() {
		debugLog("waiting for available workers...")
	}

	if err := p.queue.Push(ctx, job); err != nil {
		return submitError(err)
	}

	p.submitted.Add(1)
	debugLog("added pending task")
	return nil
}

// TrySubmit queues job without blocking. It returns ErrQueueFull when a
// bounded queue has no room.
func (p *Pool[S]) TrySubmit(job Job[S]) error {
	if job == nil {
		return ErrNilJob
	}
	if p.closed.Load() {
		return ErrPoolClosed
	}

	if err := p.queue.TryPush(job); err != nil {
		return submitError(err)
	}

	p.submitted.Add(1)
	return nil
}

// Join stops accepting jobs, waits for the workers to run every job already
// queued and then for all of them to exit.
//
// The returned error joins a *PanicError for each worker retired by a panic,
// plus ErrJobsAbandoned if jobs were left with no worker to run them. Join
// is idempotent; later calls return the same result. A job that never
// returns makes Join block forever; use Shutdown to bound the wait.
func (p *Pool[S]) Join() error {
	p.close()
	debugLog("joining...")
	<-p.done
	return p.result()
}

// Close is Join, for use with defer and as an io.Closer.
func (p *Pool[S]) Close() error {
	return p.Join()
}

// Shutdown is Join with a deadline. If workers are still running after
// timeout it returns ErrShutdownTimeout; they keep draining in the
// background and a later Join still waits for them. A timeout of 0 waits
// forever.
//
// Example:
//
//	if err := p.Shutdown(5 * time.Second); errors.Is(err, pool.ErrShutdownTimeout) {
//	    log.Printf("workers still busy")
//	}
func (p *Pool[S]) Shutdown(timeout time.Duration) error {
	p.close()
	if err := waitUntil(p.done, timeout); err != nil {
		return err
	}
	return p.result()
}

// Reclaim joins the pool and returns the states of the workers that exited
// cleanly, in construction order. States of workers retired by a panic are
// abandoned and left out. The returned error is Join's.
func (p *Pool[S]) Reclaim() ([]S, error) {
	err := p.Join()

	states := make([]S, 0, len(p.workers))
	for _, w := range p.workers {
		if w.fault != nil {
			continue
		}
		states = append(states, w.state)
	}
	return states, err
}

// Size returns the number of workers the pool was built with.
func (p *Pool[S]) Size() int {
	return len(p.workers)
}

// Pending returns the approximate number of queued jobs not yet picked up.
func (p *Pool[S]) Pending() int {
	return p.queue.Len()
}

// close shuts the submission side. Queued jobs stay poppable, so workers
// drain them before Pop reports the end.
func (p *Pool[S]) close() {
	p.closeOnce.Do(func() {
		debugLog("sending stop request...")
		p.closed.Store(true)
		p.queue.Close()
	})
}

// result builds Join's error. It must only run after done is closed.
func (p *Pool[S]) result() error {
	p.resultOnce.Do(func() {
		var errs []error
		for _, w := range p.workers {
			if w.fault != nil {
				errs = append(errs, w.fault)
			}
		}

		if left := p.queue.Len(); left > 0 {
			errs = append(errs, fmt.Errorf("%w: %d jobs", ErrJobsAbandoned, left))
		}

		p.joinErr = errors.Join(errs...)
	})
	return p.joinErr
}
