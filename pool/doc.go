// Package pool provides a fixed-size worker pool whose workers each own a
// private piece of mutable state that is lent, one job at a time, to the
// jobs they run.
//
// The primary type is Pool[S]. It is built from a slice of S values: one
// worker is started per element and each element becomes that worker's
// state for the worker's whole life. A job is a func(*S); whichever worker
// is idle first receives the job and calls it with a pointer to its own
// state. Because only the owning worker ever dereferences that pointer, the
// state needs no locking, and two jobs on the same worker never overlap.
//
// # Basic Usage
//
//	p := pool.New(make([]bytes.Buffer, 4))
//	for _, doc := range docs {
//	    p.Submit(func(buf *bytes.Buffer) {
//	        buf.Reset()
//	        render(buf, doc)
//	    })
//	}
//	if err := p.Join(); err != nil {
//	    log.Printf("worker fault: %v", err)
//	}
//
// # Lending Contract
//
// The pointer handed to a job is valid only for the duration of that call.
// Jobs must not store it, send it elsewhere, or touch it from another
// goroutine after returning. New takes ownership of the state values and
// zeroes the caller's slice elements so the originals are not reused by
// accident.
//
// # Dispatch
//
// All workers consume from one shared FIFO queue, so dispatch follows
// availability rather than round-robin. Jobs leave the queue in submission
// order; completion order across workers is not defined. With a single
// worker, jobs run strictly in submission order.
//
// # Teardown
//
// Join closes the submission side, lets workers drain every queued job and
// waits for them to exit. Nothing that was accepted by Submit is dropped.
// Shutdown is the same with a time bound. Reclaim joins and hands the final
// states back to the caller.
//
// # Configuration Options
//
//   - WithQueueSize(n): bound the queue; Submit blocks while full (default: unbounded)
//   - WithQueueKind(k): choose the queue data structure (deque, channel, ring)
//   - WithRateLimit(perSecond, burst): throttle job starts across all workers
//   - WithThreadPinning(): pin each worker's OS thread to a CPU core
//   - WithPanicPolicy(p): retire (default) or restart a worker whose job panicked
//   - WithRestartBackoff(kind, initial, max): delay between supervised restarts
//   - WithBeforeJob, WithAfterJob, WithPanicHandler: observation hooks
//
// # Error Handling
//
// A panicking job is recovered on its worker and turned into a *PanicError.
// It never reaches the submitter or other workers. Under PanicRetire the
// worker exits and its state is abandoned while the remaining workers keep
// draining the queue; Join reports every retirement. Jobs that never return
// block Join forever, which is what Shutdown's timeout is for.
//
// Build with -tags debug to trace worker activity on stderr.
package pool
