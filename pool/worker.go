package pool

import (
	"context"
	"runtime"
	"time"

	"github.com/utkarsh5026/lendpool/internal/algorithms"
	"github.com/utkarsh5026/lendpool/internal/cpu"
	"github.com/utkarsh5026/lendpool/internal/scheduler"
)

// worker owns one state value for its whole life and runs jobs against it,
// one at a time, on a single locked OS thread.
type worker[S any] struct {
	id       int
	state    S
	queue    scheduler.Queue[Job[S]]
	conf     *config
	backoff  algorithms.Backoff
	counters workerCounters

	// fault is written by the worker goroutine before it exits and only
	// read after the pool has observed every worker exit.
	fault *PanicError
}

func newWorker[S any](id int, state S, queue scheduler.Queue[Job[S]], conf *config) *worker[S] {
	w := &worker[S]{
		id:    id,
		state: state,
		queue: queue,
		conf:  conf,
	}
	if conf.panicPolicy == PanicRestart {
		w.backoff = algorithms.NewBackoff(conf.backoffKind, conf.restartDelay, conf.maxRestartDelay)
	}
	return w
}

// run is the worker loop. Pop is its only suspension point; it returns once
// the queue is closed and empty, or after a panic under PanicRetire.
func (w *worker[S]) run() error {
	defer w.counters.exited.Store(true)

	release, core, err := cpu.LockWorkerThread(w.id, w.conf.pinThreads)
	defer release()
	switch {
	case err != nil:
		debugLog("w(%d) pinning skipped: %v", w.id, err)
	case core >= 0:
		debugLog("w(%d) pinned to cpu %d", w.id, core)
	}

	restarts := 0
	for {
		debugLog("w(%d) waiting for tasks...", w.id)
		job, ok := w.queue.Pop()
		if !ok {
			debugLog("w(%d) quitting...", w.id)
			return nil
		}

		w.throttle()

		perr := w.execute(job)
		if perr == nil {
			if restarts > 0 {
				restarts = 0
				w.backoff.Reset()
			}
			continue
		}

		if w.conf.panicPolicy != PanicRestart {
			debugLog("w(%d) retiring after panic: %v", w.id, perr.Value)
			w.fault = perr
			w.counters.retired.Store(true)
			return perr
		}

		delay := w.backoff.NextDelay(restarts)
		restarts++
		w.counters.restarts.Add(1)
		debugLog("w(%d) restarting in %v after panic: %v", w.id, delay, perr.Value)
		if delay > 0 {
			time.Sleep(delay)
		}
	}
}

// throttle waits for a rate limiter token. The wait is never cancelled: a
// job taken off the queue always runs.
func (w *worker[S]) throttle() {
	if w.conf.rateLimiter == nil {
		return
	}
	if err := w.conf.rateLimiter.Wait(context.Background()); err != nil {
		debugLog("w(%d) rate limiter: %v", w.id, err)
	}
}

// execute lends the worker's state to job for the duration of the call. A
// panic is recovered here and returned instead of unwinding the worker.
func (w *worker[S]) execute(job Job[S]) (perr *PanicError) {
	if w.conf.beforeJob != nil {
		w.conf.beforeJob(w.id)
	}

	w.counters.running.Store(true)
	start := time.Now()

	defer func() {
		elapsed := time.Since(start)
		w.counters.running.Store(false)
		w.counters.busyNanos.Add(int64(elapsed))

		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			perr = &PanicError{WorkerID: w.id, Value: r, Stack: buf[:n]}

			w.counters.panicked.Add(1)
			if w.conf.onPanic != nil {
				w.conf.onPanic(perr)
			}
		} else {
			w.counters.completed.Add(1)
		}

		if w.conf.afterJob != nil {
			w.conf.afterJob(w.id, elapsed)
		}
	}()

	debugLog("w(%d) running task...", w.id)
	job(&w.state)
	return nil
}
