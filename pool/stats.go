package pool

import (
	"sync/atomic"
	"time"
)

// Stats is a point-in-time snapshot of a pool. Counters are read without
// stopping the workers, so fields may be mutually off by a job or two while
// the pool is busy.
type Stats struct {
	Workers   int   // workers the pool was built with
	Alive     int   // workers whose loop has not exited
	Busy      int   // workers currently running a job
	Retired   int   // workers stopped by a panic
	Submitted int64 // jobs accepted by Submit
	Completed int64 // jobs that returned normally
	Panicked  int64 // jobs that panicked
	Pending   int   // jobs waiting in the queue
	PerWorker []WorkerStats
}

// WorkerStats describes one worker.
type WorkerStats struct {
	ID        int
	Completed int64
	Panicked  int64
	Restarts  int64
	BusyTime  time.Duration
	Running   bool
	Retired   bool
	Exited    bool
}

// workerCounters is updated by the owning worker and read by Stats.
type workerCounters struct {
	completed atomic.Int64
	panicked  atomic.Int64
	restarts  atomic.Int64
	busyNanos atomic.Int64
	running   atomic.Bool
	retired   atomic.Bool
	exited    atomic.Bool
}

func (c *workerCounters) snapshot(id int) WorkerStats {
	return WorkerStats{
		ID:        id,
		Completed: c.completed.Load(),
		Panicked:  c.panicked.Load(),
		Restarts:  c.restarts.Load(),
		BusyTime:  time.Duration(c.busyNanos.Load()),
		Running:   c.running.Load(),
		Retired:   c.retired.Load(),
		Exited:    c.exited.Load(),
	}
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[S]) Stats() Stats {
	s := Stats{
		Workers:   len(p.workers),
		Submitted: p.submitted.Load(),
		Pending:   p.queue.Len(),
		PerWorker: make([]WorkerStats, len(p.workers)),
	}

	for i, w := range p.workers {
		ws := w.counters.snapshot(w.id)
		s.PerWorker[i] = ws

		s.Completed += ws.Completed
		s.Panicked += ws.Panicked
		if !ws.Exited {
			s.Alive++
		}
		if ws.Running {
			s.Busy++
		}
		if ws.Retired {
			s.Retired++
		}
	}
	return s
}
