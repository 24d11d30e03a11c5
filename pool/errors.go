package pool

import (
	"errors"
	"fmt"

	"github.com/utkarsh5026/lendpool/internal/scheduler"
)

var (
	// ErrPoolClosed is returned when submitting to a pool whose teardown has begun.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrQueueFull is returned by TrySubmit when a bounded queue has no room.
	ErrQueueFull = scheduler.ErrQueueFull

	// ErrNilJob is returned when submitting a nil job.
	ErrNilJob = errors.New("nil job")

	// ErrShutdownTimeout is returned by Shutdown when workers are still running at the deadline.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")

	// ErrJobsAbandoned is reported by Join when every worker retired before the queue drained.
	ErrJobsAbandoned = errors.New("jobs abandoned: no live worker left to run them")
)

// PanicError describes a job that panicked on a worker.
type PanicError struct {
	WorkerID int
	Value    any
	Stack    []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %d panic: %v\nstack trace:\n%s", e.WorkerID, e.Value, e.Stack)
}

// Unwrap exposes the panic value when it was an error, so errors.Is and
// errors.As see through a panic(err).
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// submitError maps queue errors onto the pool's vocabulary.
func submitError(err error) error {
	if errors.Is(err, scheduler.ErrQueueClosed) {
		return ErrPoolClosed
	}
	return err
}
