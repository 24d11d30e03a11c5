// Package cpu binds worker goroutines to operating system threads.
//
// Every worker runs on a locked OS thread for its entire life, so the
// state it owns is only ever touched from one thread. Pinning that thread
// to a core is optional and best effort: platforms without an affinity API
// lock the thread and report ErrPinningUnsupported.
package cpu

import (
	"errors"
	"runtime"
)

// ErrPinningUnsupported is returned when the platform has no thread affinity API.
var ErrPinningUnsupported = errors.New("cpu pinning not supported on this platform")

// GetNumCPU returns the number of logical CPUs available.
func GetNumCPU() int {
	return runtime.NumCPU()
}

// coreFor maps a worker id onto a valid core index.
func coreFor(workerID int) int {
	n := runtime.NumCPU()
	if workerID < 0 {
		workerID = -workerID
	}
	return workerID % n
}

// LockWorkerThread locks the calling goroutine to its OS thread and, when pin
// is set, pins that thread to core workerID % NumCPU. The returned release
// function must be deferred by the caller. A pinning failure leaves the thread
// locked and is reported through err; the worker can keep running.
func LockWorkerThread(workerID int, pin bool) (release func(), core int, err error) {
	runtime.LockOSThread()
	release = runtime.UnlockOSThread

	if !pin {
		return release, -1, nil
	}

	core = coreFor(workerID)
	if err := pinToCore(core); err != nil {
		return release, -1, err
	}
	return release, core, nil
}
