package pool

import (
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestPanic_RetiresOnlyTheFaultingWorker(t *testing.T) {
	runQueueTest(t, func(t *testing.T, q queueConfig) {
		p := New(zeros(2), q.opts...)

		if err := p.Submit(func(*int) { panic("boom") }); err != nil {
			t.Fatalf("submit: %v", err)
		}
		eventually(t, time.Second, func() bool { return p.Stats().Retired == 1 }, "faulting worker retired")

		var ran atomic.Int64
		for range 10 {
			if err := p.Submit(func(*int) { ran.Add(1) }); err != nil {
				t.Fatalf("submit: %v", err)
			}
		}

		err := joinWithin(t, p, 2*time.Second)
		var perr *PanicError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *PanicError from Join, got %v", err)
		}
		if perr.Value != "boom" {
			t.Errorf("expected panic value boom, got %v", perr.Value)
		}
		if !strings.Contains(perr.Error(), "stack trace") {
			t.Errorf("expected stack trace in error, got %q", perr.Error())
		}
		if errors.Is(err, ErrJobsAbandoned) {
			t.Error("surviving worker should have drained the queue")
		}

		if got := ran.Load(); got != 10 {
			t.Errorf("expected surviving worker to run 10 jobs, got %d", got)
		}
	})
}

func TestPanic_AllWorkersRetired(t *testing.T) {
	p := New(zeros(2))

	for range 2 {
		_ = p.Submit(func(*int) { panic("boom") })
	}
	eventually(t, time.Second, func() bool { return p.Stats().Retired == 2 }, "both workers retired")

	for range 3 {
		_ = p.Submit(func(*int) {})
	}

	err := joinWithin(t, p, time.Second)
	if !errors.Is(err, ErrJobsAbandoned) {
		t.Errorf("expected ErrJobsAbandoned, got %v", err)
	}

	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		t.Fatalf("expected a joined error, got %T", err)
	}
	panics := 0
	for _, e := range joined.Unwrap() {
		var perr *PanicError
		if errors.As(e, &perr) {
			panics++
		}
	}
	if panics != 2 {
		t.Errorf("expected 2 worker faults reported, got %d", panics)
	}
}

func TestPanic_ErrorValueUnwraps(t *testing.T) {
	p := New(zeros(1))
	_ = p.Submit(func(*int) { panic(io.ErrUnexpectedEOF) })

	err := joinWithin(t, p, time.Second)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected Join error to unwrap to the panic value, got %v", err)
	}

	if (&PanicError{Value: "text"}).Unwrap() != nil {
		t.Error("non-error panic value should not unwrap")
	}
}

func TestPanic_RestartKeepsState(t *testing.T) {
	var handled atomic.Int64
	p := New(zeros(1),
		WithPanicPolicy(PanicRestart),
		WithRestartBackoff(BackoffExponential, time.Millisecond, 5*time.Millisecond),
		WithPanicHandler(func(perr *PanicError) {
			if perr.WorkerID != 0 {
				t.Errorf("expected worker 0, got %d", perr.WorkerID)
			}
			handled.Add(1)
		}),
	)

	_ = p.Submit(func(n *int) { *n++ })
	_ = p.Submit(func(*int) { panic("transient") })
	_ = p.Submit(func(n *int) { *n++ })
	_ = p.Submit(func(*int) { panic("again") })
	_ = p.Submit(func(n *int) { *n++ })

	states, err := p.Reclaim()
	if err != nil {
		t.Fatalf("restart policy should not surface faults from Join, got %v", err)
	}
	if len(states) != 1 || states[0] != 3 {
		t.Errorf("expected state 3 kept across restarts, got %v", states)
	}

	s := p.Stats()
	if s.Panicked != 2 || s.PerWorker[0].Restarts != 2 {
		t.Errorf("expected 2 panics and 2 restarts, got %d and %d", s.Panicked, s.PerWorker[0].Restarts)
	}
	if s.Retired != 0 {
		t.Errorf("expected no retired workers, got %d", s.Retired)
	}
	if handled.Load() != 2 {
		t.Errorf("expected panic handler called twice, got %d", handled.Load())
	}
}

func TestPanicPolicy_String(t *testing.T) {
	tests := map[PanicPolicy]string{
		PanicRetire:     "retire",
		PanicRestart:    "restart",
		PanicPolicy(99): "unknown",
	}
	for policy, want := range tests {
		if got := policy.String(); got != want {
			t.Errorf("PanicPolicy(%d).String() = %q, want %q", int(policy), got, want)
		}
	}
}
