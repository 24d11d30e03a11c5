package pool

import (
	"testing"
	"time"
)

// queueConfig defines a test configuration for a queue implementation
type queueConfig struct {
	name string
	opts []Option
}

// getAllQueues returns every queue implementation the pool can run on
func getAllQueues() []queueConfig {
	return []queueConfig{
		{
			name: "DequeUnbounded",
			opts: nil,
		},
		{
			name: "DequeBounded",
			opts: []Option{WithQueueSize(16)},
		},
		{
			name: "Channel",
			opts: []Option{WithQueueKind(QueueChannel), WithQueueSize(16)},
		},
		{
			name: "Ring",
			opts: []Option{WithQueueKind(QueueRing), WithQueueSize(16)},
		},
	}
}

func runQueueTest(t *testing.T, testFunc func(t *testing.T, q queueConfig), additionalOpts ...Option) {
	t.Helper()
	for _, q := range getAllQueues() {
		q.opts = append(q.opts, additionalOpts...)
		t.Run(q.name, func(t *testing.T) {
			testFunc(t, q)
		})
	}
}

// joinWithin fails the test if Join does not return before timeout.
func joinWithin[S any](t *testing.T, p *Pool[S], timeout time.Duration) error {
	t.Helper()

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Join()
	}()

	select {
	case err := <-errCh:
		return err
	case <-time.After(timeout):
		t.Fatalf("Join did not return within %v", timeout)
		return nil
	}
}

// eventually polls cond until it holds or timeout passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v: %s", timeout, msg)
}

func zeros(n int) []int {
	return make([]int, n)
}
