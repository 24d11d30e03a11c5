package benchmarks

import (
	"hash/fnv"
	"time"

	"github.com/utkarsh5026/lendpool/pool"
)

// queueConfig defines a benchmark configuration for a queue implementation
type queueConfig struct {
	name string
	opts []pool.Option
}

// getAllQueues returns all queue implementations for benchmarking
func getAllQueues(capacity int) []queueConfig {
	return []queueConfig{
		{
			name: "DequeUnbounded",
		},
		{
			name: "DequeBounded",
			opts: []pool.Option{pool.WithQueueSize(capacity)},
		},
		{
			name: "Channel",
			opts: []pool.Option{
				pool.WithQueueKind(pool.QueueChannel),
				pool.WithQueueSize(capacity),
			},
		},
		{
			name: "Ring",
			opts: []pool.Option{
				pool.WithQueueKind(pool.QueueRing),
				pool.WithQueueSize(capacity),
			},
		},
	}
}

// scratch is the state each worker keeps across jobs: a reusable buffer and
// a running checksum.
type scratch struct {
	buf []byte
	sum uint64
}

func newScratches(workers, size int) []scratch {
	s := make([]scratch, workers)
	for i := range s {
		s[i].buf = make([]byte, 0, size)
	}
	return s
}

// =============================================================================
// Benchmark Workload Generators
// =============================================================================

// cpuBoundWork simulates a CPU-intensive operation folded into the worker's checksum
func cpuBoundWork(iterations int) pool.Job[scratch] {
	return func(s *scratch) {
		result := uint64(0)
		for i := range iterations {
			result += uint64(i) * 31
		}
		s.sum += result
	}
}

// ioBoundWork simulates an I/O operation with a delay
func ioBoundWork(delay time.Duration) pool.Job[scratch] {
	return func(s *scratch) {
		time.Sleep(delay)
		s.sum++
	}
}

// mixedWork simulates a realistic workload with variable processing time
func mixedWork(task int) pool.Job[scratch] {
	return func(s *scratch) {
		time.Sleep(time.Duration(task%10) * 100 * time.Microsecond)
		hashWork(256)(s)
	}
}

// hashWork fills the lent buffer and hashes it. The buffer's capacity is
// reused across jobs on the same worker.
func hashWork(payload int) pool.Job[scratch] {
	return func(s *scratch) {
		s.buf = s.buf[:0]
		for i := range payload {
			s.buf = append(s.buf, byte(i))
		}
		h := fnv.New64a()
		_, _ = h.Write(s.buf)
		s.sum += h.Sum64()
	}
}
