package benchmarks

import (
	"fmt"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/utkarsh5026/lendpool/pool"
)

// =============================================================================
// Throughput Benchmarks - Core Performance Metrics
// =============================================================================

func BenchmarkThroughput_WorkerScaling(b *testing.B) {
	workerCounts := []int{1, 2, 4, 8, 16}

	for _, q := range getAllQueues(4096) {
		for _, workers := range workerCounts {
			b.Run(fmt.Sprintf("%s/workers=%d", q.name, workers), func(b *testing.B) {
				job := cpuBoundWork(1000)

				b.ResetTimer()
				for range b.N {
					p := pool.New(newScratches(workers, 0), q.opts...)
					for range 1000 {
						if err := p.Submit(job); err != nil {
							b.Fatal(err)
						}
					}
					if err := p.Join(); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkThroughput_Workloads(b *testing.B) {
	workers := runtime.GOMAXPROCS(0)

	workloads := []struct {
		name string
		job  func(task int) pool.Job[scratch]
	}{
		{"CPU", func(int) pool.Job[scratch] { return cpuBoundWork(10_000) }},
		{"IO", func(int) pool.Job[scratch] { return ioBoundWork(100 * time.Microsecond) }},
		{"Mixed", mixedWork},
	}

	for _, q := range getAllQueues(1024) {
		for _, w := range workloads {
			b.Run(q.name+"/"+w.name, func(b *testing.B) {
				p := pool.New(newScratches(workers, 256), q.opts...)

				b.ResetTimer()
				for i := range b.N {
					if err := p.Submit(w.job(i)); err != nil {
						b.Fatal(err)
					}
				}
				if err := p.Join(); err != nil {
					b.Fatal(err)
				}
			})
		}
	}
}

// =============================================================================
// Submission Benchmarks
// =============================================================================

func BenchmarkSubmit_ManyProducers(b *testing.B) {
	workers := runtime.GOMAXPROCS(0)

	for _, q := range getAllQueues(4096) {
		b.Run(q.name, func(b *testing.B) {
			p := pool.New(newScratches(workers, 64), q.opts...)
			job := hashWork(64)

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if err := p.Submit(job); err != nil {
						b.Error(err)
						return
					}
				}
			})
			if err := p.Join(); err != nil {
				b.Fatal(err)
			}
		})
	}
}

func BenchmarkTrySubmit_Bounded(b *testing.B) {
	workers := runtime.GOMAXPROCS(0)

	for _, q := range getAllQueues(256)[1:] {
		b.Run(q.name, func(b *testing.B) {
			p := pool.New(newScratches(workers, 64), q.opts...)
			job := hashWork(64)
			rejected := 0

			b.ResetTimer()
			for range b.N {
				if err := p.TrySubmit(job); err != nil {
					rejected++
				}
			}
			b.StopTimer()

			if err := p.Join(); err != nil {
				b.Fatal(err)
			}
			b.ReportMetric(float64(rejected)/float64(b.N), "rejected/op")
		})
	}
}

// =============================================================================
// Lent State vs. Per-Job Allocation
// =============================================================================

func BenchmarkLentScratch(b *testing.B) {
	workers := runtime.GOMAXPROCS(0)
	p := pool.New(newScratches(workers, 4096))
	job := hashWork(4096)

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = p.Submit(job)
	}
	if err := p.Join(); err != nil {
		b.Fatal(err)
	}
}

func BenchmarkAllocPerJob(b *testing.B) {
	workers := runtime.GOMAXPROCS(0)
	p := pool.New(make([]struct{}, workers))

	var mu sync.Mutex
	var total uint64

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		_ = p.Submit(func(*struct{}) {
			s := newScratches(1, 4096)
			hashWork(4096)(&s[0])

			mu.Lock()
			total += s[0].sum
			mu.Unlock()
		})
	}
	if err := p.Join(); err != nil {
		b.Fatal(err)
	}
	runtime.KeepAlive(total)
}
