package pool_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/utkarsh5026/lendpool/pool"
)

func Example() {
	p := pool.New([]string{"Hello from worker 0"})

	var lines []string
	for i := range 3 {
		_ = p.Submit(func(greeting *string) {
			lines = append(lines, fmt.Sprintf("%s, job %d", *greeting, i))
		})
	}

	// Join waits for every queued job, so lines is complete afterwards.
	if err := p.Join(); err != nil {
		fmt.Println("join:", err)
	}
	fmt.Println(strings.Join(lines, "\n"))
	// Output:
	// Hello from worker 0, job 0
	// Hello from worker 0, job 1
	// Hello from worker 0, job 2
}

func ExamplePool_Reclaim() {
	p := pool.New([]int{0, 100})
	for range 10 {
		_ = p.Submit(func(n *int) { *n++ })
	}

	states, _ := p.Reclaim()
	fmt.Println(states[0] + states[1] - 100)
	// Output: 10
}

func ExamplePool_Join_panic() {
	p := pool.New([]int{0})
	_ = p.Submit(func(*int) { panic("bad input") })

	err := p.Join()
	var perr *pool.PanicError
	if errors.As(err, &perr) {
		fmt.Printf("worker %d retired: %v\n", perr.WorkerID, perr.Value)
	}
	// Output: worker 0 retired: bad input
}
