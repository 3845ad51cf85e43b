package queue_test

import (
	"fmt"

	"github.com/voidland/turngrille/queue"
)

// Example demonstrates the Put/Take/Drain/Shutdown lifecycle shared by
// every [queue.Bounded] variant: Put never fails, Take returns ok=false
// only after Shutdown has been observed with the queue empty.
func Example() {
	q := queue.NewChannel[int](4)

	for i := 1; i <= 3; i++ {
		q.Put(i)
	}

	for i := 0; i < 3; i++ {
		v, ok := q.Take()
		fmt.Println(v, ok)
	}

	q.Drain()
	q.Shutdown(1)

	_, ok := q.Take()
	fmt.Println(ok)

	// Output:
	// 1 true
	// 2 true
	// 3 true
	// false
}
