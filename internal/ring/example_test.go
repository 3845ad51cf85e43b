// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring_test

import (
	"fmt"

	"github.com/voidland/turngrille/internal/ring"
)

// ExampleMPMC demonstrates the non-blocking try-enqueue/try-dequeue
// capability: TryEnqueue reports ErrWouldBlock instead of blocking when
// the ring is full, and TryDequeue reports it instead of blocking when
// the ring is empty.
func ExampleMPMC() {
	q := ring.NewMPMC[int](2)

	if err := q.TryEnqueue(1); err != nil {
		fmt.Println(err)
	}
	if err := q.TryEnqueue(2); err != nil {
		fmt.Println(err)
	}

	if err := q.TryEnqueue(3); ring.IsWouldBlock(err) {
		fmt.Println("ring full")
	}

	for {
		v, err := q.TryDequeue()
		if ring.IsWouldBlock(err) {
			break
		}
		fmt.Println(v)
	}

	if _, err := q.TryDequeue(); ring.IsWouldBlock(err) {
		fmt.Println("ring empty")
	}

	// Output:
	// ring full
	// 1
	// 2
	// ring empty
}
