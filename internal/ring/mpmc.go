// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import "code.hybscloud.com/lfq"

// MPMC is the bounded lock-free backend behind the non-blocking queue
// capability, an adapter over [lfq.MPMC] (an FAA-based ring using the SCQ
// algorithm, Nikolaev DISC 2019).
//
// The adapter narrows lfq's surface to the [NonBlocking] pair this module
// needs and converts its pointer-argument Enqueue to the value-semantics
// TryEnqueue the bounded queue layer calls with its own owned grilles.
// Capacity rounds up to the next power of 2, per lfq.
type MPMC[T any] struct {
	q *lfq.MPMC[T]
}

// NewMPMC creates a bounded lock-free ring. capacity must be >= 2.
func NewMPMC[T any](capacity int) *MPMC[T] {
	return &MPMC[T]{q: lfq.NewMPMC[T](capacity)}
}

// TryEnqueue adds an element to the ring.
// Returns ErrWouldBlock if the ring is full.
func (m *MPMC[T]) TryEnqueue(elem T) error {
	return m.q.Enqueue(&elem)
}

// TryDequeue removes and returns an element from the ring.
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (m *MPMC[T]) TryDequeue() (T, error) {
	return m.q.Dequeue()
}

// Drain signals that no more enqueues will occur, letting consumers empty
// the ring without tripping lfq's livelock-prevention threshold.
func (m *MPMC[T]) Drain() {
	m.q.Drain()
}

// Cap returns the ring's usable capacity.
func (m *MPMC[T]) Cap() int {
	return m.q.Cap()
}
