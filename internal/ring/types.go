// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

// NonBlocking is the capability both ring backends implement: a
// non-blocking try-enqueue/try-dequeue pair that never parks a goroutine.
//
// The interface intentionally excludes a Len method because accurate counts
// in lock-free algorithms require expensive cross-core synchronization; the
// bounded queue layer above tracks its own approximate size instead.
type NonBlocking[T any] interface {
	// TryEnqueue adds an element to the backend.
	// Returns nil on success, ErrWouldBlock if the backend is full.
	TryEnqueue(elem T) error

	// TryDequeue removes and returns an element from the backend.
	// Returns (zero-value, ErrWouldBlock) if the backend is empty.
	TryDequeue() (T, error)
}

// Drainer signals that no more enqueues will occur.
//
// The bounded ring backend implements this; the channel backend does not
// need it (an unbounded channel has no threshold to relax).
//
// Call Drain after all producers have finished so that consumers can drain
// remaining items without threshold blocking.
type Drainer interface {
	// Drain signals that no more enqueues will occur.
	// After Drain is called, TryDequeue skips threshold checks, allowing
	// consumers to drain all remaining items without producer pressure.
	//
	// Drain is a hint — the caller must ensure no further TryEnqueue calls
	// will be made after calling Drain.
	Drain()
}
