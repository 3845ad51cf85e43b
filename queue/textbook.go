package queue

import (
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Textbook is a bounded MPMC queue guarded by a single mutex and two
// condition variables: notFull (signalled on Take) and notEmpty
// (signalled on Put and on Shutdown). Correctness relies solely on the
// mutex; there are no atomics on the hot path.
type Textbook[E any] struct {
	mu        sync.Mutex
	notFull   *sync.Cond
	notEmpty  *sync.Cond
	buf       []E
	head      int
	count     int
	cap       int
	workDone  bool
}

// NewTextbook creates a Textbook queue of the given capacity, guarded by a
// standard-library [sync.Mutex].
func NewTextbook[E any](capacity int) *Textbook[E] {
	q := &Textbook[E]{buf: make([]E, capacity), cap: capacity}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

func (q *Textbook[E]) Put(e E) {
	q.mu.Lock()
	for q.count >= q.cap {
		q.notFull.Wait()
	}
	q.push(e)
	q.notEmpty.Signal()
	q.mu.Unlock()
}

func (q *Textbook[E]) Take() (E, bool) {
	q.mu.Lock()
	for q.count == 0 {
		if q.workDone {
			q.mu.Unlock()
			var zero E
			return zero, false
		}
		q.notEmpty.Wait()
	}
	e := q.pop()
	q.notFull.Signal()
	q.mu.Unlock()
	return e, true
}

func (q *Textbook[E]) Drain() {
	q.mu.Lock()
	for q.count > 0 {
		q.notFull.Wait()
	}
	q.mu.Unlock()
}

func (q *Textbook[E]) Shutdown(int) {
	q.mu.Lock()
	q.workDone = true
	q.notEmpty.Broadcast()
	q.mu.Unlock()
}

func (q *Textbook[E]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *Textbook[E]) Capacity() int {
	return q.cap
}

func (q *Textbook[E]) push(e E) {
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = e
	q.count++
}

func (q *Textbook[E]) pop() E {
	e := q.buf[q.head]
	var zero E
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return e
}

// spinMutex is a userspace spinlock: Lock spins via [spin.Wait] on an
// uncontended CAS before falling back to repeated attempts, never parking
// the goroutine in the OS scheduler the way [sync.Mutex] eventually does
// under contention. It satisfies sync.Locker so [sync.Cond] can wait on it.
type spinMutex struct {
	locked atomix.Bool
}

func (m *spinMutex) Lock() {
	sw := spin.Wait{}
	for !m.locked.CompareAndSwapAcqRel(false, true) {
		sw.Once()
	}
}

func (m *spinMutex) Unlock() {
	m.locked.StoreRelease(false)
}

// TextbookFast is the same algorithm as [Textbook], guarded by a
// [spinMutex] instead of [sync.Mutex] — the fast userspace mutex flavor
// selected by the "textbook_pl" strategy.
type TextbookFast[E any] struct {
	mu       spinMutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	buf      []E
	head     int
	count    int
	cap      int
	workDone bool
}

// NewTextbookFast creates a Textbook-algorithm queue guarded by a spinlock.
func NewTextbookFast[E any](capacity int) *TextbookFast[E] {
	q := &TextbookFast[E]{buf: make([]E, capacity), cap: capacity}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

func (q *TextbookFast[E]) Put(e E) {
	q.mu.Lock()
	for q.count >= q.cap {
		q.notFull.Wait()
	}
	q.push(e)
	q.notEmpty.Signal()
	q.mu.Unlock()
}

func (q *TextbookFast[E]) Take() (E, bool) {
	q.mu.Lock()
	for q.count == 0 {
		if q.workDone {
			q.mu.Unlock()
			var zero E
			return zero, false
		}
		q.notEmpty.Wait()
	}
	e := q.pop()
	q.notFull.Signal()
	q.mu.Unlock()
	return e, true
}

func (q *TextbookFast[E]) Drain() {
	q.mu.Lock()
	for q.count > 0 {
		q.notFull.Wait()
	}
	q.mu.Unlock()
}

func (q *TextbookFast[E]) Shutdown(int) {
	q.mu.Lock()
	q.workDone = true
	q.notEmpty.Broadcast()
	q.mu.Unlock()
}

func (q *TextbookFast[E]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *TextbookFast[E]) Capacity() int {
	return q.cap
}

func (q *TextbookFast[E]) push(e E) {
	tail := (q.head + q.count) % len(q.buf)
	q.buf[tail] = e
	q.count++
}

func (q *TextbookFast[E]) pop() E {
	e := q.buf[q.head]
	var zero E
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return e
}
