package queue

import (
	"sync"

	"code.hybscloud.com/atomix"

	"github.com/voidland/turngrille/internal/ring"
)

// core is the non-blocking capability a Hybrid queue is built over.
type core[E any] interface {
	TryEnqueue(e E) error
	TryDequeue() (E, error)
}

// Hybrid is the mostly non-blocking queue variant: when the queue is
// neither empty nor full, the queue's own mutex is never taken — Put/Take
// reduce to the backend's try-operation plus an atomic size update. Only
// the boundary transitions (crossing empty or full) touch that mutex. The
// unbounded channel backend guards its buffer with a mutex of its own.
//
// Two backends instantiate this shell: [NewHybridRing] over the bounded
// lock-free ring (the "concurrent" strategy) and [NewHybridChannel] over
// the unbounded channel (the "async_mpmc" strategy). The boundary-wait
// bookkeeping below is identical either way.
type Hybrid[E any] struct {
	backend core[E]
	drainer ring.Drainer // nil for the unbounded channel backend

	size atomix.Int64
	cap  int

	mu               sync.Mutex
	workDone         bool
	notFull          *sync.Cond
	notEmpty         *sync.Cond
	empty            *sync.Cond
	aProducerWaiting atomix.Bool
	aConsumerWaiting atomix.Bool
}

func newHybrid[E any](backend core[E], cap int) *Hybrid[E] {
	q := &Hybrid[E]{backend: backend, cap: cap}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	q.empty = sync.NewCond(&q.mu)
	if d, ok := backend.(ring.Drainer); ok {
		q.drainer = d
	}
	return q
}

// NewHybridRing creates a Hybrid queue backed by the bounded lock-free ring.
func NewHybridRing[E any](capacity int) *Hybrid[E] {
	return newHybrid[E](ring.NewMPMC[E](capacity), capacity)
}

// NewHybridChannel creates a Hybrid queue backed by the unbounded channel.
// capacity is used only for Capacity reporting and the Put boundary check;
// the backend itself never refuses a TryEnqueue.
func NewHybridChannel[E any](capacity int) *Hybrid[E] {
	return newHybrid[E](ring.NewChannel[E](), capacity)
}

func (q *Hybrid[E]) Put(e E) {
	for q.size.LoadAcquire() >= int64(q.cap) {
		q.mu.Lock()
		for q.size.LoadAcquire() >= int64(q.cap) {
			q.aProducerWaiting.StoreRelease(true)
			q.notFull.Wait()
		}
		q.mu.Unlock()
	}

	for {
		if err := q.backend.TryEnqueue(e); err == nil {
			break
		}
		// Lost the race with a drain after the size check above; retry
		// the boundary wait.
		for q.size.LoadAcquire() >= int64(q.cap) {
			q.mu.Lock()
			for q.size.LoadAcquire() >= int64(q.cap) {
				q.aProducerWaiting.StoreRelease(true)
				q.notFull.Wait()
			}
			q.mu.Unlock()
		}
	}

	q.size.AddAcqRel(1)

	if q.aConsumerWaiting.CompareAndSwapAcqRel(true, false) {
		q.mu.Lock()
		q.notEmpty.Broadcast()
		q.mu.Unlock()
	}
}

func (q *Hybrid[E]) Take() (E, bool) {
	if e, err := q.backend.TryDequeue(); err == nil {
		return q.afterTake(e)
	}

	q.mu.Lock()
	for {
		if e, err := q.backend.TryDequeue(); err == nil {
			q.mu.Unlock()
			return q.afterTake(e)
		}
		if q.workDone {
			q.mu.Unlock()
			var zero E
			return zero, false
		}
		q.aConsumerWaiting.StoreRelease(true)
		q.notEmpty.Wait()
	}
}

func (q *Hybrid[E]) afterTake(e E) (E, bool) {
	newSize := q.size.AddAcqRel(-1)

	if q.aProducerWaiting.CompareAndSwapAcqRel(true, false) {
		q.mu.Lock()
		q.notFull.Broadcast()
		q.mu.Unlock()
	}
	if newSize == 0 {
		q.mu.Lock()
		q.empty.Signal()
		q.mu.Unlock()
	}
	return e, true
}

func (q *Hybrid[E]) Drain() {
	q.mu.Lock()
	for q.size.LoadAcquire() > 0 {
		// Unblock any consumer that may have missed a wakeup before
		// parking again ourselves.
		q.notEmpty.Broadcast()
		q.empty.Wait()
	}
	q.mu.Unlock()
	if q.drainer != nil {
		q.drainer.Drain()
	}
}

func (q *Hybrid[E]) Shutdown(int) {
	q.mu.Lock()
	q.workDone = true
	q.notEmpty.Broadcast()
	q.mu.Unlock()
}

func (q *Hybrid[E]) Size() int {
	return int(q.size.LoadRelaxed())
}

func (q *Hybrid[E]) Capacity() int {
	return q.cap
}
