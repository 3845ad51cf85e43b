// Package queue provides bounded multi-producer/multi-consumer queues with
// a producer-consumer termination protocol on top.
//
// All variants implement [Bounded]: Put blocks while full, Take blocks
// while empty and returns ok=false once Shutdown has been observed and the
// queue has drained, Drain blocks until the queue is empty, and Shutdown
// marks the queue terminated and wakes every waiter.
//
//	q := queue.NewTextbook[Job](1024)
//	go func() {
//	    for _, j := range jobs {
//	        q.Put(j)
//	    }
//	}()
//	q.Drain()
//	q.Shutdown(consumerCount)
//
// Four variants trade off contention behavior for the same contract:
// [Textbook] (mutex + two condition variables), [TextbookFast] (the same
// algorithm behind a spinlock instead of [sync.Mutex]), [Hybrid] (a
// non-blocking ring or channel core with condition-variable waits only at
// the empty/full boundary), and [Channel] (a bounded Go channel carrying
// its own end-of-stream sentinels).
package queue
