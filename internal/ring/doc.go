// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring provides the two non-blocking queue backends that the
// bounded queue package builds on: a lock-free MPMC ring (an adapter over
// [code.hybscloud.com/lfq]'s MPMC) and an unbounded channel.
//
// Both backends implement [NonBlocking], a try-enqueue/try-dequeue pair
// that never blocks:
//
//	var nb ring.NonBlocking[Job]
//	nb = ring.NewMPMC[Job](1024)   // fixed capacity, lock-free
//	nb = ring.NewChannel[Job]()    // unbounded, mutex-guarded slice
//
// [MPMC] additionally implements [Drainer]: call Drain once producers have
// finished so consumers can empty the ring without lfq's
// livelock-prevention threshold kicking in.
//
// Neither backend blocks a caller. The bounded queue package layers put/
// take/drain/shutdown semantics with condition-variable waits on top of
// these non-blocking primitives.
package ring
