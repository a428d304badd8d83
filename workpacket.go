// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

// WorkPacket is the element type queued in a ParallelExecutor worker's
// per-worker ring: a shared callable, the argument for this particular
// invocation, and an optional completion to notify afterward.
//
// A WorkPacket with a nil Task is the shutdown sentinel: a worker that
// pops one exits its run loop instead of invoking anything.
type WorkPacket[A any] struct {
	Task       Task[A]
	Arg        A
	Completion *Completion
}

// isSentinel reports whether p is the shutdown sentinel.
func (p WorkPacket[A]) isSentinel() bool {
	return p.Task == nil
}

// workerQueue pairs a SpscRing with an empty-cells/filled-cells semaphore
// protocol: the dispatching goroutine fails fast (via tryPush) when the
// ring is full, and a worker blocks on pop until a packet, or the
// shutdown sentinel, is available.
type workerQueue[A any] struct {
	ring        *SpscRing[WorkPacket[A]]
	emptyCells  *Semaphore // counts free slots
	filledCells *Semaphore // counts queued packets
}

func newWorkerQueue[A any](slots int) *workerQueue[A] {
	ring := NewSpscRing[WorkPacket[A]](slots)
	return &workerQueue[A]{
		ring:        ring,
		emptyCells:  NewSemaphore(ring.Cap()),
		filledCells: NewSemaphore(0),
	}
}

// tryPush attempts to enqueue a packet without blocking. Returns false if
// the ring has no free slot.
func (q *workerQueue[A]) tryPush(p WorkPacket[A]) bool {
	if !q.emptyCells.TryWait() {
		return false
	}
	if !q.ring.Push(p) {
		// Accounting invariant violated; should be unreachable since
		// emptyCells never exceeds the ring's free-slot count.
		q.emptyCells.Post()
		return false
	}
	q.filledCells.Post()
	return true
}

// pop blocks until a packet (possibly the sentinel) is available.
func (q *workerQueue[A]) pop() WorkPacket[A] {
	q.filledCells.Wait()
	var p WorkPacket[A]
	q.ring.Pop(&p)
	q.emptyCells.Post()
	return p
}
