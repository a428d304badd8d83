// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "code.hybscloud.com/atomix"

// SpscRing is a bounded single-producer/single-consumer ring buffer.
//
// Based on Lamport's ring buffer with cached index optimization: the
// producer caches the consumer's read index, and vice versa, reducing
// cross-core cache line traffic on the common path.
//
// Exactly one goroutine may call Push; exactly one goroutine may call Pop
// and Peek. Violating this constraint is undefined behavior, as with any
// SPSC data structure in this package.
//
// ParallelExecutor gives each worker a private SpscRing[WorkPacket[T]]:
// the dispatching goroutine is the sole producer and the worker is the
// sole consumer, which is exactly the access pattern this type requires.
type SpscRing[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer reads from here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// NewSpscRing creates a new SpscRing with the given size.
//
// Size rounds up to the next power of 2. A power of two lets index
// wraparound use a mask instead of a modulo, so this constructor rounds up
// rather than special-casing an odd-size path.
func NewSpscRing[T any](size int) *SpscRing[T] {
	if size < 2 {
		panic("corepool: capacity must be >= 2")
	}
	n := uint64(roundToPow2(size))
	return &SpscRing[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Cap returns the ring's capacity.
func (q *SpscRing[T]) Cap() int {
	return int(q.mask + 1)
}

// Push adds an element to the ring (producer only).
// Returns false only when the ring is full.
func (q *SpscRing[T]) Push(item T) bool {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return false
		}
	}
	q.buffer[tail&q.mask] = item
	q.tail.StoreRelease(tail + 1)
	return true
}

// Pop removes and returns the head-of-line element (consumer only).
// Returns false only when the ring is empty; *out is left untouched.
func (q *SpscRing[T]) Pop(out *T) bool {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			return false
		}
	}
	var zero T
	*out = q.buffer[head&q.mask]
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return true
}

// Peek reads the head-of-line element without removing it (consumer only).
// Returns false only when the ring is empty.
func (q *SpscRing[T]) Peek(out *T) bool {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			return false
		}
	}
	*out = q.buffer[head&q.mask]
	return true
}

// Resize changes the ring's capacity.
//
// Resize is permitted only while quiesced: the caller must guarantee no
// concurrent Push/Pop/Peek is in flight. Any elements still queued are
// discarded; a live resize has no well-defined meaning for a lock-free
// ring.
func (q *SpscRing[T]) Resize(size int) {
	if size < 2 {
		panic("corepool: capacity must be >= 2")
	}
	n := uint64(roundToPow2(size))
	q.buffer = make([]T, n)
	q.mask = n - 1
	q.head.StoreRelaxed(0)
	q.tail.StoreRelaxed(0)
	q.cachedHead = 0
	q.cachedTail = 0
}
