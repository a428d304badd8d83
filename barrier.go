// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "sync"

// Barrier is a reusable rendezvous point for a fixed number of participants.
//
// Grounded on the classic generation-counted barrier: threshold T, a
// counter that starts at T and counts down to zero, and a generation
// number that advances every time the counter reaches zero. A participant
// is never released before exactly T arrivals at its own generation.
type Barrier struct {
	mu         sync.Mutex
	cond       sync.Cond
	threshold  uint32
	counter    uint32
	generation uint64
}

// NewBarrier creates a barrier for the given number of participants.
// threshold must be >= 1; zero is a BadConfig error.
func NewBarrier(threshold uint32) *Barrier {
	if threshold < 1 {
		badConfig("barrier threshold must be >= 1")
	}
	b := &Barrier{threshold: threshold, counter: threshold}
	b.cond.L = &b.mu
	return b
}

// Wait blocks until threshold participants have called Wait at the
// current generation. The call that causes the count to reach zero
// returns true and releases all others, which return false. The barrier
// is immediately reusable afterward: the generation advances and the
// counter resets to threshold.
func (b *Barrier) Wait() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.counter--
	if b.counter == 0 {
		b.counter = b.threshold
		b.generation++
		b.cond.Broadcast()
		return true
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	return false
}
