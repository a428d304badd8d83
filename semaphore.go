// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "time"

// semaphoreCapacity bounds the channel backing Semaphore.
//
// golang.org/x/sync/semaphore.Weighted was evaluated first, since it is
// already part of this ecosystem's dependency set, but its Acquire/Release
// pair is asymmetric: Release panics unless a matching Acquire already
// reserved the capacity. Several users of Semaphore here post before any
// wait ever occurs (ThreadPool's usedSlots starts at zero and is posted by
// a producer before a worker ever waits on it), which Weighted cannot
// express. A buffered channel gives the same wait/trywait/timeout surface
// without that constraint, so Semaphore is built on one directly.
const semaphoreCapacity = 1 << 24

// Semaphore is a classic counting semaphore: a non-negative counter with
// blocking decrement, non-blocking decrement, and increment-plus-wake.
//
// FIFO ordering among waiters is not guaranteed. Destroying a Semaphore
// while goroutines are blocked on it is undefined.
type Semaphore struct {
	tokens chan struct{}
}

// NewSemaphore creates a semaphore with the given initial count.
// initial must be >= 0; a negative initial count is a BadConfig error.
func NewSemaphore(initial int) *Semaphore {
	if initial < 0 {
		badConfig("semaphore initial count must be >= 0")
	}
	s := &Semaphore{tokens: make(chan struct{}, semaphoreCapacity)}
	for range initial {
		s.tokens <- struct{}{}
	}
	return s
}

// Wait blocks until the count is positive, then decrements it.
func (s *Semaphore) Wait() {
	<-s.tokens
}

// WaitTimeout blocks until the count is positive or the timeout elapses.
// A non-positive timeout means "forever". Returns true if it decremented
// the count, false if it timed out with the count unchanged.
func (s *Semaphore) WaitTimeout(timeout time.Duration) bool {
	if timeout <= 0 {
		s.Wait()
		return true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.tokens:
		return true
	case <-timer.C:
		return false
	}
}

// TryWait decrements the count and returns true if it was positive,
// otherwise returns false immediately without blocking.
func (s *Semaphore) TryWait() bool {
	select {
	case <-s.tokens:
		return true
	default:
		return false
	}
}

// Len returns a snapshot of the current count. The value may be stale by
// the time the caller observes it; it is meant for heuristics such as
// deciding whether to grow a worker pool, not for correctness.
func (s *Semaphore) Len() int {
	return len(s.tokens)
}

// Post increments the count, waking at most one blocked waiter if any.
func (s *Semaphore) Post() {
	select {
	case s.tokens <- struct{}{}:
	default:
		// Practically unreachable: semaphoreCapacity bounds every
		// post/wait pair used by this package's own components far
		// below the channel's buffer size.
		panic("corepool: semaphore post overflow")
	}
}
