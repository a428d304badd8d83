// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// For Enqueue: the queue is full (backpressure).
// For Dequeue: the queue is empty (no data available).
//
// ErrWouldBlock is a control flow signal, not a failure. The caller should
// retry the operation later (with backoff) rather than propagating the
// error. This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrNotRunning is returned by submission APIs when the pool or executor
// has not been started, or has already been stopped.
var ErrNotRunning = errors.New("corepool: not running")

// ErrQueueFull is returned by ThreadPool.TryExecute when no free slot is
// available, and by the submission calls when the shared queue rejects an
// item. No submission call waits for a free slot with a timeout: Execute
// blocks until a slot is free.
var ErrQueueFull = errors.New("corepool: queue full")

// ErrNoPool is returned when a TaskGroup is constructed without an explicit
// pool and no pool is registered as the process-wide current pool (see
// CurrentPool).
var ErrNoPool = errors.New("corepool: no thread pool associated")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// badConfig panics with a BadConfig diagnostic. Bad configuration (a zero
// barrier threshold, a non-power-of-two deque size, a negative capacity) is
// a programmer error detected at construction time; it is not recoverable
// and is not reported through an error return, matching the convention the
// rest of this package uses for constructor arguments.
func badConfig(msg string) {
	panic("corepool: bad config: " + msg)
}
