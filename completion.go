// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "sync"

// Completion is an atomic counter with wake-when-zero semantics, used to
// fan in the results of a batch of independently-running work items.
//
// A single Completion may receive several independent Expect/Notify
// batches over its lifetime; Wait only returns once the cumulative count
// has drained to zero. The count is allowed to rise and fall repeatedly —
// progress is not assumed to be monotone.
type Completion struct {
	mu    sync.Mutex
	cond  sync.Cond
	count int64
}

// NewCompletion creates a completion counter starting at zero.
func NewCompletion() *Completion {
	c := &Completion{}
	c.cond.L = &c.mu
	return c
}

// Expect adds k to the outstanding count. k may be negative, e.g. to
// cancel a speculative expectation that never actually started. Every
// call broadcasts, not just transitions to zero, so a caller blocked in
// WaitWhile on a predicate other than "this count is zero" still gets a
// chance to recheck it.
func (c *Completion) Expect(k int) {
	c.mu.Lock()
	c.count += int64(k)
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Notify subtracts one from the outstanding count, waking any waiters so
// they can recheck their condition.
func (c *Completion) Notify() {
	c.mu.Lock()
	c.count--
	c.cond.Broadcast()
	c.mu.Unlock()
}

// Wait blocks until the outstanding count reaches zero.
func (c *Completion) Wait() {
	c.mu.Lock()
	for c.count > 0 {
		c.cond.Wait()
	}
	c.mu.Unlock()
}

// Done reports whether the outstanding count is currently zero.
func (c *Completion) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count <= 0
}
