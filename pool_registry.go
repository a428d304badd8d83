// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "sync/atomic"

// currentPool substitutes for the thread-local "pool this worker belongs
// to" pointer the original carries per OS thread. Go has no goroutine-local
// storage, so instead every worker goroutine is handed its own pool
// reference directly at spawn time; this package-level pointer only tracks
// the most recently started pool on the process, for callers (outside of
// any worker goroutine) that want a process-wide default without carrying
// an explicit *ThreadPool value through their call chain.
var currentPool atomic.Pointer[ThreadPool]

// CurrentPool returns the most recently started ThreadPool on this
// process, or nil if none has been started yet. Unlike the original's
// per-thread association, this is a single process-wide slot: it is
// meant for simple single-pool programs, not as a reliable way to find
// "the pool running the calling goroutine" when multiple pools coexist.
func CurrentPool() *ThreadPool {
	return currentPool.Load()
}

// adopt records p as the current process-wide pool.
func (p *ThreadPool) adopt() {
	currentPool.Store(p)
}

// abdicate clears the current-pool slot if it still points at p.
func (p *ThreadPool) abdicate() {
	currentPool.CompareAndSwap(p, nil)
}
