// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"time"

	"code.hybscloud.com/atomix"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Pool lifecycle states, matching the three-valued running field of the
// original: poolIdle before Start and after Stop, poolActive while workers
// may be submitted to and drained, poolReconfiguring while Start or Stop
// holds exclusive control of the worker set. The Set* sizing calls do not
// change the state; they store their value directly.
const (
	poolIdle int32 = iota
	poolActive
	poolReconfiguring
)

const defaultExpiration = 30 * time.Second

// ThreadPool is an elastic pool of worker goroutines draining a shared
// bounded queue of Runnable work items.
//
// The worker count grows on demand up to a maximum and shrinks back to a
// minimum after workers sit idle past an expiration, mirroring the
// original's startWorker/idle-timeout pair. freeSlots and usedSlots are
// the same paired-semaphore idiom ParallelExecutor's per-worker ring uses
// in workpacket.go, applied here to the one shared queue instead of one
// ring per worker.
type ThreadPool struct {
	queue *MPMC[Runnable]

	freeSlots *Semaphore // counts slots the shared queue has free
	usedSlots *Semaphore // counts items currently queued, awaits a worker
	farewell  *Semaphore // posted by the worker whose exit leaves none alive

	outstanding *Completion // outstanding submitted-but-not-finished items

	running atomix.Int32

	workers atomix.Int64 // goroutines currently alive
	started atomix.Int64 // goroutines spawned and not yet exited

	minThreads atomix.Int64
	maxThreads atomix.Int64
	expiration atomix.Int64 // nanoseconds; 0 means no idle expiration

	metrics *metricz.Registry
	tracer  *tracez.Tracer
}

// NewThreadPool creates a pool whose shared queue holds up to capacity
// items. The pool is idle until Start is called.
func NewThreadPool(capacity int) *ThreadPool {
	if capacity < 2 {
		badConfig("thread pool capacity must be >= 2")
	}
	p := &ThreadPool{
		queue:       NewMPMC[Runnable](capacity),
		freeSlots:   NewSemaphore(roundToPow2(capacity)),
		usedSlots:   NewSemaphore(0),
		farewell:    NewSemaphore(0),
		outstanding: NewCompletion(),
	}
	p.metrics, p.tracer = newPoolObservability()
	p.maxThreads.StoreRelaxed(1)
	p.expiration.StoreRelaxed(int64(defaultExpiration))
	return p
}

// SetMinimumThreads sets the worker count the pool never shrinks below.
// May be called at any time; takes effect for workers expiring after the
// call returns.
func (p *ThreadPool) SetMinimumThreads(n int) {
	p.minThreads.StoreRelease(int64(n))
}

// SetMaximumThreads sets the worker count the pool never grows beyond.
// Clamped to be no lower than the current minimum.
func (p *ThreadPool) SetMaximumThreads(n int) {
	if int64(n) < p.minThreads.LoadAcquire() {
		n = int(p.minThreads.LoadAcquire())
	}
	p.maxThreads.StoreRelease(int64(n))
}

// SetExpiration sets how long a worker above the minimum sits idle before
// exiting. Zero disables expiration: workers above the minimum never
// shrink on their own.
func (p *ThreadPool) SetExpiration(d time.Duration) {
	p.expiration.StoreRelease(int64(d))
}

// Start transitions the pool from idle to active and spawns n worker
// goroutines, clamped between the configured minimum and maximum. Start
// on an already-active or reconfiguring pool is a no-op and returns 0.
// Returns the number of workers spawned.
func (p *ThreadPool) Start(n int) int {
	if !p.running.CompareAndSwapAcqRel(poolIdle, poolReconfiguring) {
		return 0
	}
	if min := int(p.minThreads.LoadAcquire()); n < min {
		n = min
	}
	if max := int(p.maxThreads.LoadAcquire()); max > 0 && n > max {
		n = max
	}
	if n < 1 {
		n = 1
	}
	for range n {
		p.startWorker()
	}
	p.adopt()
	p.running.StoreRelease(poolActive)
	p.metrics.Gauge(PoolWorkersCurrent).Set(float64(n))
	return n
}

// startWorker spawns one worker goroutine, bumping started and workers.
func (p *ThreadPool) startWorker() {
	p.started.AddAcqRel(1)
	n := p.workers.AddAcqRel(1)
	p.metrics.Gauge(PoolWorkersCurrent).Set(float64(n))
	go p.runWorker()
}

// runWorker is a worker goroutine's whole lifetime: wait for work or an
// idle timeout, run what arrives, exit on a shutdown sentinel or, if the
// pool has more workers than its configured minimum, on idle timeout.
//
// Whichever exit path a worker takes, the deferred cleanup decrements
// workers and, if that decrement is the one that brings the live count to
// zero, posts farewell exactly once. Farewell cannot be tied to "this
// worker consumed a sentinel": a surplus worker is equally likely to exit
// via the idle-timeout path, never touching a sentinel at all, and Stop
// needs to learn about that exit too.
func (p *ThreadPool) runWorker() {
	defer func() {
		p.started.AddAcqRel(-1)
		n := p.workers.AddAcqRel(-1)
		p.metrics.Gauge(PoolWorkersCurrent).Set(float64(n))
		if n == 0 {
			p.farewell.Post()
		}
	}()
	for {
		timeout := time.Duration(p.expiration.LoadAcquire())
		if !p.usedSlots.WaitTimeout(timeout) {
			if timeout > 0 && p.workers.LoadAcquire() > p.minThreads.LoadAcquire() {
				return
			}
			continue
		}

		r, err := p.dequeue()
		if err != nil {
			// Paired semaphore accounting guarantees an item is present;
			// a transient ErrWouldBlock here means another worker's
			// repair advanced past this one. Return the reservation and
			// retry.
			p.usedSlots.Post()
			continue
		}
		p.freeSlots.Post()

		if r == nil {
			return
		}
		p.traceRunnable(r)
	}
}

// dequeue retries MPMC.Dequeue a bounded number of times to absorb the
// rare transient ErrWouldBlock its own internal contention repair can
// produce even when usedSlots guarantees an item is queued.
func (p *ThreadPool) dequeue() (Runnable, error) {
	const retries = 64
	for range retries {
		r, err := p.queue.Dequeue()
		if err == nil {
			return r, nil
		}
	}
	return nil, ErrWouldBlock
}

// Execute enqueues r for a worker to run, blocking until a slot is free.
// Returns ErrNotRunning if the pool is not currently active.
func (p *ThreadPool) Execute(r Runnable) error {
	if r == nil {
		badConfig("nil runnable")
	}
	if p.running.LoadAcquire() != poolActive {
		return ErrNotRunning
	}
	p.freeSlots.Wait()
	if err := p.enqueue(r); err != nil {
		p.freeSlots.Post()
		return err
	}
	return nil
}

// TryExecute behaves like Execute but never blocks: it fails immediately
// if the queue has no free slot.
func (p *ThreadPool) TryExecute(r Runnable) error {
	if r == nil {
		badConfig("nil runnable")
	}
	if p.running.LoadAcquire() != poolActive {
		return ErrNotRunning
	}
	if !p.freeSlots.TryWait() {
		return ErrQueueFull
	}
	if err := p.enqueue(r); err != nil {
		p.freeSlots.Post()
		return err
	}
	return nil
}

// ExecuteAndRun behaves like Execute, except that when the pool is not
// active it runs r on the calling goroutine instead of failing. When the
// pool is active, the submitter assists draining the queue (the same way
// a worker would) until nothing is immediately available to claim, then
// returns, matching the original's executeAndRun looping until the queue
// empties.
func (p *ThreadPool) ExecuteAndRun(r Runnable) (int32, error) {
	if r == nil {
		badConfig("nil runnable")
	}
	if p.running.LoadAcquire() != poolActive {
		return r.Run()
	}
	if err := p.Execute(r); err != nil {
		return r.Run()
	}
	for p.assist() {
	}
	return 0, nil
}

// ExecuteAndRunWhile behaves like ExecuteAndRun, except that after a
// successful submission the caller assists draining until pred returns
// false rather than until the queue is merely empty, matching the
// original's executeAndRunWhile.
func (p *ThreadPool) ExecuteAndRunWhile(r Runnable, pred func() bool) (int32, error) {
	if r == nil {
		badConfig("nil runnable")
	}
	if p.running.LoadAcquire() != poolActive {
		return r.Run()
	}
	if err := p.Execute(r); err != nil {
		return r.Run()
	}
	p.WaitWhile(pred)
	return 0, nil
}

// assist claims and runs one queued item inline, with the same
// reservation/replenish/execute accounting a worker uses, so a submitter
// can make progress on a backlog even when every worker is busy. Returns
// false when there is nothing immediately available to claim.
//
// A dequeued shutdown sentinel is not this caller's to consume — it is
// meant to release a worker goroutine, not a submitter — so it is pushed
// back onto the queue for a worker to find instead.
func (p *ThreadPool) assist() bool {
	if !p.usedSlots.TryWait() {
		return false
	}
	r, err := p.dequeue()
	if err != nil {
		p.usedSlots.Post()
		return false
	}
	if r == nil {
		_ = p.queue.Enqueue(new(Runnable))
		p.usedSlots.Post()
		return false
	}
	p.freeSlots.Post()
	p.traceRunnable(r)
	return true
}

// enqueue pushes r onto the shared queue and records one outstanding item.
func (p *ThreadPool) enqueue(r Runnable) error {
	if err := p.queue.Enqueue(&r); err != nil {
		return ErrQueueFull
	}
	p.outstanding.Expect(1)
	p.metrics.Counter(PoolTasksSubmittedTotal).Inc()
	p.usedSlots.Post()
	p.maybeGrow()
	return nil
}

// maybeGrow starts one additional worker when the queued backlog exceeds
// the current worker count and the pool is below its configured maximum.
// This is the submitter-side half of the elastic sizing: startWorker is
// also called eagerly by Start, and the idle-timeout path in runWorker
// shrinks back down. usedSlots.Len() is a stale-allowed snapshot, so two
// submitters can race this check and spawn more than one extra worker for
// a single backlog spike; the pool tolerates the overshoot and lets the
// idle-timeout path shrink it back.
func (p *ThreadPool) maybeGrow() {
	if p.running.LoadAcquire() != poolActive {
		return
	}
	workers := p.workers.LoadAcquire()
	if workers >= p.maxThreads.LoadAcquire() {
		return
	}
	if int64(p.usedSlots.Len()) <= workers {
		return
	}
	p.startWorker()
}

// Wait blocks until every item submitted so far has finished running,
// assisting by running queued items itself while any remain immediately
// claimable, then blocking on the remainder still in a worker's hands.
func (p *ThreadPool) Wait() {
	for p.assist() {
	}
	p.outstanding.Wait()
}

// WaitDone reports whether every submitted item has finished, without
// blocking.
func (p *ThreadPool) WaitDone() bool {
	return p.outstanding.Done()
}

// WaitWhile blocks until pred returns false, assisting by running queued
// items itself between checks so a backlog the caller is waiting on can
// drain even if every worker is busy. When nothing is immediately
// claimable, it falls back to blocking on the completion's condition
// variable until an Expect or Notify elsewhere may have changed pred's
// outcome. pred is called with no lock held by the caller, but ThreadPool
// itself holds its completion lock while invoking it, so pred must not
// call back into ThreadPool.
func (p *ThreadPool) WaitWhile(pred func() bool) {
	for pred() {
		if p.assist() {
			continue
		}
		p.outstanding.mu.Lock()
		if pred() {
			p.outstanding.cond.Wait()
		}
		p.outstanding.mu.Unlock()
	}
}

// Stop drains outstanding work, then pushes shutdown sentinels until
// every worker has exited, and returns the pool to idle. Stop on an idle
// or reconfiguring pool is a no-op.
//
// A live worker count snapshotted once, before pushing that many
// sentinels, is unsound: a surplus worker can idle-time-out in the
// window between the snapshot and its sentinel arriving, consuming none
// of the pushed sentinels and posting no acknowledgement of its own.
// Instead this loop keeps pushing sentinels, one at a time, for as long
// as the live worker count is still positive, and farewell is waited on
// at most once: runWorker's own exit path posts it exactly once, from
// whichever worker's exit happens to bring the count to zero, regardless
// of whether that worker left via a sentinel or an idle timeout. Any
// sentinel left unconsumed because its intended recipient took the
// idle-timeout path instead is drained off afterward.
func (p *ThreadPool) Stop() {
	if !p.running.CompareAndSwapAcqRel(poolActive, poolReconfiguring) {
		return
	}
	p.outstanding.Wait()

	hadWorkers := p.workers.LoadAcquire() > 0
	for p.workers.LoadAcquire() > 0 {
		p.freeSlots.Wait()
		_ = p.queue.Enqueue(new(Runnable))
		p.usedSlots.Post()
	}
	if hadWorkers {
		p.farewell.Wait()
	}

	for p.usedSlots.TryWait() {
		r, err := p.dequeue()
		if err != nil {
			p.usedSlots.Post()
			continue
		}
		p.freeSlots.Post()
		if r != nil {
			// Should not happen: every real item was already drained by
			// outstanding.Wait above. Absorb defensively rather than
			// dropping it silently.
			p.traceRunnable(r)
		}
	}

	p.metrics.Gauge(PoolWorkersCurrent).Set(0)
	p.abdicate()
	p.running.StoreRelease(poolIdle)
}

// Active reports whether the pool is currently accepting submissions.
func (p *ThreadPool) Active() bool {
	return p.running.LoadAcquire() == poolActive
}

// Workers returns the number of worker goroutines currently alive.
func (p *ThreadPool) Workers() int {
	return int(p.workers.LoadAcquire())
}
