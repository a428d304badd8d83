// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corepool provides a small concurrency substrate: wait/signal
// primitives, two lock-free queues, and two goroutine pools built on top
// of them.
//
// # Layers
//
// L0, synchronization primitives:
//
//	Semaphore  - classic counting semaphore
//	Barrier    - reusable rendezvous point for a fixed number of goroutines
//	Completion - counter with wake-when-zero semantics
//
// L1, lock-free queues:
//
//	SpscRing[T]       - bounded single-producer single-consumer ring buffer
//	WorkStealDeque[T]  - Chase-Lev work-stealing deque
//	MPMC[T]            - FAA-based multi-producer multi-consumer queue (SCQ)
//
// L2, goroutine pools built from the above:
//
//	ThreadPool       - elastic pool of workers draining a shared MPMC queue
//	TaskGroup        - tracks a batch of work submitted to a ThreadPool
//	ParallelExecutor - fixed-size, per-worker-ring data-parallel dispatcher
//
// # Quick Start
//
//	pool := corepool.NewThreadPool(1024)
//	pool.SetMinimumThreads(2)
//	pool.SetMaximumThreads(8)
//	pool.Start(2)
//	defer pool.Stop()
//
//	err := pool.Execute(corepool.RunnableFunc(func() (int32, error) {
//	    process(item)
//	    return 0, nil
//	}))
//	if err != nil {
//	    // ErrNotRunning or ErrQueueFull
//	}
//	pool.Wait()
//
// # Waiting for a Batch
//
// TaskGroup tracks a subset of a pool's work independently of everything
// else the pool is running:
//
//	group, err := corepool.NewTaskGroup(pool)
//	for _, item := range items {
//	    item := item
//	    group.Execute(corepool.RunnableFunc(func() (int32, error) {
//	        process(item)
//	        return 0, nil
//	    }))
//	}
//	group.Wait()
//
// # Data-Parallel Dispatch
//
// ParallelExecutor spreads a batch of invocations of one Task across a
// fixed set of worker goroutines, round-robin, each worker draining its
// own ring instead of contending on one shared queue:
//
//	exec := corepool.NewParallelExecutor()
//	exec.Start(4, 256)
//	defer exec.Stop()
//
//	task := corepool.TaskFunc[int](func(i int) { process(items[i]) })
//	exec.Execute(task, len(items), 0)
//
// # Error Handling
//
// [ErrWouldBlock] is sourced from [code.hybscloud.com/iox] for ecosystem
// consistency with the queue types' backpressure signaling. [ErrNotRunning]
// and [ErrQueueFull] cover ThreadPool's submission failures; [ErrNoPool]
// covers constructing a TaskGroup with no pool available.
//
//	corepool.IsWouldBlock(err)  // true if a queue is full/empty
//	corepool.IsSemantic(err)    // true if a control-flow signal
//	corepool.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// Construction-time misconfiguration (a negative semaphore count, a
// sub-minimum capacity, a zero barrier threshold) panics rather than
// returning an error, matching the rest of this ecosystem's BadConfig
// convention.
//
// # Race Detection
//
// As with any lock-free algorithm, Go's race detector cannot observe
// happens-before relationships established purely through atomic
// acquire-release orderings. [RaceEnabled] reports whether the detector is
// active; the package's tests carry no race build tag and do not consult it.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, [code.hybscloud.com/spin] for CPU pause instructions, and
// [github.com/zoobzio/metricz] / [github.com/zoobzio/tracez] for
// ThreadPool's optional metrics and tracing.
package corepool
