// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "sync"

// ParallelExecutor is a fixed-size data-parallel dispatcher: each of its N
// worker goroutines owns one ring, and a batch of argc invocations of the
// same Task is round-robined across those rings starting at a caller-
// chosen index, rather than funneled through one shared queue the way
// ThreadPool is.
//
// Grounded on FXConcurrent/FXWorkQueue: each worker's ring is paired with
// its own empty-cells/filled-cells semaphores (workerQueue in
// workpacket.go), so a slow worker only ever backs up its own ring, never
// the others.
type ParallelExecutor struct {
	mu      sync.Mutex
	cond    sync.Cond
	queues  []*workerQueue[any]
	running bool
	started int
	stopped int
}

// NewParallelExecutor creates an executor with no workers. Call Start to
// spawn its worker goroutines.
func NewParallelExecutor() *ParallelExecutor {
	pe := &ParallelExecutor{}
	pe.cond.L = &pe.mu
	return pe
}

// Start spawns threadCount worker goroutines, each with a ring of the
// given slot capacity, and blocks until all of them have registered.
// Start on an already-running executor is a no-op and returns 0.
func (pe *ParallelExecutor) Start(threadCount, slotSize int) int {
	pe.mu.Lock()
	if pe.running {
		pe.mu.Unlock()
		return 0
	}
	if threadCount < 1 {
		threadCount = 1
	}
	pe.queues = make([]*workerQueue[any], 0, threadCount)
	pe.running = true
	pe.started = 0
	pe.stopped = 0
	pe.mu.Unlock()

	for range threadCount {
		go pe.runWorker(slotSize)
	}

	pe.mu.Lock()
	for pe.started < threadCount {
		pe.cond.Wait()
	}
	pe.mu.Unlock()
	return threadCount
}

func (pe *ParallelExecutor) runWorker(slotSize int) {
	wq := newWorkerQueue[any](slotSize)

	pe.mu.Lock()
	pe.queues = append(pe.queues, wq)
	pe.started++
	pe.cond.Broadcast()
	pe.mu.Unlock()

	for {
		pkt := wq.pop()
		if pkt.isSentinel() {
			break
		}
		pe.runPacket(pkt)
	}

	pe.mu.Lock()
	pe.stopped++
	pe.cond.Broadcast()
	pe.mu.Unlock()
}

func (pe *ParallelExecutor) runPacket(pkt WorkPacket[any]) {
	defer func() {
		recover()
		if pkt.Completion != nil {
			pkt.Completion.Notify()
		}
	}()
	pkt.Task.Exec(pkt.Arg)
}

// Active reports whether the executor currently has running workers.
func (pe *ParallelExecutor) Active() bool {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	return pe.running
}

// Workers returns the number of worker goroutines Start spawned.
func (pe *ParallelExecutor) Workers() int {
	pe.mu.Lock()
	defer pe.mu.Unlock()
	return len(pe.queues)
}

// dispatch round-robins argc invocations of task across the worker rings
// starting at startIndex, computing each invocation's argument with arg.
// If completion is non-nil, it is incremented by argc up front and then
// corrected by (dispatched-argc) once the attempt finishes, so a caller
// waiting on completion only waits for invocations that actually started.
// Returns the number of invocations actually dispatched.
func (pe *ParallelExecutor) dispatch(task Task[any], argc, startIndex int, completion *Completion, arg func(i int) any) int {
	pe.mu.Lock()
	n := len(pe.queues)
	running := pe.running
	pe.mu.Unlock()

	if !running || n == 0 || task == nil {
		return 0
	}
	if completion != nil {
		completion.Expect(argc)
	}

	dispatched := 0
	for i := range argc {
		idx := (startIndex + i) % n
		pkt := WorkPacket[any]{Task: task, Arg: arg(i), Completion: completion}
		if pe.queues[idx].tryPush(pkt) {
			dispatched++
		}
	}
	if completion != nil {
		completion.Expect(dispatched - argc)
	}
	return dispatched
}

// Execute dispatches task across argc invocations, invocation i receiving
// i itself as its argument, round-robining starting at startIndex.
func (pe *ParallelExecutor) Execute(task Task[int], argc, startIndex int) int {
	return pe.dispatch(adaptIntTask(task), argc, startIndex, nil, func(i int) any { return i })
}

// ExecuteCompletion behaves like Execute, attaching completion to every
// dispatched invocation so a caller can Wait for just this batch.
func (pe *ParallelExecutor) ExecuteCompletion(completion *Completion, task Task[int], argc, startIndex int) int {
	return pe.dispatch(adaptIntTask(task), argc, startIndex, completion, func(i int) any { return i })
}

// ExecuteArgs dispatches task across len(argv) invocations, invocation i
// receiving argv[i], round-robining starting at startIndex.
func (pe *ParallelExecutor) ExecuteArgs(task Task[any], argv []any, startIndex int) int {
	return pe.dispatch(task, len(argv), startIndex, nil, func(i int) any { return argv[i] })
}

// ExecuteArgsCompletion behaves like ExecuteArgs, attaching completion to
// every dispatched invocation.
func (pe *ParallelExecutor) ExecuteArgsCompletion(completion *Completion, task Task[any], argv []any, startIndex int) int {
	return pe.dispatch(task, len(argv), startIndex, completion, func(i int) any { return argv[i] })
}

// adaptIntTask lets Task[int] values be dispatched through the executor's
// any-typed rings without forcing every caller to work in terms of any.
func adaptIntTask(task Task[int]) Task[any] {
	if task == nil {
		return nil
	}
	return TaskFunc[any](func(arg any) {
		task.Exec(arg.(int))
	})
}

// Stop pushes one shutdown sentinel to every worker ring, blocking until
// each has room for it, then returns once every worker has exited. Stop
// on an idle executor is a no-op.
func (pe *ParallelExecutor) Stop() {
	pe.mu.Lock()
	if !pe.running {
		pe.mu.Unlock()
		return
	}
	pe.running = false
	queues := pe.queues
	pe.mu.Unlock()

	for _, wq := range queues {
		wq.push(WorkPacket[any]{})
	}
	pe.Wait()
}

// Wait blocks until every worker goroutine Start spawned has exited.
func (pe *ParallelExecutor) Wait() {
	pe.mu.Lock()
	for pe.stopped < pe.started {
		pe.cond.Wait()
	}
	pe.mu.Unlock()
}
