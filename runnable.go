// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

// Runnable is the work-item contract for ThreadPool and TaskGroup: an
// owned callable executed exactly once by a worker. A Runnable that
// panics is recovered by the worker that runs it (see traceRunnable in
// trace.go); the recovered value is recorded as a span tag and counted,
// and the worker goes on with its next item.
type Runnable interface {
	// Run executes the work item and returns a result code. The result
	// is not interpreted by ThreadPool itself; TaskGroup and standalone
	// callers may use it as they see fit.
	Run() (int32, error)
}

// RunnableFunc adapts a plain function to the Runnable interface.
type RunnableFunc func() (int32, error)

// Run calls f.
func (f RunnableFunc) Run() (int32, error) {
	return f()
}

// Task is the argument-carrying callable ParallelExecutor dispatches.
// Unlike Runnable, a single Task value is shared read-only across every
// invocation in a batch; only the argument varies per invocation.
type Task[A any] interface {
	Exec(arg A)
}

// TaskFunc adapts a plain function to the Task interface.
type TaskFunc[A any] func(arg A)

// Exec calls f with arg.
func (f TaskFunc[A]) Exec(arg A) {
	f(arg)
}
