// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

// TaskGroup tracks a batch of Runnables submitted to a ThreadPool so the
// submitter can wait for just that batch, independent of whatever else
// the pool happens to be running.
//
// Grounded on FXTaskGroup and its nested Task wrapper: every Execute call
// records one outstanding item before handing the work to the pool, and
// the wrapper Runnable it actually submits notifies the group's own
// completion counter when it finishes, mirroring the original's
// construction-time increment and destruction-time decrement-and-post.
type TaskGroup struct {
	pool *ThreadPool
	done *Completion
}

// NewTaskGroup creates a group bound to pool. A nil pool falls back to
// CurrentPool; if that is also nil, ErrNoPool is returned.
func NewTaskGroup(pool *ThreadPool) (*TaskGroup, error) {
	if pool == nil {
		pool = CurrentPool()
	}
	if pool == nil {
		return nil, ErrNoPool
	}
	return &TaskGroup{pool: pool, done: NewCompletion()}, nil
}

// groupTask is the self-notifying wrapper every TaskGroup submission runs
// through: whoever ends up calling Run, a pool worker or a submitter
// falling back to ExecuteAndRun, notifies the owning group's completion
// exactly once when it returns.
type groupTask struct {
	tg *TaskGroup
	r  Runnable
}

func (g *groupTask) Run() (int32, error) {
	defer g.tg.done.Notify()
	return g.r.Run()
}

// Execute submits r to the group's pool, to be waited for via Wait or
// WaitDone independently of the pool's own Wait. If submission fails, the
// speculative outstanding-count increment is rolled back and the error
// is returned.
func (tg *TaskGroup) Execute(r Runnable) error {
	tg.done.Expect(1)
	if err := tg.pool.Execute(&groupTask{tg: tg, r: r}); err != nil {
		tg.done.Notify()
		return err
	}
	return nil
}

// ExecuteAndRun behaves like Execute, except that when the pool is not
// active it runs r on the calling goroutine instead of failing.
func (tg *TaskGroup) ExecuteAndRun(r Runnable) (int32, error) {
	tg.done.Expect(1)
	return tg.pool.ExecuteAndRun(&groupTask{tg: tg, r: r})
}

// Wait blocks until every Runnable this group has submitted has finished.
// While it waits, the calling goroutine runs queued items of the pool
// itself (see ThreadPool.WaitWhile), so the group's batch drains even when
// every worker is busy with unrelated work.
func (tg *TaskGroup) Wait() {
	tg.pool.WaitWhile(func() bool { return !tg.done.Done() })
}

// WaitDone reports whether the group has finished, without blocking.
func (tg *TaskGroup) WaitDone() bool {
	return tg.done.Done()
}

// Close blocks until the group finishes. Go has no destructors; Close is
// the explicit stand-in for the original's wait-on-destruction behavior,
// meant to be called (often via defer) when a group goes out of scope.
func (tg *TaskGroup) Close() error {
	tg.done.Wait()
	return nil
}
