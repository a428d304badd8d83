// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestThreadPoolExecuteRunsExactlyOnce(t *testing.T) {
	const n = 2000
	pool := NewThreadPool(256)
	pool.SetMinimumThreads(2)
	pool.SetMaximumThreads(8)
	pool.Start(4)
	defer pool.Stop()

	var counts [n]int32
	for i := range n {
		i := i
		if err := pool.Execute(RunnableFunc(func() (int32, error) {
			atomic.AddInt32(&counts[i], 1)
			return 0, nil
		})); err != nil {
			t.Fatalf("Execute(%d) failed: %v", i, err)
		}
	}
	pool.Wait()

	for i, c := range counts {
		if c != 1 {
			t.Fatalf("item %d ran %d times, want exactly 1", i, c)
		}
	}
}

func TestThreadPoolExecuteBeforeStartFails(t *testing.T) {
	pool := NewThreadPool(4)
	err := pool.Execute(RunnableFunc(func() (int32, error) { return 0, nil }))
	if !errors.Is(err, ErrNotRunning) {
		t.Fatalf("Execute before Start: got %v, want ErrNotRunning", err)
	}
}

func TestThreadPoolStopDrainsOutstandingWork(t *testing.T) {
	pool := NewThreadPool(64)
	pool.Start(2)

	var completed int32
	const n = 100
	for range n {
		_ = pool.Execute(RunnableFunc(func() (int32, error) {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&completed, 1)
			return 0, nil
		}))
	}

	pool.Stop()
	if got := atomic.LoadInt32(&completed); got != n {
		t.Fatalf("Stop returned with %d/%d items completed", got, n)
	}
	if pool.Active() {
		t.Fatal("pool should be idle after Stop")
	}
}

func TestThreadPoolExecuteAndRunFallsBackInline(t *testing.T) {
	pool := NewThreadPool(4)
	var ran bool
	code, err := pool.ExecuteAndRun(RunnableFunc(func() (int32, error) {
		ran = true
		return 7, nil
	}))
	if err != nil {
		t.Fatalf("ExecuteAndRun on an idle pool returned error: %v", err)
	}
	if !ran || code != 7 {
		t.Fatalf("ExecuteAndRun did not run inline: ran=%v code=%d", ran, code)
	}
}

func TestThreadPoolSurvivesPanickingRunnable(t *testing.T) {
	pool := NewThreadPool(16)
	pool.Start(2)
	defer pool.Stop()

	_ = pool.Execute(RunnableFunc(func() (int32, error) {
		panic("boom")
	}))
	pool.Wait()

	var ran int32
	_ = pool.Execute(RunnableFunc(func() (int32, error) {
		atomic.StoreInt32(&ran, 1)
		return 0, nil
	}))
	pool.Wait()
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("pool stopped making progress after a panicking runnable")
	}
}

func TestThreadPoolWaitWhile(t *testing.T) {
	pool := NewThreadPool(32)
	pool.Start(2)
	defer pool.Stop()

	var remaining int32 = 10
	var wg sync.WaitGroup
	wg.Add(int(remaining))
	for range remaining {
		_ = pool.Execute(RunnableFunc(func() (int32, error) {
			atomic.AddInt32(&remaining, -1)
			wg.Done()
			return 0, nil
		}))
	}
	pool.WaitWhile(func() bool { return atomic.LoadInt32(&remaining) > 0 })
	if atomic.LoadInt32(&remaining) != 0 {
		t.Fatalf("WaitWhile returned early: remaining=%d", remaining)
	}
	wg.Wait()
}
