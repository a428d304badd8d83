// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestTaskGroupWaitsOnlyForItsOwnBatch(t *testing.T) {
	pool := NewThreadPool(256)
	pool.Start(4)
	defer pool.Stop()

	group, err := NewTaskGroup(pool)
	if err != nil {
		t.Fatalf("NewTaskGroup: %v", err)
	}

	// Unrelated long-running work submitted directly to the pool.
	block := make(chan struct{})
	_ = pool.Execute(RunnableFunc(func() (int32, error) {
		<-block
		return 0, nil
	}))

	const n = 50
	var completed int32
	for range n {
		if err := group.Execute(RunnableFunc(func() (int32, error) {
			atomic.AddInt32(&completed, 1)
			return 0, nil
		})); err != nil {
			t.Fatalf("group.Execute: %v", err)
		}
	}

	group.Wait()
	if got := atomic.LoadInt32(&completed); got != n {
		t.Fatalf("group.Wait returned with %d/%d items completed", got, n)
	}
	close(block)
}

func TestTaskGroupNoPoolReturnsErrNoPool(t *testing.T) {
	_, err := NewTaskGroup(nil)
	if !errors.Is(err, ErrNoPool) {
		t.Fatalf("NewTaskGroup(nil) with no current pool: got %v, want ErrNoPool", err)
	}
}

func TestTaskGroupFallsBackToCurrentPool(t *testing.T) {
	pool := NewThreadPool(16)
	pool.Start(1)
	defer pool.Stop()

	group, err := NewTaskGroup(nil)
	if err != nil {
		t.Fatalf("NewTaskGroup(nil) with a started pool: %v", err)
	}
	var ran int32
	_ = group.Execute(RunnableFunc(func() (int32, error) {
		atomic.StoreInt32(&ran, 1)
		return 0, nil
	}))
	group.Wait()
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("task submitted to the current pool never ran")
	}
}

func TestTaskGroupClose(t *testing.T) {
	pool := NewThreadPool(16)
	pool.Start(2)
	defer pool.Stop()

	group, err := NewTaskGroup(pool)
	if err != nil {
		t.Fatalf("NewTaskGroup: %v", err)
	}
	var ran int32
	_ = group.Execute(RunnableFunc(func() (int32, error) {
		atomic.StoreInt32(&ran, 1)
		return 0, nil
	}))
	if err := group.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if atomic.LoadInt32(&ran) != 1 {
		t.Fatal("Close returned before the submitted task ran")
	}
}
