// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkStealDequeOwnerLIFO(t *testing.T) {
	d := NewWorkStealDeque[int](8)
	for i := range 5 {
		if !d.Push(i) {
			t.Fatalf("Push(%d) failed unexpectedly", i)
		}
	}
	for i := 4; i >= 0; i-- {
		var out int
		if !d.Pop(&out) {
			t.Fatalf("Pop failed expecting %d", i)
		}
		if out != i {
			t.Fatalf("Pop = %d, want %d (LIFO order)", out, i)
		}
	}
	var out int
	if d.Pop(&out) {
		t.Fatal("Pop should fail once the deque is empty")
	}
}

func TestWorkStealDequeBadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-power-of-two size")
		}
	}()
	NewWorkStealDeque[int](3)
}

func TestWorkStealDequeEachElementClaimedOnce(t *testing.T) {
	const n = 1 << 14
	d := NewWorkStealDeque[int](1 << 15)
	for i := range n {
		d.Push(i)
	}

	seen := make([]int32, n)
	const thieves = 8
	var wg sync.WaitGroup
	wg.Add(thieves)
	stop := make(chan struct{})
	for range thieves {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				var out int
				if d.Take(&out) {
					if atomic.AddInt32(&seen[out], 1) != 1 {
						t.Errorf("item %d claimed more than once", out)
					}
				}
			}
		}()
	}

	var out int
	for d.Pop(&out) {
		if atomic.AddInt32(&seen[out], 1) != 1 {
			t.Errorf("item %d claimed more than once", out)
		}
	}
	close(stop)
	wg.Wait()

	var total int32
	for _, v := range seen {
		total += v
	}
	if int(total) != n {
		t.Fatalf("claimed %d items, want %d (lost or duplicated work)", total, n)
	}
}
