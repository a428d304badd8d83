// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestBarrierReleasesExactlyOneWinner(t *testing.T) {
	const n = 8
	b := NewBarrier(n)
	var winners int64
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			if b.Wait() {
				atomic.AddInt64(&winners, 1)
			}
		}()
	}
	wg.Wait()
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}

func TestBarrierReusableAcrossGenerations(t *testing.T) {
	const n = 4
	const rounds = 50
	b := NewBarrier(n)
	for round := range rounds {
		var wg sync.WaitGroup
		var arrived int64
		wg.Add(n)
		for range n {
			go func() {
				defer wg.Done()
				atomic.AddInt64(&arrived, 1)
				b.Wait()
			}()
		}
		wg.Wait()
		if arrived != n {
			t.Fatalf("round %d: expected %d arrivals, got %d", round, n, arrived)
		}
	}
}

func TestBarrierBadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing barrier with threshold 0")
		}
	}()
	NewBarrier(0)
}
