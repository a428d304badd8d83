// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"sync"
	"testing"
	"time"
)

func TestSemaphoreTryWait(t *testing.T) {
	s := NewSemaphore(2)
	if !s.TryWait() {
		t.Fatal("expected first TryWait to succeed")
	}
	if !s.TryWait() {
		t.Fatal("expected second TryWait to succeed")
	}
	if s.TryWait() {
		t.Fatal("expected third TryWait to fail: count should be zero")
	}
}

func TestSemaphorePostWithoutPriorWait(t *testing.T) {
	s := NewSemaphore(0)
	s.Post()
	if !s.TryWait() {
		t.Fatal("Post before any Wait should still be observable")
	}
}

func TestSemaphoreWaitTimeout(t *testing.T) {
	s := NewSemaphore(0)
	start := time.Now()
	if s.WaitTimeout(20 * time.Millisecond) {
		t.Fatal("expected timeout on empty semaphore")
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("timeout fired too early: %v", elapsed)
	}

	s.Post()
	if !s.WaitTimeout(time.Second) {
		t.Fatal("expected WaitTimeout to succeed once posted")
	}
}

func TestSemaphoreConservesCount(t *testing.T) {
	const n = 1000
	s := NewSemaphore(0)
	var wg sync.WaitGroup
	wg.Add(n)
	for range n {
		go func() {
			defer wg.Done()
			s.Post()
		}()
	}
	wg.Wait()

	for range n {
		if !s.TryWait() {
			t.Fatal("lost a post: count conservation violated")
		}
	}
	if s.TryWait() {
		t.Fatal("count should be exactly zero after draining n posts")
	}
}

func TestSemaphoreBadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic constructing semaphore with negative count")
		}
	}()
	NewSemaphore(-1)
}
