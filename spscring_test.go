// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "testing"

func TestSpscRingCapacityRoundsUpToPow2(t *testing.T) {
	cases := map[int]int{2: 2, 3: 4, 4: 4, 5: 8, 1000: 1024}
	for size, want := range cases {
		q := NewSpscRing[int](size)
		if got := q.Cap(); got != want {
			t.Errorf("NewSpscRing(%d).Cap() = %d, want %d", size, got, want)
		}
	}
}

func TestSpscRingFIFOOrder(t *testing.T) {
	q := NewSpscRing[int](8)
	for i := range 8 {
		if !q.Push(i) {
			t.Fatalf("Push(%d) failed unexpectedly", i)
		}
	}
	if q.Push(99) {
		t.Fatal("Push should fail once the ring is full")
	}

	for i := range 8 {
		var out int
		if !q.Pop(&out) {
			t.Fatalf("Pop failed at index %d", i)
		}
		if out != i {
			t.Fatalf("Pop returned %d, want %d", out, i)
		}
	}
	var out int
	if q.Pop(&out) {
		t.Fatal("Pop should fail once the ring is empty")
	}
}

func TestSpscRingPeekDoesNotConsume(t *testing.T) {
	q := NewSpscRing[string](4)
	q.Push("a")
	var out string
	if !q.Peek(&out) || out != "a" {
		t.Fatalf("Peek = %q, want %q", out, "a")
	}
	if !q.Peek(&out) || out != "a" {
		t.Fatal("second Peek should still observe the same element")
	}
	q.Pop(&out)
	if q.Peek(&out) {
		t.Fatal("Peek should fail once the ring is empty")
	}
}

func TestSpscRingResizeDiscardsAndResets(t *testing.T) {
	q := NewSpscRing[int](4)
	q.Push(1)
	q.Push(2)

	q.Resize(16)
	if q.Cap() != 16 {
		t.Fatalf("Cap() after Resize = %d, want 16", q.Cap())
	}
	var out int
	if q.Pop(&out) {
		t.Fatal("Resize should discard previously queued elements")
	}
	if !q.Push(42) {
		t.Fatal("Push should succeed on the resized ring")
	}
	if !q.Pop(&out) || out != 42 {
		t.Fatalf("Pop after resize = %d, want 42", out)
	}
}

func TestSpscRingConcurrentProducerConsumer(t *testing.T) {
	const n = 100_000
	q := NewSpscRing[int](256)
	done := make(chan struct{})

	go func() {
		defer close(done)
		next := 0
		for next < n {
			var out int
			if q.Pop(&out) {
				if out != next {
					t.Errorf("out of order: got %d, want %d", out, next)
				}
				next++
			}
		}
	}()

	for i := range n {
		for !q.Push(i) {
		}
	}
	<-done
}
