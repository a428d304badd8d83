// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import "code.hybscloud.com/atomix"

// WorkStealDeque is a bounded single-owner/multi-thief deque.
//
// Based on the Chase-Lev work-stealing deque. The owner thread — the one
// that created the deque — pushes and pops at the "bottom" end; any thread
// may steal from the "top" end via Take. Size must be a power of two.
//
// This is the per-worker backlog a data-parallel scheduler uses to let an
// idle worker help a busy neighbor: the busy worker's owner keeps
// processing its own queue from the bottom while idle workers steal from
// the top, and the one disputed element when both sides reach for the
// last slot is resolved by a single compare-and-swap on top.
type WorkStealDeque[T any] struct {
	_    pad
	top  atomix.Uint64 // Shared steal end (any thread may CAS this)
	_    pad
	bot  atomix.Uint64 // Owner-only push/pop end
	_    pad
	buf  []T
	mask uint64
}

// NewWorkStealDeque creates a deque of the given size, which must be a
// power of two. A non-power-of-two size is a BadConfig usage error.
func NewWorkStealDeque[T any](size int) *WorkStealDeque[T] {
	if size < 2 || !isPow2(size) {
		badConfig("WorkStealDeque size must be a power of two >= 2")
	}
	return &WorkStealDeque[T]{
		buf:  make([]T, size),
		mask: uint64(size) - 1,
	}
}

// Cap returns the deque's capacity.
func (d *WorkStealDeque[T]) Cap() int {
	return int(d.mask + 1)
}

// Push adds an element at the bottom of the deque. Owner only.
// Returns false if the deque is full.
func (d *WorkStealDeque[T]) Push(item T) bool {
	b := d.bot.LoadRelaxed()
	t := d.top.LoadAcquire()
	if b-t > d.mask {
		return false
	}
	d.buf[b&d.mask] = item
	// The slot store must be visible to any thief that observes the new
	// bot, so the index publish is a release.
	d.bot.StoreRelease(b + 1)
	return true
}

// Pop removes and returns the bottom element. Owner only.
//
// Pop claims elements in LIFO order from the owner's own side: the most
// recently pushed item is the first one the owner pops back out.
func (d *WorkStealDeque[T]) Pop(out *T) bool {
	b := d.bot.LoadRelaxed() - 1
	d.bot.StoreRelease(b)
	t := d.top.LoadAcquire()
	if t > b {
		// Deque was already empty; restore bot.
		d.bot.StoreRelease(b + 1)
		return false
	}
	item := d.buf[b&d.mask]
	if t == b {
		// Last element: contested with concurrent thieves.
		if !d.top.CompareAndSwapAcqRel(t, t+1) {
			d.bot.StoreRelease(b + 1)
			return false
		}
		d.bot.StoreRelease(b + 1)
		*out = item
		return true
	}
	*out = item
	return true
}

// Take steals and returns the top element. Any thread may call Take.
//
// Thieves claim from the opposite end of the owner, so a busy owner
// working through the bottom of its queue does not contend with thieves
// except on the single disputed final element.
func (d *WorkStealDeque[T]) Take(out *T) bool {
	t := d.top.LoadAcquire()
	b := d.bot.LoadAcquire()
	if t >= b {
		return false
	}
	item := d.buf[t&d.mask]
	if !d.top.CompareAndSwapAcqRel(t, t+1) {
		return false
	}
	*out = item
	return true
}
