// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

// push blocks until a free slot is available, then enqueues p. Used only
// for delivering the shutdown sentinel, which must never be dropped.
func (q *workerQueue[A]) push(p WorkPacket[A]) {
	q.emptyCells.Wait()
	q.ring.Push(p)
	q.filledCells.Post()
}
