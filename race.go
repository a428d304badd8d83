// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package corepool

// RaceEnabled is true when the race detector is active. The race detector
// can report false positives on the generic [T] queues, whose plain slot
// accesses are ordered by atomics on other variables. No test in this
// package currently consults it.
const RaceEnabled = true
