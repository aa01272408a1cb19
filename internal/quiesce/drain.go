/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package quiesce stands in for the host microtask-drain sentinel that
// spec.md §4.2/§6 requires of the scheduler's host: "post a sentinel
// task through the host's macrotask facility and await it; the
// sentinel's resolution guarantees all enqueued microtasks have run."
// Go has no single global microtask queue to round-trip through, so
// this package approximates the same guarantee by yielding the
// scheduler goroutine and watching a liveness Counter that every stream
// adapter's goroutine increments on each unit of work, until the
// counter stops moving for a few consecutive yields.
package quiesce

import (
	"runtime"
	"sync/atomic"

	"github.com/pkg/errors"
)

// settleRounds is how many consecutive Gosched rounds with no progress
// are required before Drain considers the system quiescent.
const settleRounds = 3

// Counter is the liveness signal. Adapters call Tick whenever they
// enqueue, deliver, or otherwise move a value across a channel.
type Counter struct {
	value int64
}

// Tick records one unit of progress.
func (c *Counter) Tick() { atomic.AddInt64(&c.value, 1) }

func (c *Counter) snapshot() int64 { return atomic.LoadInt64(&c.value) }

// Drain yields the calling goroutine until c stops advancing for
// settleRounds consecutive yields, or returns a deadlock error after
// maxIterations yields without ever settling. maxIterations is the
// Go-native analogue of spec.md's maxDrainIterations safety bound.
func Drain(c *Counter, maxIterations int) error {
	settled := 0
	last := c.snapshot()
	for i := 0; i < maxIterations; i++ {
		runtime.Gosched()
		cur := c.snapshot()
		if cur == last {
			settled++
			if settled >= settleRounds {
				return nil
			}
			continue
		}
		settled = 0
		last = cur
	}
	return errors.Errorf("no quiescence after %d drain iterations", maxIterations)
}
