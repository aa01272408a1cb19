/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package vtime provides the virtual clock and the deterministic
// cooperative scheduler that drives it: the substitute for wall-clock
// timers described in spec.md §4.2.
package vtime

import (
	"sync/atomic"
	"time"
)

// DefaultTickTime is the duration of one tick when Options.TickTime is
// left at its zero value, per spec.md §6.
const DefaultTickTime = 100 * time.Millisecond

// DefaultMaxTicks is the upper bound on test length in ticks when
// Options.MaxTicks is left at its zero value.
const DefaultMaxTicks = 1000

// DefaultMaxDrainIterations is the scheduler safety bound when
// Options.MaxDrainIterations is left at its zero value.
const DefaultMaxDrainIterations = 1000

// Clock reports the current tick and the configured duration of one
// tick. A Clock's tick only ever advances via its owning Scheduler's
// RunAll; nothing else may mutate it. now is accessed with atomics
// because, unlike the rest of the scheduler, it is legitimately read
// from goroutines other than the one running RunAll: a Writable's Write
// or a Readable's Cancel may be called from user pipe code running
// concurrently with a drain.
type Clock struct {
	tickTime time.Duration
	now      int64
}

// TickTime returns the configured duration of one tick.
func (c *Clock) TickTime() time.Duration { return c.tickTime }

// Now returns the current tick, starting at 0.
func (c *Clock) Now() int { return int(atomic.LoadInt64(&c.now)) }

func (c *Clock) set(tick int) { atomic.StoreInt64(&c.now, int64(tick)) }
