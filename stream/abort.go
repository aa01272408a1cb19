/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream

import (
	"context"
	"time"

	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/vtime"
)

// Signal is the abort-signal adapter from spec.md §4.5: its aborted flag
// transitions exactly once, at the tick of the sole '!' frame in a
// series.Program parsed in series.AbortSignal mode, with the configured
// reason. It implements context.Context so test code can thread it
// through any API that already accepts a context for cancellation,
// which is how the teacher itself propagates cancellation
// (TestNode.Recv takes a context.Context) rather than inventing a
// bespoke signal type.
type Signal struct {
	done   chan struct{}
	reason any
}

// NewSignal constructs a Signal and schedules its single Abort frame
// (if program has one) against sched.
func NewSignal(sched *vtime.Scheduler, program series.Program) *Signal {
	s := &Signal{done: make(chan struct{})}
	for _, f := range program.Frames {
		if f.Kind != series.Abort {
			continue
		}
		f := f
		sched.At(f.Tick, func() {
			s.reason = f.Value
			close(s.done)
			sched.Progress().Tick()
		})
	}
	return s
}

// Aborted reports whether the signal has fired yet.
func (s *Signal) Aborted() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Reason returns the configured abort reason, or nil before the signal
// fires.
func (s *Signal) Reason() any { return s.reason }

// Deadline implements context.Context. A Signal carries no deadline.
func (s *Signal) Deadline() (time.Time, bool) { return time.Time{}, false }

// Done implements context.Context.
func (s *Signal) Done() <-chan struct{} { return s.done }

// Err implements context.Context: nil before the signal fires,
// context.Canceled after.
func (s *Signal) Err() error {
	if s.Aborted() {
		return context.Canceled
	}
	return nil
}

// Value implements context.Context. A Signal carries no values.
func (s *Signal) Value(key any) any { return nil }
