/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package stream provides the readable, writable, and abort-signal
// adapters described in spec.md §4.3-4.6: real stream instances driven
// by a vtime.Scheduler, whose observed behavior can be recorded and
// compared back against a series string.
package stream

import (
	"sync"

	"github.com/streamseries/streamseries/internal/logging"
	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/vtime"
)

// outBuffer bounds how many chunks a Readable may queue ahead of its
// consumer before Out sends start blocking the scheduler goroutine. A
// scheduler-bounded test (spec.md §6 maxTicks) can never produce more
// frames than maxTicks allows, so a generous fixed buffer stands in for
// a true unbounded queue without the bookkeeping one would need.
const outBuffer = 4096

// Chunk is one item delivered on a Readable's Out channel: either an
// emitted value (Kind == series.Emit) or the terminal frame that ended
// the stream. Tick is stamped by the producer at fire time, not read by
// the consumer later, so that a Recorder's timestamp is never racing the
// scheduler's own clock advances.
type Chunk struct {
	Tick  int
	Kind  series.Kind
	Value any
}

// Readable is a readable stream whose underlying source enqueues,
// closes, cancels, or errors per a series.Program, driven by a
// vtime.Scheduler.
type Readable struct {
	sched      *vtime.Scheduler
	out        chan Chunk
	logger     logging.Logger
	mu         sync.Mutex
	terminated bool
}

// NewReadable constructs a Readable and schedules every frame of
// program against sched. program must be a series.Program parsed in
// series.Readable mode.
func NewReadable(sched *vtime.Scheduler, program series.Program, logger logging.Logger) *Readable {
	if logger == nil {
		logger = logging.Nop()
	}
	r := &Readable{
		sched:  sched,
		out:    make(chan Chunk, outBuffer),
		logger: logger,
	}
	for _, f := range program.Frames {
		f := f
		sched.At(f.Tick, func() { r.fire(f) })
	}
	return r
}

func (r *Readable) fire(f series.Frame) {
	r.mu.Lock()
	if r.terminated {
		// A downstream Cancel (or an earlier program frame racing a
		// Cancel) already ended the stream; later frames are dropped.
		r.mu.Unlock()
		return
	}
	if f.Kind.IsTerminal() {
		r.terminated = true
	}
	r.mu.Unlock()

	r.deliver(f.Tick, f.Kind, f.Value)
}

func (r *Readable) deliver(tick int, kind series.Kind, value any) {
	r.out <- Chunk{Tick: tick, Kind: kind, Value: value}
	r.sched.Progress().Tick()
	if kind.IsTerminal() {
		close(r.out)
	}
}

// Out returns the channel of delivered chunks. It closes after the
// terminal chunk (if any) has been sent, or after Stop.
func (r *Readable) Out() <-chan Chunk { return r.out }

// Stop ends the Readable's recording window without a terminal frame,
// implementing spec.md §4.6's second stop condition: "the scheduler has
// no further pending actions and the stream produced nothing further at
// the current tick." Called by the owning harness once its scheduler's
// RunAll has returned. A no-op if a terminal frame, or an earlier Cancel
// or Stop, already closed Out.
func (r *Readable) Stop() {
	r.mu.Lock()
	if r.terminated {
		r.mu.Unlock()
		return
	}
	r.terminated = true
	r.mu.Unlock()

	close(r.out)
}

// Cancel is consumer-initiated cancellation, honored immediately per
// spec.md §4.3: any frame the program had scheduled for a later tick is
// dropped, and reason becomes the Cancel frame's payload.
func (r *Readable) Cancel(reason any) {
	r.mu.Lock()
	if r.terminated {
		r.mu.Unlock()
		return
	}
	r.terminated = true
	r.mu.Unlock()

	r.logger.Debug("readable cancelled by consumer")
	r.deliver(r.sched.Now(), series.Cancel, reason)
}
