/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream

import (
	"sync"

	"github.com/streamseries/streamseries/internal/logging"
	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/vtime"
)

type pendingWrite struct {
	value any
	done  chan error
}

// Writable is a writable stream backed by a sink that records each
// write as an Emit frame at the tick it completes, gated by a
// backpressure toggle and an abort, both driven by a series.Program
// parsed in series.Writable mode (which carries only BackpressureOn,
// BackpressureOff, and Abort frames — writes themselves come from
// Write calls, not the program).
type Writable struct {
	sched    *vtime.Scheduler
	logger   logging.Logger
	mu       sync.Mutex
	pressure bool
	pending  []pendingWrite
	aborted  error
	closed   bool
	recorded series.FrameList
}

// NewWritable constructs a Writable and schedules program's gate/abort
// frames against sched.
func NewWritable(sched *vtime.Scheduler, program series.Program, logger logging.Logger) *Writable {
	if logger == nil {
		logger = logging.Nop()
	}
	w := &Writable{sched: sched, logger: logger}
	for _, f := range program.Frames {
		f := f
		sched.At(f.Tick, func() { w.applyFrame(f) })
	}
	return w
}

func (w *Writable) applyFrame(f series.Frame) {
	switch f.Kind {
	case series.BackpressureOn:
		w.mu.Lock()
		w.pressure = true
		w.mu.Unlock()
	case series.BackpressureOff:
		w.releasePending()
	case series.Abort:
		w.rejectPending(f.Value)
	}
	w.sched.Progress().Tick()
}

// Write submits value to the sink. The returned channel receives nil
// once the write completes (immediately if no backpressure is in
// effect, otherwise once BackpressureOff fires) or the abort error if
// the stream has been aborted.
func (w *Writable) Write(value any) <-chan error {
	ch := make(chan error, 1)

	w.mu.Lock()
	if w.aborted != nil {
		err := w.aborted
		w.mu.Unlock()
		ch <- err
		close(ch)
		return ch
	}
	if w.closed {
		w.mu.Unlock()
		panic("write after close")
	}
	if w.pressure {
		w.pending = append(w.pending, pendingWrite{value: value, done: ch})
		w.mu.Unlock()
		return ch
	}
	w.record(series.Frame{Tick: w.sched.Now(), Kind: series.Emit, Value: value})
	w.mu.Unlock()

	ch <- nil
	close(ch)
	w.sched.Progress().Tick()
	return ch
}

// Close marks the stream gracefully closed and records a Close frame at
// the current tick.
func (w *Writable) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.aborted != nil {
		return
	}
	w.closed = true
	w.record(series.Frame{Tick: w.sched.Now(), Kind: series.Close})
}

func (w *Writable) releasePending() {
	w.mu.Lock()
	w.pressure = false
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	tick := w.sched.Now()
	for _, p := range pending {
		w.mu.Lock()
		w.record(series.Frame{Tick: tick, Kind: series.Emit, Value: p.value})
		w.mu.Unlock()
		p.done <- nil
		close(p.done)
	}
}

func (w *Writable) rejectPending(reason any) {
	w.mu.Lock()
	err := abortError{reason: reason}
	w.aborted = err
	pending := w.pending
	w.pending = nil
	w.record(series.Frame{Tick: w.sched.Now(), Kind: series.Abort, Value: reason})
	w.mu.Unlock()

	for _, p := range pending {
		p.done <- err
		close(p.done)
	}
}

// record appends to w.recorded. Callers must hold w.mu.
func (w *Writable) record(f series.Frame) {
	w.recorded = append(w.recorded, f)
}

// Recorded returns the frames observed on this writable so far: writes
// as Emit, Close, and Abort, in the order and at the ticks they were
// observed.
func (w *Writable) Recorded() series.FrameList {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(series.FrameList, len(w.recorded))
	copy(out, w.recorded)
	return out
}

// abortError is the error value delivered to writers once the stream
// has been aborted.
type abortError struct{ reason any }

func (e abortError) Error() string { return "writable aborted" }

// Reason returns the abort reason the series program carried.
func (e abortError) Reason() any { return e.reason }
