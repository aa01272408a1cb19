/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream

import (
	"sync"

	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/vtime"
)

// Recorder is the observer from spec.md §4.6: attached to a Readable
// under test, it timestamps every chunk that arrives as a frame at the
// current virtual tick, and stops at the first terminal frame.
type Recorder struct {
	sched  *vtime.Scheduler
	mu     sync.Mutex
	frames series.FrameList
	done   chan struct{}
}

// NewRecorder constructs a Recorder and immediately starts consuming
// readable in a background goroutine.
func NewRecorder(sched *vtime.Scheduler, readable *Readable) *Recorder {
	r := &Recorder{sched: sched, done: make(chan struct{})}
	go r.watch(readable)
	return r
}

func (r *Recorder) watch(readable *Readable) {
	defer close(r.done)
	for chunk := range readable.Out() {
		r.mu.Lock()
		r.frames = append(r.frames, series.Frame{
			Tick:  chunk.Tick,
			Kind:  chunk.Kind,
			Value: chunk.Value,
		})
		r.mu.Unlock()
		r.sched.Progress().Tick()
	}
}

// Frames returns the recorded FrameList so far. Safe to call once the
// owning Scheduler has finished RunAll, or concurrently while it runs.
func (r *Recorder) Frames() series.FrameList {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(series.FrameList, len(r.frames))
	copy(out, r.frames)
	return out
}

// Wait blocks until the Readable's Out channel has closed (after a
// terminal frame, or after Stop) and the watch goroutine has exited. Callers should call this only after
// RunAll has returned, to avoid blocking on a stream that never
// terminates.
func (r *Recorder) Wait() {
	<-r.done
}
