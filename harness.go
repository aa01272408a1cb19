/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package streamseries is the harness façade described in spec.md §4.7:
// one Harness per test invocation, owning a scheduler and the helper
// bundle (Readable, Writable, AbortSignal, Recorder, AssertReadable,
// Run) that a test body uses to build and observe stream scenarios.
package streamseries

import (
	"github.com/pkg/errors"

	"github.com/streamseries/streamseries/internal/harnesserr"
	"github.com/streamseries/streamseries/internal/logging"
	"github.com/streamseries/streamseries/record"
	"github.com/streamseries/streamseries/series"
	"github.com/streamseries/streamseries/stream"
	"github.com/streamseries/streamseries/vtime"
)

// Harness is one test invocation's scheduler and helper bundle. The
// stream-building helpers (Readable, Writable, AbortSignal, Recorder)
// return a usage error once a Run call has returned nil; AssertReadable
// is the step that follows Run and stays usable. Nesting Run calls is
// also a usage error, per spec.md §5 "Shared resources".
type Harness struct {
	sched     *vtime.Scheduler
	logger    logging.Logger
	active    bool
	running   bool
	readables []*stream.Readable
	recorders []*stream.Recorder
}

// NewHarness constructs a Harness with its own Scheduler. Nothing it
// owns is shared across Harness instances, per spec.md §5 "no
// process-wide mutable state".
func NewHarness(opts Options) *Harness {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Harness{
		sched:  vtime.New(opts.schedulerOptions()),
		logger: logger,
		active: true,
	}
}

func (h *Harness) checkActive(helper string) error {
	if !h.active {
		return &harnesserr.UsageError{Text: helper + " used outside its test"}
	}
	return nil
}

// Readable constructs a readable stream driven by series, parsed in
// series.Readable mode.
func (h *Harness) Readable(seriesStr string, values series.Values, terminalReason any) (*stream.Readable, []series.Warning, error) {
	if err := h.checkActive("Readable"); err != nil {
		return nil, nil, err
	}
	program, warnings, err := series.Parse(seriesStr, values, terminalReason, series.Readable)
	if err != nil {
		return nil, nil, err
	}
	h.logWarnings(warnings)
	readable := stream.NewReadable(h.sched, program, h.logger)
	h.readables = append(h.readables, readable)
	return readable, warnings, nil
}

// Writable constructs a writable stream whose backpressure gate and
// abort are driven by series, parsed in series.Writable mode.
func (h *Harness) Writable(seriesStr string, terminalReason any) (*stream.Writable, []series.Warning, error) {
	if err := h.checkActive("Writable"); err != nil {
		return nil, nil, err
	}
	program, warnings, err := series.Parse(seriesStr, nil, terminalReason, series.Writable)
	if err != nil {
		return nil, nil, err
	}
	h.logWarnings(warnings)
	return stream.NewWritable(h.sched, program, h.logger), warnings, nil
}

// AbortSignal constructs an abort signal that fires per series, parsed
// in series.AbortSignal mode.
func (h *Harness) AbortSignal(seriesStr string, reason any) (*stream.Signal, error) {
	if err := h.checkActive("AbortSignal"); err != nil {
		return nil, err
	}
	program, _, err := series.Parse(seriesStr, nil, reason, series.AbortSignal)
	if err != nil {
		return nil, err
	}
	return stream.NewSignal(h.sched, program), nil
}

// Recorder attaches an observer to readable, per spec.md §4.6.
func (h *Harness) Recorder(readable *stream.Readable) (*stream.Recorder, error) {
	if err := h.checkActive("Recorder"); err != nil {
		return nil, err
	}
	recorder := stream.NewRecorder(h.sched, readable)
	h.recorders = append(h.recorders, recorder)
	return recorder, nil
}

// AssertReadable compares recorder's observed frames against
// expectedSeries, per spec.md §4.6. It is called after Run has returned
// and recorder.Wait has been called, so it does not check h.active.
func (h *Harness) AssertReadable(recorder *stream.Recorder, expectedSeries string, expectedValues series.Values, expectedReason any) error {
	return stream.AssertReadable(recorder, expectedSeries, expectedValues, expectedReason)
}

func (h *Harness) logWarnings(warnings []series.Warning) {
	for _, w := range warnings {
		h.logger.Warn(w.Text)
	}
}

// Run is step 3 of spec.md §4.7: body has already registered its
// streams against h by the time Run is called; Run drives the
// scheduler to completion, invoking body first so it can kick off any
// goroutines that read from or write to those streams, then blocking
// until every scheduled frame has fired. It is a usage error to call
// Run while a previous call on the same Harness is still running.
func (h *Harness) Run(body func(h *Harness) error) error {
	if h.running {
		return &harnesserr.UsageError{Text: "Run called while already running"}
	}
	h.running = true
	defer func() { h.running = false }()

	if err := body(h); err != nil {
		return errors.WithMessage(err, "test body failed")
	}

	if err := h.sched.RunAll(); err != nil {
		if timeoutErr, ok := err.(*harnesserr.TimeoutError); ok {
			timeoutErr.Snapshot = h.snapshot(timeoutErr.Tick)
		}
		return err
	}

	// The scheduler has no further pending actions. Any Readable that
	// never fired a terminal frame (legal per spec.md §3's FrameList)
	// stops here instead of leaving its Recorder blocked forever; a
	// Readable that already terminated is untouched.
	for _, readable := range h.readables {
		readable.Stop()
	}

	h.active = false
	return nil
}

// snapshot bundles every frame observed by every Recorder this Harness
// has built, up to the point of a timeout, into a single postmortem
// dump. Returns nil if nothing was observed or the dump couldn't be
// rendered; a failed snapshot should never hide the TimeoutError itself.
func (h *Harness) snapshot(tick int) *record.Snapshot {
	var frames series.FrameList
	for _, rec := range h.recorders {
		frames = append(frames, rec.Frames()...)
	}
	if len(frames) == 0 {
		return nil
	}
	snap, err := record.NewSnapshot(frames, tick, nil)
	if err != nil {
		return nil
	}
	return &snap
}
