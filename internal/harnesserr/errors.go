/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package harnesserr holds the error types shared by the scheduler and
// the stream harness: usage errors, timeout/deadlock errors, and
// assertion failures, per the taxonomy in spec.md §7.
package harnesserr

import (
	"fmt"

	"github.com/streamseries/streamseries/record"
)

// UsageError reports a helper used outside its owning test, a
// scheduleAt call in the past, a reentrant RunAll, or a nested Run
// call.
type UsageError struct {
	Text string
}

func (e *UsageError) Error() string { return "usage error: " + e.Text }

// NewUsage constructs a UsageError with a formatted message.
func NewUsage(format string, args ...any) *UsageError {
	return &UsageError{Text: fmt.Sprintf(format, args...)}
}

// TimeoutError reports a drain-iteration bound or max-tick bound
// exceeded. Tick and Pending are a snapshot of scheduler state at the
// moment the bound was hit; Snapshot, if the caller had any recorders
// to draw from, is a postmortem dump of everything observed before the
// bound was hit, for postmortem diagnosis.
type TimeoutError struct {
	Tick     int
	Pending  int
	Reason   string
	Snapshot *record.Snapshot
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout at tick %d with %d pending action(s): %s", e.Tick, e.Pending, e.Reason)
}

// AssertionError reports that an observed series did not match an
// expected series. Snapshot is a postmortem dump of the actual observed
// FrameList behind Actual, for artifacts that want more than the
// rendered string.
type AssertionError struct {
	Expected string
	Actual   string
	Diff     string
	Snapshot *record.Snapshot
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("series mismatch:\n  expected: %s\n  actual:   %s\n%s", e.Expected, e.Actual, e.Diff)
}
