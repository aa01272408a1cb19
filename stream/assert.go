/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package stream

import (
	"strings"

	"github.com/streamseries/streamseries/internal/harnesserr"
	"github.com/streamseries/streamseries/record"
	"github.com/streamseries/streamseries/series"
)

// AssertReadable is the assertion helper from spec.md §4.6: it parses
// expectedSeries, renders recorder's observed FrameList using
// expectedValues for key assignment, and compares the two series
// strings. It must be called once the owning Scheduler's RunAll has
// returned and recorder.Wait has been called.
func AssertReadable(recorder *Recorder, expectedSeries string, expectedValues series.Values, expectedReason any) error {
	expectedProgram, _, err := series.Parse(expectedSeries, expectedValues, expectedReason, series.Readable)
	if err != nil {
		return err
	}

	actual := recorder.Frames()
	actualRendered, err := series.RenderStrict(series.Program{Frames: actual, Extent: expectedProgram.Extent}, expectedValues)
	if err != nil {
		return err
	}

	if actualRendered == expectedSeries {
		return nil
	}

	var snap *record.Snapshot
	if s, err := record.NewSnapshot(actual, expectedProgram.Extent, expectedValues); err == nil {
		snap = &s
	}

	return &harnesserr.AssertionError{
		Expected: expectedSeries,
		Actual:   actualRendered,
		Diff:     tickAlignedDiff(expectedSeries, actualRendered),
		Snapshot: snap,
	}
}

// tickAlignedDiff renders expected and actual on stacked lines with a
// caret under every column where they differ.
func tickAlignedDiff(expected, actual string) string {
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}

	var carets strings.Builder
	for i := 0; i < n; i++ {
		e, a := byte(' '), byte(' ')
		if i < len(expected) {
			e = expected[i]
		}
		if i < len(actual) {
			a = actual[i]
		}
		if e == a {
			carets.WriteByte(' ')
		} else {
			carets.WriteByte('^')
		}
	}

	var b strings.Builder
	b.WriteString("  expected: ")
	b.WriteString(expected)
	b.WriteString("\n  actual:   ")
	b.WriteString(actual)
	b.WriteString("\n            ")
	b.WriteString(carets.String())
	return b.String()
}
