/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package record provides postmortem serialization of a recorded
// FrameList, for dumping a failing test's observed timeline for later
// analysis, the Go-native analogue of the teacher's EventLog dump
// (minus the protobuf wire format; see DESIGN.md for why).
package record

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/streamseries/streamseries/series"
)

// Snapshot is a postmortem dump of one stream's observed frames,
// suitable for writing to a file or test artifact and diffing by eye.
type Snapshot struct {
	Series string
	Extent int
	Frames series.FrameList
}

// wireFrame mirrors series.Frame with exported-and-tagged fields, since
// series.Frame's Key/Group fields are rendering-only details a snapshot
// consumer has no use for, and Kind needs a textual form to survive a
// round trip through JSON.
type wireFrame struct {
	Tick  int    `json:"tick"`
	Kind  string `json:"kind"`
	Value any    `json:"value,omitempty"`
}

type wireSnapshot struct {
	Series string      `json:"series,omitempty"`
	Extent int         `json:"extent"`
	Frames []wireFrame `json:"frames"`
}

// NewSnapshot renders frames against keys and bundles the result with
// the FrameList itself.
func NewSnapshot(frames series.FrameList, extent int, keys series.Values) (Snapshot, error) {
	rendered, err := series.Render(series.Program{Frames: frames, Extent: extent}, keys)
	if err != nil {
		return Snapshot{}, errors.WithMessage(err, "rendering snapshot series")
	}
	return Snapshot{Series: rendered, Extent: extent, Frames: frames}, nil
}

// Write encodes the snapshot as indented JSON to w.
func (s Snapshot) Write(w io.Writer) error {
	wire := wireSnapshot{Series: s.Series, Extent: s.Extent, Frames: make([]wireFrame, len(s.Frames))}
	for i, f := range s.Frames {
		wire.Frames[i] = wireFrame{Tick: f.Tick, Kind: f.Kind.String(), Value: f.Value}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithMessage(enc.Encode(wire), "encoding snapshot")
}

// Read decodes a snapshot previously written by Write. The decoded
// Frames carry Kind values reconstructed from their string form and no
// Value decoding beyond what encoding/json produces for the dynamic
// type (numbers as float64, objects as map[string]any, and so on);
// callers needing typed values should prefer the Series field and
// series.Parse against a known value table.
func Read(r io.Reader) (Snapshot, error) {
	var wire wireSnapshot
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return Snapshot{}, errors.WithMessage(err, "decoding snapshot")
	}

	frames := make(series.FrameList, len(wire.Frames))
	for i, f := range wire.Frames {
		kind, err := series.ParseKind(f.Kind)
		if err != nil {
			return Snapshot{}, err
		}
		frames[i] = series.Frame{Tick: f.Tick, Kind: kind, Value: f.Value}
	}

	return Snapshot{Series: wire.Series, Extent: wire.Extent, Frames: frames}, nil
}
