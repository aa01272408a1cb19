/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package series

import "github.com/pkg/errors"

// Values maps a single series character to an arbitrary value. Characters
// absent from the table are emitted as their own single-character string.
// The reserved characters - | ! # ( ) <space> < > may not be used as keys.
type Values map[byte]any

var reserved = map[byte]bool{
	'-': true, '|': true, '!': true, '#': true,
	'(': true, ')': true, ' ': true, '<': true, '>': true,
}

// Validate reports an error if the table uses a reserved character as a key.
func (v Values) Validate() error {
	for k := range v {
		if reserved[k] {
			return errors.Errorf("value table key %q is reserved", string(k))
		}
	}
	return nil
}

func (v Values) lookup(c byte) any {
	if val, ok := v[c]; ok {
		return val
	}
	return string(c)
}

// Parse translates a series string plus an optional value table into a
// Program. terminalReason is attached to whichever terminal frame (if
// any) the series describes, as the Abort or Cancel frame's Value; a
// Close frame carries no reason.
//
// Parse also returns any non-fatal Warnings: currently, one per
// character that is both a literal series character and a key in the
// supplied value table, per the value-table-is-authoritative resolution
// documented in DESIGN.md.
func Parse(s string, values Values, terminalReason any, mode Mode) (Program, []Warning, error) {
	if err := values.Validate(); err != nil {
		return Program{}, nil, errors.WithMessage(err, "invalid value table")
	}

	switch mode {
	case Readable:
		return parseReadable(s, values, terminalReason)
	case Writable:
		return parseWritable(s, terminalReason)
	case AbortSignal:
		return parseAbort(s, terminalReason)
	default:
		return Program{}, nil, errors.Errorf("unknown mode %v", mode)
	}
}

func parseReadable(s string, values Values, terminalReason any) (Program, []Warning, error) {
	var (
		frames    FrameList
		warnings  []Warning
		tick      int
		inGroup   bool
		groupSize int
		sawTerm   bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		// The ')' closing the group that held the terminal is still allowed.
		if sawTerm && c != ' ' && !(c == ')' && inGroup) {
			return Program{}, nil, newParseError(s, i, "character %q follows a terminal frame", string(c))
		}

		switch c {
		case ' ':
			continue
		case '-':
			if inGroup {
				// Groups are instantaneous; a dash inside one is a no-op.
				continue
			}
			tick++
		case '(':
			if inGroup {
				return Program{}, nil, newParseError(s, i, "nested groups are not allowed")
			}
			inGroup = true
			groupSize = 0
		case ')':
			if !inGroup {
				return Program{}, nil, newParseError(s, i, "')' without matching '('")
			}
			if groupSize == 0 {
				return Program{}, nil, newParseError(s, i, "empty group")
			}
			inGroup = false
			tick++
		case '|':
			frames = append(frames, Frame{Tick: tick, Kind: Close, Group: inGroup})
			sawTerm = true
			if inGroup {
				groupSize++
			} else {
				tick++
			}
		case '!':
			frames = append(frames, Frame{Tick: tick, Kind: Cancel, Value: terminalReason, Group: inGroup})
			sawTerm = true
			if inGroup {
				groupSize++
			} else {
				tick++
			}
		case '#':
			frames = append(frames, Frame{Tick: tick, Kind: Abort, Value: terminalReason, Group: inGroup})
			sawTerm = true
			if inGroup {
				groupSize++
			} else {
				tick++
			}
		default:
			if _, ok := values[c]; ok {
				warnings = append(warnings, Warning{
					Column: i,
					Text:   "character " + string(c) + " is also a value-table key; the value table wins",
				})
			}
			frames = append(frames, Frame{Tick: tick, Kind: Emit, Value: values.lookup(c), Key: c, Group: inGroup})
			if inGroup {
				groupSize++
			} else {
				tick++
			}
		}
	}

	if inGroup {
		return Program{}, nil, newParseError(s, len(s), "unclosed group")
	}

	return Program{Frames: frames, Extent: tick}, warnings, nil
}

func parseWritable(s string, abortReason any) (Program, []Warning, error) {
	var (
		frames  FrameList
		tick    int
		sawTerm bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if sawTerm && c != ' ' {
			return Program{}, nil, newParseError(s, i, "character %q follows a terminal frame", string(c))
		}

		switch c {
		case ' ':
			continue
		case '-':
			tick++
		case '<':
			frames = append(frames, Frame{Tick: tick, Kind: BackpressureOn})
			tick++
		case '>':
			frames = append(frames, Frame{Tick: tick, Kind: BackpressureOff})
			tick++
		case '#':
			frames = append(frames, Frame{Tick: tick, Kind: Abort, Value: abortReason})
			sawTerm = true
			tick++
		default:
			return Program{}, nil, newParseError(s, i, "character %q is not valid in writable mode", string(c))
		}
	}

	return Program{Frames: frames, Extent: tick}, nil, nil
}

func parseAbort(s string, reason any) (Program, []Warning, error) {
	var (
		frames  FrameList
		tick    int
		sawTerm bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]

		if sawTerm && c != ' ' {
			return Program{}, nil, newParseError(s, i, "character %q follows the abort signal's single '!'", string(c))
		}

		switch c {
		case ' ':
			continue
		case '-':
			tick++
		case '!':
			frames = append(frames, Frame{Tick: tick, Kind: Abort, Value: reason})
			sawTerm = true
			tick++
		default:
			return Program{}, nil, newParseError(s, i, "character %q is not valid in abort mode", string(c))
		}
	}

	return Program{Frames: frames, Extent: tick}, nil, nil
}
