/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package series

import "strings"

// Render produces the canonical series string for a Program: no
// whitespace, ticks with more than one frame grouped as "(...)", values
// rendered as their assigned key character, padded with "-" between
// ticks that hold no frame. Render is total over well-formed Programs.
//
// keys, if non-nil, is consulted first when assigning a character to an
// emitted value: each value is matched against the table by strict
// equality (reference identity for non-primitive values, per the
// harness's documented value-identity rule). Values with no match in
// keys fall back to their literal single-character string form, or
// (failing that) the next unused letter 'a'..'z' — suitable for
// general-purpose canonicalization, where there is no value table to
// hold a caller to.
func Render(p Program, keys Values) (string, error) {
	return render(p, keys, false)
}

// RenderStrict is Render's counterpart for comparing an observed
// FrameList against a caller-supplied value table (the harness's
// AssertReadable). It never invents a fresh key: a value with no match
// in keys that also isn't a single-character string returns an error
// instead of silently being assigned an arbitrary letter, per the rule
// that unmatched observed values either render as their literal
// character or fail the comparison with a human-readable diff.
func RenderStrict(p Program, keys Values) (string, error) {
	return render(p, keys, true)
}

func render(p Program, keys Values, strict bool) (string, error) {
	var b strings.Builder

	byTick := make(map[int]FrameList)
	order := make([]int, 0, len(p.Frames))
	for _, f := range p.Frames {
		if _, ok := byTick[f.Tick]; !ok {
			order = append(order, f.Tick)
		}
		byTick[f.Tick] = append(byTick[f.Tick], f)
	}

	assigned := map[byte]bool{}
	for k := range keys {
		assigned[k] = true
	}

	nextFreeKey := byte('a')
	keyFor := func(v any) (byte, error) {
		for k, val := range keys {
			if valuesEqual(val, v) {
				return k, nil
			}
		}
		if s, ok := v.(string); ok && len(s) == 1 {
			return s[0], nil
		}
		if strict {
			return 0, errValueNoKey(v)
		}
		for nextFreeKey <= 'z' {
			if !assigned[nextFreeKey] {
				assigned[nextFreeKey] = true
				return nextFreeKey, nil
			}
			nextFreeKey++
		}
		return 0, errValueNoKey(v)
	}

	tick := 0
	for _, t := range order {
		for tick < t {
			b.WriteByte('-')
			tick++
		}

		fl := byTick[t]
		chars := make([]string, 0, len(fl))
		for _, f := range fl {
			c, err := frameChar(f, keyFor)
			if err != nil {
				return "", err
			}
			chars = append(chars, c)
		}

		if len(fl) > 1 {
			b.WriteByte('(')
			b.WriteString(strings.Join(chars, ""))
			b.WriteByte(')')
		} else {
			b.WriteString(chars[0])
		}
		tick++
	}

	for tick < p.Extent {
		b.WriteByte('-')
		tick++
	}

	return b.String(), nil
}

func frameChar(f Frame, keyFor func(any) (byte, error)) (string, error) {
	switch f.Kind {
	case Close:
		return "|", nil
	case Cancel:
		return "!", nil
	case Abort:
		return "#", nil
	case BackpressureOn:
		return "<", nil
	case BackpressureOff:
		return ">", nil
	case Emit:
		k, err := keyFor(f.Value)
		if err != nil {
			return "", err
		}
		return string(k), nil
	default:
		return "", errUnknownKind(f.Kind)
	}
}

// valuesEqual implements the harness's value-identity rule: primitive
// values (comparable via ==) compare by strict equality; everything else
// compares by reference identity, which in Go means the two operands
// must be the same pointer (or, for interface-held pointers, point to
// the same address).
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if isComparable(a) && isComparable(b) {
		return a == b
	}
	return samePointer(a, b)
}
