/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package series

import (
	"reflect"

	"github.com/pkg/errors"
)

func isComparable(v any) bool {
	return reflect.TypeOf(v).Comparable()
}

// samePointer reports whether a and b refer to the same underlying
// pointer-like value (pointer, map, channel, or func). Deliberately does
// not fall back to reflect.DeepEqual: structural equality would let two
// distinct-but-equal objects satisfy a test that is meant to assert the
// harness observed this exact value, which is the bug this function
// exists to avoid.
func samePointer(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	switch va.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

func errValueNoKey(v any) error {
	return errors.Errorf("value %#v has no assigned key character and is not a single-character string", v)
}

func errUnknownKind(k Kind) error {
	return errors.Errorf("unknown frame kind %v", k)
}
