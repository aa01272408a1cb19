/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package series

import "github.com/pkg/errors"

// ParseError reports a malformed series string: an illegal character for
// the mode, a misplaced terminal, or an unclosed/nested group. Column is
// the zero-based index into the original (unskipped) series string.
type ParseError struct {
	Column int
	Series string
	cause  error
}

func (e *ParseError) Error() string {
	return errors.Wrapf(e.cause, "series %q: column %d", e.Series, e.Column).Error()
}

func (e *ParseError) Cause() error { return e.cause }

func (e *ParseError) Unwrap() error { return e.cause }

func newParseError(series string, column int, format string, args ...any) *ParseError {
	return &ParseError{
		Column: column,
		Series: series,
		cause:  errors.Errorf(format, args...),
	}
}
