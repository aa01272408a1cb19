/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging holds the Logger interface shared by every subsystem
// of this harness. It exists as its own leaf package (rather than living
// on the root streamseries package, as the teacher's equivalent does)
// purely so that vtime, stream, and record can depend on it without
// creating an import cycle with the root package that depends on them.
package logging

import "go.uber.org/zap"

// Logger is the subset of *zap.Logger this harness uses. Abstracted as
// an interface so call sites can be tested with a mock and so the
// harness is not wedded to zap's concrete type.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// Nop returns a Logger that discards everything, for tests and for
// callers that pass no Logger in their Options.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Warn(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}

// FromZap adapts a *zap.Logger to Logger.
func FromZap(z *zap.Logger) Logger { return z }
