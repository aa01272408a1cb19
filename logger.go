/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamseries

import (
	"go.uber.org/zap"

	"github.com/streamseries/streamseries/internal/logging"
)

// Logger is the subset of *zap.Logger that the harness and its
// subpackages utilize. It has been abstracted as an interface to allow
// easier mocking and to make it possible to write a shim to support
// other loggers if necessary.
type Logger = logging.Logger

// NewLogger wraps an existing *zap.Logger for use as a Logger.
func NewLogger(z *zap.Logger) Logger { return logging.FromZap(z) }
