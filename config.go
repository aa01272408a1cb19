/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package streamseries

import "github.com/streamseries/streamseries/vtime"

// Options configures one test invocation's scheduler, per spec.md §6.
type Options struct {
	// TickTime is the duration of one virtual tick, in the host's timer
	// units. Zero selects vtime.DefaultTickTime.
	TickTime int

	// MaxTicks upper-bounds test length in ticks. Zero selects
	// vtime.DefaultMaxTicks.
	MaxTicks int

	// MaxDrainIterations upper-bounds the scheduler's per-tick drain
	// safety loop. Zero selects vtime.DefaultMaxDrainIterations.
	MaxDrainIterations int

	// Logger receives diagnostic output from the scheduler and its
	// adapters. Nil selects a no-op logger.
	Logger Logger
}

func (o Options) schedulerOptions() vtime.Options {
	return vtime.Options{
		TickTime:           o.TickTime,
		MaxTicks:           o.MaxTicks,
		MaxDrainIterations: o.MaxDrainIterations,
		Logger:             o.Logger,
	}
}
