/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vtime

import (
	"container/list"
	"time"

	"go.uber.org/zap"

	"github.com/streamseries/streamseries/internal/harnesserr"
	"github.com/streamseries/streamseries/internal/logging"
	"github.com/streamseries/streamseries/internal/quiesce"
)

// Action is a unit of work scheduled to fire at a specific tick.
type Action func()

type entry struct {
	tick   int
	seq    int
	action Action
}

// Options configures a Scheduler. The zero value is a scheduler with the
// package's Default* constants and a no-op Logger.
type Options struct {
	TickTime           int // milliseconds per tick; ignored for scheduling, reported by Clock.TickTime
	MaxTicks           int
	MaxDrainIterations int
	Logger             logging.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxTicks == 0 {
		o.MaxTicks = DefaultMaxTicks
	}
	if o.MaxDrainIterations == 0 {
		o.MaxDrainIterations = DefaultMaxDrainIterations
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// Scheduler owns the tick-ordered action queue and the Clock it drives.
// It is not reentrant: calling RunAll from within an Action is a usage
// error (spec.md §4.2 "Nested scheduling").
type Scheduler struct {
	clock    Clock
	queue    *list.List
	seq      int
	opts     Options
	progress quiesce.Counter
	running  bool
}

// New constructs a Scheduler at tick 0.
func New(opts Options) *Scheduler {
	opts = opts.withDefaults()
	tickTime := DefaultTickTime
	if opts.TickTime != 0 {
		tickTime = time.Duration(opts.TickTime) * time.Millisecond
	}
	return &Scheduler{
		clock: Clock{tickTime: tickTime},
		queue: list.New(),
		opts:  opts,
	}
}

// Clock returns the scheduler's virtual clock.
func (s *Scheduler) Clock() *Clock { return &s.clock }

// Now returns the current tick.
func (s *Scheduler) Now() int { return s.clock.Now() }

// Progress returns the liveness counter adapters must Tick on every
// unit of work they perform, so that RunAll's drain can detect when the
// system has gone quiescent for the current tick.
func (s *Scheduler) Progress() *quiesce.Counter { return &s.progress }

// Pending returns the number of actions still queued, for diagnostics.
func (s *Scheduler) Pending() int { return s.queue.Len() }

// At schedules action to fire at tick, which must be >= the current
// tick. Actions scheduled at the current tick from within another
// action still fire in the same batch, after the actions already queued
// for that tick and without a drain in between, in insertion order.
func (s *Scheduler) At(tick int, action Action) error {
	now := s.clock.Now()
	if tick < now {
		return harnesserr.NewUsage("scheduleAt(%d) is in the past (now=%d)", tick, now)
	}

	s.seq++
	e := &entry{tick: tick, seq: s.seq, action: action}
	s.insert(e)
	return nil
}

func (s *Scheduler) insert(e *entry) {
	for el := s.queue.Front(); el != nil; el = el.Next() {
		cur := el.Value.(*entry)
		if cur.tick > e.tick {
			s.queue.InsertBefore(e, el)
			return
		}
	}
	s.queue.PushBack(e)
}

// RunAll advances the scheduler until no actions remain pending,
// firing due actions tick by tick and draining to quiescence between
// each batch, per the algorithm in spec.md §4.2.
func (s *Scheduler) RunAll() error {
	if s.running {
		return harnesserr.NewUsage("RunAll is not reentrant")
	}
	s.running = true
	defer func() { s.running = false }()

	for {
		front := s.queue.Front()
		if front == nil {
			return nil
		}

		nextTick := front.Value.(*entry).tick
		if nextTick > s.opts.MaxTicks {
			return &harnesserr.TimeoutError{
				Tick:    s.clock.Now(),
				Pending: s.queue.Len(),
				Reason:  "max ticks exceeded",
			}
		}
		s.clock.set(nextTick)
		s.opts.Logger.Debug("advancing tick", zap.Int("tick", nextTick))

		for {
			if err := quiesce.Drain(&s.progress, s.opts.MaxDrainIterations); err != nil {
				return &harnesserr.TimeoutError{
					Tick:    s.clock.Now(),
					Pending: s.queue.Len(),
					Reason:  err.Error(),
				}
			}

			fired := s.fireDue()
			if fired == 0 {
				break
			}
		}
	}
}

// fireDue pops and runs every action whose tick equals the current
// tick, in insertion order, and returns how many fired.
func (s *Scheduler) fireDue() int {
	fired := 0
	for {
		el := s.queue.Front()
		if el == nil {
			break
		}
		e := el.Value.(*entry)
		if e.tick != s.clock.Now() {
			break
		}
		s.queue.Remove(el)
		fired++
		e.action()
	}
	return fired
}
