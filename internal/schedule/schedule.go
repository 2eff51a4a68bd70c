// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule repeats a cycle forever: after a successful cycle it waits
// the success interval (24h by default), after a failed one the failure
// interval (1h by default). There is no jitter, no growing backoff and no
// retry limit.
package schedule

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	DefaultSuccessInterval = 24 * time.Hour
	DefaultFailureInterval = time.Hour
)

// State is the scheduler's current phase.
type State int32

const (
	Waiting State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Waiting:
		return "waiting"
	default:
		return "unknown"
	}
}

// Cycle is one unit of scheduled work.
type Cycle interface {
	RunCycle(ctx context.Context) error
}

// CycleFunc adapts a function to Cycle.
type CycleFunc func(ctx context.Context) error

func (f CycleFunc) RunCycle(ctx context.Context) error { return f(ctx) }

// Config holds scheduler settings. Zero intervals take the defaults.
type Config struct {
	SuccessInterval time.Duration
	FailureInterval time.Duration
	Logger          *slog.Logger
}

// Scheduler runs a Cycle on a fixed cadence.
type Scheduler struct {
	cycle   Cycle
	success time.Duration
	failure time.Duration
	logger  *slog.Logger
	state   atomic.Int32

	// sleep waits for d or until ctx is done. Tests replace it.
	sleep func(ctx context.Context, d time.Duration) error
	now   func() time.Time
}

// New returns a Scheduler for cycle.
func New(cycle Cycle, cfg Config) *Scheduler {
	s := &Scheduler{
		cycle:   cycle,
		success: cfg.SuccessInterval,
		failure: cfg.FailureInterval,
		logger:  cfg.Logger,
		sleep:   sleepContext,
		now:     time.Now,
	}
	if s.success <= 0 {
		s.success = DefaultSuccessInterval
	}
	if s.failure <= 0 {
		s.failure = DefaultFailureInterval
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// State reports whether a cycle is in progress.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// NextDelay is the wait that follows a cycle ending with err.
func (s *Scheduler) NextDelay(err error) time.Duration {
	if err != nil {
		return s.failure
	}
	return s.success
}

// Step runs one cycle and returns the delay before the next one along with
// the cycle's error. The error is logged, never escalated.
func (s *Scheduler) Step(ctx context.Context) (time.Duration, error) {
	s.state.Store(int32(Running))
	defer s.state.Store(int32(Waiting))

	start := s.now()
	err := s.cycle.RunCycle(ctx)
	delay := s.NextDelay(err)
	next := s.now().Add(delay)

	if err != nil {
		s.logger.Error("cycle failed, retrying later",
			"error", err, "elapsed", s.now().Sub(start).Round(time.Millisecond), "retry_in", delay, "next_run", next.Format(time.RFC3339))
	} else {
		s.logger.Info("cycle succeeded",
			"elapsed", s.now().Sub(start).Round(time.Millisecond), "next_in", delay, "next_run", next.Format(time.RFC3339))
	}
	return delay, err
}

// Run executes a cycle immediately and then keeps cycling until ctx is
// done, which is the only way it returns. The returned error is ctx.Err().
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("scheduler started", "success_interval", s.success, "failure_interval", s.failure)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		delay, _ := s.Step(ctx)
		if err := s.sleep(ctx, delay); err != nil {
			s.logger.Info("scheduler stopped", "reason", err)
			return err
		}
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
