package core

import (
	"context"
	"time"

	"horizonx-probe/internal/logger"
)

// Scheduler re-samples on a fixed interval and hands each fresh snapshot to
// sink. Failed samples are logged and skipped.
type Scheduler struct {
	interval  time.Duration
	verbosity Verbosity
	log       logger.Logger
	sampler   *Sampler
	sink      func(*Snapshot)
}

func NewScheduler(interval time.Duration, v Verbosity, log logger.Logger, sampler *Sampler, sink func(*Snapshot)) *Scheduler {
	return &Scheduler{interval: interval, verbosity: v, log: log, sampler: sampler, sink: sink}
}

// Start blocks until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if s.sampler == nil || s.sink == nil {
		return
	}

	snap, err := s.sampler.Collect(ctx, s.verbosity)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Error("scheduler: sample failed", "error", err)
		}
		return
	}
	s.sink(snap)
}
