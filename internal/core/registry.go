package core

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"horizonx-probe/internal/logger"
)

// ErrCollectionAborted wraps every failure that stops a sampling run.
var ErrCollectionAborted = errors.New("collection aborted")

// Collector produces one category per run.
type Collector interface {
	Key() string
	Title() string
	Collect(ctx context.Context, v Verbosity) (*Category, error)
}

// Sampler runs an ordered collector list once per call.
type Sampler struct {
	collectors []Collector
	log        logger.Logger
	now        func() time.Time
}

func NewSampler(log logger.Logger, collectors ...Collector) *Sampler {
	return &Sampler{
		collectors: collectors,
		log:        log,
		now:        time.Now,
	}
}

func (s *Sampler) SetClock(now func() time.Time) { s.now = now }

// Collect invokes every collector in order and builds a fresh snapshot. The
// first collector error, panic or context cancellation aborts the run.
func (s *Sampler) Collect(ctx context.Context, v Verbosity) (*Snapshot, error) {
	b := NewSnapshotBuilder(v, s.now())

	for _, c := range s.collectors {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCollectionAborted, err)
		}

		start := time.Now()
		cat, err := s.run(ctx, c, v)
		if err != nil {
			s.log.Error("collector", "name", c.Key(), "error", err)
			return nil, fmt.Errorf("%w: %s: %w", ErrCollectionAborted, c.Key(), err)
		}
		if cat == nil {
			cat = NewCategory(c.Key(), c.Title())
		}
		s.log.Debug("collector", "name", c.Key(), "metrics", len(cat.metrics), "severity", cat.Severity(), "took", time.Since(start))

		b.Add(cat)
		if c.Key() == "os" {
			if m, ok := cat.Metric("Hostname"); ok {
				b.SetHostname(m.Value.String())
			}
		}
	}

	return b.Build(), nil
}

func (s *Sampler) run(ctx context.Context, c Collector, v Verbosity) (cat *Category, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Debug("collector panic", "name", c.Key(), "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Collect(ctx, v)
}
