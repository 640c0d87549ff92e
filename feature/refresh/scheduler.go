package refresh

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Scheduler periodically checks the dataset's age and triggers a refresh
// when it crosses the staleness threshold. A check is skipped while a
// refresh is in flight.
type Scheduler struct {
	pipeline *Pipeline
	interval time.Duration
	maxAge   time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a staleness-driven refresh scheduler.
func NewScheduler(p *Pipeline, cfg Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		pipeline: p,
		interval: cfg.Interval(),
		maxAge:   cfg.MaxAge(),
		logger:   logger,
	}
}

// Start launches the scheduling loop. It checks once immediately (a fresh
// deployment has no dataset at all) and then on every interval tick until
// ctx is done.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		s.check(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.check(ctx)
			}
		}
	}()
}

func (s *Scheduler) check(ctx context.Context) {
	if age, ok := s.pipeline.DatasetAge(); ok && age < s.maxAge {
		return
	}

	err := s.pipeline.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrAlreadyRunning):
		s.logger.Debug("Refresh in flight, skipping scheduled check")
	default:
		// The previous generation stays servable; try again next tick.
		s.logger.Error("Scheduled refresh failed", zap.Error(err))
	}
}
