package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Fetcher defines the interface for fetch cycle operations.
type Fetcher interface {
	FetchAll(ctx context.Context) error
}

type Scheduler struct {
	fetcher  Fetcher
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(fetcher Fetcher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		interval: interval,
		logger:   logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

// runCycle bounds one full pass by the interval so cycles never overlap.
func (s *Scheduler) runCycle(ctx context.Context) {
	cycleCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if err := s.fetcher.FetchAll(cycleCtx); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("fetch cycle failed", "error", err)
	}
}
