// Package scheduler repeatedly runs sync passes on a fixed interval.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/mastopress/internal/state"
	"github.com/iudanet/mastopress/internal/sync"
)

// DefaultInterval - пауза между завершением прохода и началом следующего
const DefaultInterval = 5 * time.Minute

// Runner выполняет один проход синхронизации
type Runner interface {
	RunPass(ctx context.Context) (*sync.PassResult, error)
}

// Scheduler запускает проходы последовательно; следующий начинается только
// после завершения предыдущего и паузы interval.
type Scheduler struct {
	runner   Runner
	logger   *slog.Logger
	interval time.Duration
}

// New creates a scheduler. A non-positive interval falls back to DefaultInterval.
func New(runner Runner, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{runner: runner, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled (returns nil) or a pass fails to persist
// tracked state (returns that error).
func (s *Scheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			s.logger.Info("Scheduler stopped")
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return nil
		case <-timer.C:
		}

		if _, err := s.runner.RunPass(ctx); err != nil {
			// Сбой сохранения фатален даже при остановке
			if errors.Is(err, state.ErrPersistence) {
				return fmt.Errorf("sync pass failed: %w", err)
			}
			if ctx.Err() != nil {
				s.logger.Info("Scheduler stopped during pass", "error", err)
				return nil
			}
			s.logger.Error("Sync pass failed", "error", err)
		}

		s.logger.Info("Sleeping", "interval", s.interval)
		timer.Reset(s.interval)
	}
}
