// Package app hosts the background processes around the analytics core:
// today the periodic rollup scheduler.
package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/peoplepulse/peoplepulse/internal/analytics"
	"github.com/peoplepulse/peoplepulse/internal/metrics"
	"github.com/peoplepulse/peoplepulse/internal/platform/retry"
)

const (
	rollupTimeout        = 30 * time.Second
	rollupRetryAttempts  = 3
	rollupInitialBackoff = time.Second
)

// RollupScheduler recomputes the daily aggregates for yesterday and today on
// a fixed interval. Recomputing both days covers feedback that arrived around
// midnight after yesterday's last run. Recompute fully replaces each row, so
// overlapping runs converge on the same result.
type RollupScheduler struct {
	aggregator *analytics.Aggregator
	clock      clockwork.Clock
	interval   time.Duration
	elector    *LeaderElector

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRollupScheduler creates the scheduler. elector may be nil, in which case
// every instance runs the rollup on its own schedule.
func NewRollupScheduler(aggregator *analytics.Aggregator, clock clockwork.Clock, interval time.Duration, elector *LeaderElector) *RollupScheduler {
	return &RollupScheduler{
		aggregator: aggregator,
		clock:      clock,
		interval:   interval,
		elector:    elector,
		stopCh:     make(chan struct{}),
	}
}

// Start launches the scheduler loop in a goroutine. The first rollup runs
// immediately so a fresh deployment has rows without waiting a full interval.
func (s *RollupScheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.runOnce(context.Background())

		ticker := s.clock.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				s.runOnce(context.Background())
			case <-s.stopCh:
				return
			}
		}
	}()
	slog.Info("Rollup scheduler started", "interval", s.interval)
}

// Stop terminates the loop, waits for an in-flight rollup to finish, and
// hands the lease back so another instance can take over immediately.
func (s *RollupScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()

	if s.elector != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.elector.Release(ctx); err != nil {
			slog.Warn("Failed to release rollup lease", "error", err)
		}
	}
}

func (s *RollupScheduler) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, rollupTimeout)
	defer cancel()

	if s.elector != nil {
		leader, err := s.elector.Acquire(ctx)
		if err != nil {
			// Run anyway: a Redis outage must not stall rollups, and the
			// recompute is idempotent.
			slog.Warn("Leader election unavailable, running rollup", "error", err)
		} else if !leader {
			slog.Debug("Skipping rollup, another instance holds the lease")
			return
		}
	}

	today := analytics.DateOnly(s.clock.Now())
	yesterday := today.AddDate(0, 0, -1)

	policy := retry.Policy{
		MaxAttempts:    rollupRetryAttempts,
		InitialBackoff: rollupInitialBackoff,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Rollup attempt failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	retryAll := func(error) retry.Action { return retry.Retry }

	err := retry.DoVoid(ctx, policy, retryAll, func() error {
		_, err := s.aggregator.ComputeRange(ctx, yesterday, today)
		return err
	})
	if err != nil {
		metrics.AggregateRecomputesTotal.WithLabelValues("error").Inc()
		slog.Error("Scheduled rollup failed", "from", yesterday.Format(time.DateOnly), "to", today.Format(time.DateOnly), "error", err)
		return
	}

	metrics.AggregateRecomputesTotal.WithLabelValues("ok").Inc()
	slog.Debug("Scheduled rollup completed", "from", yesterday.Format(time.DateOnly), "to", today.Format(time.DateOnly))
}
