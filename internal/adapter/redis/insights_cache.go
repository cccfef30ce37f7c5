package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// InsightsCache caches computed insight summaries per window. Entries are
// TTL-only: aggregates are recompute-replaced upstream, so a short TTL is
// the whole invalidation story.
type InsightsCache struct {
	rdb goredis.Cmdable
	ttl time.Duration
}

func NewInsightsCache(rdb goredis.Cmdable, ttl time.Duration) *InsightsCache {
	return &InsightsCache{rdb: rdb, ttl: ttl}
}

func insightsKey(windowDays int) string {
	return fmt.Sprintf("insights:window:%d", windowDays)
}

// Get returns the cached summary for the window, or (nil, nil) on a miss.
func (c *InsightsCache) Get(ctx context.Context, windowDays int) (*domain.InsightsSummary, error) {
	raw, err := c.rdb.Get(ctx, insightsKey(windowDays)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.InsightsCacheOps.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		metrics.InsightsCacheOps.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to read insights cache: %w", err)
	}

	var summary domain.InsightsSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		metrics.InsightsCacheOps.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to decode cached insights: %w", err)
	}

	metrics.InsightsCacheOps.WithLabelValues("hit").Inc()
	return &summary, nil
}

// Set stores the summary under the window key with the cache TTL.
func (c *InsightsCache) Set(ctx context.Context, windowDays int, summary *domain.InsightsSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode insights for cache: %w", err)
	}

	if err := c.rdb.Set(ctx, insightsKey(windowDays), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write insights cache: %w", err)
	}
	return nil
}
