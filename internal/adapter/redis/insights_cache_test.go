package redis

import (
	"context"
	"testing"
	"time"

	"github.com/peoplepulse/peoplepulse/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	redistest "github.com/testcontainers/testcontainers-go/modules/redis"
)

func setupTestRedis(t *testing.T) *goredis.Client {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	ctx := context.Background()

	container, err := redistest.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := NewClient(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, client.FlushAll(ctx).Err())

	return client
}

func TestInsightsCache_MissReturnsNilNil(t *testing.T) {
	rdb := setupTestRedis(t)
	cache := NewInsightsCache(rdb, time.Minute)

	summary, err := cache.Get(context.Background(), 30)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestInsightsCache_RoundTrip(t *testing.T) {
	rdb := setupTestRedis(t)
	cache := NewInsightsCache(rdb, time.Minute)
	ctx := context.Background()

	want := &domain.InsightsSummary{
		TotalFeedback:    10,
		AvgDailyFeedback: 2,
		SentimentDistribution: map[domain.Sentiment]int{
			domain.SentimentPositive: 10,
			domain.SentimentNeutral:  0,
			domain.SentimentNegative: 0,
		},
		AvgSentimentScore: 1.0,
		Trend:             domain.TrendSummary{Direction: domain.TrendStable},
	}
	require.NoError(t, cache.Set(ctx, 30, want))

	got, err := cache.Get(ctx, 30)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, got)
}

func TestInsightsCache_WindowsAreIndependent(t *testing.T) {
	rdb := setupTestRedis(t)
	cache := NewInsightsCache(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 7, &domain.InsightsSummary{TotalFeedback: 7}))
	require.NoError(t, cache.Set(ctx, 30, &domain.InsightsSummary{TotalFeedback: 30}))

	weekly, err := cache.Get(ctx, 7)
	require.NoError(t, err)
	require.NotNil(t, weekly)
	assert.Equal(t, 7, weekly.TotalFeedback)

	monthly, err := cache.Get(ctx, 30)
	require.NoError(t, err)
	require.NotNil(t, monthly)
	assert.Equal(t, 30, monthly.TotalFeedback)
}

func TestInsightsCache_EntriesExpire(t *testing.T) {
	rdb := setupTestRedis(t)
	cache := NewInsightsCache(rdb, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, 30, &domain.InsightsSummary{TotalFeedback: 1}))

	ttl, err := rdb.TTL(ctx, insightsKey(30)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	time.Sleep(1500 * time.Millisecond)

	summary, err := cache.Get(ctx, 30)
	require.NoError(t, err)
	assert.Nil(t, summary, "expired entries read as a miss")
}
