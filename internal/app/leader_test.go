package app

import (
	"context"
	"testing"
	"time"

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

	opts, err := goredis.ParseURL(connStr)
	require.NoError(t, err)

	client := goredis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err())
	require.NoError(t, client.FlushAll(ctx).Err())

	return client
}

func TestLeaderElector_Acquire_SingleInstance(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector := NewLeaderElector(rdb, "instance-1", 30*time.Second)

	acquired, err := elector.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired, "first instance should acquire leadership")

	val, err := rdb.Get(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "instance-1", val)

	ttl, err := rdb.TTL(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 20.0, "TTL should be ~30s")
	assert.LessOrEqual(t, ttl.Seconds(), 30.0)
}

func TestLeaderElector_Acquire_MultipleInstances(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector1 := NewLeaderElector(rdb, "instance-1", 30*time.Second)
	elector2 := NewLeaderElector(rdb, "instance-2", 30*time.Second)

	acquired1, err := elector1.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired1)

	acquired2, err := elector2.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, acquired2, "instance 2 should NOT become leader")

	val, err := rdb.Get(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "instance-1", val)
}

func TestLeaderElector_Acquire_RenewsOwnLease(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector := NewLeaderElector(rdb, "instance-1", 30*time.Second)

	acquired, err := elector.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(2 * time.Second)

	// The holder re-acquiring must renew, not fail against its own lock.
	acquired, err = elector.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired, "holder should keep leadership across ticks")

	ttl, err := rdb.TTL(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 25.0, "TTL should be refreshed to ~30s")
}

func TestLeaderElector_Release_Success(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector := NewLeaderElector(rdb, "instance-1", 30*time.Second)

	acquired, err := elector.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	err = elector.Release(ctx)
	require.NoError(t, err)

	_, err = rdb.Get(ctx, rollupLeaderKey).Result()
	assert.ErrorIs(t, err, goredis.Nil, "lock key should be deleted")
}

func TestLeaderElector_Release_NotLeader(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector1 := NewLeaderElector(rdb, "instance-1", 30*time.Second)
	elector2 := NewLeaderElector(rdb, "instance-2", 30*time.Second)

	acquired, err := elector1.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	// A non-holder releasing must not delete the holder's lock.
	err = elector2.Release(ctx)
	require.NoError(t, err)

	val, err := rdb.Get(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "instance-1", val, "instance 1 should still be leader")
}

func TestLeaderElector_Failover_AfterTTLExpiry(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector1 := NewLeaderElector(rdb, "instance-1", 2*time.Second)

	acquired, err := elector1.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	time.Sleep(3 * time.Second)

	elector2 := NewLeaderElector(rdb, "instance-2", 30*time.Second)
	acquired, err = elector2.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired, "instance 2 should become leader after TTL expiry")

	val, err := rdb.Get(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "instance-2", val)
}

func TestLeaderElector_GracefulRelease_ImmediateTakeover(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	elector1 := NewLeaderElector(rdb, "instance-1", 30*time.Second)
	elector2 := NewLeaderElector(rdb, "instance-2", 30*time.Second)

	acquired, err := elector1.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, acquired)

	err = elector1.Release(ctx)
	require.NoError(t, err)

	acquired, err = elector2.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, acquired, "instance 2 should become leader immediately after release")

	val, err := rdb.Get(ctx, rollupLeaderKey).Result()
	require.NoError(t, err)
	assert.Equal(t, "instance-2", val)
}
