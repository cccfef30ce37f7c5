package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rollupLeaderKey = "rollup:leader"

// LeaderElector implements Redis-based leader election using SETNX with TTL.
// When several replicas share one database, only the lease holder runs the
// scheduled rollup; the others skip their tick. Rollups are idempotent, so a
// lost or expired lease degrades to duplicate work, never to wrong data.
type LeaderElector struct {
	rdb        *redis.Client
	instanceID string
	lockKey    string
	lockTTL    time.Duration
}

// NewLeaderElector creates a leader election coordinator.
// instanceID should be unique per instance (e.g., hostname-PID).
func NewLeaderElector(rdb *redis.Client, instanceID string, lockTTL time.Duration) *LeaderElector {
	return &LeaderElector{
		rdb:        rdb,
		instanceID: instanceID,
		lockKey:    rollupLeaderKey,
		lockTTL:    lockTTL,
	}
}

// Acquire attempts to take or renew the lease. It returns true when this
// instance holds leadership for the next lockTTL.
func (l *LeaderElector) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.rdb.SetNX(ctx, l.lockKey, l.instanceID, l.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire leader lock: %w", err)
	}
	if ok {
		return true, nil
	}

	// Lock exists. If it is ours from a previous tick, renew instead of
	// yielding to our own stale lease.
	currentLeader, err := l.rdb.Get(ctx, l.lockKey).Result()
	if err == redis.Nil {
		// Expired between SETNX and GET; next tick will pick it up.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check leader: %w", err)
	}
	if currentLeader != l.instanceID {
		return false, nil
	}

	renewed, err := l.rdb.Expire(ctx, l.lockKey, l.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to renew leader lock: %w", err)
	}
	return renewed, nil
}

// Release voluntarily releases leadership.
// Should be called on graceful shutdown.
func (l *LeaderElector) Release(ctx context.Context) error {
	// Delete only if we're still the leader (avoid deleting another instance's lock)
	script := `
		if redis.call("GET", KEYS[1]) == ARGV[1] then
			return redis.call("DEL", KEYS[1])
		else
			return 0
		end
	`

	_, err := l.rdb.Eval(ctx, script, []string{l.lockKey}, l.instanceID).Result()
	return err
}
