package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/peoplepulse")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 2.0, cfg.SubmitRatePerSecond)
	assert.Equal(t, 5, cfg.SubmitRateBurst)
	assert.Equal(t, time.Hour, cfg.RollupInterval)
	assert.Equal(t, time.Minute, cfg.InsightsCacheTTL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9999")
	t.Setenv("ROLLUP_INTERVAL", "15m")
	t.Setenv("SUBMIT_RATE_PER_SECOND", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RollupInterval)
	assert.Equal(t, 10.0, cfg.SubmitRatePerSecond)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_MissingRedisURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/peoplepulse")
	t.Setenv("REDIS_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_RejectsNonPositiveRate(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUBMIT_RATE_PER_SECOND", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBMIT_RATE_PER_SECOND")
}

func TestLoad_RejectsTooShortRollupInterval(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ROLLUP_INTERVAL", "10s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROLLUP_INTERVAL")
}
