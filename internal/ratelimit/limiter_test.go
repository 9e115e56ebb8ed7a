package ratelimit

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/pressratelabs/pressrate/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLimiter(t *testing.T, cfg config.RateLimitConfig) *Limiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &Limiter{
		redis: client,
		log:   zap.NewNop(),
		cfg:   cfg,
	}
}

func TestAllowRequestWithinBudget(t *testing.T) {
	l := newTestLimiter(t, config.RateLimitConfig{Enabled: true, RequestsPerMin: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.AllowRequest(ctx, "key-a"))
	}
	require.ErrorIs(t, l.AllowRequest(ctx, "key-a"), ErrRateLimited)

	// Budgets are per key.
	require.NoError(t, l.AllowRequest(ctx, "key-b"))
}

func TestAllowRequestDisabled(t *testing.T) {
	l := newTestLimiter(t, config.RateLimitConfig{Enabled: false, RequestsPerMin: 1})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, l.AllowRequest(ctx, "key-a"))
	}
}

func TestAllowRequestFailsOpenWithoutRedis(t *testing.T) {
	l := &Limiter{
		log: zap.NewNop(),
		cfg: config.RateLimitConfig{Enabled: true, RequestsPerMin: 1},
	}

	require.NoError(t, l.AllowRequest(context.Background(), "key-a"))
	require.NoError(t, l.AllowRequest(context.Background(), "key-a"))
}

func TestAllowImportRowsDailyBudget(t *testing.T) {
	l := newTestLimiter(t, config.RateLimitConfig{Enabled: true, ImportRowsPerDay: 100})
	ctx := context.Background()

	require.NoError(t, l.AllowImportRows(ctx, "actor-1", 60))
	require.NoError(t, l.AllowImportRows(ctx, "actor-1", 40))
	require.ErrorIs(t, l.AllowImportRows(ctx, "actor-1", 1), ErrRateLimited)

	require.NoError(t, l.AllowImportRows(ctx, "actor-2", 100))
}
