// Package ratelimit bounds API request volume per key using redis counters.
// It fails open: a redis outage must not take the rate engine down with it.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pressratelabs/pressrate/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrRateLimited = errors.New("rate_limited")

var Module = fx.Module("ratelimit",
	fx.Provide(NewLimiter),
)

type Params struct {
	fx.In

	Redis  *redis.Client `optional:"true"`
	Log    *zap.Logger
	Config *config.Config
}

type Limiter struct {
	redis  *redis.Client
	log    *zap.Logger
	cfg    config.RateLimitConfig
}

func NewLimiter(p Params) *Limiter {
	return &Limiter{
		redis: p.Redis,
		log:   p.Log.Named("ratelimit"),
		cfg:   p.Config.RateLimit,
	}
}

// AllowRequest enforces the per-minute request budget for an API key.
func (l *Limiter) AllowRequest(ctx context.Context, apiKey string) error {
	if !l.cfg.Enabled || l.redis == nil {
		return nil
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("ratelimit:req:%s:%s", apiKey, now.Format("2006-01-02T15:04"))

	val, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		l.log.Error("rate limit counter failed", zap.Error(err))
		return nil
	}
	if val == 1 {
		l.redis.Expire(ctx, key, 2*time.Minute)
	}
	if val > int64(l.cfg.RequestsPerMin) {
		return ErrRateLimited
	}
	return nil
}

// AllowImportRows enforces the daily staged-row budget for an actor.
func (l *Limiter) AllowImportRows(ctx context.Context, actor string, rows int) error {
	if !l.cfg.Enabled || l.redis == nil {
		return nil
	}

	now := time.Now().UTC()
	key := fmt.Sprintf("ratelimit:import:%s:%s", actor, now.Format("2006-01-02"))

	val, err := l.redis.IncrBy(ctx, key, int64(rows)).Result()
	if err != nil {
		l.log.Error("import row counter failed", zap.Error(err))
		return nil
	}
	if val == int64(rows) {
		l.redis.Expire(ctx, key, 48*time.Hour)
	}
	if val > int64(l.cfg.ImportRowsPerDay) {
		return ErrRateLimited
	}
	return nil
}
