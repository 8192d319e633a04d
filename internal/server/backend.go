package server

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/ratelimit"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// RateLimitBackend is the store the limiters count in. Local is always present: it backs
// the limiters directly without Redis and takes over when Redis fails.
type RateLimitBackend struct {
	Kind   string // "redis" or "memory"
	Store  ratelimit.Store
	Local  *ratelimit.MemoryStore
	client *redis.Client
}

func NewRateLimitBackend(lc fx.Lifecycle, cfg *config.Config) *RateLimitBackend {
	local := ratelimit.NewMemoryStore()
	b := &RateLimitBackend{Kind: "memory", Store: local, Local: local}

	if cfg.Redis.URL == "" {
		log.Warn().Msg("REDIS_URL not set: rate limits are per-instance and reset on restart")
		return b
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Error().Err(err).Msg("Redis unavailable, falling back to process-local rate limits")
		return b
	}
	b.Kind = "redis"
	b.Store = ratelimit.NewRedisStore(client)
	b.client = client
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return client.Close() },
	})
	log.Info().Msg("Rate limits backed by Redis")
	return b
}

// Ping reports whether the backing store is reachable.
func (b *RateLimitBackend) Ping(ctx context.Context) error {
	if b.client == nil {
		return nil
	}
	return b.client.Ping(ctx).Err()
}

func NewLimiters(cfg *config.Config, b *RateLimitBackend) *ratelimit.Limiters {
	var opts []ratelimit.Option
	if b.Store != ratelimit.Store(b.Local) {
		opts = append(opts, ratelimit.WithFallback(b.Local))
	}
	return ratelimit.NewLimiters(cfg.RateLimit, b.Store, opts...)
}
