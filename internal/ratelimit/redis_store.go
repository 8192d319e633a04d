package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps window counters in Redis so every instance shares them.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

// NewRedisClient parses a redis:// URL and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	var get *redis.StringCmd
	var ttl *redis.DurationCmd
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		get = pipe.Get(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return Entry{}, false, err
	}
	raw, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return Entry{}, false, fmt.Errorf("decode counter %q: %w", key, err)
	}
	left := ttl.Val()
	if left <= 0 {
		// Counters without expiry are never written by this store; treat them as stale.
		return Entry{}, false, nil
	}
	return Entry{Count: count, ResetAt: s.now().Add(left)}, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, e Entry) error {
	left := e.ResetAt.Sub(s.now())
	if left <= 0 {
		return s.client.Del(ctx, key).Err()
	}
	return s.client.Set(ctx, key, e.Count, left).Err()
}

func (s *RedisStore) Increment(ctx context.Context, key string) (Entry, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	if ttl.Val() < 0 {
		// INCR created the key: there was no live window.
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return Entry{}, err
		}
		return Entry{}, ErrNoEntry
	}
	return Entry{Count: int(incr.Val()), ResetAt: s.now().Add(ttl.Val())}, nil
}

// Hit counts one request with INCR and starts the window with PEXPIRE on its first hit.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (Entry, error) {
	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	now := s.now()
	left := ttl.Val()
	if incr.Val() == 1 || left < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return Entry{}, err
		}
		left = window
	}
	return Entry{Count: int(incr.Val()), ResetAt: now.Add(left)}, nil
}

var (
	_ Store         = (*RedisStore)(nil)
	_ WindowCounter = (*RedisStore)(nil)
	_ Store         = (*MemoryStore)(nil)
)
