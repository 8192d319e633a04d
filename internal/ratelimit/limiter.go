package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Result is the outcome of one Check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type Config struct {
	Name   string
	Max    int
	Window time.Duration
}

type Option func(*Limiter)

// WithFallback sets the store used when the primary store fails.
func WithFallback(s Store) Option {
	return func(l *Limiter) { l.fallback = s }
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// Limiter is a fixed-window counter. Keys are namespaced by the limiter name so limiters
// for different concerns never share counters, even on a shared store.
type Limiter struct {
	cfg      Config
	store    Store
	fallback Store
	now      func() time.Time

	mu sync.Mutex
}

func New(cfg Config, store Store, opts ...Option) *Limiter {
	l := &Limiter{cfg: cfg, store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) Name() string { return l.cfg.Name }

// Check counts one request for key and reports whether it fits in the current window.
func (l *Limiter) Check(ctx context.Context, key string) (Result, error) {
	k := l.cfg.Name + ":" + key
	res, err := l.check(ctx, l.store, k)
	if err == nil {
		return res, nil
	}
	if l.fallback == nil || l.fallback == l.store {
		return Result{}, err
	}
	log.Warn().Err(err).Str("limiter", l.cfg.Name).Msg("rate limit store failed, using process-local counters")
	return l.check(ctx, l.fallback, k)
}

func (l *Limiter) check(ctx context.Context, store Store, key string) (Result, error) {
	if wc, ok := store.(WindowCounter); ok {
		e, err := wc.Hit(ctx, key, l.cfg.Window)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Allowed:   e.Count <= l.cfg.Max,
			Limit:     l.cfg.Max,
			Remaining: max(l.cfg.Max-e.Count, 0),
			ResetAt:   e.ResetAt,
		}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok, err := store.Get(ctx, key)
	if err != nil {
		return Result{}, err
	}
	if !ok || now.After(e.ResetAt) {
		return l.open(ctx, store, key, now)
	}
	if e.Count >= l.cfg.Max {
		return Result{Allowed: false, Limit: l.cfg.Max, Remaining: 0, ResetAt: e.ResetAt}, nil
	}
	e, err = store.Increment(ctx, key)
	if errors.Is(err, ErrNoEntry) {
		return l.open(ctx, store, key, now)
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Allowed: true, Limit: l.cfg.Max, Remaining: max(l.cfg.Max-e.Count, 0), ResetAt: e.ResetAt}, nil
}

func (l *Limiter) open(ctx context.Context, store Store, key string, now time.Time) (Result, error) {
	e := Entry{Count: 1, ResetAt: now.Add(l.cfg.Window)}
	if err := store.Set(ctx, key, e); err != nil {
		return Result{}, err
	}
	return Result{Allowed: true, Limit: l.cfg.Max, Remaining: max(l.cfg.Max-1, 0), ResetAt: e.ResetAt}, nil
}
