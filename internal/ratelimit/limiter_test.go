package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, store Store, clock *fakeClock) *Limiter {
	return New(Config{Name: "test", Max: max, Window: 10 * time.Minute}, store, WithClock(clock.Now))
}

func TestLimiterWindowing(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	l := newTestLimiter(5, NewMemoryStore(), clock)

	var last Result
	for i := 1; i <= 5; i++ {
		res, err := l.Check(ctx, "1.2.3.4")
		require.NoError(t, err)
		require.True(t, res.Allowed, "call %d", i)
		assert.Equal(t, 5-i, res.Remaining)
		last = res
	}

	res, err := l.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, last.ResetAt, res.ResetAt)

	// Still inside the window at exactly resetAt.
	clock.t = res.ResetAt
	res, err = l.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	clock.Advance(time.Millisecond)
	res, err = l.Check(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 4, res.Remaining)
	assert.Equal(t, clock.t.Add(10*time.Minute), res.ResetAt)
}

func TestLimiterKeyIsolation(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	l := newTestLimiter(2, NewMemoryStore(), clock)

	for i := 0; i < 2; i++ {
		res, err := l.Check(ctx, "a")
		require.NoError(t, err)
		require.True(t, res.Allowed)
	}
	res, _ := l.Check(ctx, "a")
	require.False(t, res.Allowed)

	res, err := l.Check(ctx, "b")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)

	res, _ = l.Check(ctx, "a")
	assert.False(t, res.Allowed)
}

func TestLimitersShareStoreWithoutSharingCounters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	clock := &fakeClock{t: time.Unix(0, 0)}
	newsletter := New(Config{Name: "newsletter", Max: 1, Window: time.Minute}, store, WithClock(clock.Now))
	quizEmail := New(Config{Name: "quiz_email", Max: 1, Window: time.Minute}, store, WithClock(clock.Now))

	res, _ := newsletter.Check(ctx, "ip:1.1.1.1")
	require.True(t, res.Allowed)
	res, _ = quizEmail.Check(ctx, "ip:1.1.1.1")
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, store.Len())
}

type brokenStore struct{}

var errBroken = errors.New("connection refused")

func (brokenStore) Get(context.Context, string) (Entry, bool, error) { return Entry{}, false, errBroken }
func (brokenStore) Set(context.Context, string, Entry) error         { return errBroken }
func (brokenStore) Increment(context.Context, string) (Entry, error) { return Entry{}, errBroken }

func TestLimiterFallsBackToLocalStore(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	local := NewMemoryStore()
	l := New(Config{Name: "api", Max: 1, Window: time.Minute}, brokenStore{}, WithFallback(local), WithClock(clock.Now))

	res, err := l.Check(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Check(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestLimiterWithoutFallbackReturnsError(t *testing.T) {
	l := New(Config{Name: "api", Max: 1, Window: time.Minute}, brokenStore{})
	_, err := l.Check(context.Background(), "k")
	assert.ErrorIs(t, err, errBroken)
}

func TestMemoryStoreSweep(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Unix(1000, 0)
	require.NoError(t, s.Set(ctx, "old", Entry{Count: 3, ResetAt: now.Add(-time.Second)}))
	require.NoError(t, s.Set(ctx, "live", Entry{Count: 1, ResetAt: now.Add(time.Minute)}))

	assert.Equal(t, 1, s.Sweep(now))
	_, ok, _ := s.Get(ctx, "old")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "live")
	assert.True(t, ok)

	_, err := s.Increment(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoEntry)
}
