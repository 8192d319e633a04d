// Package ratelimit implements fixed-window request counters over a pluggable store.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Entry is the counter state of one key inside its current window.
type Entry struct {
	Count   int
	ResetAt time.Time
}

// ErrNoEntry is returned by Increment when the key has no live window.
var ErrNoEntry = errors.New("ratelimit: no entry for key")

// Store holds window entries. Implementations need not be atomic across calls;
// the Limiter serialises read-modify-write sequences on stores that are not WindowCounters.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Set(ctx context.Context, key string, e Entry) error
	Increment(ctx context.Context, key string) (Entry, error)
}

// WindowCounter is implemented by stores that can count a hit and open a window atomically.
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (Entry, error)
}

// MemoryStore is a process-local store. Its state is lost on restart and is not shared
// between instances.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = e
	return nil
}

func (s *MemoryStore) Increment(_ context.Context, key string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, ErrNoEntry
	}
	e.Count++
	s.entries[key] = e
	return e, nil
}

// Sweep drops entries whose window ended before now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for k, e := range s.entries {
		if now.After(e.ResetAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
