package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/supplylens/supplylens/pkg/types"
)

// Entry is a dashboard together with the time it was computed.
type Entry struct {
	Dashboard *types.Dashboard
	UpdatedAt time.Time
}

// Store is a thread-safe in-memory dashboard cache, keyed by
// FilterOptions.Key(). A background goroutine (Run) periodically evicts
// entries older than the configured TTL.
type Store struct {
	mu   sync.RWMutex
	data map[string]*Entry
	ttl  time.Duration
	now  func() time.Time // injectable for deterministic tests
}

// New creates a Store with the given TTL. A zero TTL disables reuse: Fresh
// never reports a hit.
func New(ttl time.Duration) *Store {
	return &Store{
		data: make(map[string]*Entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Put stores or replaces the dashboard computed for d.Filters.
// Callers must not modify d after calling Put.
func (s *Store) Put(d *types.Dashboard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[d.Filters.Key()] = &Entry{
		Dashboard: d,
		UpdatedAt: s.now(),
	}
}

// Get returns the Entry for the given key and a boolean indicating whether
// an entry was found. The entry may be stale if TTL has elapsed.
func (s *Store) Get(key string) (*Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	return e, ok
}

// Fresh returns the cached dashboard for key if it was computed within the
// TTL.
func (s *Store) Fresh(key string) (*types.Dashboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || !e.UpdatedAt.After(s.now().Add(-s.ttl)) {
		return nil, false
	}
	return e.Dashboard, true
}

// List returns all entries whose UpdatedAt is within the TTL.
// Stale entries that have not yet been evicted are excluded.
func (s *Store) List() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cutoff := s.now().Add(-s.ttl)
	out := make([]*Entry, 0, len(s.data))
	for _, e := range s.data {
		if e.UpdatedAt.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the total number of entries currently held, including stale ones.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Purge drops every entry. It is called when the dataset changes and all
// cached dashboards are invalid.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.data)
	s.data = make(map[string]*Entry)
	return n
}

// Evict removes entries whose UpdatedAt is older than now minus TTL.
// It returns the number of entries removed.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := now.Add(-s.ttl)
	removed := 0
	for key, e := range s.data {
		if !e.UpdatedAt.After(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

// Run starts the background TTL eviction loop. It ticks at half the TTL
// interval (minimum 1 second). Run blocks until ctx is cancelled.
func (s *Store) Run(ctx context.Context) {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := s.Evict(now); n > 0 {
				slog.Debug("store: evicted stale dashboards", "count", n)
			}
		}
	}
}
