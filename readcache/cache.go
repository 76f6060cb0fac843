// Package readcache provides a bounded, time-limited read cache in front of a
// text2kv.Store.
//
// A cached value is served only when it was fetched within the freshness hint
// of the current read. Put invalidates the cached entry for its name, and a
// read with text2kv.Bypass always goes to the underlying store.
package readcache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sagarc03/text2kv"
)

// DefaultMaxEntries bounds the cache when no size is configured.
const DefaultMaxEntries = 1024

type entry struct {
	value     string
	fetchedAt time.Time
}

// Store wraps a text2kv.Store with an LRU read cache.
type Store struct {
	next  text2kv.Store
	now   func() time.Time
	cache *lru.Cache[string, entry]

	mu sync.Mutex
	// writes counts Put calls; a read-through is cached only when no Put
	// started or finished while it was in flight.
	writes uint64
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New wraps next with a cache holding at most maxEntries values.
func New(next text2kv.Store, maxEntries int, opts ...Option) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	// lru.New only fails for a non-positive size.
	cache, err := lru.New[string, entry](maxEntries)
	if err != nil {
		panic(err)
	}
	s := &Store{
		next:  next,
		now:   time.Now,
		cache: cache,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get serves a cached value younger than freshness, or reads through.
// Misses are not cached.
func (s *Store) Get(ctx context.Context, name string, freshness time.Duration) (string, error) {
	if freshness > 0 {
		if value, ok := s.lookup(name, freshness); ok {
			return value, nil
		}
	}

	s.mu.Lock()
	writes := s.writes
	s.mu.Unlock()

	fetchedAt := s.now()
	value, err := s.next.Get(ctx, name, freshness)
	if err != nil {
		return "", err
	}

	s.store(name, entry{value: value, fetchedAt: fetchedAt}, writes)
	return value, nil
}

// Put writes through and drops any cached value for name.
func (s *Store) Put(ctx context.Context, name, value string) error {
	s.invalidate(name)
	err := s.next.Put(ctx, name, value)
	s.invalidate(name)
	return err
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) lookup(name string, freshness time.Duration) (string, bool) {
	e, ok := s.cache.Get(name)
	if !ok || s.now().Sub(e.fetchedAt) >= freshness {
		return "", false
	}
	return e.value, true
}

func (s *Store) store(name string, e entry, writes uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writes != writes {
		return
	}
	s.cache.Add(name, e)
}

func (s *Store) invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writes++
	s.cache.Remove(name)
}
