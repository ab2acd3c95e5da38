package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type item[V any] struct {
	value   V
	expires time.Time
}

// Store is an in-process TTL cache keyed by string. Concurrent misses on one
// key share a single loader call. When maxEntries is reached, expired items
// are swept and new values are served without being stored until room frees
// up.
type Store[V any] struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu     sync.RWMutex
	items  map[string]item[V]
	flight singleflight.Group
}

// NewStore returns a store whose entries live for ttl (zero keeps them until
// deleted). maxEntries <= 0 means unbounded.
func NewStore[V any](ttl time.Duration, maxEntries int) *Store[V] {
	return &Store[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		items:      make(map[string]item[V]),
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(it) {
		s.mu.Lock()
		if cur, ok := s.items[key]; ok && s.expired(cur) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return it.value, true
}

// Set stores value and reports whether it was kept.
func (s *Store[V]) Set(key string, value V) bool {
	it := item[V]{value: value}
	if s.ttl > 0 {
		it.expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; !exists && s.maxEntries > 0 && len(s.items) >= s.maxEntries {
		s.sweepLocked()
		if len(s.items) >= s.maxEntries {
			return false
		}
	}
	s.items[key] = it
	return true
}

// DeletePrefix drops every key starting with prefix and returns how many
// were removed.
func (s *Store[V]) DeletePrefix(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key := range s.items {
		if strings.HasPrefix(key, prefix) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value for key or calls load once for all
// concurrent callers. Errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, load func(context.Context) (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}

	out, err, _ := s.flight.Do(key, func() (any, error) {
		if v, ok := s.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return out.(V), nil
}

func (s *Store[V]) expired(it item[V]) bool {
	return s.ttl > 0 && !it.expires.After(s.now())
}

func (s *Store[V]) sweepLocked() {
	for key, it := range s.items {
		if s.expired(it) {
			delete(s.items, key)
		}
	}
}
