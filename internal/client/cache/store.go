package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a fetched value is served without refetching.
const DefaultTTL = 30 * time.Second

type entry struct {
	key       Key
	value     any
	fetchedAt time.Time
	stale     bool
}

// Store holds query results. Reads of a fresh entry are served from memory;
// a missing or stale entry triggers a fetch, with concurrent readers of the
// same key coalesced onto a single in-flight call.
type Store struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

func New(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Get returns the cached value for key, fetching it when absent or stale.
// Concurrent Gets for the same key share one fetch call. A failed fetch
// leaves any previous (stale) value in place.
func (s *Store) Get(ctx context.Context, key Key, fetch func(ctx context.Context) (any, error)) (any, error) {
	id := key.String()

	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && !e.stale && s.now().Sub(e.fetchedAt) < s.ttl {
		v := e.value
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(id, func() (any, error) {
		// A coalesced waiter may arrive after the leader already stored a
		// fresh value; re-check before fetching again.
		s.mu.Lock()
		if e, ok := s.entries[id]; ok && !e.stale && s.now().Sub(e.fetchedAt) < s.ttl {
			v := e.value
			s.mu.Unlock()
			return v, nil
		}
		s.mu.Unlock()

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.Put(key, v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Put stores a fresh value for key, replacing any previous entry.
func (s *Store) Put(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.String()] = &entry{
		key:       key,
		value:     value,
		fetchedAt: s.now(),
	}
}

// Invalidate marks every entry whose key starts with prefix as stale. The
// values stay readable via Previous until the next Get refetches them.
func (s *Store) Invalidate(prefix Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
		}
	}
}

// Remove drops the entry for key entirely.
func (s *Store) Remove(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key.String())
}

// Clear drops every entry. Called on logout so no cached data crosses
// sessions.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}

// Previous returns the last stored value for key, stale or not. It lets a
// caller render old data while a refetch is in flight.
func (s *Store) Previous(key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Stale reports whether key is absent, marked stale, or past its TTL.
func (s *Store) Stale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key.String()]
	if !ok {
		return true
	}
	return e.stale || s.now().Sub(e.fetchedAt) >= s.ttl
}
