// Package session keeps live conversations in an in-memory TTL store.
// Sessions are ephemeral by design: an abandoned conversation expires and
// takes its dictated data with it.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"vocalis/internal/domain"
)

// Entry wraps a session with its turn lock. The lock serializes turns per
// session: extract, merge and validate run as one unit, so two concurrent
// turns on the same session cannot interleave their merges.
type Entry struct {
	mu      sync.Mutex
	Session *domain.Session
}

// Lock acquires the session's turn lock.
func (e *Entry) Lock() { e.mu.Lock() }

// Unlock releases the session's turn lock.
func (e *Entry) Unlock() { e.mu.Unlock() }

// Store is a TTL-evicting session registry, safe for concurrent use.
type Store struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Put registers a session.
func (s *Store) Put(sess *domain.Session) *Entry {
	entry := &Entry{Session: sess}
	s.cache.Set(sess.ID.String(), entry, cache.DefaultExpiration)
	return entry
}

// Get returns the entry for a session and refreshes its TTL. An expired or
// unknown id yields domain.ErrSessionNotFound.
func (s *Store) Get(id uuid.UUID) (*Entry, error) {
	v, ok := s.cache.Get(id.String())
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	entry := v.(*Entry)
	// Sliding expiration: activity keeps the conversation alive.
	s.cache.Set(id.String(), entry, cache.DefaultExpiration)
	return entry, nil
}

// Delete discards a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id uuid.UUID) {
	s.cache.Delete(id.String())
}

// Count returns the number of live sessions.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
