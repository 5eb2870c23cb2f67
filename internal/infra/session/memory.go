// Package session provides the concrete session store implementations.
// All variants share the contract in service.SessionStore: opaque UUID
// tokens, lazy read-time expiry, explicit revocation.
package session

import (
	"context"
	"sync"
	"time"

	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
)

type memoryEntry struct {
	userID    string
	createdAt time.Time
}

// memoryStore is the in-process session store: a mutex-guarded map living for
// the lifetime of the process. Reads and writes are linearizable per token,
// so a Revoke never races a Resolve into returning a deleted session.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	ttl time.Duration
	now func() time.Time
}

// NewMemoryStore creates an in-process session store. A non-positive ttl
// disables expiry.
func NewMemoryStore(ttl time.Duration) service.SessionStore {
	return newMemoryStore(ttl, time.Now)
}

func newMemoryStore(ttl time.Duration, now func() time.Time) *memoryStore {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

// Create mints a fresh token for the user and records the session.
func (s *memoryStore) Create(_ context.Context, userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", service.ErrMalformedUserID
	}

	token := uuid.NewString()

	s.mu.Lock()
	s.entries[token] = memoryEntry{userID: userID, createdAt: s.now()}
	s.mu.Unlock()

	return token, nil
}

// Resolve returns the owning userID for a live token. Expired entries are
// reported invalid but deliberately left in the map; lazy expiry trades a
// little stale storage for not needing a sweeper.
func (s *memoryStore) Resolve(_ context.Context, token string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()

	if !ok {
		return "", service.ErrSessionInvalid
	}

	if s.ttl > 0 && s.now().Sub(entry.createdAt) > s.ttl {
		return "", service.ErrSessionInvalid
	}

	return entry.userID, nil
}

// Revoke removes the binding if present.
func (s *memoryStore) Revoke(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[token]; !ok {
		return false, nil
	}

	delete(s.entries, token)

	return true, nil
}

// PurgeExpired removes entries past the TTL and returns how many were
// removed. It exists purely for memory hygiene; Resolve's lazy check stays
// authoritative whether or not this ever runs.
func (s *memoryStore) PurgeExpired(_ context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, entry := range s.entries {
		if entry.createdAt.Before(cutoff) {
			delete(s.entries, token)
			removed++
		}
	}

	return removed, nil
}
