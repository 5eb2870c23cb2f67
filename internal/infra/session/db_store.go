package session

import (
	"context"
	"time"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// dbStore is the persisted-record session store. It delegates storage to a
// SessionRepository and applies the same lazy TTL check as the in-process
// variant; only the storage medium differs.
type dbStore struct {
	sessions repository.SessionRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewDBStore creates a session store backed by a session-record repository.
// A non-positive ttl disables expiry.
func NewDBStore(sessions repository.SessionRepository, ttl time.Duration) service.SessionStore {
	return newDBStore(sessions, ttl, time.Now)
}

func newDBStore(sessions repository.SessionRepository, ttl time.Duration, now func() time.Time) *dbStore {
	return &dbStore{
		sessions: sessions,
		ttl:      ttl,
		now:      now,
	}
}

// Create mints a fresh token and persists the session record.
func (s *dbStore) Create(ctx context.Context, userID string) (string, error) {
	owner, err := uuid.Parse(userID)
	if err != nil {
		return "", service.ErrMalformedUserID
	}

	token := uuid.NewString()
	record := &entity.Session{
		Token:     token,
		UserID:    owner,
		CreatedAt: s.now(),
	}

	if err := s.sessions.CreateSession(ctx, record); err != nil {
		return "", errors.Wrap(err, "failed to persist session record")
	}

	return token, nil
}

// Resolve looks up the session record and applies the lazy TTL check in
// code rather than in the query, so expired rows may remain in storage.
func (s *dbStore) Resolve(ctx context.Context, token string) (string, error) {
	record, err := s.sessions.FindSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", service.ErrSessionInvalid
		}

		return "", errors.Wrap(err, "failed to load session record")
	}

	if record.ExpiredAt(s.now(), s.ttl) {
		return "", service.ErrSessionInvalid
	}

	return record.UserID.String(), nil
}

// Revoke deletes the session record if present.
func (s *dbStore) Revoke(ctx context.Context, token string) (bool, error) {
	err := s.sessions.DeleteSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to delete session record")
	}

	return true, nil
}

// PurgeExpired removes rows whose age exceeds the TTL. Optional hygiene;
// Resolve's lazy check stays authoritative.
func (s *dbStore) PurgeExpired(ctx context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	removed, err := s.sessions.DeleteSessionsCreatedBefore(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge expired session records")
	}

	return removed, nil
}
