package repository

import (
	"context"
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when no session record exists for a token.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists session records for the database-backed session
// store. Expiry is not evaluated here; the store applies the lazy TTL check
// at read time, so stale rows may legitimately remain in storage.
type SessionRepository interface {
	// CreateSession persists a new session record keyed by its token.
	CreateSession(ctx context.Context, session *entity.Session) error

	// FindSessionByToken retrieves a session record by its token.
	FindSessionByToken(ctx context.Context, token string) (*entity.Session, error)

	// DeleteSessionByToken removes the session record for the token.
	DeleteSessionByToken(ctx context.Context, token string) error

	// DeleteSessionsByUserID removes all session records for a user.
	DeleteSessionsByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteSessionsCreatedBefore removes session records created before the
	// cutoff and returns how many were removed. Used by the optional reaper.
	DeleteSessionsCreatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}
