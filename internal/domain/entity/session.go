package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to the user who logged in with it.
// The token carries no decodable structure; it is only a lookup key.
type Session struct {
	Token     string    // Random token in UUIDv4 textual form.
	UserID    uuid.UUID // The user this session belongs to.
	CreatedAt time.Time // When the session was created; the basis for lazy expiry.
}

// ExpiredAt reports whether the session is stale at the given instant for
// the given TTL. A non-positive TTL disables expiry entirely.
func (s *Session) ExpiredAt(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}

	return now.Sub(s.CreatedAt) > ttl
}
