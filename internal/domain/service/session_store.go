package service

import (
	"context"
	"errors"
)

// ErrSessionInvalid is returned by Resolve for unknown tokens and for tokens
// past the configured TTL. The two cases are indistinguishable on purpose.
var ErrSessionInvalid = errors.New("session token is unknown or expired")

// ErrMalformedUserID is returned by Create when the userID is not a UUID.
var ErrMalformedUserID = errors.New("user id is not a well-formed identifier")

// SessionStore owns the token-to-session mapping. It is the only component
// that mutates that mapping; callers hold tokens, never sessions.
//
// Expiry is lazy: a session's validity is decided at Resolve time by
// comparing its recorded age against the store's configured TTL. No variant
// is required to purge stale entries proactively.
type SessionStore interface {
	// Create mints a fresh opaque token for the user and records the session.
	// The userID must be a well-formed UUID.
	Create(ctx context.Context, userID string) (string, error)

	// Resolve returns the owning userID for a live token.
	// Unknown tokens and tokens past the TTL resolve to an error.
	Resolve(ctx context.Context, token string) (string, error)

	// Revoke removes the binding if present and reports whether it did.
	Revoke(ctx context.Context, token string) (bool, error)
}
