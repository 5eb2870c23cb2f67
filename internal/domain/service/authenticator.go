package service

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"
)

// ErrInvalidIdentity is returned by Authenticator implementations when the
// presented credential cannot be resolved to a user: malformed material,
// unknown user, wrong password or a stale session. The reason is deliberately
// collapsed so that no partial credential information leaks to the caller.
var ErrInvalidIdentity = errors.New("identity could not be resolved")

// Request is the narrow request-attribute accessor the authentication core
// consumes. The HTTP delivery adapts its framework request onto it.
type Request interface {
	// Header returns the named header value, reporting whether it was set.
	Header(name string) (string, bool)

	// Cookie returns the named cookie value, reporting whether it was set.
	Cookie(name string) (string, bool)
}

// Authenticator is one identity-resolution strategy. The Basic variant reads
// the Authorization header; the session variant reads the session cookie.
// Exactly one strategy is active per deployment.
type Authenticator interface {
	// Credential extracts the raw credential material from the request.
	// ok is false when the material is absent entirely.
	Credential(req Request) (credential string, ok bool)

	// ResolveIdentity resolves previously extracted credential material to a
	// user. Failures of any kind surface as ErrInvalidIdentity; infrastructure
	// faults are wrapped and propagated as-is.
	ResolveIdentity(ctx context.Context, credential string) (*entity.User, error)
}
