package auth

import (
	"context"
	"log/slog"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// sessionAuthenticator resolves identities from an opaque session token
// carried in a cookie, delegating token bookkeeping to the SessionStore.
type sessionAuthenticator struct {
	cookieName string
	sessions   service.SessionStore
	users      repository.UserRepository
	logger     *slog.Logger
}

// NewSessionAuthenticator is the constructor for sessionAuthenticator.
func NewSessionAuthenticator(cookieName string, sessions service.SessionStore, users repository.UserRepository, logger *slog.Logger) service.Authenticator {
	return &sessionAuthenticator{
		cookieName: cookieName,
		sessions:   sessions,
		users:      users,
		logger:     logger,
	}
}

// Credential returns the session token from the configured cookie.
func (a *sessionAuthenticator) Credential(req service.Request) (string, bool) {
	token, ok := req.Cookie(a.cookieName)
	if !ok || token == "" {
		return "", false
	}

	return token, true
}

// ResolveIdentity resolves the session token to its owning user. Unknown and
// expired tokens collapse into ErrInvalidIdentity, as does a session whose
// owner no longer exists in the directory.
func (a *sessionAuthenticator) ResolveIdentity(ctx context.Context, credential string) (*entity.User, error) {
	userID, err := a.sessions.Resolve(ctx, credential)
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			return nil, service.ErrInvalidIdentity
		}

		return nil, errors.Wrap(err, "failed to resolve session token")
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		a.logger.Warn("Session resolved to a malformed user ID", slog.String("user_id", userID))

		return nil, service.ErrInvalidIdentity
	}

	user, err := a.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, service.ErrInvalidIdentity
		}

		return nil, errors.Wrap(err, "failed to look up session user")
	}

	return user, nil
}
