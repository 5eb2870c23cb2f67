package auth

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"

	"github.com/pkg/errors"
)

// basicPrefix is the exact scheme marker: case-sensitive, single space.
const basicPrefix = "Basic "

// HeaderAuthorization is the header the Basic strategy reads.
const HeaderAuthorization = "Authorization"

// ExtractEncodedPart returns the Base64 payload of a Basic Authorization
// header value. ok is false when the header does not carry the exact
// "Basic " prefix.
func ExtractEncodedPart(header string) (string, bool) {
	if !strings.HasPrefix(header, basicPrefix) {
		return "", false
	}

	return header[len(basicPrefix):], true
}

// DecodeCredentials decodes the Base64 payload. Decode failures are
// swallowed: a malformed payload is simply an absent credential.
func DecodeCredentials(encoded string) (string, bool) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}

	return string(decoded), true
}

// SplitCredentials splits decoded credentials on the first colon only, so
// secrets may themselves contain colons. No colon means no credentials.
func SplitCredentials(decoded string) (identifier, secret string, ok bool) {
	return strings.Cut(decoded, ":")
}

// basicAuthenticator resolves identities from the Authorization header using
// the Basic scheme.
type basicAuthenticator struct {
	users  repository.UserRepository
	hasher service.PasswordHasher
	logger *slog.Logger
}

// NewBasicAuthenticator is the constructor for basicAuthenticator.
func NewBasicAuthenticator(users repository.UserRepository, hasher service.PasswordHasher, logger *slog.Logger) service.Authenticator {
	return &basicAuthenticator{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// Credential returns the raw Authorization header value.
func (a *basicAuthenticator) Credential(req service.Request) (string, bool) {
	header, ok := req.Header(HeaderAuthorization)
	if !ok || header == "" {
		return "", false
	}

	return header, true
}

// ResolveIdentity chains extraction, decoding, splitting, directory lookup
// and password verification. The chain short-circuits at the first failed
// step; every failure collapses into ErrInvalidIdentity.
func (a *basicAuthenticator) ResolveIdentity(ctx context.Context, credential string) (*entity.User, error) {
	encoded, ok := ExtractEncodedPart(credential)
	if !ok {
		return nil, service.ErrInvalidIdentity
	}

	decoded, ok := DecodeCredentials(encoded)
	if !ok {
		return nil, service.ErrInvalidIdentity
	}

	email, password, ok := SplitCredentials(decoded)
	if !ok {
		return nil, service.ErrInvalidIdentity
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, service.ErrInvalidIdentity
		}

		return nil, errors.Wrap(err, "failed to look up user for basic credentials")
	}

	if !a.hasher.Check(password, user.PasswordHash) {
		a.logger.Debug("Password verification failed", slog.String("email", email))

		return nil, service.ErrInvalidIdentity
	}

	return user, nil
}
