// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/service"
)

// VerdictStatus is the outcome class of an authorization check.
type VerdictStatus int

const (
	// VerdictNotRequired means the path is excluded from authentication.
	VerdictNotRequired VerdictStatus = iota

	// VerdictMissingCredentials means the request carried no credential at all.
	VerdictMissingCredentials

	// VerdictForbidden means a credential was present but did not resolve to a user.
	VerdictForbidden

	// VerdictAuthenticated means a user identity was established.
	VerdictAuthenticated
)

// Verdict is the result of authorizing a single request.
// User is non-nil only when Status is VerdictAuthenticated.
type Verdict struct {
	Status VerdictStatus
	User   *entity.User
}

// AuthPolicy decides, for every incoming request, whether it may proceed and
// under which identity. The delivery layer maps the verdict to HTTP statuses.
type AuthPolicy interface {
	Authorize(ctx context.Context, path string, req service.Request) *Verdict
}
