// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authPolicy implements the AuthPolicy interface. It chains the path gate,
// credential extraction and identity resolution into a single linear check.
type authPolicy struct {
	gate          service.PathGate
	authenticator service.Authenticator
	logger        *slog.Logger
}

// AuthPolicyParams holds dependencies for the auth policy, injected by Fx.
type AuthPolicyParams struct {
	fx.In

	Gate          service.PathGate
	Authenticator service.Authenticator
	Logger        *slog.Logger
}

// NewAuthPolicy is the constructor for authPolicy.
func NewAuthPolicy(params AuthPolicyParams) usecase.AuthPolicy {
	return &authPolicy{
		gate:          params.Gate,
		authenticator: params.Authenticator,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (p *authPolicy) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, p.logger)
}

// Authorize evaluates the request against the policy chain. The checks run in
// a fixed order and the first failing check determines the verdict: excluded
// path, then credential presence, then identity resolution.
func (p *authPolicy) Authorize(ctx context.Context, path string, req service.Request) *usecase.Verdict {
	if !p.gate.RequiresAuth(path) {
		return &usecase.Verdict{Status: usecase.VerdictNotRequired}
	}

	credential, ok := p.authenticator.Credential(req)
	if !ok {
		return &usecase.Verdict{Status: usecase.VerdictMissingCredentials}
	}

	user, err := p.authenticator.ResolveIdentity(ctx, credential)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidIdentity) {
			// Infrastructure fault. The request is still denied, but the cause
			// is worth logging.
			p.log(ctx).Error("Identity resolution failed",
				slog.String("path", path),
				slog.Any("error", err),
			)
		}

		return &usecase.Verdict{Status: usecase.VerdictForbidden}
	}

	return &usecase.Verdict{Status: usecase.VerdictAuthenticated, User: user}
}
