package middleware

import (
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware applies the authorization policy to every request before
// routing. Excluded paths pass through untouched; authenticated requests get
// the resolved user attached to the request context.
type AuthMiddleware struct {
	policy usecase.AuthPolicy
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(policy usecase.AuthPolicy, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{policy: policy, logger: logger}
}

// echoRequest adapts echo's request to the narrow service.Request accessor.
type echoRequest struct {
	c echo.Context
}

func (r echoRequest) Header(name string) (string, bool) {
	values := r.c.Request().Header.Values(name)
	if len(values) == 0 {
		return "", false
	}

	return values[0], true
}

func (r echoRequest) Cookie(name string) (string, bool) {
	cookie, err := r.c.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}

	return cookie.Value, true
}

// Authorize is the core middleware function. It maps the policy verdict to
// HTTP semantics: missing credentials 401, failed resolution 403.
func (m *AuthMiddleware) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		path := c.Request().URL.Path

		verdict := m.policy.Authorize(ctx, path, echoRequest{c: c})
		switch verdict.Status {
		case usecase.VerdictNotRequired:
			return next(c)
		case usecase.VerdictMissingCredentials:
			return domainerrors.ErrMissingCredentials
		case usecase.VerdictForbidden:
			return domainerrors.ErrInvalidCredentials
		case usecase.VerdictAuthenticated:
			deliverycontext.SetCurrentUser(c, verdict.User)
			c.SetRequest(c.Request().WithContext(deliverycontext.WithCurrentUser(ctx, verdict.User)))

			return next(c)
		default:
			return domainerrors.ErrInternalError
		}
	}
}

// compile-time check that the adapter satisfies the accessor contract.
var _ service.Request = echoRequest{}
