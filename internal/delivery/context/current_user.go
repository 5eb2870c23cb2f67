package context

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyCurrentUser is the key for storing the authenticated user in context.
const KeyCurrentUser ContextKey = "current_user"

// SetCurrentUser stores the authenticated user in echo.Context.
func SetCurrentUser(c echo.Context, user *entity.User) {
	c.Set(string(KeyCurrentUser), user)
}

// GetCurrentUser extracts the authenticated user from echo.Context.
// Returns nil when the request was not authenticated.
func GetCurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyCurrentUser)).(*entity.User); ok {
		return user
	}

	return nil
}

// WithCurrentUser returns a new context carrying the authenticated user.
func WithCurrentUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, KeyCurrentUser, user)
}

// GetCurrentUserFromContext extracts the authenticated user from a standard
// context.Context. Returns nil when absent.
func GetCurrentUserFromContext(ctx context.Context) *entity.User {
	if user, ok := ctx.Value(KeyCurrentUser).(*entity.User); ok {
		return user
	}

	return nil
}
