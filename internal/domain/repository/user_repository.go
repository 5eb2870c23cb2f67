// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the user directory consumed by the authentication core.
// Lookups return the first matching record as authoritative.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves the first user registered under the email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByResetToken retrieves the user holding the given reset token.
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdatePasswordHash replaces the stored password hash for the user.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error

	// SetResetToken sets or clears (nil) the pending reset token for the user.
	SetResetToken(ctx context.Context, id uuid.UUID, token *string) error
}
