// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity entity. The email doubles as the login
// identifier; PasswordHash is the only credential material ever stored.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Email        string    // The user's email, used as the login identifier.
	PasswordHash string    // The bcrypt hash of the user's password. Plaintext is never stored.
	ResetToken   *string   // Pending password-reset token, nil when no reset is in flight.
	CreatedAt    time.Time // Timestamp of when this user account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this user's data.
}
