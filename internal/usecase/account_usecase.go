package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
}

// LoginInput defines the data required to open a session.
type LoginInput struct {
	Email    string
	Password string
}

// UpdatePasswordInput defines the data required to finish a password reset.
type UpdatePasswordInput struct {
	ResetToken  string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the session token minted for the cookie.
type LoginOutput struct {
	SessionToken string
	User         *entity.User
}

// ProfileOutput returns the identity behind an active session.
type ProfileOutput struct {
	Email string
}

// ResetTokenOutput returns the minted password-reset token.
type ResetTokenOutput struct {
	Email      string
	ResetToken string
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, sessionToken string) error
	Profile(ctx context.Context, sessionToken string) (*ProfileOutput, error)
	ResetPasswordToken(ctx context.Context, email string) (*ResetTokenOutput, error)
	UpdatePassword(ctx context.Context, input *UpdatePasswordInput) error
}
