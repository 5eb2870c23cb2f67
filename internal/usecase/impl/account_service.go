package impl

import (
	"context"
	"log/slog"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	sessions  service.SessionStore
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Sessions  service.SessionStore
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		sessions:  params.Sessions,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with a freshly hashed password.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByEmail(ctx, input.Email)
		if findErr == nil {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing registration")
		}

		newUser := &entity.User{
			Email:        input.Email,
			PasswordHash: hashedPassword,
		}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login validates the credentials and opens a new session on success.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// bcrypt check runs outside any transaction (CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	token, err := srv.sessions.Create(ctx, user.ID.String())
	if err != nil {
		srv.log(ctx).Error("Failed to create session", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create session during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		SessionToken: token,
		User:         user,
	}, nil
}

// Logout revokes the session behind the token.
func (srv *accountService) Logout(ctx context.Context, sessionToken string) error {
	removed, err := srv.sessions.Revoke(ctx, sessionToken)
	if err != nil {
		return errors.Wrap(err, "failed to revoke session")
	}
	if !removed {
		return domainerrors.ErrSessionNotFound.WrapMessage("no session to revoke")
	}

	srv.log(ctx).Debug("Session revoked")

	return nil
}

// Profile resolves the session token to the owning account's email.
func (srv *accountService) Profile(ctx context.Context, sessionToken string) (*usecase.ProfileOutput, error) {
	userID, err := srv.sessions.Resolve(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			return nil, domainerrors.ErrSessionNotFound.WrapMessage("session is unknown or expired")
		}

		return nil, errors.Wrap(err, "failed to resolve session")
	}

	parsedID, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.Wrap(err, "session resolved to a malformed user id")
	}

	user, err := srv.userRepo.FindByID(ctx, parsedID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// The account vanished while the session lived on.
			return nil, domainerrors.ErrSessionNotFound.WrapMessage("session user no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return &usecase.ProfileOutput{Email: user.Email}, nil
}

// ResetPasswordToken mints a reset token for the account and stores it.
func (srv *accountService) ResetPasswordToken(ctx context.Context, email string) (*usecase.ResetTokenOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Reset token requested for unknown email", slog.String("email", email))

			return nil, domainerrors.ErrForbidden.WrapMessage("unknown email for password reset")
		}

		return nil, errors.Wrap(err, "failed to load user for password reset")
	}

	resetToken := uuid.NewString()
	if err := srv.userRepo.SetResetToken(ctx, user.ID, &resetToken); err != nil {
		return nil, errors.Wrap(err, "failed to store reset token")
	}

	srv.log(ctx).Info("Reset token minted", slog.Any("userID", user.ID))

	return &usecase.ResetTokenOutput{
		Email:      user.Email,
		ResetToken: resetToken,
	}, nil
}

// UpdatePassword finishes a password reset: it re-hashes the new password and
// clears the consumed reset token in one transaction.
func (srv *accountService) UpdatePassword(ctx context.Context, input *usecase.UpdatePasswordInput) error {
	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during reset", slog.Any("error", err))

		return domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during reset")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, findErr := userRepo.FindByResetToken(ctx, input.ResetToken)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrResetTokenInvalid.WrapMessage("reset token is unknown")
			}

			return errors.Wrap(findErr, "failed to look up reset token")
		}

		if updateErr := userRepo.UpdatePasswordHash(ctx, user.ID, hashedPassword); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update password hash")
		}

		if clearErr := userRepo.SetResetToken(ctx, user.ID, nil); clearErr != nil {
			return errors.Wrap(clearErr, "failed to clear reset token")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Password update failed", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password updated")

	return nil
}
