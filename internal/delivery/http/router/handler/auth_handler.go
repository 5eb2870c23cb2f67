// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"gatekeeper/config"
	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// --- Request DTOs ---

type registerRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type resetTokenRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	Email       string `json:"email" form:"email"`
	ResetToken  string `json:"reset_token" form:"reset_token" validate:"required"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required"`
}

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	uc              usecase.AccountUsecase
	cookieName      string
	sessionDuration time.Duration
	logger          *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AccountUsecase, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	cookieName := config.DefaultSessionCookieName
	var sessionDuration time.Duration
	if cfg != nil && cfg.Auth != nil {
		if cfg.Auth.SessionCookieName != "" {
			cookieName = cfg.Auth.SessionCookieName
		}
		sessionDuration = time.Duration(cfg.Auth.SessionDurationSeconds) * time.Second
	}

	return &AuthHandler{
		uc:              uc,
		cookieName:      cookieName,
		sessionDuration: sessionDuration,
		logger:          logger,
	}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{
		"email": output.User.Email,
	}, "User registered successfully")
}

// Login handles the session creation request and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.sessionCookie(output.SessionToken, h.sessionDuration))

	return response.Success(c, http.StatusOK, map[string]string{
		"email": output.User.Email,
	}, "Login successful")
}

// Logout handles the session destruction request and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie == nil || cookie.Value == "" {
		return domainerrors.ErrSessionNotFound.WrapMessage("no session cookie present")
	}

	if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.expiredSessionCookie())

	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Successfully logged out",
	}, "Logout successful")
}

// Profile returns the email behind the current session.
func (h *AuthHandler) Profile(c echo.Context) error {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie == nil || cookie.Value == "" {
		return domainerrors.ErrSessionNotFound.WrapMessage("no session cookie present")
	}

	output, err := h.uc.Profile(c.Request().Context(), cookie.Value)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"email": output.Email,
	}, "Profile retrieved successfully")
}

// ResetPasswordToken mints a password-reset token for the given email.
func (h *AuthHandler) ResetPasswordToken(c echo.Context) error {
	var input resetTokenRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset token input")
	}
	if err := c.Validate(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	output, err := h.uc.ResetPasswordToken(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"email":       output.Email,
		"reset_token": output.ResetToken,
	}, "Reset token created successfully")
}

// UpdatePassword finishes a password reset with a previously minted token.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var input updatePasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password update input")
	}
	if err := c.Validate(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	if err := h.uc.UpdatePassword(c.Request().Context(), &usecase.UpdatePasswordInput{
		ResetToken:  input.ResetToken,
		NewPassword: input.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Password updated",
	}, "Password updated successfully")
}

func (h *AuthHandler) sessionCookie(token string, duration time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if duration > 0 {
		cookie.MaxAge = int(duration.Seconds())
	}

	return cookie
}

func (h *AuthHandler) expiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
