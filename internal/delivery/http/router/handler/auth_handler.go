// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/middleware"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/response"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/usecase"
)

// AuthHandler holds dependencies for account lifecycle handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid registration input")
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "account registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "login successful")
}

// VerifyEmail consumes the single-use token from the verification link.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	input := usecase.VerifyEmailInput{Token: c.QueryParam("token")}

	if err := h.uc.VerifyEmail(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "email verified successfully")
}

// ResendVerification reissues the email-verification challenge.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var input usecase.ResendVerificationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid resend input")
	}

	if err := h.uc.ResendVerification(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "verification email sent")
}

// ForgotPassword starts a password-reset challenge.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var input usecase.ForgotPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid forgot password input")
	}

	if err := h.uc.RequestPasswordReset(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "password reset email sent")
}

// ResetPassword consumes the single-use reset token and installs the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var input usecase.ResetPasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid reset password input")
	}

	if err := h.uc.ResetPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "password reset successfully")
}

// GetProfile returns the profile of the authenticated account.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "SESSION_INVALID", "invalid or expired session token")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}

// UpdateProfile applies a partial update to the authenticated account.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "SESSION_INVALID", "invalid or expired session token")
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid profile input")
	}

	profile, err := h.uc.UpdateProfile(c.Request().Context(), accountID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "profile updated successfully")
}

// Logout acknowledges the logout. Sessions are stateless bearer tokens, so
// the client discards the token and it dies at its expiry.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK, nil, "logged out successfully")
}

// GetAccountByID returns any account's profile. Admin only.
func (h *AuthHandler) GetAccountByID(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "invalid account id")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}
