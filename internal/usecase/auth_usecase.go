// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailInput carries the single-use token from the verification link.
type VerifyEmailInput struct {
	Token string `json:"token" validate:"required"`
}

// ResendVerificationInput defines the data required to reissue a verification email.
type ResendVerificationInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordInput defines the data required to start a password reset.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput carries the single-use token and the replacement password.
type ResetPasswordInput struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// UpdateProfileInput defines a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// --- Output DTOs ---

// Profile is the account view exposed to callers. CreatedAt is epoch seconds.
type Profile struct {
	ID            uuid.UUID   `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	Role          entity.Role `json:"role"`
	IsActive      bool        `json:"isActive"`
	EmailVerified bool        `json:"emailVerified"`
	CreatedAt     int64       `json:"createdAt"`
}

// RegisterOutput returns the session token and profile of the new account.
type RegisterOutput struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}

// LoginOutput returns the session token and profile after a successful login.
type LoginOutput struct {
	Token   string   `json:"token"`
	Profile *Profile `json:"profile"`
}

// AuthUsecase defines the interface for account lifecycle business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	VerifyEmail(ctx context.Context, input VerifyEmailInput) error
	ResendVerification(ctx context.Context, input ResendVerificationInput) error
	RequestPasswordReset(ctx context.Context, input ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	GetProfile(ctx context.Context, accountID uuid.UUID) (*Profile, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input UpdateProfileInput) (*Profile, error)
}
