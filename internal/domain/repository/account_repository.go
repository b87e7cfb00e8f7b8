// Package repository defines the persistence contracts of the domain layer.
// Implementations live under internal/infra/persistence.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
)

// Sentinel errors returned by AccountRepository implementations.
var (
	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail indicates a unique constraint violation on the email column.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrTokenNotFound indicates no account holds the given unexpired token.
	// Consume operations also return it when another request already consumed
	// the token, which is what makes single use hold under concurrency.
	ErrTokenNotFound = errors.New("token not found or expired")
)

// AccountRepository defines the persistence operations for accounts and the
// verification challenges attached to them.
type AccountRepository interface {
	// Create persists a new account. Returns ErrDuplicateEmail when the email
	// is already registered.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves an account by its lowercase-normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByEmailVerificationToken retrieves the account holding the given
	// unexpired email-verification token.
	FindByEmailVerificationToken(ctx context.Context, token string) (*entity.Account, error)

	// FindByPasswordResetToken retrieves the account holding the given
	// unexpired password-reset token.
	FindByPasswordResetToken(ctx context.Context, token string) (*entity.Account, error)

	// EmailExists reports whether any account already uses the given email.
	EmailExists(ctx context.Context, email string) (bool, error)

	// UpdateFields applies a partial update to the account with the given id.
	// Keys are column names of the accounts table.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error

	// SetEmailVerificationToken stores a fresh email-verification challenge,
	// replacing any outstanding one.
	SetEmailVerificationToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error

	// SetPasswordResetToken stores a fresh password-reset challenge,
	// replacing any outstanding one.
	SetPasswordResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error

	// ConsumeEmailVerificationToken atomically marks the account holding the
	// given unexpired token as verified and clears the challenge. Exactly one
	// concurrent call for the same token succeeds; the rest get
	// ErrTokenNotFound.
	ConsumeEmailVerificationToken(ctx context.Context, token string) error

	// ConsumePasswordResetToken atomically replaces the password hash of the
	// account holding the given unexpired token and clears the challenge.
	// Exactly one concurrent call for the same token succeeds; the rest get
	// ErrTokenNotFound.
	ConsumePasswordResetToken(ctx context.Context, token string, passwordHash string) error
}
