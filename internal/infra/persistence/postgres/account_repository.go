package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	domainerrors "github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/errors"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/repository"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/infra/persistence/model"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account entity to the database.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateEmail
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the account entity with the generated ID and timestamps.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error
	if err != nil {
		// If the error is 'record not found', return a domain-specific error.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its email address.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmailVerificationToken retrieves the account holding an unexpired
// email-verification token. Expired tokens are indistinguishable from absent ones.
func (repo *accountRepository) FindByEmailVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("email_verification_token = ? AND email_verification_expires > ?", token, time.Now()).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by verification token")
	}

	return toAccountDomain(&accountM), nil
}

// FindByPasswordResetToken retrieves the account holding an unexpired
// password-reset token. Expired tokens are indistinguishable from absent ones.
func (repo *accountRepository) FindByPasswordResetToken(ctx context.Context, token string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("password_reset_token = ? AND password_reset_expires > ?", token, time.Now()).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by reset token")
	}

	return toAccountDomain(&accountM), nil
}

// EmailExists reports whether any account already uses the given email.
func (repo *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to count accounts by email")
	}

	return count > 0, nil
}

// UpdateFields applies a partial update to the account with the given id.
func (repo *accountRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return repository.ErrDuplicateEmail
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// SetEmailVerificationToken stores a fresh email-verification challenge,
// replacing any outstanding one.
func (repo *accountRepository) SetEmailVerificationToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	return repo.UpdateFields(ctx, id, map[string]any{
		"email_verification_token":   token,
		"email_verification_expires": expiresAt,
	})
}

// SetPasswordResetToken stores a fresh password-reset challenge,
// replacing any outstanding one.
func (repo *accountRepository) SetPasswordResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	return repo.UpdateFields(ctx, id, map[string]any{
		"password_reset_token":   token,
		"password_reset_expires": expiresAt,
	})
}

// ConsumeEmailVerificationToken marks the holder of the token as verified and
// clears the challenge in one conditional UPDATE. The row count decides the
// outcome, so two concurrent consumers can never both succeed.
func (repo *accountRepository) ConsumeEmailVerificationToken(ctx context.Context, token string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email_verification_token = ? AND email_verification_expires > ?", token, time.Now()).
		Updates(map[string]any{
			"email_verified":             true,
			"email_verification_token":   nil,
			"email_verification_expires": nil,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume verification token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTokenNotFound
	}

	return nil
}

// ConsumePasswordResetToken replaces the password hash of the token holder and
// clears the challenge in one conditional UPDATE. The row count decides the
// outcome, so two concurrent consumers can never both succeed.
func (repo *accountRepository) ConsumePasswordResetToken(ctx context.Context, token string, passwordHash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("password_reset_token = ? AND password_reset_expires > ?", token, time.Now()).
		Updates(map[string]any{
			"password_hash":          passwordHash,
			"password_reset_token":   nil,
			"password_reset_expires": nil,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to consume reset token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTokenNotFound
	}

	return nil
}

// toAccountDomain maps the persistence model back to a pure domain entity.
func toAccountDomain(m *model.AccountModel) *entity.Account {
	return &entity.Account{
		ID:                       m.ID,
		Email:                    m.Email,
		PasswordHash:             m.PasswordHash,
		Name:                     m.Name,
		Role:                     entity.Role(m.Role),
		IsActive:                 m.IsActive,
		EmailVerified:            m.EmailVerified,
		EmailVerificationToken:   m.EmailVerificationToken,
		EmailVerificationExpires: m.EmailVerificationExpires,
		PasswordResetToken:       m.PasswordResetToken,
		PasswordResetExpires:     m.PasswordResetExpires,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

// fromAccountDomain maps a pure domain entity to a GORM persistence model.
func fromAccountDomain(a *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:                       a.ID,
		Email:                    a.Email,
		PasswordHash:             a.PasswordHash,
		Name:                     a.Name,
		Role:                     a.Role.String(),
		IsActive:                 a.IsActive,
		EmailVerified:            a.EmailVerified,
		EmailVerificationToken:   a.EmailVerificationToken,
		EmailVerificationExpires: a.EmailVerificationExpires,
		PasswordResetToken:       a.PasswordResetToken,
		PasswordResetExpires:     a.PasswordResetExpires,
		CreatedAt:                a.CreatedAt,
		UpdatedAt:                a.UpdatedAt,
	}
}
