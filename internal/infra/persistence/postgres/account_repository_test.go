package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/repository"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/infra/persistence/model"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&model.AccountModel{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func newTestAccount(email string) *entity.Account {
	return &entity.Account{
		Email:        email,
		PasswordHash: "$2a$04$abcdefghijklmnopqrstuv",
		Name:         "Budi Santoso",
		Role:         entity.RoleUser,
		IsActive:     true,
	}
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", byID.Email)
	assert.Equal(t, entity.RoleUser, byID.Role)
	assert.True(t, byID.IsActive)
	assert.False(t, byID.EmailVerified)

	byEmail, err := repo.FindByEmail(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
}

func TestAccountRepository_FindMissing(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_CreateDuplicateEmail(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount("budi@example.com")))

	err := repo.Create(ctx, newTestAccount("budi@example.com"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestAccountRepository_EmailExists(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	exists, err := repo.EmailExists(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, newTestAccount("budi@example.com")))

	exists, err = repo.EmailExists(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccountRepository_UpdateFields(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))

	err := repo.UpdateFields(ctx, account.ID, map[string]any{
		"name":  "Budi Hartono",
		"email": "budi.hartono@example.com",
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi Hartono", updated.Name)
	assert.Equal(t, "budi.hartono@example.com", updated.Email)

	// Unknown account id yields not found.
	err = repo.UpdateFields(ctx, uuid.New(), map[string]any{"name": "x"})
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_UpdateFieldsDuplicateEmail(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestAccount("taken@example.com")))
	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))

	err := repo.UpdateFields(ctx, account.ID, map[string]any{"email": "taken@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestAccountRepository_VerificationTokenLifecycle(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))

	token := "verification-token"
	require.NoError(t, repo.SetEmailVerificationToken(ctx, account.ID, token, time.Now().Add(24*time.Hour)))

	found, err := repo.FindByEmailVerificationToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	require.NoError(t, repo.ConsumeEmailVerificationToken(ctx, token))

	verified, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, verified.EmailVerified)
	assert.Nil(t, verified.EmailVerificationToken)
	assert.Nil(t, verified.EmailVerificationExpires)

	// Second consume of the same token must fail.
	err = repo.ConsumeEmailVerificationToken(ctx, token)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
}

func TestAccountRepository_ExpiredVerificationToken(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))

	token := "expired-token"
	require.NoError(t, repo.SetEmailVerificationToken(ctx, account.ID, token, time.Now().Add(-time.Minute)))

	_, err := repo.FindByEmailVerificationToken(ctx, token)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	err = repo.ConsumeEmailVerificationToken(ctx, token)
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	// The account stays unverified.
	unchanged, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.False(t, unchanged.EmailVerified)
}

func TestAccountRepository_ResetTokenLifecycle(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))

	token := "reset-token"
	require.NoError(t, repo.SetPasswordResetToken(ctx, account.ID, token, time.Now().Add(time.Hour)))

	found, err := repo.FindByPasswordResetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	require.NoError(t, repo.ConsumePasswordResetToken(ctx, token, "new-hash"))

	updated, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", updated.PasswordHash)
	assert.Nil(t, updated.PasswordResetToken)
	assert.Nil(t, updated.PasswordResetExpires)

	// Second consume of the same token must fail and leave the hash alone.
	err = repo.ConsumePasswordResetToken(ctx, token, "other-hash")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	unchanged, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", unchanged.PasswordHash)
}

func TestAccountRepository_ExpiredResetToken(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))
	originalHash := account.PasswordHash

	token := "expired-reset"
	require.NoError(t, repo.SetPasswordResetToken(ctx, account.ID, token, time.Now().Add(-time.Minute)))

	err := repo.ConsumePasswordResetToken(ctx, token, "new-hash")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	unchanged, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, unchanged.PasswordHash)
}

func TestAccountRepository_ReissueReplacesToken(t *testing.T) {
	repo := NewAccountRepository(setupTestDB(t))
	ctx := context.Background()

	account := newTestAccount("budi@example.com")
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.SetEmailVerificationToken(ctx, account.ID, "first", time.Now().Add(24*time.Hour)))
	require.NoError(t, repo.SetEmailVerificationToken(ctx, account.ID, "second", time.Now().Add(24*time.Hour)))

	// The first token is dead once replaced.
	_, err := repo.FindByEmailVerificationToken(ctx, "first")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	found, err := repo.FindByEmailVerificationToken(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
}
