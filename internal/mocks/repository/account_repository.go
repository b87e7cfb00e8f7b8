// Package repository provides testify mocks for the domain repository interfaces.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmailVerificationToken(ctx context.Context, token string) (*entity.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByPasswordResetToken(ctx context.Context, token string) (*entity.Account, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	args := m.Called(ctx, id, fields)

	return args.Error(0)
}

func (m *MockAccountRepository) SetEmailVerificationToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)

	return args.Error(0)
}

func (m *MockAccountRepository) SetPasswordResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, id, token, expiresAt)

	return args.Error(0)
}

func (m *MockAccountRepository) ConsumeEmailVerificationToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)

	return args.Error(0)
}

func (m *MockAccountRepository) ConsumePasswordResetToken(ctx context.Context, token string, passwordHash string) error {
	args := m.Called(ctx, token, passwordHash)

	return args.Error(0)
}
