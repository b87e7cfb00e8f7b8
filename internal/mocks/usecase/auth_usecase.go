// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/usecase"
)

// MockAuthUsecase is a mock implementation of usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *MockAuthUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockAuthUsecase) VerifyEmail(ctx context.Context, input usecase.VerifyEmailInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) ResendVerification(ctx context.Context, input usecase.ResendVerificationInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) RequestPasswordReset(ctx context.Context, input usecase.ForgotPasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockAuthUsecase) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.Profile, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.Profile), args.Error(1)
}

func (m *MockAuthUsecase) UpdateProfile(ctx context.Context, accountID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.Profile, error) {
	args := m.Called(ctx, accountID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.Profile), args.Error(1)
}
