// Package service provides testify mocks for the domain service interfaces.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/service"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenGenerator is a mock implementation of service.TokenGenerator.
type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) NewToken(byteLength int) (string, error) {
	args := m.Called(byteLength)

	return args.String(0), args.Error(1)
}

func (m *MockTokenGenerator) Fingerprint(token string) string {
	args := m.Called(token)

	return args.String(0)
}

// MockSessionSigner is a mock implementation of service.SessionSigner.
type MockSessionSigner struct {
	mock.Mock
}

func (m *MockSessionSigner) Issue(accountID uuid.UUID, role entity.Role) (string, error) {
	args := m.Called(accountID, role)

	return args.String(0), args.Error(1)
}

func (m *MockSessionSigner) Verify(token string) (*service.SessionClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SessionClaims), args.Error(1)
}

// MockNotifier is a mock implementation of service.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendVerification(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)

	return args.Error(0)
}

func (m *MockNotifier) SendPasswordReset(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)

	return args.Error(0)
}
