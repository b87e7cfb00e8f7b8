package service

import (
	"github.com/google/uuid"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
)

// SessionClaims are the verified contents of a session token.
type SessionClaims struct {
	AccountID uuid.UUID
	Role      entity.Role
}

// SessionSigner issues and verifies the bearer tokens that represent a
// logged-in session.
type SessionSigner interface {
	// Issue creates a signed session token for the given account.
	Issue(accountID uuid.UUID, role entity.Role) (string, error)
	// Verify checks the token signature and expiry and returns its claims.
	Verify(token string) (*SessionClaims, error)
}
