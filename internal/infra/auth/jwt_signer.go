// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/yokijpAcademic/Klik-Sewa-BE/config"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/service"
)

// jwtSigner is a concrete implementation of the SessionSigner interface using the JWT standard.
type jwtSigner struct {
	secret []byte        // Secret key for signing session tokens.
	ttl    time.Duration // Time-to-live for session tokens.
}

// NewJWTSigner is the constructor for jwtSigner.
// It takes configuration values to create a new session signer instance.
func NewJWTSigner(cfg *config.Config) (service.SessionSigner, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtSigner{
		secret: []byte(cfg.JWT.Secret),
		ttl:    time.Duration(cfg.JWT.ExpirationInMinutes) * time.Minute,
	}, nil
}

// Issue creates a signed session token for a given account and role.
func (s *jwtSigner) Issue(accountID uuid.UUID, role entity.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  accountID.String(),    // Subject (who the token is for)
		"role": role.String(),         // Role captured at issue time
		"iat":  now.Unix(),            // Issued At
		"exp":  now.Add(s.ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a session token and extracts its claims.
func (s *jwtSigner) Verify(tokenString string) (*service.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "parse session token")
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return nil, errors.Wrap(err, "missing sub claim")
	}
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.Wrap(err, "malformed sub claim")
	}

	roleStr, _ := claims["role"].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return nil, errors.Errorf("unknown role claim: %q", roleStr)
	}

	return &service.SessionClaims{
		AccountID: accountID,
		Role:      role,
	}, nil
}
