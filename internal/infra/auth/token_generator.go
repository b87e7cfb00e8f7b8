package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/service"
)

// randomTokenGenerator produces URL-safe tokens from the OS entropy source.
type randomTokenGenerator struct{}

// NewRandomTokenGenerator is the constructor for randomTokenGenerator.
func NewRandomTokenGenerator() service.TokenGenerator {
	return &randomTokenGenerator{}
}

// NewToken returns a base64url token carrying byteLength bytes of entropy.
func (g *randomTokenGenerator) NewToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", errors.Errorf("invalid token length: %d", byteLength)
	}

	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Fingerprint returns the first 12 hex characters of the token's SHA-256.
// Logs carry the fingerprint so operators can correlate a challenge without
// the log stream ever holding a usable token.
func (g *randomTokenGenerator) Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])[:12]
}
