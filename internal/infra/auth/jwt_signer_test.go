package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yokijpAcademic/Klik-Sewa-BE/config"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
)

func testJWTConfig(expirationInMinutes int) *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test_session_secret_key_very_long_for_testing"
	cfg.JWT.ExpirationInMinutes = expirationInMinutes

	return cfg
}

func TestJWTSigner_IssueAndVerify(t *testing.T) {
	signer, err := NewJWTSigner(testJWTConfig(60))
	assert.NoError(t, err)
	assert.NotNil(t, signer)

	accountID := uuid.New()

	token, err := signer.Issue(accountID, entity.RoleUser)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := signer.Verify(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestJWTSigner_MissingSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.ExpirationInMinutes = 60

	signer, err := NewJWTSigner(cfg)
	assert.Error(t, err)
	assert.Nil(t, signer)
}

func TestJWTSigner_InvalidToken(t *testing.T) {
	signer, err := NewJWTSigner(testJWTConfig(60))
	assert.NoError(t, err)

	claims, err := signer.Verify("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTSigner_WrongSecret(t *testing.T) {
	signer, err := NewJWTSigner(testJWTConfig(60))
	assert.NoError(t, err)

	otherCfg := testJWTConfig(60)
	otherCfg.JWT.Secret = "a_completely_different_secret_key_for_testing"
	other, err := NewJWTSigner(otherCfg)
	assert.NoError(t, err)

	token, err := other.Issue(uuid.New(), entity.RoleUser)
	assert.NoError(t, err)

	claims, err := signer.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTSigner_ExpiredToken(t *testing.T) {
	// Sign an already-expired token with the same secret and verify rejection.
	secret := "test_session_secret_key_very_long_for_testing"
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": entity.RoleUser.String(),
		"iat":  now.Add(-2 * time.Hour).Unix(),
		"exp":  now.Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte(secret))
	assert.NoError(t, err)

	signer, err := NewJWTSigner(testJWTConfig(60))
	assert.NoError(t, err)

	claims, err := signer.Verify(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTSigner_RejectsUnknownRole(t *testing.T) {
	secret := "test_session_secret_key_very_long_for_testing"
	now := time.Now()
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.New().String(),
		"role": "SUPERUSER",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})
	tokenString, err := forged.SignedString([]byte(secret))
	assert.NoError(t, err)

	signer, err := NewJWTSigner(testJWTConfig(60))
	assert.NoError(t, err)

	claims, err := signer.Verify(tokenString)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
