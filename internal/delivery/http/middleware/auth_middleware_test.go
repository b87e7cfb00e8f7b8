package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/service"
	mocksvc "github.com/yokijpAcademic/Klik-Sewa-BE/internal/mocks/service"
)

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, c
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	signer := new(mocksvc.MockSessionSigner)
	accountID := uuid.New()
	signer.On("Verify", "valid-token").Return(&service.SessionClaims{
		AccountID: accountID,
		Role:      entity.RoleUser,
	}, nil)

	mw := NewAuthMiddleware(signer)
	rec, c := runMiddleware(t, mw.Authenticate, "Bearer valid-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, c.Get(ContextKeyAccountID))
	assert.Equal(t, entity.RoleUser, c.Get(ContextKeyRole))
}

func TestAuthMiddleware_AuthenticateRejections(t *testing.T) {
	signer := new(mocksvc.MockSessionSigner)
	signer.On("Verify", "bad-token").Return(nil, errors.New("signature mismatch"))
	mw := NewAuthMiddleware(signer)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"bare bearer prefix", "Bearer "},
		{"rejected token", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c := runMiddleware(t, mw.Authenticate, tt.authHeader)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Nil(t, c.Get(ContextKeyAccountID))
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	signer := new(mocksvc.MockSessionSigner)
	mw := NewAuthMiddleware(signer)

	e := echo.New()
	handler := mw.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Admin passes.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/accounts/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextKeyRole, entity.RoleAdmin)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Regular user is rejected with 403, not 401.
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(ContextKeyRole, entity.RoleUser)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No role set at all is also rejected.
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
