package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/response"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/service"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyRole      = "role"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for session authentication and authorization.
type AuthMiddleware struct {
	signer service.SessionSigner
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(signer service.SessionSigner) *AuthMiddleware {
	return &AuthMiddleware{signer: signer}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "authorization header is missing")
		}
		if len(authHeader) <= len(bearerPrefix) || authHeader[:len(bearerPrefix)] != bearerPrefix {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "authorization header must carry a bearer token")
		}

		claims, err := m.signer.Verify(authHeader[len(bearerPrefix):])
		if err != nil {
			return response.Unauthorized(c, "SESSION_INVALID", "invalid or expired session token")
		}

		// Set account info on the context for handlers to use
		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated session's role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok || role != requiredRole {
				return response.Forbidden(c, "FORBIDDEN", "admin access required")
			}

			return next(c)
		}
	}
}
