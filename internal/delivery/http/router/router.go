// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/middleware"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/router/handler"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Public account lifecycle routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/verify-email", r.authHandler.VerifyEmail)
		authGroup.POST("/resend-verification", r.authHandler.ResendVerification)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
	}

	// Routes that require an authenticated session
	profileGroup := api.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.authHandler.GetProfile)
		profileGroup.PUT("", r.authHandler.UpdateProfile)
	}
	api.POST("/auth/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)

	// Admin routes require authentication and the ADMIN role
	adminGroup := api.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/accounts/:id", r.authHandler.GetAccountByID)
	}
}
