package handler

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/delivery/http/middleware"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	mockusecase "github.com/yokijpAcademic/Klik-Sewa-BE/internal/mocks/usecase"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/usecase"
)

func newHandlerFixture() (*AuthHandler, *mockusecase.MockAuthUsecase) {
	uc := new(mockusecase.MockAuthUsecase)

	return NewAuthHandler(uc, slog.New(slog.DiscardHandler)), uc
}

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register(t *testing.T) {
	h, uc := newHandlerFixture()

	profile := &usecase.Profile{
		ID:        uuid.New(),
		Email:     "budi@example.com",
		Name:      "Budi Santoso",
		Role:      entity.RoleUser,
		IsActive:  true,
		CreatedAt: time.Now().Unix(),
	}
	uc.On("Register", mock.Anything, usecase.RegisterInput{
		Name:     "Budi Santoso",
		Email:    "budi@example.com",
		Password: "rahasia123",
	}).Return(&usecase.RegisterOutput{Token: "session-token", Profile: profile}, nil)

	c, rec := jsonContext(http.MethodPost, "/api/auth/register",
		`{"name":"Budi Santoso","email":"budi@example.com","password":"rahasia123"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Contains(t, rec.Body.String(), "session-token")
	assert.Contains(t, rec.Body.String(), "budi@example.com")
	// The profile never carries credential material.
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestAuthHandler_Login(t *testing.T) {
	h, uc := newHandlerFixture()

	uc.On("Login", mock.Anything, usecase.LoginInput{
		Email:    "budi@example.com",
		Password: "rahasia123",
	}).Return(&usecase.LoginOutput{
		Token:   "session-token",
		Profile: &usecase.Profile{Email: "budi@example.com"},
	}, nil)

	c, rec := jsonContext(http.MethodPost, "/api/auth/login",
		`{"email":"budi@example.com","password":"rahasia123"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "session-token")
}

func TestAuthHandler_VerifyEmailReadsQueryToken(t *testing.T) {
	h, uc := newHandlerFixture()

	uc.On("VerifyEmail", mock.Anything, usecase.VerifyEmailInput{Token: "tok123"}).Return(nil)

	c, rec := jsonContext(http.MethodGet, "/api/auth/verify-email?token=tok123", "")

	require.NoError(t, h.VerifyEmail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	h, uc := newHandlerFixture()

	uc.On("RequestPasswordReset", mock.Anything, usecase.ForgotPasswordInput{
		Email: "budi@example.com",
	}).Return(nil)

	c, rec := jsonContext(http.MethodPost, "/api/auth/forgot-password",
		`{"email":"budi@example.com"}`)

	require.NoError(t, h.ForgotPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	h, uc := newHandlerFixture()

	uc.On("ResetPassword", mock.Anything, usecase.ResetPasswordInput{
		Token:       "tok123",
		NewPassword: "baru-rahasia1",
	}).Return(nil)

	c, rec := jsonContext(http.MethodPost, "/api/auth/reset-password",
		`{"token":"tok123","newPassword":"baru-rahasia1"}`)

	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_GetProfile(t *testing.T) {
	h, uc := newHandlerFixture()
	accountID := uuid.New()

	uc.On("GetProfile", mock.Anything, accountID).Return(&usecase.Profile{
		ID:    accountID,
		Email: "budi@example.com",
	}, nil)

	c, rec := jsonContext(http.MethodGet, "/api/profile", "")
	c.Set(middleware.ContextKeyAccountID, accountID)

	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "budi@example.com")
}

func TestAuthHandler_GetProfileWithoutSession(t *testing.T) {
	h, uc := newHandlerFixture()

	c, rec := jsonContext(http.MethodGet, "/api/profile", "")

	require.NoError(t, h.GetProfile(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	uc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	h, uc := newHandlerFixture()
	accountID := uuid.New()
	name := "Budi Hartono"

	uc.On("UpdateProfile", mock.Anything, accountID, usecase.UpdateProfileInput{
		Name: &name,
	}).Return(&usecase.Profile{ID: accountID, Name: name}, nil)

	c, rec := jsonContext(http.MethodPut, "/api/profile", `{"name":"Budi Hartono"}`)
	c.Set(middleware.ContextKeyAccountID, accountID)

	require.NoError(t, h.UpdateProfile(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Budi Hartono")
}

func TestAuthHandler_GetAccountByID(t *testing.T) {
	h, uc := newHandlerFixture()
	accountID := uuid.New()

	uc.On("GetProfile", mock.Anything, accountID).Return(&usecase.Profile{ID: accountID}, nil)

	c, rec := jsonContext(http.MethodGet, "/", "")
	c.SetPath("/api/admin/accounts/:id")
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	require.NoError(t, h.GetAccountByID(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_GetAccountByIDMalformed(t *testing.T) {
	h, uc := newHandlerFixture()

	c, rec := jsonContext(http.MethodGet, "/", "")
	c.SetPath("/api/admin/accounts/:id")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.GetAccountByID(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "GetProfile", mock.Anything, mock.Anything)
}

func TestAuthHandler_Logout(t *testing.T) {
	h, _ := newHandlerFixture()

	c, rec := jsonContext(http.MethodPost, "/api/auth/logout", "")

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "logged out successfully")
}
