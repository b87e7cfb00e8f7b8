// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/entity"
	domainerrors "github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/errors"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/repository"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/domain/service"
	"github.com/yokijpAcademic/Klik-Sewa-BE/internal/usecase"
)

const (
	challengeTokenBytes = 32

	// An email-verification link stays valid for a day, a reset link for an hour.
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = time.Hour
)

// authService implements the AuthUsecase interface.
type authService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokens      service.TokenGenerator
	signer      service.SessionSigner
	notifier    service.Notifier
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Tokens      service.TokenGenerator
	Signer      service.SessionSigner
	Notifier    service.Notifier
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokens:      params.Tokens,
		signer:      params.Signer,
		notifier:    params.Notifier,
		logger:      params.Logger,
	}
}

// normalizeEmail lowercases and trims an email so lookups and uniqueness
// checks never depend on how the caller typed it.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account, starts its email-verification challenge and
// opens a session for it.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)

	exists, err := srv.accountRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email availability")
	}
	if exists {
		return nil, domainerrors.ErrEmailTaken
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	account := &entity.Account{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if err := srv.accountRepo.Create(ctx, account); err != nil {
		// A concurrent registration can still lose the race after EmailExists.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrEmailTaken
		}

		return nil, err
	}

	srv.logger.InfoContext(ctx, "account registered",
		slog.String("accountId", account.ID.String()),
		slog.String("email", email),
	)

	// A failed verification email must not undo the registration. The
	// account holder can request a new link through the resend operation.
	if err := srv.startVerificationChallenge(ctx, account.ID, email); err != nil {
		srv.logger.WarnContext(ctx, "verification email not sent on registration",
			slog.String("accountId", account.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	token, err := srv.signer.Issue(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.RegisterOutput{
		Token:   token,
		Profile: toProfile(account),
	}, nil
}

// Login verifies credentials and opens a session.
// Unknown email and wrong password produce the same error so the response
// never reveals which one failed.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	email := normalizeEmail(input.Email)

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find account for login")
	}

	if !account.IsActive {
		return nil, domainerrors.ErrAccountDeactivated
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.signer.Issue(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.logger.InfoContext(ctx, "account logged in",
		slog.String("accountId", account.ID.String()),
	)

	return &usecase.LoginOutput{
		Token:   token,
		Profile: toProfile(account),
	}, nil
}

// VerifyEmail consumes an email-verification token. The token works exactly
// once; replays and expired tokens get the same rejection.
func (srv *authService) VerifyEmail(ctx context.Context, input usecase.VerifyEmailInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	if err := srv.accountRepo.ConsumeEmailVerificationToken(ctx, input.Token); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return domainerrors.ErrVerificationTokenInvalid
		}

		return errors.Wrap(err, "failed to consume verification token")
	}

	srv.logger.InfoContext(ctx, "email verified",
		slog.String("tokenFingerprint", srv.tokens.Fingerprint(input.Token)),
	)

	return nil
}

// ResendVerification reissues the email-verification challenge, invalidating
// any earlier token. Unlike registration, a delivery failure here is an error
// since sending the email is the whole point of the call.
func (srv *authService) ResendVerification(ctx context.Context, input usecase.ResendVerificationInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	email := normalizeEmail(input.Email)

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrEmailNotFound
		}

		return errors.Wrap(err, "failed to find account for resend")
	}
	if account.EmailVerified {
		return domainerrors.ErrEmailAlreadyVerified
	}

	if err := srv.startVerificationChallenge(ctx, account.ID, email); err != nil {
		if isMailDeliveryError(err) {
			return domainerrors.ErrVerificationMailFailed
		}

		return err
	}

	return nil
}

// RequestPasswordReset starts a password-reset challenge for the account
// holding the email, invalidating any earlier reset token.
func (srv *authService) RequestPasswordReset(ctx context.Context, input usecase.ForgotPasswordInput) error {
	if err := validateInput(input); err != nil {
		return err
	}
	email := normalizeEmail(input.Email)

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrEmailNotFound
		}

		return errors.Wrap(err, "failed to find account for password reset")
	}

	token, err := srv.tokens.NewToken(challengeTokenBytes)
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}
	expiresAt := time.Now().Add(resetTokenTTL)

	if err := srv.accountRepo.SetPasswordResetToken(ctx, account.ID, token, expiresAt); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	srv.logger.InfoContext(ctx, "password reset requested",
		slog.String("accountId", account.ID.String()),
		slog.String("tokenFingerprint", srv.tokens.Fingerprint(token)),
	)

	if err := srv.notifier.SendPasswordReset(ctx, email, token); err != nil {
		srv.logger.ErrorContext(ctx, "reset email delivery failed",
			slog.String("accountId", account.ID.String()),
			slog.String("error", err.Error()),
		)

		return domainerrors.ErrResetMailFailed
	}

	return nil
}

// ResetPassword consumes a password-reset token and installs the new password.
// The token works exactly once; replays and expired tokens get the same rejection.
func (srv *authService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	if err := validateInput(input); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	if err := srv.accountRepo.ConsumePasswordResetToken(ctx, input.Token, hash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return domainerrors.ErrResetTokenInvalid
		}

		return errors.Wrap(err, "failed to consume reset token")
	}

	srv.logger.InfoContext(ctx, "password reset completed",
		slog.String("tokenFingerprint", srv.tokens.Fingerprint(input.Token)),
	)

	return nil
}

// GetProfile returns the profile of the account with the given id.
func (srv *authService) GetProfile(ctx context.Context, accountID uuid.UUID) (*usecase.Profile, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return toProfile(account), nil
}

// UpdateProfile applies a partial update to the account. Changing the email
// drops the verified flag and cancels any outstanding verification challenge,
// since the old address no longer proves anything about the new one.
func (srv *authService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input usecase.UpdateProfileInput) (*usecase.Profile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	fields := make(map[string]any)
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		newEmail := normalizeEmail(*input.Email)
		if newEmail != account.Email {
			exists, err := srv.accountRepo.EmailExists(ctx, newEmail)
			if err != nil {
				return nil, errors.Wrap(err, "failed to check email availability")
			}
			if exists {
				return nil, domainerrors.ErrEmailInUse
			}

			fields["email"] = newEmail
			fields["email_verified"] = false
			fields["email_verification_token"] = nil
			fields["email_verification_expires"] = nil
		}
	}

	if len(fields) > 0 {
		if err := srv.accountRepo.UpdateFields(ctx, accountID, fields); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				return nil, domainerrors.ErrEmailInUse
			}

			return nil, errors.Wrap(err, "failed to update account")
		}
	}

	updated, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload account")
	}

	srv.logger.InfoContext(ctx, "profile updated",
		slog.String("accountId", accountID.String()),
	)

	return toProfile(updated), nil
}

// startVerificationChallenge issues a fresh verification token, stores it and
// emails the link. The returned error distinguishes storage failures from
// delivery failures through isMailDeliveryError.
func (srv *authService) startVerificationChallenge(ctx context.Context, accountID uuid.UUID, email string) error {
	token, err := srv.tokens.NewToken(challengeTokenBytes)
	if err != nil {
		return errors.Wrap(err, "failed to generate verification token")
	}
	expiresAt := time.Now().Add(verificationTokenTTL)

	if err := srv.accountRepo.SetEmailVerificationToken(ctx, accountID, token, expiresAt); err != nil {
		return errors.Wrap(err, "failed to store verification token")
	}

	srv.logger.InfoContext(ctx, "verification challenge issued",
		slog.String("accountId", accountID.String()),
		slog.String("tokenFingerprint", srv.tokens.Fingerprint(token)),
	)

	if err := srv.notifier.SendVerification(ctx, email, token); err != nil {
		return &mailDeliveryError{cause: err}
	}

	return nil
}

// mailDeliveryError marks failures that happened after the challenge was
// stored, while handing the token to the notifier.
type mailDeliveryError struct {
	cause error
}

func (e *mailDeliveryError) Error() string {
	return "mail delivery failed: " + e.cause.Error()
}

func (e *mailDeliveryError) Unwrap() error {
	return e.cause
}

func isMailDeliveryError(err error) bool {
	var target *mailDeliveryError

	return errors.As(err, &target)
}

// toProfile maps a domain account to the caller-facing profile view.
func toProfile(account *entity.Account) *usecase.Profile {
	return &usecase.Profile{
		ID:            account.ID,
		Email:         account.Email,
		Name:          account.Name,
		Role:          account.Role,
		IsActive:      account.IsActive,
		EmailVerified: account.EmailVerified,
		CreatedAt:     account.CreatedAt.Unix(),
	}
}
