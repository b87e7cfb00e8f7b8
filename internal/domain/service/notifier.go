package service

import "context"

// Notifier delivers challenge tokens to account holders out of band.
type Notifier interface {
	// SendVerification delivers an email-verification token to the address.
	SendVerification(ctx context.Context, email, token string) error
	// SendPasswordReset delivers a password-reset token to the address.
	SendPasswordReset(ctx context.Context, email, token string) error
}
