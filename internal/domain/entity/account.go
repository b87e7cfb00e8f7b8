// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity record of the system. It carries the login
// credential (a bcrypt hash, never the plaintext) together with the two
// time-boxed verification challenges that may be outstanding for it.
type Account struct {
	ID            uuid.UUID // The unique identifier for the account.
	Email         string    // Lowercase-normalized, unique login identifier.
	PasswordHash  string    // bcrypt hash of the password.
	Name          string    // Display name, 2-100 characters.
	Role          Role      // Either USER or ADMIN.
	IsActive      bool      // Deactivated accounts cannot log in.
	EmailVerified bool      // Set once an email-verification challenge is consumed.

	// Outstanding email-verification challenge, both nil when none is pending.
	EmailVerificationToken   *string
	EmailVerificationExpires *time.Time

	// Outstanding password-reset challenge, both nil when none is pending.
	PasswordResetToken   *string
	PasswordResetExpires *time.Time

	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}
