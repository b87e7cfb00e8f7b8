// Package service defines the domain-level contracts for supporting services
// such as password hashing, token generation and session signing.
package service

// PasswordHasher abstracts the one-way hashing of account passwords.
type PasswordHasher interface {
	// Hash derives a storable hash from the plaintext password.
	Hash(password string) (string, error)
	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
