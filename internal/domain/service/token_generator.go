package service

// TokenGenerator produces the opaque single-use tokens backing email
// verification and password reset challenges.
type TokenGenerator interface {
	// NewToken returns a URL-safe token with byteLength bytes of entropy.
	NewToken(byteLength int) (string, error)
	// Fingerprint returns a short stable digest of the token, safe to log.
	Fingerprint(token string) string
}
