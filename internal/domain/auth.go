package domain

import "time"

// TokenIssuer signs a session token for the admin user.
type TokenIssuer interface {
	Issue(username string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a session token and returns the admin username.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// PasswordVerifier compares a stored hash against a candidate password.
type PasswordVerifier interface {
	Compare(hash, password string) error
}
