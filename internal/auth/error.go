package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	// ErrTokenRevoked indicates a refresh token that no longer matches the
	// ledger entry for its user, usually because it was already rotated.
	ErrTokenRevoked = errors.New("token not recognized")
)
