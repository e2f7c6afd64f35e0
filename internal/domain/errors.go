package domain

import "errors"

// Sentinel errors shared by services and adapters. Their messages double as
// the client-facing response text; the HTTP adapter is the only layer that
// translates them into status codes.
var (
	// ErrInvalidInput indicates a missing or malformed request field.
	ErrInvalidInput = errors.New("missing required fields")
	// ErrConflict indicates a username or email that is already taken.
	ErrConflict = errors.New("user already exists")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMissingToken indicates a protected request without a bearer token.
	ErrMissingToken = errors.New("access token required")
	// ErrInvalidToken indicates a malformed, forged or expired token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden indicates an attempt to mutate another user's record.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound indicates that the requested user does not exist.
	ErrNotFound = errors.New("user not found")
)
