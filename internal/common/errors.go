// Package common defines shared constants and sentinel errors used across
// server and client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Authentication errors. ErrUnauthenticated is the parent of every
	// request-filter failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access denied")

	// ErrInvalidToken never reaches a client as is; transports map it to
	// ErrUnauthenticated.
	ErrInvalidToken = errors.New("invalid token")

	// Signup errors.
	ErrInvalidRole        = errors.New("role must be 'mentor' or 'mentee'")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrValidation         = errors.New("validation failed")
)
