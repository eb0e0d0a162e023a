package models

import "time"

// RefreshToken is the single live refresh token kept for an email.
type RefreshToken struct {
	Email string
	Token string
	TTL   time.Duration
}
