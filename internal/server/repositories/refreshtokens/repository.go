// Package refreshtokens keeps the single live refresh token per email.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

// Repository stores at most one refresh token per email.
type Repository interface {
	// Save replaces any record for email with token, expiring after ttl.
	Save(ctx context.Context, email, token string, ttl time.Duration) error

	// Rotate swaps oldToken for newToken atomically. It returns
	// common.ErrorNotFound unless oldToken is the live token for email.
	Rotate(ctx context.Context, email, oldToken, newToken string, ttl time.Duration) error

	// Find returns the live record for email or common.ErrorNotFound.
	Find(ctx context.Context, email string) (*models.RefreshToken, error)

	// FindEmailByToken resolves a token to its owner or common.ErrorNotFound.
	FindEmailByToken(ctx context.Context, token string) (string, error)

	// Delete removes the record for email. Deleting a missing record is not an error.
	Delete(ctx context.Context, email string) error
}
