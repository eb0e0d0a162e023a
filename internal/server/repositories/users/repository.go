// Package users declares the identity repository used by signup and by the
// authentication core.
package users

import (
	"context"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

// Repository reads and creates identity records.
type Repository interface {
	// Create inserts user and fills its ID and CreatedAt. A duplicate email
	// yields common.ErrEmailAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns common.ErrorNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
