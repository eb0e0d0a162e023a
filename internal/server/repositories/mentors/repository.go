// Package mentors persists mentor profiles.
package mentors

import (
	"context"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

type Repository interface {
	// Create inserts mentor and fills its ID.
	Create(ctx context.Context, mentor *models.Mentor) (*models.Mentor, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Mentor, error)
}
