// Package mentees persists mentee profiles.
package mentees

import (
	"context"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

type Repository interface {
	// Create inserts mentee and fills its ID.
	Create(ctx context.Context, mentee *models.Mentee) (*models.Mentee, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Mentee, error)
}
