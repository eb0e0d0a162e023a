package mentors

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/dbx"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, mentor *models.Mentor) (*models.Mentor, error) {
	query := `
		INSERT INTO mentors (user_id, bio, major, rating, rating_section)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		mentor.UserID, mentor.Bio, string(mentor.Major), mentor.Rating, string(mentor.RatingSection),
	).Scan(&mentor.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return mentor, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Mentor, error) {
	query := `
		SELECT id, user_id, bio, major, rating, rating_section
		FROM mentors
		WHERE user_id = $1
	`

	var (
		m       models.Mentor
		major   string
		section string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&m.ID, &m.UserID, &m.Bio, &major, &m.Rating, &section)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	m.Major = models.Category(major)
	m.RatingSection = models.RatingSection(section)

	return &m, nil
}
