package mentees

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

func (r *PostgresRepository) Create(ctx context.Context, mentee *models.Mentee) (*models.Mentee, error) {
	query := `
		INSERT INTO mentees (user_id, exp, level, interest_first, interest_second, interest_third)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		mentee.UserID, mentee.Exp, mentee.Level,
		string(mentee.InterestFirst), string(mentee.InterestSecond), string(mentee.InterestThird),
	).Scan(&mentee.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return mentee, nil
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Mentee, error) {
	query := `
		SELECT id, user_id, exp, level, interest_first, interest_second, interest_third
		FROM mentees
		WHERE user_id = $1
	`

	var (
		m                    models.Mentee
		first, second, third string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&m.ID, &m.UserID, &m.Exp, &m.Level, &first, &second, &third)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	m.InterestFirst = models.Category(first)
	m.InterestSecond = models.Category(second)
	m.InterestThird = models.Category(third)

	return &m, nil
}
