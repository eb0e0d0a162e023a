package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertQ = `(?s)^\s*INSERT\s+INTO\s+users\s*\(email,\s*password_hash,\s*name,\s*role,\s*thumbnail,\s*location,\s*birth_date,\s*gender,\s*age\)\s*VALUES\s*\(\$1,.*\$9\)\s*RETURNING\s+id,\s*created_at\s*$`
	selectQ = `(?s)^\s*SELECT\s+id,\s*email,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	existsQ = `(?s)^SELECT\s+EXISTS\s*\(SELECT\s+1\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\)$`
)

var userColumns = []string{"id", "email", "password_hash", "name", "role", "thumbnail", "location", "birth_date", "gender", "age", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func sampleUser() *models.User {
	return &models.User{
		Email:        "mentor@example.com",
		PasswordHash: "$2a$10$hash",
		Name:         "Kim",
		Role:         models.RoleMentor,
		BirthDate:    time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:       models.GenderMale,
		Age:          25,
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	u := sampleUser()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(insertQ).
		WithArgs(u.Email, u.PasswordHash, u.Name, "MENTOR", nil, nil, u.BirthDate, "MALE", 25).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	got, err := repo.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), sampleUser())
	require.ErrorIs(t, err, common.ErrEmailAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), sampleUser())
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	birth := time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectQ).
		WithArgs("mentor@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(7), "mentor@example.com", "hash", "Kim", "MENTOR", "https://img/1.png", nil, birth, "FEMALE", 25, created))

	got, err := repo.GetByEmail(context.Background(), "mentor@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, models.RoleMentor, got.Role)
	assert.Equal(t, models.GenderFemale, got.Gender)
	require.NotNil(t, got.Thumbnail)
	assert.Equal(t, "https://img/1.png", *got.Thumbnail)
	assert.Nil(t, got.Location)
	assert.Equal(t, birth, got.BirthDate)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(selectQ).WithArgs("a@example.com").WillReturnError(errors.New("db err"))

	_, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestExistsByEmail(t *testing.T) {
	for _, want := range []bool{true, false} {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(existsQ).
			WithArgs("a@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(want))

		got, err := repo.ExistsByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestExistsByEmail_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(existsQ).WillReturnError(errors.New("boom"))

	_, err := repo.ExistsByEmail(context.Background(), "a@example.com")
	require.Error(t, err)
}
