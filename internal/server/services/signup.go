package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/dbx"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/repomanager"
)

type PasswordHasher interface {
	Hash(raw string) (string, error)
}

// SignUpService creates a user together with its role profile.
type SignUpService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	timeout     time.Duration
	now         func() time.Time
}

func NewSignUpService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, timeout time.Duration) *SignUpService {
	return &SignUpService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		timeout:     timeout,
		now:         time.Now,
	}
}

// SignUp stores the user and its mentor or mentee profile in one transaction.
// An existing email yields common.ErrEmailAlreadyExists and nothing is written.
// req must have passed dto.Validator.
func (s *SignUpService) SignUp(ctx context.Context, req dto.SignUpRequest) (*models.User, error) {
	f := req.Fields()

	exists, err := s.emailExists(ctx, f.Email)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if exists {
		return nil, common.ErrEmailAlreadyExists
	}

	birth, err := dto.ParseBirthDate(f.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: birthDate: %v", common.ErrValidation, err)
	}

	hash, err := s.hasher.Hash(f.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	user := &models.User{
		Email:        f.Email,
		PasswordHash: hash,
		Name:         f.Name,
		Role:         req.Role(),
		BirthDate:    birth,
		Gender:       models.Gender(f.Gender),
		Age:          models.AgeAt(birth, s.now()),
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		return s.createProfile(ctx, tx, user.ID, req)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *SignUpService) emailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.repomanager.Users(s.db).ExistsByEmail(ctx, email)
}

func (s *SignUpService) createProfile(ctx context.Context, tx dbx.DBTX, userID int64, req dto.SignUpRequest) error {
	switch r := req.(type) {
	case *dto.MentorSignUp:
		_, err := s.repomanager.Mentors(tx).Create(ctx, &models.Mentor{
			UserID:        userID,
			Major:         models.Category(r.Major),
			Rating:        models.InitialMentorRating,
			RatingSection: models.RatingSectionPentagon,
		})
		return err
	case *dto.MenteeSignUp:
		_, err := s.repomanager.Mentees(tx).Create(ctx, &models.Mentee{
			UserID:         userID,
			Exp:            models.InitialMenteeExp,
			Level:          models.InitialMenteeLevel,
			InterestFirst:  models.Category(r.InterestFirst),
			InterestSecond: models.Category(r.InterestSecond),
			InterestThird:  models.Category(r.InterestThird),
		})
		return err
	default:
		return fmt.Errorf("unsupported signup request %T", req)
	}
}
