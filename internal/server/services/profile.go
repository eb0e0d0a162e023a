package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/repomanager"
)

// ProfileService reads the role profile of an authenticated user.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	timeout     time.Duration
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, timeout time.Duration) *ProfileService {
	return &ProfileService{db: db, repomanager: m, timeout: timeout}
}

// MentorProfile returns common.ErrorNotFound when userID has no mentor profile.
func (s *ProfileService) MentorProfile(ctx context.Context, userID int64) (*models.Mentor, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.repomanager.Mentors(s.db).GetByUserID(ctx, userID)
}

// MenteeProfile returns common.ErrorNotFound when userID has no mentee profile.
func (s *ProfileService) MenteeProfile(ctx context.Context, userID int64) (*models.Mentee, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()
	return s.repomanager.Mentees(s.db).GetByUserID(ctx, userID)
}
