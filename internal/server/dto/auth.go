package dto

import (
	"time"

	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUserInfo(u *models.User) UserInfo {
	return UserInfo{Name: u.Name, Email: u.Email, Role: string(u.Role)}
}

type LoginResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	UserInfo     UserInfo  `json:"userInfo"`
	LoginAt      time.Time `json:"loginAt"`
}

type TokenResponse struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type MeResponse struct {
	UserInfo
	Authorities []string `json:"authorities"`
}

type MentorProfile struct {
	UserInfo
	Bio           *string `json:"bio"`
	Major         string  `json:"major"`
	Rating        int     `json:"rating"`
	RatingSection string  `json:"ratingSection"`
}

func NewMentorProfile(u *models.User, m *models.Mentor) MentorProfile {
	return MentorProfile{
		UserInfo:      NewUserInfo(u),
		Bio:           m.Bio,
		Major:         string(m.Major),
		Rating:        m.Rating,
		RatingSection: string(m.RatingSection),
	}
}

type MenteeProfile struct {
	UserInfo
	Exp       int      `json:"exp"`
	Level     int      `json:"level"`
	Interests []string `json:"interests"`
}

func NewMenteeProfile(u *models.User, m *models.Mentee) MenteeProfile {
	return MenteeProfile{
		UserInfo:  NewUserInfo(u),
		Exp:       m.Exp,
		Level:     models.LevelFromExp(m.Exp),
		Interests: []string{string(m.InterestFirst), string(m.InterestSecond), string(m.InterestThird)},
	}
}
