// Package dto defines the request and response bodies of the HTTP API and
// their validation rules.
package dto

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
)

// BirthDateLayout is the accepted birthDate format (yyyy-MM-dd).
const BirthDateLayout = "2006-01-02"

// SignUpFields are shared by every signup variant.
type SignUpFields struct {
	Email     string `json:"email" validate:"required,email,max=50"`
	Password  string `json:"password" validate:"required,min=8,max=20"`
	Name      string `json:"name" validate:"required,min=2,max=50"`
	Gender    string `json:"gender" validate:"required,gender"`
	BirthDate string `json:"birthDate" validate:"required,birthdate"`
}

// SignUpRequest is a closed union of MentorSignUp and MenteeSignUp.
type SignUpRequest interface {
	Role() models.Role
	Fields() *SignUpFields
	signUp()
}

// MentorSignUp is the body of POST /auth/signup?role=mentor.
type MentorSignUp struct {
	SignUpFields
	Major string `json:"major" validate:"required,category"`
}

func (*MentorSignUp) Role() models.Role       { return models.RoleMentor }
func (m *MentorSignUp) Fields() *SignUpFields { return &m.SignUpFields }
func (*MentorSignUp) signUp()                 {}

// MenteeSignUp is the body of POST /auth/signup?role=mentee.
type MenteeSignUp struct {
	SignUpFields
	InterestFirst  string `json:"interestFirst" validate:"required,category"`
	InterestSecond string `json:"interestSecond" validate:"required,category"`
	InterestThird  string `json:"interestThird" validate:"required,category"`
}

func (*MenteeSignUp) Role() models.Role       { return models.RoleMentee }
func (m *MenteeSignUp) Fields() *SignUpFields { return &m.SignUpFields }
func (*MenteeSignUp) signUp()                 {}

// NewSignUp returns an empty variant for the role query value, matched
// case-insensitively.
func NewSignUp(role string) (SignUpRequest, error) {
	r, ok := models.ParseRole(strings.TrimSpace(role))
	if !ok {
		return nil, common.ErrInvalidRole
	}
	switch r {
	case models.RoleMentor:
		return &MentorSignUp{}, nil
	default:
		return &MenteeSignUp{}, nil
	}
}

// ParseBirthDate parses a validated birthDate.
func ParseBirthDate(s string) (time.Time, error) {
	return time.Parse(BirthDateLayout, s)
}

// SignUpResponse is the data of a successful signup.
type SignUpResponse struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Thumbnail *string `json:"thumbnail"`
	Location  *string `json:"location"`
	BirthDate string  `json:"birthDate"`
	Gender    string  `json:"gender"`
	Age       int     `json:"age"`
}

func NewSignUpResponse(u *models.User) SignUpResponse {
	return SignUpResponse{
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Thumbnail: u.Thumbnail,
		Location:  u.Location,
		BirthDate: u.BirthDate.Format(BirthDateLayout),
		Gender:    string(u.Gender),
		Age:       u.Age,
	}
}
