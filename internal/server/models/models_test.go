package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"mentor", RoleMentor, true},
		{"MENTEE", RoleMentee, true},
		{"Mentor", RoleMentor, true},
		{"admin", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleAuthority(t *testing.T) {
	assert.Equal(t, "ROLE_MENTOR", RoleMentor.Authority())
	assert.Equal(t, "ROLE_MENTEE", RoleMentee.Authority())
}

func TestAgeAt(t *testing.T) {
	birth := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 24, AgeAt(birth, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, AgeAt(birth, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, AgeAt(birth, time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRatingSectionFor(t *testing.T) {
	tests := []struct {
		rating int
		want   RatingSection
		ok     bool
	}{
		{0, RatingSectionPentagon, true},
		{InitialMentorRating, RatingSectionPentagon, true},
		{400, RatingSectionPentagon, true},
		{401, RatingSectionSquare, true},
		{700, RatingSectionSquare, true},
		{701, RatingSectionTriangle, true},
		{901, RatingSectionCircle, true},
		{1000, RatingSectionCircle, true},
		{1001, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		got, ok := RatingSectionFor(tt.rating)
		assert.Equal(t, tt.ok, ok, "rating %d", tt.rating)
		assert.Equal(t, tt.want, got, "rating %d", tt.rating)
	}
}

func TestLevelFromExp(t *testing.T) {
	assert.Equal(t, 1, LevelFromExp(-5))
	assert.Equal(t, 1, LevelFromExp(InitialMenteeExp))
	assert.Equal(t, 1, LevelFromExp(99))
	assert.Equal(t, 2, LevelFromExp(100))
	assert.Equal(t, 11, LevelFromExp(1000))
}

func TestEnumMembership(t *testing.T) {
	assert.True(t, IsCategory("ART_DRAWING"))
	assert.True(t, IsCategory("ACADEMIC_MIDTERM"))
	assert.False(t, IsCategory("art_drawing"))
	assert.True(t, IsGender("FEMALE"))
	assert.False(t, IsGender("OTHER"))
}
