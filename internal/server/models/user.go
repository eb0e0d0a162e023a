// Package models defines server-side data models persisted in the database.
package models

import (
	"strings"
	"time"
)

// Role is the account kind chosen at signup.
type Role string

const (
	RoleMentor Role = "MENTOR"
	RoleMentee Role = "MENTEE"
)

// ParseRole resolves a case-insensitive role name ("mentor", "Mentee").
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(s)) {
	case RoleMentor:
		return RoleMentor, true
	case RoleMentee:
		return RoleMentee, true
	}
	return "", false
}

// Authority is the granted-authority string derived from the role.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

// Gender of a user.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// Genders lists every accepted Gender value.
var Genders = []Gender{GenderMale, GenderFemale}

// User is an identity record. Email is unique across all users.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         Role
	Thumbnail    *string
	Location     *string
	BirthDate    time.Time
	Gender       Gender
	Age          int
	CreatedAt    time.Time
}

// AgeAt returns the number of full years between birth and now.
func AgeAt(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
