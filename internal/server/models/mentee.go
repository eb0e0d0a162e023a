package models

// Initial values for a freshly signed-up mentee.
const (
	InitialMenteeExp   = 0
	InitialMenteeLevel = 1
	expPerLevel        = 100
)

// Mentee is the mentee profile attached one-to-one to a User.
type Mentee struct {
	ID             int64
	UserID         int64
	Exp            int
	Level          int
	InterestFirst  Category
	InterestSecond Category
	InterestThird  Category
}

// LevelFromExp returns the level reached with exp points. Negative exp is level 1.
func LevelFromExp(exp int) int {
	if exp < 0 {
		return InitialMenteeLevel
	}
	return exp/expPerLevel + 1
}
