package models

// RatingSection buckets a mentor rating.
type RatingSection string

const (
	RatingSectionPentagon RatingSection = "PENTAGON"
	RatingSectionSquare   RatingSection = "SQUARE"
	RatingSectionTriangle RatingSection = "TRIANGLE"
	RatingSectionCircle   RatingSection = "CIRCLE"
)

// Initial values for a freshly signed-up mentor.
const (
	InitialMentorRating = 200
	MaxMentorRating     = 1000
)

// Mentor is the mentor profile attached one-to-one to a User.
type Mentor struct {
	ID            int64
	UserID        int64
	Bio           *string
	Major         Category
	Rating        int
	RatingSection RatingSection
}

// RatingSectionFor maps a rating in [0, 1000] to its section.
func RatingSectionFor(rating int) (RatingSection, bool) {
	switch {
	case rating < 0 || rating > MaxMentorRating:
		return "", false
	case rating <= 400:
		return RatingSectionPentagon, true
	case rating <= 700:
		return RatingSectionSquare, true
	case rating <= 900:
		return RatingSectionTriangle, true
	default:
		return RatingSectionCircle, true
	}
}
