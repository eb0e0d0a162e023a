package models

// Category is an interest or major code shared by mentors and mentees.
type Category string

const (
	CategoryArtDrawing      Category = "ART_DRAWING"
	CategoryArtMusic        Category = "ART_MUSIC"
	CategoryArtDesign       Category = "ART_DESIGN"
	CategorySportBasketball Category = "SPORT_BASKETBALL"
	CategorySportBaseball   Category = "SPORT_BASEBALL"
	CategorySportSoccer     Category = "SPORT_SOCCER"
	CategorySportFitness    Category = "SPORT_FITNESS"
	CategoryAcademicMidterm Category = "ACADEMIC_MIDTERM"
	CategoryAcademicFinal   Category = "ACADEMIC_FINAL"
	CategoryAcademicMath    Category = "ACADEMIC_MATH"
	CategoryAcademicEnglish Category = "ACADEMIC_ENGLISH"
	CategoryITProgramming   Category = "IT_PROGRAMMING"
	CategoryCareerJob       Category = "CAREER_JOB"
)

// Categories lists every accepted Category value.
var Categories = []Category{
	CategoryArtDrawing,
	CategoryArtMusic,
	CategoryArtDesign,
	CategorySportBasketball,
	CategorySportBaseball,
	CategorySportSoccer,
	CategorySportFitness,
	CategoryAcademicMidterm,
	CategoryAcademicFinal,
	CategoryAcademicMath,
	CategoryAcademicEnglish,
	CategoryITProgramming,
	CategoryCareerJob,
}

// IsCategory reports whether s names a known Category.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// IsGender reports whether s names a known Gender.
func IsGender(s string) bool {
	for _, g := range Genders {
		if string(g) == s {
			return true
		}
	}
	return false
}
