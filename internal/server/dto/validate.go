package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/dmitrijs2005/mtmt/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError maps JSON field names to human readable messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("%s: %s", common.ErrValidation, strings.Join(keys, ", "))
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// Validator checks request bodies against their struct tags.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails on empty tags or nil funcs
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return models.IsGender(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.IsCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if !birthDatePattern.MatchString(s) {
			return false
		}
		_, err := ParseBirthDate(s)
		return err == nil
	})

	return &Validator{v: v}
}

// Validate returns *ValidationError for rule violations.
func (v *Validator) Validate(req any) error {
	err := v.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}
	return &ValidationError{Fields: fields}
}

var fieldLabels = map[string]string{
	"email":          "Email",
	"password":       "Password",
	"name":           "Name",
	"gender":         "Gender",
	"birthDate":      "Birth date",
	"major":          "Major",
	"interestFirst":  "First interest",
	"interestSecond": "Second interest",
	"interestThird":  "Third interest",
	"refreshToken":   "Refresh token",
}

func message(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		if fe.Field() == "birthDate" {
			return "Birth date is required. Format: yyyy-MM-dd"
		}
		return label + " is required."
	case "email":
		return "Please provide a valid email address."
	case "min", "max":
		switch fe.Field() {
		case "password":
			return "Password must be between 8 and 20 characters."
		case "name":
			return "Name must be between 2 and 50 characters."
		}
		return label + " has an invalid length."
	case "gender":
		return "Invalid gender type."
	case "category":
		return fmt.Sprintf("Invalid %s type.", strings.ToLower(label))
	case "birthdate":
		return "Birth date must be in yyyy-MM-dd format"
	}
	return label + " is invalid."
}
