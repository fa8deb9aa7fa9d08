package dto

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/fashionhub/auth-service/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report field names as their JSON tags so error meta matches the wire.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("password_strength", validatePasswordStrength)
}

// validatePasswordStrength requires at least 8 characters with one
// uppercase letter, one lowercase letter, one digit and one special
// character.
func validatePasswordStrength(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSpecial
}

// check runs struct validation and maps the first failure to a domain error.
func check(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return domain.ErrInvalidField("request", "invalid")
	}

	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.ErrMissingField(field)
	case "email":
		return domain.ErrInvalidField(field, "invalid email format")
	case "max":
		return domain.ErrInvalidField(field, "too long (max "+fe.Param()+")")
	case "password_strength":
		return domain.ErrWeakPassword("min 8 chars with upper, lower, digit and special")
	case "eqfield":
		return domain.ErrPasswordMismatch()
	default:
		return domain.ErrInvalidField(field, "invalid")
	}
}
