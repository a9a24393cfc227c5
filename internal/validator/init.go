// Package validator holds the shared struct validator and the custom tags
// used by request inputs.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// "username": letters, digits, dot, underscore and hyphen only.
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}

func GetValidator() *validator.Validate {
	return validate
}

// IsValidUsername reports whether s only uses the characters allowed in usernames.
func IsValidUsername(s string) bool {
	return usernamePattern.MatchString(s)
}

// FieldErrors flattens validator errors into field name -> failing tag.
// Errors of any other kind yield nil.
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
