// Package validate constructs the request validator shared by the HTTP
// handlers, with the project-specific phone rule registered.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// PhonePattern accepts an optional parenthesized 3-digit area code, a
// separator, 3 digits, a separator and 4 digits. Matches formats such as
// (078) 776-8637, 078-776-8637 or 0787768637.
var PhonePattern = regexp.MustCompile(`^\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}$`)

// New returns a validator with the custom "phone" tag registered on top
// of the standard rules.
func New() *validator.Validate {
	v := validator.New()
	// RegisterValidation only fails on an empty tag name.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return PhonePattern.MatchString(fl.Field().String())
	})
	return v
}
