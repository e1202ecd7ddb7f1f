package validation

import (
	"regexp"
	"strings"
)

// emailShapeRegex matches the minimal local@domain.tld shape used for
// inline form validation. Request DTOs get the stricter validator/v10
// "email" tag on top of this.
var emailShapeRegex = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Errors maps field names to human-readable messages. A step validator
// returns a fresh map on every call; the same inputs always produce the
// same map.
type Errors map[string]string

// Require adds an error when the value is empty after trimming
func (e Errors) Require(field, value, message string) {
	if strings.TrimSpace(value) == "" {
		e[field] = message
	}
}

// RequireEmail adds a required error for an empty value, or a format
// error when the value does not look like an email address.
func (e Errors) RequireEmail(field, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		e[field] = "Email is required"
		return
	}
	if !emailShapeRegex.MatchString(trimmed) {
		e[field] = "Please enter a valid email"
	}
}

// RequireChecked adds an error when a required checkbox is not accepted
func (e Errors) RequireChecked(field string, value bool, message string) {
	if !value {
		e[field] = message
	}
}

// ValidEmailShape reports whether the value matches local@domain.tld
func ValidEmailShape(value string) bool {
	return emailShapeRegex.MatchString(strings.TrimSpace(value))
}
