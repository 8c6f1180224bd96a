package service

import (
	"fmt"
	"regexp"

	"github.com/adaai/leadcapture/internal/dto"
)

// The patterns below are part of the public contract shared with the capture
// flow: deliberately permissive, and kept that way. Tightening them (rejecting
// consecutive dots, validating country codes) would drop leads the widget
// already accepted.
var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+()\-\s\d]{7,20}$`)
)

// RequiredFields lists the lead fields in the fixed order they are checked,
// which is also the order the capture flow asks its questions.
var RequiredFields = []string{"name", "email", "phone", "company", "service", "details"}

// ValidationError carries the exact client-facing message for a rejected
// payload, plus the field that failed.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidEmail reports whether the value looks like local@domain.tld with no
// internal whitespace.
func IsValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsValidPhone reports whether the value is 7-20 characters drawn from
// digits, spaces, parentheses, plus and hyphen.
func IsValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

// ValidateLead checks a normalized payload: presence of every required field
// in order, then email format, then phone format. It fails fast on the first
// violation and returns nil when the payload is acceptable.
func ValidateLead(req dto.SubmitLeadRequest) *ValidationError {
	for _, field := range RequiredFields {
		if req.Field(field) == "" {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("Missing or invalid field: %s", field),
			}
		}
	}
	if !IsValidEmail(req.Email) {
		return &ValidationError{Field: "email", Message: "Invalid email format"}
	}
	if !IsValidPhone(req.Phone) {
		return &ValidationError{Field: "phone", Message: "Invalid phone format"}
	}
	return nil
}
