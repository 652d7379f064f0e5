// backend/src/security/validation/field_validator.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxCardNameLength = 255
	MaxNotesLength    = 1024
)

var lastFourPattern = regexp.MustCompile(`^\d{0,4}$`)

// ValidateStringNotEmpty checks if a string is not empty after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks if a string's UTF-8 character count is within max bounds.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateDateString checks a YYYY-MM-DD calendar date. Empty is allowed when
// the field is optional; callers gate mandatory dates with
// ValidateStringNotEmpty first.
func ValidateDateString(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("%w: %s ('%s') is not a valid YYYY-MM-DD date", ErrValidationFailed, fieldName, s)
	}
	return nil
}

// ValidateLastFour accepts zero to four digits.
func ValidateLastFour(s string) error {
	if !lastFourPattern.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("%w: last_four must be 0-4 digits", ErrValidationFailed)
	}
	return nil
}

// ValidateNonNegative rejects negative monetary amounts.
func ValidateNonNegative(v float64, fieldName string) error {
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative", ErrValidationFailed, fieldName)
	}
	return nil
}
