package util

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidPhone is returned when a phone number is not E.164 compliant.
	ErrInvalidPhone = errors.New("invalid e164 phone number")
	// ErrInvalidTemplateName indicates a template name is malformed.
	ErrInvalidTemplateName = errors.New("invalid template name")
)

var (
	e164Pattern         = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	templateNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// NormalizeE164 validates a phone number against the E.164 format and
// returns the trimmed representation.
func NormalizeE164(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: value is empty", ErrInvalidPhone)
	}

	if !e164Pattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, trimmed)
	}

	return trimmed, nil
}

// CountryCode returns the leading digits of an E.164 number up to the first
// three, which is as much as can be recovered without a full numbering-plan
// table. The input must already be normalized.
func CountryCode(number string) string {
	digits := strings.TrimPrefix(number, "+")
	if len(digits) > 3 {
		digits = digits[:3]
	}
	return digits
}

// ValidateTemplateName enforces a conservative pattern for template file
// stems so they remain portable as file names.
func ValidateTemplateName(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: value is empty", ErrInvalidTemplateName)
	}
	if !templateNamePattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTemplateName, trimmed)
	}
	return trimmed, nil
}

// EnsureMaxRunes ensures a string is not longer than the provided rune count.
func EnsureMaxRunes(field, value string, max int) error {
	if max <= 0 {
		return nil
	}
	length := utf8.RuneCountInString(value)
	if length > max {
		return fmt.Errorf("%s exceeds maximum length of %d characters", field, max)
	}
	return nil
}

// EnsureMinRunes ensures a string meets a minimum rune length requirement.
func EnsureMinRunes(field, value string, min int) error {
	if min <= 0 {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < min {
		return fmt.Errorf("%s must be at least %d characters", field, min)
	}
	return nil
}
