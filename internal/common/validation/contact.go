package validation

import (
	"regexp"
	"strings"
)

var (
	nonDigit      = regexp.MustCompile(`\D`)
	mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)
	whitespaceRun = regexp.MustCompile(`\s+`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// DigitsOnly drops every character that is not 0-9.
func DigitsOnly(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// IsValidMobileNumber reports whether s, once formatting is stripped, is a
// 10 digit Indian mobile number starting with 6, 7, 8 or 9.
func IsValidMobileNumber(s string) bool {
	return mobilePattern.MatchString(DigitsOnly(s))
}

// FormatAddress trims s and collapses internal whitespace runs to one space.
func FormatAddress(s string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ValidateEmail reports whether email has a local part, an @ and a dotted domain.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsBlank is true for the empty string and whitespace-only strings.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
