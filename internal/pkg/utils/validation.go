package utils

import (
	"regexp"
	"strings"
)

var nonDigit = regexp.MustCompile(`\D`)

// CleanPhone strips everything but digits from a phone number.
func CleanPhone(phone string) string {
	return nonDigit.ReplaceAllString(phone, "")
}

// IsValidPhone accepts local (0991...) and international (+26599...) forms:
// at least 9 digits after cleaning.
func IsValidPhone(phone string) bool {
	return len(CleanPhone(phone)) >= 9
}

// IsValidFrequency reports whether a repayment frequency is one the
// maturity calculation understands.
func IsValidFrequency(frequency string) bool {
	switch strings.ToLower(strings.TrimSpace(frequency)) {
	case "weekly", "monthly":
		return true
	}
	return false
}
