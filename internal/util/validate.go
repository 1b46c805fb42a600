package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Matches local@domain.tld with a mandatory dot-separated TLD.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// LengthBetween reports whether the trimmed value is within [min, max] runes.
func LengthBetween(s string, min int, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(s))
	return n >= min && n <= max
}
