// Package validate holds the stateless credential checks. Nothing here
// touches storage; uniqueness checks live in the auth service where the
// identity store is available.
package validate

import (
	"regexp"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail checks the general local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// Password strength rules, applied in order at registration. Each returns a
// human-readable reason on failure and an empty string when the rule passes.

func PasswordLength(password string) string {
	if len(password) < 8 {
		return "Password must have at least 8 characters"
	}
	return ""
}

func PasswordUpper(password string) string {
	for _, r := range password {
		if unicode.IsUpper(r) {
			return ""
		}
	}
	return "Password must have at least 1 upper case character"
}

func PasswordDigit(password string) string {
	for _, r := range password {
		if unicode.IsDigit(r) {
			return ""
		}
	}
	return "Password must have at least 1 number"
}

func PasswordSymbol(password string) string {
	for _, r := range password {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return ""
		}
	}
	return "Password must have at least 1 special character"
}

// CheckPassword runs the strength rules in order and returns the first
// failure reason, or an empty string if the password is acceptable.
func CheckPassword(password string) string {
	for _, rule := range []func(string) string{
		PasswordLength,
		PasswordUpper,
		PasswordDigit,
		PasswordSymbol,
	} {
		if msg := rule(password); msg != "" {
			return msg
		}
	}
	return ""
}
