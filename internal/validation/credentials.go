// Package validation holds the credential rules applied at registration and
// login.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	MaxPasswordLength = 72
	minPhoneDigits    = 7
	maxPhoneDigits    = 15
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
)

// NormalizePhone strips spaces, dashes and parentheses and checks that what
// remains is an optional leading + followed by 7 to 15 digits.
func NormalizePhone(phone string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", fmt.Errorf("phone contains an invalid character %q", r)
		}
	}

	normalized := b.String()
	digits := len(strings.TrimPrefix(normalized, "+"))
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", fmt.Errorf("phone must have %d-%d digits", minPhoneDigits, maxPhoneDigits)
	}
	return normalized, nil
}

// ValidateEmail checks the format of a lower-cased, trimmed address.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return fmt.Errorf("email must contain exactly one @")
	}
	if len(local) == 0 || len(local) > 64 {
		return fmt.Errorf("email local part must be 1-64 characters")
	}
	if len(domain) == 0 || len(domain) > 255 {
		return fmt.Errorf("email domain must be 1-255 characters")
	}
	if !emailLocalRegex.MatchString(local) {
		return fmt.Errorf("email local part contains invalid characters")
	}
	if !emailDomainRegex.MatchString(domain) {
		return fmt.Errorf("email domain is malformed")
	}
	return nil
}

// ValidatePassword requires 8-72 bytes with at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be %d-%d characters", MinPasswordLength, MaxPasswordLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain a letter and a digit")
	}
	return nil
}
