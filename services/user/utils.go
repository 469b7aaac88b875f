package user

import (
	"fmt"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// VerifyEmailFormat checks that the email has a plausible shape. The store's
// unique index remains the authority on duplicates.
func VerifyEmailFormat(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// VerifyPasswordComplexity checks that the password meets the minimum
// requirements for a new account.
func VerifyPasswordComplexity(pw string) error {
	if pw == "" {
		return fmt.Errorf("password is required")
	}
	if len(pw) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}
	return nil
}
