// Package validation provides input cleanup and validation utilities.
// Cleanup functions return new values instead of mutating their input, and
// validators collect every applicable message rather than short-circuiting.
package validation

import (
	"regexp"
	"strings"
)

const (
	// UsernameMinLen and UsernameMaxLen bound username length.
	UsernameMinLen = 3
	UsernameMaxLen = 30
	// PasswordMinLen and PasswordMaxLen bound the pre-hash password length.
	PasswordMinLen = 12
	PasswordMaxLen = 100
)

var (
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// RegistrationInput holds the raw fields submitted at registration.
type RegistrationInput struct {
	Username string
	Email    string
	Password string
}

// CleanRegistration normalizes a registration input: username and email are
// trimmed and lowercased, the password is left untouched.
func CleanRegistration(in RegistrationInput) RegistrationInput {
	return RegistrationInput{
		Username: strings.ToLower(strings.TrimSpace(in.Username)),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
	}
}

// ValidateRegistration runs every format check against a cleaned input and
// returns the collected messages. Uniqueness is a repository concern and is
// checked there, only for fields that pass their format checks here.
func ValidateRegistration(in RegistrationInput) []string {
	var errs []string

	if in.Username == "" {
		errs = append(errs, "You must provide a username.")
	}
	if in.Username != "" && !alphanumericRegex.MatchString(in.Username) {
		errs = append(errs, "Username can only contain letters and numbers.")
	}
	if !EmailWellFormed(in.Email) {
		errs = append(errs, "You must provide a valid email address.")
	}
	if in.Password == "" {
		errs = append(errs, "You must provide a password.")
	}
	if len(in.Password) > 0 && len(in.Password) < PasswordMinLen {
		errs = append(errs, "Password must be at least 12 characters.")
	}
	if len(in.Password) > PasswordMaxLen {
		errs = append(errs, "Password cannot exceed 100 characters.")
	}
	if len(in.Username) > 0 && len(in.Username) < UsernameMinLen {
		errs = append(errs, "Username must be at least 3 characters.")
	}
	if len(in.Username) > UsernameMaxLen {
		errs = append(errs, "Username cannot exceed 30 characters.")
	}

	return errs
}

// UsernameWellFormed reports whether a cleaned username passes every format
// check, gating the uniqueness lookup.
func UsernameWellFormed(username string) bool {
	return len(username) >= UsernameMinLen &&
		len(username) <= UsernameMaxLen &&
		alphanumericRegex.MatchString(username)
}

// EmailWellFormed reports whether an email address is format-valid.
func EmailWellFormed(email string) bool {
	return emailRegex.MatchString(email)
}
