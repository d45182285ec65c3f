package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanRegistration(t *testing.T) {
	cleaned := CleanRegistration(RegistrationInput{
		Username: "  MixedCase42 ",
		Email:    " User@Example.COM ",
		Password: "  spaces matter  ",
	})
	assert.Equal(t, "mixedcase42", cleaned.Username)
	assert.Equal(t, "user@example.com", cleaned.Email)
	// Passwords are never trimmed or lowercased.
	assert.Equal(t, "  spaces matter  ", cleaned.Password)
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		input    RegistrationInput
		expected []string
	}{
		{
			name: "Valid",
			input: RegistrationInput{
				Username: "validuser",
				Email:    "valid@example.com",
				Password: "longenoughpassword",
			},
			expected: nil,
		},
		{
			name:  "AllEmpty",
			input: RegistrationInput{},
			expected: []string{
				"You must provide a username.",
				"You must provide a valid email address.",
				"You must provide a password.",
			},
		},
		{
			name: "ShortEverything",
			input: RegistrationInput{
				Username: "ab",
				Email:    "nope",
				Password: "short",
			},
			expected: []string{
				"You must provide a valid email address.",
				"Password must be at least 12 characters.",
				"Username must be at least 3 characters.",
			},
		},
		{
			name: "NonAlphanumericUsername",
			input: RegistrationInput{
				Username: "has space",
				Email:    "valid@example.com",
				Password: "longenoughpassword",
			},
			expected: []string{"Username can only contain letters and numbers."},
		},
		{
			name: "TooLong",
			input: RegistrationInput{
				Username: strings.Repeat("a", 31),
				Email:    "valid@example.com",
				Password: strings.Repeat("p", 101),
			},
			expected: []string{
				"Password cannot exceed 100 characters.",
				"Username cannot exceed 30 characters.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateRegistration(tt.input))
		})
	}
}

func TestUsernameWellFormed(t *testing.T) {
	assert.True(t, UsernameWellFormed("abc123"))
	assert.False(t, UsernameWellFormed("ab"))
	assert.False(t, UsernameWellFormed("has space"))
	assert.False(t, UsernameWellFormed(strings.Repeat("a", 31)))
}

func TestEmailWellFormed(t *testing.T) {
	assert.True(t, EmailWellFormed("user@example.com"))
	assert.True(t, EmailWellFormed("first.last+tag@sub.example.co"))
	assert.False(t, EmailWellFormed("no-at-sign"))
	assert.False(t, EmailWellFormed("missing@tld"))
	assert.False(t, EmailWellFormed(""))
}
