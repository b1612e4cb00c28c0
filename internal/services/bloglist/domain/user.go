package domain

import (
	"strings"
	"time"

	apperrors "github.com/reettakoskinen/fullstack-part5/internal/platform/errors"
)

// minPasswordLength matches the original credential policy.
const minPasswordLength = 3

var (
	// ErrUsernameMissing indicates a registration without a username.
	ErrUsernameMissing = apperrors.New(apperrors.CodeUserUsernameMissing, "username is required")
	// ErrPasswordTooShort indicates a password below the minimum length.
	ErrPasswordTooShort = apperrors.New(apperrors.CodeUserPasswordTooShort, "password must be at least 3 characters long")
)

// User represents one registered account. PasswordHash is opaque to the
// core and never serialized by the API layer.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegisterUserInput describes the fields accepted when registering a user.
type RegisterUserInput struct {
	Username string
	Name     string
	Password string
}

// NormalizeRegisterUserInput trims and validates registration input
// before any hashing or persistence happens. Usernames are lowercased
// so lookups are case-insensitive.
func NormalizeRegisterUserInput(input RegisterUserInput) (RegisterUserInput, error) {
	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Name = strings.TrimSpace(input.Name)
	if input.Username == "" {
		return RegisterUserInput{}, ErrUsernameMissing
	}
	if len(input.Password) < minPasswordLength {
		return RegisterUserInput{}, ErrPasswordTooShort
	}
	return input, nil
}
