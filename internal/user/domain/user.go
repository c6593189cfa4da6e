// Package domain defines the core user domain entities and types.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/analytics/internal/errors"
)

// User represents a registered account in the system
type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAccessDenied indicates the caller may not act on this account.
	ErrUserAccessDenied = errors.Wrap(errors.ErrForbidden, "user access denied")

	// ErrUsernameTaken indicates a user with the same username already exists.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already taken")

	// ErrEmailTaken indicates a user with the same email already exists.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")

	// ErrInvalidUsername indicates the username format is invalid.
	ErrInvalidUsername = errors.Wrap(errors.ErrInvalidInput, "invalid username format")

	// ErrInvalidEmail indicates the email format is invalid.
	ErrInvalidEmail = errors.Wrap(errors.ErrInvalidInput, "invalid email format")

	// ErrInvalidPassword indicates the password doesn't meet requirements.
	ErrInvalidPassword = errors.Wrap(errors.ErrInvalidInput, "invalid password")

	// ErrUsernameRequired indicates the username field is required.
	ErrUsernameRequired = errors.Wrap(errors.ErrInvalidInput, "username is required")

	// ErrEmailRequired indicates the email field is required.
	ErrEmailRequired = errors.Wrap(errors.ErrInvalidInput, "email is required")

	// ErrPasswordRequired indicates the password field is required.
	ErrPasswordRequired = errors.Wrap(errors.ErrInvalidInput, "password is required")
)
