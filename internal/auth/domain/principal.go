// Package domain defines the core authentication domain entities and types.
package domain

import (
	"github.com/google/uuid"

	"github.com/allisson/analytics/internal/errors"
)

// Principal is the identity of an authenticated actor for the duration of a
// single request. It is produced by the authentication middleware and passed
// explicitly into resource-layer operations; it is never stored globally.
type Principal struct {
	ID       uuid.UUID
	Username string
}

// Domain-specific errors for authentication operations.
var (
	// ErrTokenMalformed indicates the token cannot be parsed or its signature
	// does not verify. The authentication middleware absorbs this error and
	// continues the request unauthenticated.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "token malformed")

	// ErrInvalidCredentials indicates a failed login. A single message covers
	// both unknown usernames and wrong passwords to prevent username enumeration.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid username or password")
)
