// Package domain defines the core event domain entities and types.
// Events are owned resources: every event belongs to exactly one user and is
// only visible to that user. Deletion is a soft delete that stamps who removed
// the event and when, keeping the row for audit purposes.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/analytics/internal/errors"
)

// EventType classifies a tracked event.
type EventType string

// Supported event types.
const (
	EventTypePageView     EventType = "page_view"
	EventTypeClick        EventType = "click"
	EventTypeSessionStart EventType = "session_start"
	EventTypeSessionEnd   EventType = "session_end"
	EventTypeCustom       EventType = "custom"
)

// IsValid reports whether the event type is one of the supported values.
func (t EventType) IsValid() bool {
	switch t {
	case EventTypePageView, EventTypeClick, EventTypeSessionStart, EventTypeSessionEnd, EventTypeCustom:
		return true
	}
	return false
}

// Event represents a tracked user interaction.
type Event struct {
	// ID is the unique identifier for the event.
	ID uuid.UUID
	// Type classifies the interaction.
	Type EventType
	// From is the origin of the interaction (e.g. the page navigated from).
	From string
	// To is the target of the interaction (e.g. the page navigated to).
	To string
	// UserID is the owner of the event. Only the owner can read or modify it.
	UserID uuid.UUID
	// CreatedAt is when the event was recorded.
	CreatedAt time.Time
	// CreatedBy is the user who recorded the event.
	CreatedBy uuid.UUID
	// UpdatedAt is when the event was last modified.
	UpdatedAt time.Time
	// UpdatedBy is the user who last modified the event.
	UpdatedBy uuid.UUID
	// DeletedAt marks when the event was soft-deleted (nil if active).
	DeletedAt *time.Time
	// DeletedBy is the user who soft-deleted the event (nil if active).
	DeletedBy *uuid.UUID
}

// Event-specific error definitions.
var (
	// ErrEventNotFound indicates the event does not exist or has been deleted.
	ErrEventNotFound = errors.Wrap(errors.ErrNotFound, "event not found")

	// ErrEventAccessDenied indicates the event belongs to another user.
	ErrEventAccessDenied = errors.Wrap(errors.ErrForbidden, "event access denied")

	// ErrInvalidEventType indicates the event type is not one of the supported values.
	ErrInvalidEventType = errors.Wrap(errors.ErrInvalidInput, "invalid event type")
)
