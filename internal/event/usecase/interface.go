// Package usecase implements the event business logic: ownership checks,
// audit stamping and the soft delete lifecycle.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	eventDomain "github.com/allisson/analytics/internal/event/domain"
)

// CreateEventInput contains the input data for recording an event
type CreateEventInput struct {
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
}

// UpdateEventInput contains the input data for modifying an event
type UpdateEventInput struct {
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
}

// EventUseCase defines the interface for event business logic operations.
// Every operation takes the acting principal explicitly; the owner of an
// event is always derived from the principal, never from request data.
type EventUseCase interface {
	Create(ctx context.Context, principal *authDomain.Principal, input CreateEventInput) (*eventDomain.Event, error)
	Get(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) (*eventDomain.Event, error)
	List(ctx context.Context, principal *authDomain.Principal, offset, limit int) ([]*eventDomain.Event, error)
	Update(ctx context.Context, principal *authDomain.Principal, id uuid.UUID, input UpdateEventInput) (*eventDomain.Event, error)
	SoftDelete(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) error
}

// EventRepository interface defines event repository operations
type EventRepository interface {
	Create(ctx context.Context, event *eventDomain.Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*eventDomain.Event, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*eventDomain.Event, error)
	Update(ctx context.Context, event *eventDomain.Event) error
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID) error
}
