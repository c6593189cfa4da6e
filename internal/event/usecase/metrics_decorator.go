package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	eventDomain "github.com/allisson/analytics/internal/event/domain"
	"github.com/allisson/analytics/internal/metrics"
)

// eventUseCaseWithMetrics decorates EventUseCase with metrics instrumentation.
type eventUseCaseWithMetrics struct {
	next    EventUseCase
	metrics metrics.BusinessMetrics
}

// NewEventUseCaseWithMetrics wraps an EventUseCase with metrics recording.
func NewEventUseCaseWithMetrics(useCase EventUseCase, m metrics.BusinessMetrics) EventUseCase {
	return &eventUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (e *eventUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "event", operation, status)
	e.metrics.RecordDuration(ctx, "event", operation, time.Since(start), status)
}

// Create records metrics for event creation operations.
func (e *eventUseCaseWithMetrics) Create(
	ctx context.Context,
	principal *authDomain.Principal,
	input CreateEventInput,
) (*eventDomain.Event, error) {
	start := time.Now()
	event, err := e.next.Create(ctx, principal, input)
	e.record(ctx, "event_create", start, err)
	return event, err
}

// Get records metrics for event retrieval operations.
func (e *eventUseCaseWithMetrics) Get(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) (*eventDomain.Event, error) {
	start := time.Now()
	event, err := e.next.Get(ctx, principal, id)
	e.record(ctx, "event_get", start, err)
	return event, err
}

// List records metrics for event listing operations.
func (e *eventUseCaseWithMetrics) List(
	ctx context.Context,
	principal *authDomain.Principal,
	offset, limit int,
) ([]*eventDomain.Event, error) {
	start := time.Now()
	events, err := e.next.List(ctx, principal, offset, limit)
	e.record(ctx, "event_list", start, err)
	return events, err
}

// Update records metrics for event update operations.
func (e *eventUseCaseWithMetrics) Update(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
	input UpdateEventInput,
) (*eventDomain.Event, error) {
	start := time.Now()
	event, err := e.next.Update(ctx, principal, id, input)
	e.record(ctx, "event_update", start, err)
	return event, err
}

// SoftDelete records metrics for event deletion operations.
func (e *eventUseCaseWithMetrics) SoftDelete(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) error {
	start := time.Now()
	err := e.next.SoftDelete(ctx, principal, id)
	e.record(ctx, "event_delete", start, err)
	return err
}
