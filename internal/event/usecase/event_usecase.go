package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	"github.com/allisson/analytics/internal/database"
	eventDomain "github.com/allisson/analytics/internal/event/domain"
	apperrors "github.com/allisson/analytics/internal/errors"
	appValidation "github.com/allisson/analytics/internal/validation"
)

// DefaultEventUseCase handles event-related business logic
type DefaultEventUseCase struct {
	txManager database.TxManager
	eventRepo EventRepository
}

// NewEventUseCase creates a new DefaultEventUseCase
func NewEventUseCase(txManager database.TxManager, eventRepo EventRepository) EventUseCase {
	return &DefaultEventUseCase{
		txManager: txManager,
		eventRepo: eventRepo,
	}
}

func validateEventInput(eventType, from, to string) error {
	input := struct {
		Type string
		From string
		To   string
	}{Type: eventType, From: from, To: to}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Type,
			validation.Required.Error("type is required"),
			validation.By(func(value any) error {
				if !eventDomain.EventType(value.(string)).IsValid() {
					return eventDomain.ErrInvalidEventType
				}
				return nil
			}),
		),
		validation.Field(&input.From,
			validation.Length(0, 255).Error("from must be at most 255 characters"),
		),
		validation.Field(&input.To,
			validation.Length(0, 255).Error("to must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// authorize loads the event and checks that the principal owns it. Existence
// is decided first: an absent or soft-deleted event is a not-found for every
// caller, so non-owners cannot learn whether an ID exists. Only an event that
// does exist can produce an access-denied error.
func (uc *DefaultEventUseCase) authorize(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) (*eventDomain.Event, error) {
	event, err := uc.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.UserID != principal.ID {
		return nil, eventDomain.ErrEventAccessDenied
	}
	return event, nil
}

// Create records a new event owned by the principal. The owner and the audit
// stamps come from the principal; any owner supplied by the caller is ignored.
func (uc *DefaultEventUseCase) Create(
	ctx context.Context,
	principal *authDomain.Principal,
	input CreateEventInput,
) (*eventDomain.Event, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if err := validateEventInput(input.Type, input.From, input.To); err != nil {
		return nil, err
	}

	event := &eventDomain.Event{
		ID:        uuid.Must(uuid.NewV7()),
		Type:      eventDomain.EventType(input.Type),
		From:      input.From,
		To:        input.To,
		UserID:    principal.ID,
		CreatedBy: principal.ID,
		UpdatedBy: principal.ID,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// Get retrieves an event owned by the principal.
func (uc *DefaultEventUseCase) Get(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) (*eventDomain.Event, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return uc.authorize(ctx, principal, id)
}

// List retrieves a page of the principal's events. The owner filter is part
// of the query, so other users' events are never loaded.
func (uc *DefaultEventUseCase) List(
	ctx context.Context,
	principal *authDomain.Principal,
	offset, limit int,
) ([]*eventDomain.Event, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return uc.eventRepo.ListByUserID(ctx, principal.ID, offset, limit)
}

// Update modifies an event owned by the principal and re-stamps the update
// audit fields. The ownership check and the write run in one transaction so
// the event cannot change hands between them.
func (uc *DefaultEventUseCase) Update(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
	input UpdateEventInput,
) (*eventDomain.Event, error) {
	if principal == nil {
		return nil, apperrors.ErrUnauthorized
	}

	if err := validateEventInput(input.Type, input.From, input.To); err != nil {
		return nil, err
	}

	var updated *eventDomain.Event
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		event, err := uc.authorize(ctx, principal, id)
		if err != nil {
			return err
		}

		event.Type = eventDomain.EventType(input.Type)
		event.From = input.From
		event.To = input.To
		event.UpdatedBy = principal.ID

		if err := uc.eventRepo.Update(ctx, event); err != nil {
			return err
		}

		updated = event
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// SoftDelete marks an event owned by the principal as deleted, stamping who
// removed it and when. Deleting an already-deleted event reports not-found.
func (uc *DefaultEventUseCase) SoftDelete(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) error {
	if principal == nil {
		return apperrors.ErrUnauthorized
	}

	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := uc.authorize(ctx, principal, id); err != nil {
			return err
		}
		return uc.eventRepo.SoftDelete(ctx, id, principal.ID)
	})
}
