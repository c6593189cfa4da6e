// Package dto provides data transfer objects for the event HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	eventDomain "github.com/allisson/analytics/internal/event/domain"
	appValidation "github.com/allisson/analytics/internal/validation"
)

// EventRequest represents the API request for creating or updating an event.
// The owner is never part of the request; it is derived from the
// authenticated principal.
type EventRequest struct {
	Type string `json:"type"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Validate validates the EventRequest using the jellydator/validation library
func (r *EventRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.By(func(value any) error {
				if !eventDomain.EventType(value.(string)).IsValid() {
					return eventDomain.ErrInvalidEventType
				}
				return nil
			}),
		),
		validation.Field(&r.From,
			validation.Length(0, 255).Error("from must be at most 255 characters"),
		),
		validation.Field(&r.To,
			validation.Length(0, 255).Error("to must be at most 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
