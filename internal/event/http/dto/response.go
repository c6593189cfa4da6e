// Package dto provides data transfer objects for the event HTTP layer.
package dto

import (
	"time"

	eventDomain "github.com/allisson/analytics/internal/event/domain"
)

// EventResponse represents an event in API responses. The deletion stamps are
// internal audit data and are never exposed.
type EventResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListEventsResponse represents a paginated list of events in API responses.
type ListEventsResponse struct {
	Data []EventResponse `json:"data"`
}

// MapEventToResponse converts a domain event to an API response.
func MapEventToResponse(event *eventDomain.Event) EventResponse {
	return EventResponse{
		ID:        event.ID.String(),
		Type:      string(event.Type),
		From:      event.From,
		To:        event.To,
		UserID:    event.UserID.String(),
		CreatedAt: event.CreatedAt,
		UpdatedAt: event.UpdatedAt,
	}
}

// MapEventsToListResponse converts a slice of domain events to a list response.
func MapEventsToListResponse(events []*eventDomain.Event) ListEventsResponse {
	data := make([]EventResponse, 0, len(events))
	for _, event := range events {
		data = append(data, MapEventToResponse(event))
	}

	return ListEventsResponse{
		Data: data,
	}
}
