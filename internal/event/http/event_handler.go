// Package http provides HTTP handlers for event operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	authHTTP "github.com/allisson/analytics/internal/auth/http"
	"github.com/allisson/analytics/internal/event/http/dto"
	eventUseCase "github.com/allisson/analytics/internal/event/usecase"
	apperrors "github.com/allisson/analytics/internal/errors"
	"github.com/allisson/analytics/internal/httputil"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	eventUseCase eventUseCase.EventUseCase
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler with required dependencies.
func NewEventHandler(uc eventUseCase.EventUseCase, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventUseCase: uc,
		logger:       logger,
	}
}

// principal returns the authenticated principal or aborts with 401. Routes
// are guarded by RequireAuthentication, so a missing principal here means a
// misconfigured route table.
func (h *EventHandler) principal(c *gin.Context) (*authDomain.Principal, bool) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return principal, true
}

// eventID parses the :id path parameter.
func (h *EventHandler) eventID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid event ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// CreateHandler records a new event owned by the caller.
// POST /api/events - Returns 201 Created with the event data.
func (h *EventHandler) CreateHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	event, err := h.eventUseCase.Create(c.Request.Context(), principal, eventUseCase.CreateEventInput{
		Type: req.Type,
		From: req.From,
		To:   req.To,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapEventToResponse(event))
}

// GetHandler retrieves an event by ID.
// GET /api/events/:id - Returns 200 OK, 404 when absent, 403 for non-owners.
func (h *EventHandler) GetHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	id, ok := h.eventID(c)
	if !ok {
		return
	}

	event, err := h.eventUseCase.Get(c.Request.Context(), principal, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

// ListHandler retrieves a page of the caller's events.
// GET /api/events?offset=0&limit=50 - Returns 200 OK with a data envelope.
func (h *EventHandler) ListHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	events, err := h.eventUseCase.List(c.Request.Context(), principal, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventsToListResponse(events))
}

// UpdateHandler modifies an event by ID.
// PUT /api/events/:id - Returns 200 OK, 404 when absent, 403 for non-owners.
func (h *EventHandler) UpdateHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	event, err := h.eventUseCase.Update(c.Request.Context(), principal, id, eventUseCase.UpdateEventInput{
		Type: req.Type,
		From: req.From,
		To:   req.To,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEventToResponse(event))
}

// DeleteHandler soft-deletes an event by ID.
// DELETE /api/events/:id - Returns 204 No Content, 404 when absent, 403 for non-owners.
func (h *EventHandler) DeleteHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	id, ok := h.eventID(c)
	if !ok {
		return
	}

	if err := h.eventUseCase.SoftDelete(c.Request.Context(), principal, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
