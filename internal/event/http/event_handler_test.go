package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	authHTTP "github.com/allisson/analytics/internal/auth/http"
	eventDomain "github.com/allisson/analytics/internal/event/domain"
	"github.com/allisson/analytics/internal/event/http/dto"
	eventUseCase "github.com/allisson/analytics/internal/event/usecase"
)

// mockEventUseCase is a mock implementation of usecase.EventUseCase for testing.
type mockEventUseCase struct {
	mock.Mock
}

func (m *mockEventUseCase) Create(
	ctx context.Context,
	principal *authDomain.Principal,
	input eventUseCase.CreateEventInput,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, principal, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

func (m *mockEventUseCase) Get(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, principal, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

func (m *mockEventUseCase) List(
	ctx context.Context,
	principal *authDomain.Principal,
	offset, limit int,
) ([]*eventDomain.Event, error) {
	args := m.Called(ctx, principal, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*eventDomain.Event), args.Error(1)
}

func (m *mockEventUseCase) Update(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
	input eventUseCase.UpdateEventInput,
) (*eventDomain.Event, error) {
	args := m.Called(ctx, principal, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*eventDomain.Event), args.Error(1)
}

func (m *mockEventUseCase) SoftDelete(
	ctx context.Context,
	principal *authDomain.Principal,
	id uuid.UUID,
) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newEventRouter(uc eventUseCase.EventUseCase, principal *authDomain.Principal) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewEventHandler(uc, logger)

	router := gin.New()
	if principal != nil {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(authHTTP.WithPrincipal(c.Request.Context(), principal))
			c.Next()
		})
	}
	router.Use(authHTTP.RequireAuthentication())
	router.POST("/api/events", handler.CreateHandler)
	router.GET("/api/events", handler.ListHandler)
	router.GET("/api/events/:id", handler.GetHandler)
	router.PUT("/api/events/:id", handler.UpdateHandler)
	router.DELETE("/api/events/:id", handler.DeleteHandler)
	return router
}

func storedEvent(principal *authDomain.Principal) *eventDomain.Event {
	now := time.Now()
	return &eventDomain.Event{
		ID:        uuid.Must(uuid.NewV7()),
		Type:      eventDomain.EventTypePageView,
		From:      "/home",
		To:        "/pricing",
		UserID:    principal.ID,
		CreatedAt: now,
		CreatedBy: principal.ID,
		UpdatedAt: now,
		UpdatedBy: principal.ID,
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestEventHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockEventUseCase{}
		principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}
		router := newEventRouter(uc, principal)
		event := storedEvent(principal)

		uc.On("Create", mock.Anything, principal, eventUseCase.CreateEventInput{
			Type: "page_view",
			From: "/home",
			To:   "/pricing",
		}).Return(event, nil).Once()

		w := doJSON(router, http.MethodPost, "/api/events", gin.H{
			"type": "page_view",
			"from": "/home",
			"to":   "/pricing",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.EventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, event.ID.String(), response.ID)
		assert.Equal(t, principal.ID.String(), response.UserID)
		uc.AssertExpectations(t)
	})

	t.Run("unauthenticated request never reaches the handler", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, nil)

		w := doJSON(router, http.MethodPost, "/api/events", gin.H{"type": "page_view"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid type returns 422", func(t *testing.T) {
		uc := &mockEventUseCase{}
		principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}
		router := newEventRouter(uc, principal)

		w := doJSON(router, http.MethodPost, "/api/events", gin.H{"type": "teleport"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventHandler_Get(t *testing.T) {
	principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}

	t.Run("success", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		event := storedEvent(principal)

		uc.On("Get", mock.Anything, principal, event.ID).Return(event, nil).Once()

		w := doJSON(router, http.MethodGet, "/api/events/"+event.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found returns 404", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		id := uuid.Must(uuid.NewV7())

		uc.On("Get", mock.Anything, principal, id).Return(nil, eventDomain.ErrEventNotFound).Once()

		w := doJSON(router, http.MethodGet, "/api/events/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("foreign event returns 403", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		id := uuid.Must(uuid.NewV7())

		uc.On("Get", mock.Anything, principal, id).Return(nil, eventDomain.ErrEventAccessDenied).Once()

		w := doJSON(router, http.MethodGet, "/api/events/"+id.String(), nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid uuid returns 422", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)

		w := doJSON(router, http.MethodGet, "/api/events/not-a-uuid", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventHandler_List(t *testing.T) {
	principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}

	t.Run("default pagination", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		events := []*eventDomain.Event{storedEvent(principal), storedEvent(principal)}

		uc.On("List", mock.Anything, principal, 0, 50).Return(events, nil).Once()

		w := doJSON(router, http.MethodGet, "/api/events", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListEventsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
		uc.AssertExpectations(t)
	})

	t.Run("explicit pagination", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)

		uc.On("List", mock.Anything, principal, 20, 10).Return([]*eventDomain.Event{}, nil).Once()

		w := doJSON(router, http.MethodGet, "/api/events?offset=20&limit=10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("invalid pagination returns 400", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)

		w := doJSON(router, http.MethodGet, "/api/events?limit=9999", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEventHandler_Update(t *testing.T) {
	principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}

	t.Run("success", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		event := storedEvent(principal)
		event.Type = eventDomain.EventTypeClick

		uc.On("Update", mock.Anything, principal, event.ID, eventUseCase.UpdateEventInput{
			Type: "click",
			From: "/pricing",
			To:   "/signup",
		}).Return(event, nil).Once()

		w := doJSON(router, http.MethodPut, "/api/events/"+event.ID.String(), gin.H{
			"type": "click",
			"from": "/pricing",
			"to":   "/signup",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.EventResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "click", response.Type)
	})

	t.Run("foreign event returns 403", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		id := uuid.Must(uuid.NewV7())

		uc.On("Update", mock.Anything, principal, id, mock.Anything).
			Return(nil, eventDomain.ErrEventAccessDenied).Once()

		w := doJSON(router, http.MethodPut, "/api/events/"+id.String(), gin.H{"type": "click"})

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEventHandler_Delete(t *testing.T) {
	principal := &authDomain.Principal{ID: uuid.Must(uuid.NewV7()), Username: "alice"}

	t.Run("success returns 204", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		id := uuid.Must(uuid.NewV7())

		uc.On("SoftDelete", mock.Anything, principal, id).Return(nil).Once()

		w := doJSON(router, http.MethodDelete, "/api/events/"+id.String(), nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.Bytes())
	})

	t.Run("already deleted returns 404", func(t *testing.T) {
		uc := &mockEventUseCase{}
		router := newEventRouter(uc, principal)
		id := uuid.Must(uuid.NewV7())

		uc.On("SoftDelete", mock.Anything, principal, id).
			Return(eventDomain.ErrEventNotFound).Once()

		w := doJSON(router, http.MethodDelete, "/api/events/"+id.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
