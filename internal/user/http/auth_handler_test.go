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
	"github.com/allisson/analytics/internal/httputil"
	"github.com/allisson/analytics/internal/user/domain"
	"github.com/allisson/analytics/internal/user/http/dto"
	"github.com/allisson/analytics/internal/user/usecase"
)

// mockUserUseCase is a mock implementation of usecase.UseCase for testing.
type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *mockUserUseCase) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserUseCase) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserUseCase) Delete(ctx context.Context, principal *authDomain.Principal, id uuid.UUID) error {
	args := m.Called(ctx, principal, id)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(uc usecase.UseCase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewAuthHandler(uc, logger)

	router := gin.New()
	router.POST("/api/auth/register", handler.RegisterHandler)
	router.POST("/api/auth/login", handler.LoginHandler)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		user := &domain.User{
			ID:        uuid.Must(uuid.NewV7()),
			Username:  "alice",
			Email:     "alice@example.com",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		uc.On("Register", mock.Anything, usecase.RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "Str0ng!Pass",
		}).Return(user, nil).Once()

		w := postJSON(router, "/api/auth/register", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "Str0ng!Pass",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, user.ID, response.ID)
		assert.Equal(t, "alice", response.Username)
		uc.AssertExpectations(t)
	})

	t.Run("duplicate returns 409", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		uc.On("Register", mock.Anything, mock.Anything).
			Return(nil, domain.ErrUsernameTaken).Once()

		w := postJSON(router, "/api/auth/register", gin.H{
			"username": "alice",
			"email":    "alice@example.com",
			"password": "Str0ng!Pass",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid body returns 422 without reaching use case", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		w := postJSON(router, "/api/auth/register", gin.H{
			"username": "alice",
			"email":    "not-an-email",
			"password": "Str0ng!Pass",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("malformed json returns 400", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not-json")))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Username: "alice"}
		expiresAt := time.Now().Add(24 * time.Hour).UTC()

		uc.On("Login", mock.Anything, usecase.LoginInput{
			Username: "alice",
			Password: "Str0ng!Pass",
		}).Return(&usecase.LoginOutput{User: user, Token: "signed-token", ExpiresAt: expiresAt}, nil).Once()

		w := postJSON(router, "/api/auth/login", gin.H{
			"username": "alice",
			"password": "Str0ng!Pass",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "signed-token", response.Token)
		assert.Equal(t, "alice", response.User.Username)
		assert.WithinDuration(t, expiresAt, response.ExpiresAt, time.Second)
		uc.AssertExpectations(t)
	})

	t.Run("bad credentials return 401", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		uc.On("Login", mock.Anything, mock.Anything).
			Return(nil, authDomain.ErrInvalidCredentials).Once()

		w := postJSON(router, "/api/auth/login", gin.H{
			"username": "alice",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "unauthorized", response.Error)
	})

	t.Run("missing fields return 422", func(t *testing.T) {
		uc := &mockUserUseCase{}
		router := newTestRouter(uc)

		w := postJSON(router, "/api/auth/login", gin.H{"username": "alice"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}
