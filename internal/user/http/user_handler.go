package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/analytics/internal/auth/domain"
	authHTTP "github.com/allisson/analytics/internal/auth/http"
	apperrors "github.com/allisson/analytics/internal/errors"
	"github.com/allisson/analytics/internal/httputil"
	"github.com/allisson/analytics/internal/user/http/dto"
	"github.com/allisson/analytics/internal/user/usecase"
)

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// principal returns the authenticated principal or aborts with 401.
func (h *UserHandler) principal(c *gin.Context) (*authDomain.Principal, bool) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return nil, false
	}
	return principal, true
}

// userID parses the :id path parameter.
func (h *UserHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// GetHandler retrieves a user by ID.
// GET /api/users/:id - Returns 200 OK, 404 when absent.
func (h *UserHandler) GetHandler(c *gin.Context) {
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.GetByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetByUsernameHandler retrieves a user by username.
// GET /api/users/username/:username - Returns 200 OK, 404 when absent.
func (h *UserHandler) GetByUsernameHandler(c *gin.Context) {
	username := strings.TrimSpace(strings.ToLower(c.Param("username")))

	user, err := h.userUseCase.GetByUsername(c.Request.Context(), username)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListHandler retrieves a page of user accounts.
// GET /api/users?offset=0&limit=50 - Returns 200 OK with a data envelope.
func (h *UserHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToListUsersResponse(users))
}

// DeleteHandler soft-deletes the caller's own account.
// DELETE /api/users/:id - Returns 204 No Content, 404 when absent, 403 for
// any account other than the caller's.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), principal, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
