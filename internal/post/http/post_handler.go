// Package http provides HTTP handlers for the posts feed proxy.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/analytics/internal/httputil"
	"github.com/allisson/analytics/internal/post/service"
)

// PostHandler handles HTTP requests for the posts feed.
type PostHandler struct {
	postService service.PostService
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// ListHandler retrieves all posts from the upstream feed.
// GET /api/posts - Returns 200 OK with the posts array.
func (h *PostHandler) ListHandler(c *gin.Context) {
	posts, err := h.postService.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetHandler retrieves a single post by ID.
// GET /api/posts/:id - Returns 200 OK, 404 when the upstream has no such post.
func (h *PostHandler) GetHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid post ID: must be a positive integer"),
			h.logger)
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, post)
}
