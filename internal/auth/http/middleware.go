package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allisson/analytics/internal/auth/domain"
	"github.com/allisson/analytics/internal/auth/service"
	"github.com/allisson/analytics/internal/httputil"
	userDomain "github.com/allisson/analytics/internal/user/domain"
)

const bearerScheme = "bearer"

// UserResolver resolves the account a token subject refers to. It is satisfied
// by the user use case.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// AuthenticationMiddleware validates a Bearer token when one is present and
// installs the resulting principal into the request context. It never aborts:
// requests with missing, malformed or expired tokens continue unauthenticated,
// and route-level middleware decides whether authentication is required.
func AuthenticationMiddleware(tokenService service.TokenService, users UserResolver, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != bearerScheme {
			c.Next()
			return
		}
		token := parts[1]

		username, err := tokenService.ExtractUsername(token)
		if err != nil {
			logger.Debug("token rejected", slog.Any("error", err))
			c.Next()
			return
		}

		// An upstream middleware may already have authenticated the request.
		if _, ok := GetPrincipal(c.Request.Context()); ok {
			c.Next()
			return
		}

		user, err := users.GetByUsername(c.Request.Context(), username)
		if err != nil {
			logger.Debug("token subject not resolvable", slog.String("username", username), slog.Any("error", err))
			c.Next()
			return
		}

		if !tokenService.IsValid(token, user) {
			c.Next()
			return
		}

		principal := &domain.Principal{ID: user.ID, Username: user.Username}
		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// RequireAuthentication aborts with 401 when the request carries no principal.
// Apply it to every route that must not be reachable anonymously.
func RequireAuthentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httputil.ErrorResponse{
				Error:   "unauthorized",
				Message: "Authentication is required",
			})
			return
		}
		c.Next()
	}
}
