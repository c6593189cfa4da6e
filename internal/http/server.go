// Package http provides the API server, route registration and HTTP middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/analytics/internal/auth/http"
	authService "github.com/allisson/analytics/internal/auth/service"
	"github.com/allisson/analytics/internal/config"
	eventHTTP "github.com/allisson/analytics/internal/event/http"
	"github.com/allisson/analytics/internal/metrics"
	postHTTP "github.com/allisson/analytics/internal/post/http"
	userHTTP "github.com/allisson/analytics/internal/user/http"
	userUseCase "github.com/allisson/analytics/internal/user/usecase"
)

// RouterDeps holds the handlers and services the router wires together.
type RouterDeps struct {
	TokenService authService.TokenService
	UserUseCase  userUseCase.UseCase
	AuthHandler  *userHTTP.AuthHandler
	UserHandler  *userHTTP.UserHandler
	EventHandler *eventHTTP.EventHandler
	PostHandler  *postHTTP.PostHandler
	// MetricsProvider is optional; metrics middleware is skipped when nil.
	MetricsProvider *metrics.Provider
}

// Server represents the API HTTP server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	router *gin.Engine
	server *http.Server
}

// NewServer creates the API server and registers all routes.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	deps RouterDeps,
) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	s.router = s.createRouter(deps)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// createRouter builds the gin engine with the middleware chain and all routes.
func (s *Server) createRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(s.cfg.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if deps.MetricsProvider != nil && s.cfg.MetricsEnabled {
		router.Use(metrics.HTTPMetricsMiddleware(deps.MetricsProvider.MeterProvider(), s.cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	// Token validation runs on every request but never rejects one; routes
	// that need a principal opt in via RequireAuthentication below.
	router.Use(authHTTP.AuthenticationMiddleware(deps.TokenService, deps.UserUseCase, s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	auth := router.Group("/api/auth")
	if s.cfg.RateLimitLoginEnabled {
		auth.Use(authHTTP.LoginRateLimitMiddleware(
			s.cfg.RateLimitLoginRequestsPerSec,
			s.cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	auth.POST("/register", deps.AuthHandler.RegisterHandler)
	auth.POST("/login", deps.AuthHandler.LoginHandler)

	api := router.Group("/api")
	api.Use(authHTTP.RequireAuthentication())
	if s.cfg.RateLimitEnabled {
		api.Use(authHTTP.RateLimitMiddleware(
			s.cfg.RateLimitRequestsPerSec,
			s.cfg.RateLimitBurst,
			s.logger,
		))
	}

	api.GET("/users", deps.UserHandler.ListHandler)
	api.GET("/users/:id", deps.UserHandler.GetHandler)
	api.GET("/users/username/:username", deps.UserHandler.GetByUsernameHandler)
	api.DELETE("/users/:id", deps.UserHandler.DeleteHandler)

	api.POST("/events", deps.EventHandler.CreateHandler)
	api.GET("/events", deps.EventHandler.ListHandler)
	api.GET("/events/:id", deps.EventHandler.GetHandler)
	api.PUT("/events/:id", deps.EventHandler.UpdateHandler)
	api.DELETE("/events/:id", deps.EventHandler.DeleteHandler)

	api.GET("/posts", deps.PostHandler.ListHandler)
	api.GET("/posts/:id", deps.PostHandler.GetHandler)

	return router
}

// Router returns the underlying handler for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readinessHandler reports whether the server can serve traffic, checking
// its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := http.StatusOK
	overall := "ready"

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("readiness check failed", slog.Any("error", err))
			components["database"] = "error"
			status = http.StatusServiceUnavailable
			overall = "not_ready"
		} else {
			components["database"] = "ok"
		}
	}

	c.JSON(status, gin.H{"status": overall, "components": components})
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
