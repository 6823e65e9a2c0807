// Package api provides the HTTP API server for hostreg.
// It uses Echo framework to serve the host registry REST endpoints and a
// WebSocket stream of host changes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "evalgo.org/hostreg/docs" // registers the swagger spec
	"evalgo.org/hostreg/internal/auth"
	"evalgo.org/hostreg/internal/config"
	"evalgo.org/hostreg/internal/profile"
	"evalgo.org/hostreg/internal/registry"
	"evalgo.org/hostreg/internal/storage"
	"evalgo.org/hostreg/internal/version"
)

// Server represents the hostreg API server.
type Server struct {
	echo       *echo.Echo
	store      storage.Store
	service    *registry.Service
	profiles   *profile.Cache
	config     *config.Config
	wsHub      *Hub // WebSocket hub for host events
	authMiddle *auth.Middleware
	logger     *logrus.Logger
}

// New creates a new API server instance. profiles may be nil when no
// profile service is configured.
func New(cfg *config.Config, store storage.Store, profiles *profile.Cache, logger *logrus.Logger) *Server {
	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	// Set custom error handler
	e.HTTPErrorHandler = HTTPErrorHandler

	hub := NewHub(logger)

	opts := []registry.Option{
		registry.WithLogger(logger),
		registry.WithPublisher(hub),
	}
	if profiles != nil {
		opts = append(opts, registry.WithAdminResolver(profiles))
	}

	server := &Server{
		echo:       e,
		store:      store,
		service:    registry.NewService(store, opts...),
		profiles:   profiles,
		config:     cfg,
		wsHub:      hub,
		authMiddle: auth.NewMiddleware(cfg),
		logger:     logger,
	}

	// Start WebSocket hub in background
	go hub.Run()

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.RequestID())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := s.logger.WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))

	s.echo.Use(middleware.Recover())

	// Security headers middleware
	s.echo.Use(SecurityHeaders)

	// CORS middleware
	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	// Rate limiting
	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	// Content-Type validation middleware for API routes
	s.echo.Use(ValidateContentType)

	// Accept header validation middleware
	s.echo.Use(ValidateAcceptHeader)
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", s.healthCheck)

	// Swagger UI documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	v1 := s.echo.Group("/api/v1")

	// Host routes
	hosts := v1.Group("/hosts")
	hosts.GET("", s.listHosts, ValidateQueryParams, s.authMiddle.OptionalAuth)
	hosts.GET("/:id", s.getHost, ValidateIDFormat, s.authMiddle.OptionalAuth)
	hosts.GET("/:id/admins", s.getHostAdmins, ValidateIDFormat, s.authMiddle.OptionalAuth)
	hosts.GET("/:id/dependents", s.getHostDependents, ValidateIDFormat, s.authMiddle.OptionalAuth)
	hosts.POST("", s.createHost, s.authMiddle.RequireAuth)
	hosts.PUT("/:id", s.updateHost, ValidateIDFormat, s.authMiddle.RequireAuth)
	hosts.DELETE("/:id", s.deleteHost, ValidateIDFormat, s.authMiddle.RequireAuth)

	// Validation routes
	v1.POST("/validate/host", s.validateHost, s.authMiddle.OptionalAuth)

	// Statistics
	v1.GET("/stats", s.getStatistics, s.authMiddle.OptionalAuth)

	// WebSocket routes
	ws := v1.Group("/ws")
	ws.GET("/hosts", s.HandleWebSocket, s.authMiddle.OptionalAuth)
	ws.GET("/stats", s.GetWebSocketStats, s.authMiddle.OptionalAuth)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.logger.WithFields(logrus.Fields{
		"address": addr,
		"storage": s.config.Storage.Driver,
		"debug":   s.config.Server.Debug,
	}).Info("Starting hostreg API server")

	// Configure server timeouts
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	if s.config.Server.TLSEnabled {
		return s.echo.StartTLS(addr, s.config.Server.TLSCert, s.config.Server.TLSKey)
	}

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down hostreg API server")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	s.wsHub.Close()

	if err := s.store.Close(ctx); err != nil {
		return fmt.Errorf("error closing storage: %w", err)
	}

	s.logger.Info("Server shutdown complete")
	return nil
}

// healthCheck handles health check requests.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		body := map[string]interface{}{
			"status": "unhealthy",
			"error":  "storage connection failed",
		}
		if s.config.Server.Debug {
			body["details"] = err.Error()
		}
		return c.JSON(http.StatusServiceUnavailable, body)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "hostreg",
		"version": version.Version,
		"storage": s.config.Storage.Driver,
	})
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
