// Package api wires the reconciliation HTTP surface: routing, CORS,
// request logging and graceful shutdown.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/villamar/pousada-recon-backend/internal/api/handlers"
	"github.com/villamar/pousada-recon-backend/internal/application/service"
	"github.com/villamar/pousada-recon-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	service    *service.ReconService
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, svc *service.ReconService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:  cfg,
		router:  gin.New(),
		logger:  logger,
		repo:    repo,
		service: svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.requestLogger())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	s.router.GET("/health", handlers.Health)

	weeksHandler := handlers.NewWeeksHandler(s.repo, s.service, s.logger)
	importsHandler := handlers.NewImportsHandler(s.repo, s.logger)
	exceptionsHandler := handlers.NewExceptionsHandler(s.repo, s.logger)
	matchesHandler := handlers.NewMatchesHandler(s.repo, s.logger)
	reportsHandler := handlers.NewReportsHandler(s.repo, s.service, s.logger)

	api := s.router.Group("/api")
	{
		// Weeks
		api.GET("/weeks", weeksHandler.List)
		api.POST("/weeks", weeksHandler.Create)
		api.GET("/weeks/:weekId", weeksHandler.Get)
		api.PATCH("/weeks/:weekId", weeksHandler.Update)
		api.POST("/weeks/:weekId/close", weeksHandler.Close)

		// Imports
		api.POST("/weeks/:weekId/import/entries", importsHandler.Entries)
		api.POST("/weeks/:weekId/import/bank", importsHandler.Bank)

		// Reconciliation
		api.POST("/weeks/:weekId/reconcile", weeksHandler.Reconcile)
		api.GET("/weeks/:weekId/matches", weeksHandler.Matches)
		api.PATCH("/matches/:id", matchesHandler.Update)

		// Exceptions
		api.GET("/weeks/:weekId/exceptions", exceptionsHandler.List)
		api.POST("/weeks/:weekId/exceptions", exceptionsHandler.Create)
		api.POST("/weeks/:weekId/exceptions/import", exceptionsHandler.ImportCSV)
		api.POST("/exceptions/parse", exceptionsHandler.Parse)
		api.PATCH("/exceptions/:id", exceptionsHandler.Update)
		api.DELETE("/exceptions/:id", exceptionsHandler.Delete)

		// Reports
		api.GET("/weeks/:weekId/report", reportsHandler.Get)
		api.GET("/report/:weekId", reportsHandler.Director)
	}
}

// requestLogger logs one line per request, skipping health probes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		s.logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("API server starting", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}
