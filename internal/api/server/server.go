package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/api/middleware"
	"github.com/toannghia/vietlott-ai-analyzer/internal/api/rest"
	"github.com/toannghia/vietlott-ai-analyzer/internal/crawler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/prediction"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	APIKeys      []string
	CORSOrigins  []string
}

// Server wraps the HTTP server
type Server struct {
	config      Config
	store       store.Store
	stats       *stats.Engine
	predictions *prediction.Engine
	coordinator *crawler.Coordinator
	httpServer  *http.Server
}

// New creates a new API server
func New(
	cfg Config,
	s store.Store,
	statsEngine *stats.Engine,
	predictionEngine *prediction.Engine,
	coordinator *crawler.Coordinator,
) *Server {
	return &Server{
		config:      cfg,
		store:       s,
		stats:       statsEngine,
		predictions: predictionEngine,
		coordinator: coordinator,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.CORSOrigins))

	authCfg := middleware.AuthConfig{APIKeys: s.config.APIKeys}

	// Create REST handler
	restHandler := rest.NewHandler(s.store, s.stats, s.predictions, s.coordinator, authCfg)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, authCfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
