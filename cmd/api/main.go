package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/toannghia/vietlott-ai-analyzer/internal/adapter"
	"github.com/toannghia/vietlott-ai-analyzer/internal/alert"
	"github.com/toannghia/vietlott-ai-analyzer/internal/api/server"
	"github.com/toannghia/vietlott-ai-analyzer/internal/config"
	"github.com/toannghia/vietlott-ai-analyzer/internal/crawler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/prediction"
	"github.com/toannghia/vietlott-ai-analyzer/internal/scheduler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Vietlott analyzer API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store and engines
	dataStore := store.NewPGStore(db)
	statsEngine := stats.NewEngine(dataStore, cfg.Stats.WindowSize, cfg.Stats.CooccurrenceWindow)
	predictionEngine := prediction.NewEngine(dataStore, cfg.Prediction.ModelDir, cfg.Prediction.HistoryWindow)

	// Initialize alerting; empty credentials make it a no-op
	alerter, err := alert.NewTelegramAlerter(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize telegram alerter", zap.Error(err))
	}
	if !alerter.Enabled() {
		logger.WarnCtx(ctx, "Telegram alerting not configured, alerts will be dropped")
	}

	// Build the ingestion coordinator shared by the scheduler and the
	// manual API trigger
	httpClient := adapter.NewHTTPClient(cfg.Source.Timeout, cfg.Source.UserAgent)
	fetcher := crawler.NewFetcher(httpClient, cfg.Source.ResultURLs)
	parser := crawler.NewParser(cfg.TierLabels.TierTable())
	coordinator := crawler.NewCoordinator(fetcher, parser, dataStore, statsEngine, predictionEngine, alerter, adapter.NewClock())

	// Start the daily crawl scheduler
	sched, err := scheduler.New(cfg.Scheduler, coordinator)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		APIKeys:      cfg.Server.APIKeys,
		CORSOrigins:  cfg.Server.CORSOrigins,
	}

	// Create and start server
	srv := server.New(serverConfig, dataStore, statsEngine, predictionEngine, coordinator)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
