package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/toannghia/vietlott-ai-analyzer/internal/adapter"
	"github.com/toannghia/vietlott-ai-analyzer/internal/config"
	"github.com/toannghia/vietlott-ai-analyzer/internal/crawler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	gameFlag   = flag.String("game", string(domain.GameMega645), "Game type to backfill (mega645 or power655)")
	fromFlag   = flag.Int("from", 1, "First draw period to ingest")
	toFlag     = flag.Int("to", 0, "Last draw period to ingest (inclusive)")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadBackfillConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "backfill",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	game := domain.GameType(*gameFlag)
	if !game.Valid() {
		logger.FatalCtx(ctx, "Unknown game type", zap.String("game", *gameFlag))
	}
	if *toFlag < *fromFlag || *fromFlag <= 0 {
		logger.FatalCtx(ctx, "Invalid period range",
			zap.Int("from", *fromFlag),
			zap.Int("to", *toFlag))
	}

	logger.InfoCtx(ctx, "Starting historical backfill",
		zap.String("game", string(game)),
		zap.Int("from", *fromFlag),
		zap.Int("to", *toFlag))

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}

	dataStore := store.NewPGStore(db)
	statsEngine := stats.NewEngine(dataStore, cfg.Stats.WindowSize, cfg.Stats.CooccurrenceWindow)

	httpClient := adapter.NewHTTPClient(cfg.Source.Timeout, cfg.Source.UserAgent)
	parser := crawler.NewParser(cfg.TierLabels.TierTable())

	backfiller := crawler.NewBackfiller(
		httpClient,
		parser,
		dataStore,
		statsEngine,
		cfg.Source.DetailURLs,
		cfg.Worker.PoolSize,
		cfg.Worker.QueueSize,
	)

	result, err := backfiller.Run(ctx, game, *fromFlag, *toFlag)
	if err != nil {
		logger.FatalCtx(ctx, "Backfill run failed", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Backfill finished",
		zap.Int("requested", result.Requested),
		zap.Int("ingested", result.Ingested),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("failed", result.Failed))
}
