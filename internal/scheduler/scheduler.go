package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/config"
	"github.com/toannghia/vietlott-ai-analyzer/internal/crawler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
)

// Scheduler fires one ingestion cycle per enabled game at the
// configured local time each day. It shares the coordinator with the
// manual API trigger so both paths fail identically.
type Scheduler struct {
	cron        *cron.Cron
	coordinator *crawler.Coordinator
	games       []domain.GameType
}

func New(cfg config.SchedulerConfig, coordinator *crawler.Coordinator) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("failed to load scheduler time zone %q: %w", cfg.TimeZone, err)
	}

	s := &Scheduler{
		cron:        cron.New(cron.WithLocation(location)),
		coordinator: coordinator,
	}

	for _, name := range cfg.Games {
		game := domain.GameType(name)
		if !game.Valid() {
			return nil, fmt.Errorf("%w: %q in scheduler config", domain.ErrUnknownGame, name)
		}
		s.games = append(s.games, game)

		g := game
		if _, err := s.cron.AddFunc(cfg.CronSpec, func() { s.runGame(g) }); err != nil {
			return nil, fmt.Errorf("failed to register cron job for %s: %w", game, err)
		}
	}

	return s, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler started",
		zap.Int("games", len(s.games)))
}

// Stop halts scheduling and waits for any in-flight cycle to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) runGame(game domain.GameType) {
	ctx := context.Background()
	result := s.coordinator.RunCycle(ctx, game)
	if !result.Succeeded() {
		logger.ErrorCtx(ctx, fmt.Errorf("scheduled ingestion cycle failed: %w", result.Err),
			zap.String("game", string(game)))
		return
	}
	logger.InfoCtx(ctx, "scheduled ingestion cycle finished",
		zap.String("game", string(game)),
		zap.String("status", string(result.Status)),
		zap.String("period", result.Period))
}
