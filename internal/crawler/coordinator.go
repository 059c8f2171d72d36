package crawler

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/adapter"
	"github.com/toannghia/vietlott-ai-analyzer/internal/alert"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/prediction"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// CycleStatus is the terminal state of one ingestion cycle
type CycleStatus string

const (
	// CycleIngested means a new draw was persisted and the downstream
	// stats and prediction steps ran
	CycleIngested CycleStatus = "ingested"
	// CycleDuplicate means the fetched period was already stored; stats
	// were refreshed and the cycle counts as a success
	CycleDuplicate CycleStatus = "duplicate"
	// CycleFailed means the cycle aborted before persisting anything
	CycleFailed CycleStatus = "failed"
)

// CycleResult is the definite outcome every caller of RunCycle
// observes. A cycle never panics or propagates an error past the
// coordinator.
type CycleResult struct {
	Game       domain.GameType `json:"game"`
	Status     CycleStatus     `json:"status"`
	Period     string          `json:"period,omitempty"`
	NextPeriod string          `json:"nextPeriod,omitempty"`
	Matches    *int            `json:"matches,omitempty"`
	Err        error           `json:"-"`
}

// Succeeded reports whether the cycle left the system in an up-to-date
// state. Duplicate ingestion is a success, not a failure.
func (r CycleResult) Succeeded() bool {
	return r.Status != CycleFailed
}

// Coordinator runs one ingestion cycle to completion: fetch, parse,
// persist, refresh stats, verify the prior prediction, generate the
// next one. It is the sole writer of draw history.
type Coordinator struct {
	fetcher     *Fetcher
	parser      *Parser
	store       store.Store
	stats       *stats.Engine
	predictions *prediction.Engine
	alerter     alert.Alerter
	clock       adapter.Clock
}

func NewCoordinator(
	fetcher *Fetcher,
	parser *Parser,
	s store.Store,
	statsEngine *stats.Engine,
	predictionEngine *prediction.Engine,
	alerter alert.Alerter,
	clock adapter.Clock,
) *Coordinator {
	return &Coordinator{
		fetcher:     fetcher,
		parser:      parser,
		store:       s,
		stats:       statsEngine,
		predictions: predictionEngine,
		alerter:     alerter,
		clock:       clock,
	}
}

// RunCycle executes a full ingestion cycle for one game. Fetch and
// parse failures abort the cycle and raise an alert; everything past
// persistence is recoverable and only logged, since stats are fully
// derived and predictions are regenerable.
func (c *Coordinator) RunCycle(ctx context.Context, game domain.GameType) CycleResult {
	result := CycleResult{Game: game, Status: CycleFailed}

	if !game.Valid() {
		result.Err = fmt.Errorf("%w: %q", domain.ErrUnknownGame, game)
		logger.ErrorCtx(ctx, result.Err)
		return result
	}

	start := c.clock.Now()
	logger.InfoCtx(ctx, "ingestion cycle started", zap.String("game", string(game)))

	html, err := c.fetcher.Fetch(ctx, game)
	if err != nil {
		result.Err = err
		c.alerter.Send(ctx, fmt.Sprintf("Crawler failed for %s: %v", game, err))
		return result
	}

	parsed, err := c.parser.Parse(html, game)
	if err != nil {
		result.Err = err
		logger.ErrorCtx(ctx, fmt.Errorf("failed to parse results page: %w", err),
			zap.String("game", string(game)))
		c.alerter.Send(ctx, fmt.Sprintf("Crawler failed for %s: %v", game, err))
		return result
	}
	result.Period = parsed.Period

	exists, err := c.store.DrawExists(ctx, parsed.Period, game)
	if err != nil {
		result.Err = err
		logger.ErrorCtx(ctx, fmt.Errorf("failed to check for existing draw: %w", err))
		return result
	}
	if exists {
		return c.finishDuplicate(ctx, result)
	}

	draw := &schema.DrawResult{
		DrawPeriod: parsed.Period,
		Game:       game,
		DrawDate:   parsed.Date,
		Numbers:    parsed.Numbers,

		JackpotWon:      parsed.JackpotWon,
		JackpotValue:    parsed.JackpotValue,
		JackpotWinners:  parsed.JackpotWinners,
		Jackpot2Value:   parsed.Jackpot2Value,
		Jackpot2Winners: parsed.Jackpot2Winners,

		FirstPrizeValue:    parsed.FirstPrizeValue,
		FirstPrizeWinners:  parsed.FirstPrizeWinners,
		SecondPrizeValue:   parsed.SecondPrizeValue,
		SecondPrizeWinners: parsed.SecondPrizeWinners,
		ThirdPrizeValue:    parsed.ThirdPrizeValue,
		ThirdPrizeWinners:  parsed.ThirdPrizeWinners,

		RawHTML: html,
	}

	if err := c.store.CreateDraw(ctx, draw); err != nil {
		if errors.Is(err, domain.ErrDuplicatePeriod) {
			// Pre-check raced with another cycle; the period is stored
			return c.finishDuplicate(ctx, result)
		}
		result.Err = err
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist draw: %w", err),
			zap.String("game", string(game)),
			zap.String("period", parsed.Period))
		return result
	}

	result.Status = CycleIngested

	if err := c.stats.Refresh(ctx, game); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to refresh stats after ingestion: %w", err))
	}

	matches, err := c.predictions.Verify(ctx, game, parsed.Period, parsed.Numbers)
	switch {
	case err == nil:
		result.Matches = &matches
	case errors.Is(err, domain.ErrPredictionNotFound):
		// Nothing targeted this period, common during backfill
	default:
		logger.ErrorCtx(ctx, fmt.Errorf("failed to verify prediction: %w", err),
			zap.String("period", parsed.Period))
	}

	result.NextPeriod = domain.NextPeriod(parsed.Period)
	if _, err := c.predictions.Generate(ctx, game, result.NextPeriod); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to generate next prediction: %w", err),
			zap.String("targetPeriod", result.NextPeriod))
	}

	logger.InfoCtx(ctx, "ingestion cycle completed",
		zap.String("game", string(game)),
		zap.String("period", result.Period),
		zap.String("nextPeriod", result.NextPeriod),
		zap.Duration("elapsed", c.clock.Since(start)))
	return result
}

// finishDuplicate closes out a cycle whose period was already stored.
// Stats still refresh so a manual recompute can be triggered by rerunning
// the cycle.
func (c *Coordinator) finishDuplicate(ctx context.Context, result CycleResult) CycleResult {
	result.Status = CycleDuplicate
	logger.InfoCtx(ctx, "draw period already stored, refreshing stats",
		zap.String("game", string(result.Game)),
		zap.String("period", result.Period))

	if err := c.stats.Refresh(ctx, result.Game); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to refresh stats for duplicate period: %w", err))
	}
	return result
}
