package crawler

import (
	"context"
	"errors"
	"fmt"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/adapter"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

type backfillOutcome int

const (
	outcomeIngested backfillOutcome = iota
	outcomeDuplicate
	outcomeFailed
)

// BackfillResult summarizes one historical backfill run
type BackfillResult struct {
	Game       domain.GameType
	Requested  int
	Ingested   int
	Duplicates int
	Failed     int
}

// Backfiller ingests a range of historical draw periods from per-period
// detail pages, fanning fetches out over a bounded worker pool. It
// skips the prediction cycle entirely; backfilled history has no
// forward-looking prediction to verify.
type Backfiller struct {
	client     adapter.HTTPClient
	parser     *Parser
	store      store.Store
	stats      *stats.Engine
	detailURLs map[string]string
	poolSize   int
	queueSize  int
}

func NewBackfiller(
	client adapter.HTTPClient,
	parser *Parser,
	s store.Store,
	statsEngine *stats.Engine,
	detailURLs map[string]string,
	poolSize int,
	queueSize int,
) *Backfiller {
	if poolSize <= 0 {
		poolSize = 8
	}
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Backfiller{
		client:     client,
		parser:     parser,
		store:      s,
		stats:      statsEngine,
		detailURLs: detailURLs,
		poolSize:   poolSize,
		queueSize:  queueSize,
	}
}

// Run ingests every period in [from, to] for a game and refreshes stats
// once at the end. Individual period failures are counted, not fatal.
func (b *Backfiller) Run(ctx context.Context, game domain.GameType, from, to int) (*BackfillResult, error) {
	if !game.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownGame, game)
	}
	if from <= 0 || to < from {
		return nil, fmt.Errorf("invalid period range %d..%d", from, to)
	}
	baseURL, ok := b.detailURLs[string(game)]
	if !ok || baseURL == "" {
		return nil, fmt.Errorf("%w: no detail url for %q", domain.ErrUnknownGame, game)
	}

	result := &BackfillResult{Game: game, Requested: to - from + 1}

	pool := pond.NewResultPool[backfillOutcome](
		b.poolSize,
		pond.WithQueueSize(b.queueSize),
		pond.WithContext(ctx),
	)

	tasks := make([]pond.Result[backfillOutcome], 0, result.Requested)
	for period := from; period <= to; period++ {
		p := period
		tasks = append(tasks, pool.Submit(func() backfillOutcome {
			return b.ingestPeriod(ctx, game, baseURL, p)
		}))
	}

	for _, task := range tasks {
		outcome, err := task.Wait()
		if err != nil {
			result.Failed++
			continue
		}
		switch outcome {
		case outcomeIngested:
			result.Ingested++
		case outcomeDuplicate:
			result.Duplicates++
		default:
			result.Failed++
		}
	}
	pool.StopAndWait()

	if result.Ingested > 0 {
		if err := b.stats.Refresh(ctx, game); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to refresh stats after backfill: %w", err))
		}
	}

	logger.InfoCtx(ctx, "backfill run completed",
		zap.String("game", string(game)),
		zap.Int("requested", result.Requested),
		zap.Int("ingested", result.Ingested),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (b *Backfiller) ingestPeriod(ctx context.Context, game domain.GameType, baseURL string, period int) backfillOutcome {
	periodStr := domain.NormalizePeriod(fmt.Sprintf("%d", period))
	url := fmt.Sprintf("%s?id=%s&nocatche=1", baseURL, periodStr)

	html, err := b.client.GetHTML(ctx, url)
	if err != nil {
		logger.WarnCtx(ctx, "failed to fetch detail page",
			zap.String("period", periodStr),
			zap.Error(err))
		return outcomeFailed
	}

	parsed, err := b.parser.Parse(html, game)
	if err != nil {
		logger.WarnCtx(ctx, "failed to parse detail page",
			zap.String("period", periodStr),
			zap.Error(err))
		return outcomeFailed
	}

	// Some detail pages silently serve the latest period instead of a
	// missing one; trust the parsed period, not the requested id
	if parsed.Period != periodStr {
		logger.WarnCtx(ctx, "detail page served a different period",
			zap.String("requested", periodStr),
			zap.String("served", parsed.Period))
		return outcomeFailed
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

	if err := b.store.CreateDraw(ctx, draw); err != nil {
		if errors.Is(err, domain.ErrDuplicatePeriod) {
			return outcomeDuplicate
		}
		logger.WarnCtx(ctx, "failed to persist backfilled draw",
			zap.String("period", periodStr),
			zap.Error(err))
		return outcomeFailed
	}
	return outcomeIngested
}
