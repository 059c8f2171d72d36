package store

import (
	"context"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// DrawOrder controls the sort direction of draw range reads
type DrawOrder string

const (
	// DrawOrderNewestFirst orders by (draw_date desc, draw_period desc)
	DrawOrderNewestFirst DrawOrder = "newest"
	// DrawOrderOldestFirst is the reverse, for chronological replay
	DrawOrderOldestFirst DrawOrder = "oldest"
)

// StatOrder controls the sort order of number stat reads
type StatOrder string

const (
	// StatOrderFrequencyDesc orders by frequency desc, number asc
	StatOrderFrequencyDesc StatOrder = "frequency_desc"
	// StatOrderFrequencyAsc orders by frequency asc, number asc
	StatOrderFrequencyAsc StatOrder = "frequency_asc"
	// StatOrderGapDesc orders by current_gap desc, number asc
	StatOrderGapDesc StatOrder = "gap_desc"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// DrawExists checks whether a draw for (period, game) is already stored.
	// This is an optimization only; CreateDraw's uniqueness conflict is the
	// correctness mechanism under concurrent cycles.
	DrawExists(ctx context.Context, period string, game domain.GameType) (bool, error)
	// CreateDraw inserts a new draw record. Returns domain.ErrDuplicatePeriod
	// when the (period, game) pair already exists.
	CreateDraw(ctx context.Context, draw *schema.DrawResult) error
	// GetDraw returns the draw for (period, game), nil when absent
	GetDraw(ctx context.Context, period string, game domain.GameType) (*schema.DrawResult, error)
	// ListDraws returns draws for a game in the requested order
	ListDraws(ctx context.Context, game domain.GameType, order DrawOrder, limit int, offset int) ([]schema.DrawResult, error)
	// CountDraws returns the number of stored draws for a game
	CountDraws(ctx context.Context, game domain.GameType) (int64, error)
	// LatestDraw returns the most recent draw for a game, nil when none exist
	LatestDraw(ctx context.Context, game domain.GameType) (*schema.DrawResult, error)

	// UpsertNumberStats replaces the derived stats for a game in a single
	// transaction. MaxGap is kept monotonic across recomputations.
	UpsertNumberStats(ctx context.Context, game domain.GameType, stats []schema.NumberStat) error
	// ListNumberStats returns the derived stats for a game in the requested order
	ListNumberStats(ctx context.Context, game domain.GameType, order StatOrder) ([]schema.NumberStat, error)

	// GetPrediction returns the prediction for (period, game), nil when absent
	GetPrediction(ctx context.Context, period string, game domain.GameType) (*schema.Prediction, error)
	// SavePrediction creates or overwrites the prediction for its
	// (target period, game). Returns domain.ErrPredictionVerified when the
	// existing record is verified; verified rows are frozen.
	SavePrediction(ctx context.Context, prediction *schema.Prediction) error
	// MarkPredictionVerified records the match count exactly once. Returns
	// false when the row was already verified (no mutation performed).
	MarkPredictionVerified(ctx context.Context, id uint64, matches int) (bool, error)
	// LatestPrediction returns the prediction with the highest target period
	LatestPrediction(ctx context.Context, game domain.GameType) (*schema.Prediction, error)
	// ListVerifiedPredictions returns up to limit verified predictions,
	// most recent target period first
	ListVerifiedPredictions(ctx context.Context, game domain.GameType, limit int) ([]schema.Prediction, error)
	// CountPredictions returns total and verified prediction counts for a game
	CountPredictions(ctx context.Context, game domain.GameType) (total int64, verified int64, err error)
}
