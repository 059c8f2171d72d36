package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new store instance backed by a GORM connection
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the three logical collections
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.DrawResult{},
		&schema.NumberStat{},
		&schema.Prediction{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to safe defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// DrawExists checks whether a draw for (period, game) is already stored
func (s *pgStore) DrawExists(ctx context.Context, period string, game domain.GameType) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.DrawResult{}).
		Where("draw_period = ? AND game = ?", domain.NormalizePeriod(period), game).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check draw existence: %w", err)
	}
	return count > 0, nil
}

// CreateDraw inserts a new draw record. The unique (draw_period, game)
// index is the primary defense against duplicate ingestion: a conflict
// surfaces as domain.ErrDuplicatePeriod even when the caller's
// existence pre-check raced with another cycle.
func (s *pgStore) CreateDraw(ctx context.Context, draw *schema.DrawResult) error {
	draw.DrawPeriod = domain.NormalizePeriod(draw.DrawPeriod)

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "draw_period"}, {Name: "game"}},
			DoNothing: true,
		}).
		Create(draw).Error
	if err != nil {
		return fmt.Errorf("failed to create draw: %w", err)
	}

	// ID stays zero when the insert was skipped by the conflict clause
	if draw.ID == 0 {
		return domain.ErrDuplicatePeriod
	}

	return nil
}

// GetDraw returns the draw for (period, game), nil when absent
func (s *pgStore) GetDraw(ctx context.Context, period string, game domain.GameType) (*schema.DrawResult, error) {
	var draw schema.DrawResult
	err := s.db.WithContext(ctx).
		Where("draw_period = ? AND game = ?", domain.NormalizePeriod(period), game).
		First(&draw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}
	return &draw, nil
}

// ListDraws returns draws for a game in the requested order
func (s *pgStore) ListDraws(ctx context.Context, game domain.GameType, order DrawOrder, limit int, offset int) ([]schema.DrawResult, error) {
	query := s.db.WithContext(ctx).Where("game = ?", game)

	switch order {
	case DrawOrderOldestFirst:
		query = query.Order("draw_date ASC").Order("draw_period ASC")
	default:
		query = query.Order("draw_date DESC").Order("draw_period DESC")
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var draws []schema.DrawResult
	if err := query.Find(&draws).Error; err != nil {
		return nil, fmt.Errorf("failed to list draws: %w", err)
	}

	return draws, nil
}

// CountDraws returns the number of stored draws for a game
func (s *pgStore) CountDraws(ctx context.Context, game domain.GameType) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.DrawResult{}).
		Where("game = ?", game).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// LatestDraw returns the most recent draw for a game, nil when none exist
func (s *pgStore) LatestDraw(ctx context.Context, game domain.GameType) (*schema.DrawResult, error) {
	var draw schema.DrawResult
	err := s.db.WithContext(ctx).
		Where("game = ?", game).
		Order("draw_date DESC").Order("draw_period DESC").
		First(&draw).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}
	return &draw, nil
}

// UpsertNumberStats replaces the derived stats for a game in a single
// transaction. A crash mid-refresh leaves the previous consistent view;
// the next cycle recomputes from scratch.
func (s *pgStore) UpsertNumberStats(ctx context.Context, game domain.GameType, stats []schema.NumberStat) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range stats {
			stat := &stats[i]
			stat.Game = game

			var existing schema.NumberStat
			err := tx.Where("number = ? AND game = ?", stat.Number, game).First(&existing).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("failed to load number stat: %w", err)
				}
				if err := tx.Create(stat).Error; err != nil {
					return fmt.Errorf("failed to create number stat: %w", err)
				}
				continue
			}

			// MaxGap only grows: a shrinking stats window must not erase
			// a previously observed maximum
			if existing.MaxGap > stat.MaxGap {
				stat.MaxGap = existing.MaxGap
			}
			stat.ID = existing.ID
			if err := tx.Save(stat).Error; err != nil {
				return fmt.Errorf("failed to update number stat: %w", err)
			}
		}
		return nil
	})
}

// ListNumberStats returns the derived stats for a game in the requested order
func (s *pgStore) ListNumberStats(ctx context.Context, game domain.GameType, order StatOrder) ([]schema.NumberStat, error) {
	query := s.db.WithContext(ctx).Where("game = ?", game)

	switch order {
	case StatOrderFrequencyAsc:
		query = query.Order("frequency ASC").Order("number ASC")
	case StatOrderGapDesc:
		query = query.Order("current_gap DESC").Order("number ASC")
	default:
		query = query.Order("frequency DESC").Order("number ASC")
	}

	var stats []schema.NumberStat
	if err := query.Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to list number stats: %w", err)
	}

	return stats, nil
}

// GetPrediction returns the prediction for (period, game), nil when absent
func (s *pgStore) GetPrediction(ctx context.Context, period string, game domain.GameType) (*schema.Prediction, error) {
	var prediction schema.Prediction
	err := s.db.WithContext(ctx).
		Where("target_period = ? AND game = ?", domain.NormalizePeriod(period), game).
		First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return &prediction, nil
}

// SavePrediction creates or overwrites the prediction for its target
// period. Verification freezes the record: regeneration into a
// different numeric result would break audit integrity.
func (s *pgStore) SavePrediction(ctx context.Context, prediction *schema.Prediction) error {
	prediction.TargetPeriod = domain.NormalizePeriod(prediction.TargetPeriod)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.Prediction
		err := tx.Where("target_period = ? AND game = ?", prediction.TargetPeriod, prediction.Game).
			First(&existing).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load prediction: %w", err)
			}
			if err := tx.Create(prediction).Error; err != nil {
				return fmt.Errorf("failed to create prediction: %w", err)
			}
			return nil
		}

		if existing.Verified {
			return domain.ErrPredictionVerified
		}

		prediction.ID = existing.ID
		prediction.CreatedAt = existing.CreatedAt
		if err := tx.Save(prediction).Error; err != nil {
			return fmt.Errorf("failed to update prediction: %w", err)
		}
		return nil
	})
}

// MarkPredictionVerified records the match count exactly once. The
// guarded update (WHERE verified = false) makes a concurrent second
// verification a no-op at the store level.
func (s *pgStore) MarkPredictionVerified(ctx context.Context, id uint64, matches int) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&schema.Prediction{}).
		Where("id = ? AND verified = ?", id, false).
		Updates(map[string]interface{}{
			"verified": true,
			"matches":  matches,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to mark prediction verified: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// LatestPrediction returns the prediction with the highest target period
func (s *pgStore) LatestPrediction(ctx context.Context, game domain.GameType) (*schema.Prediction, error) {
	var prediction schema.Prediction
	err := s.db.WithContext(ctx).
		Where("game = ?", game).
		Order("target_period DESC").
		First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest prediction: %w", err)
	}
	return &prediction, nil
}

// ListVerifiedPredictions returns up to limit verified predictions,
// most recent target period first
func (s *pgStore) ListVerifiedPredictions(ctx context.Context, game domain.GameType, limit int) ([]schema.Prediction, error) {
	var predictions []schema.Prediction
	err := s.db.WithContext(ctx).
		Where("game = ? AND verified = ?", game, true).
		Order("target_period DESC").
		Limit(limit).
		Find(&predictions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list verified predictions: %w", err)
	}
	return predictions, nil
}

// CountPredictions returns total and verified prediction counts for a game
func (s *pgStore) CountPredictions(ctx context.Context, game domain.GameType) (int64, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.Prediction{}).
		Where("game = ?", game).
		Count(&total).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	var verified int64
	err = s.db.WithContext(ctx).
		Model(&schema.Prediction{}).
		Where("game = ? AND verified = ?", game, true).
		Count(&verified).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count verified predictions: %w", err)
	}

	return total, verified, nil
}
