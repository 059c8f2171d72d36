package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	return store.NewPGStore(db)
}

func makeDraw(period string, game domain.GameType, date time.Time) *schema.DrawResult {
	return &schema.DrawResult{
		DrawPeriod: period,
		Game:       game,
		DrawDate:   date,
		Numbers:    []int{1, 2, 3, 4, 5, 6},
	}
}

func TestCreateDrawDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateDraw(ctx, makeDraw("00001", domain.GameMega645, date)))

	err := s.CreateDraw(ctx, makeDraw("00001", domain.GameMega645, date))
	assert.ErrorIs(t, err, domain.ErrDuplicatePeriod)

	// The same period for the other game is a distinct draw
	require.NoError(t, s.CreateDraw(ctx, makeDraw("00001", domain.GamePower655, date)))

	count, err := s.CountDraws(ctx, domain.GameMega645)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateDrawNormalizesPeriod(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateDraw(ctx, makeDraw("42", domain.GameMega645, date)))

	exists, err := s.DrawExists(ctx, "00042", domain.GameMega645)
	require.NoError(t, err)
	assert.True(t, exists)

	// Lookups normalize too, so the raw form finds the same row
	draw, err := s.GetDraw(ctx, "42", domain.GameMega645)
	require.NoError(t, err)
	require.NotNil(t, draw)
	assert.Equal(t, "00042", draw.DrawPeriod)
}

func TestGetDrawAbsent(t *testing.T) {
	s := newTestStore(t)

	draw, err := s.GetDraw(context.Background(), "09999", domain.GameMega645)
	require.NoError(t, err)
	assert.Nil(t, draw)
}

func TestListDrawsOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	for i, period := range []string{"00001", "00002", "00003"} {
		require.NoError(t, s.CreateDraw(ctx, makeDraw(period, domain.GameMega645, base.AddDate(0, 0, i))))
	}

	newest, err := s.ListDraws(ctx, domain.GameMega645, store.DrawOrderNewestFirst, 0, 0)
	require.NoError(t, err)
	require.Len(t, newest, 3)
	assert.Equal(t, "00003", newest[0].DrawPeriod)
	assert.Equal(t, "00001", newest[2].DrawPeriod)

	oldest, err := s.ListDraws(ctx, domain.GameMega645, store.DrawOrderOldestFirst, 2, 0)
	require.NoError(t, err)
	require.Len(t, oldest, 2)
	assert.Equal(t, "00001", oldest[0].DrawPeriod)
	assert.Equal(t, "00002", oldest[1].DrawPeriod)

	offset, err := s.ListDraws(ctx, domain.GameMega645, store.DrawOrderNewestFirst, 2, 1)
	require.NoError(t, err)
	require.Len(t, offset, 2)
	assert.Equal(t, "00002", offset[0].DrawPeriod)
}

func TestLatestDraw(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	latest, err := s.LatestDraw(ctx, domain.GameMega645)
	require.NoError(t, err)
	assert.Nil(t, latest)

	base := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateDraw(ctx, makeDraw("00001", domain.GameMega645, base)))
	require.NoError(t, s.CreateDraw(ctx, makeDraw("00002", domain.GameMega645, base.AddDate(0, 0, 2))))

	latest, err = s.LatestDraw(ctx, domain.GameMega645)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "00002", latest.DrawPeriod)
}

func TestUpsertNumberStatsMaxGapMonotonic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertNumberStats(ctx, domain.GameMega645, []schema.NumberStat{
		{Number: 7, Frequency: 3, CurrentGap: 1, MaxGap: 12},
	}))

	// A narrower recompute reports a smaller max; the stored one survives
	require.NoError(t, s.UpsertNumberStats(ctx, domain.GameMega645, []schema.NumberStat{
		{Number: 7, Frequency: 5, CurrentGap: 0, MaxGap: 4},
	}))

	rows, err := s.ListNumberStats(ctx, domain.GameMega645, store.StatOrderFrequencyDesc)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Frequency)
	assert.Zero(t, rows[0].CurrentGap)
	assert.Equal(t, 12, rows[0].MaxGap)
}

func TestSavePredictionUpsertAndFreeze(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := &schema.Prediction{
		TargetPeriod: "00100",
		Game:         domain.GameMega645,
		Numbers:      []int{1, 2, 3, 4, 5, 6},
		Confidence:   75,
	}
	require.NoError(t, s.SavePrediction(ctx, first))

	// Regeneration before verification overwrites in place
	second := &schema.Prediction{
		TargetPeriod: "00100",
		Game:         domain.GameMega645,
		Numbers:      []int{7, 8, 9, 10, 11, 12},
		Confidence:   80,
	}
	require.NoError(t, s.SavePrediction(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	stored, err := s.GetPrediction(ctx, "00100", domain.GameMega645)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, []int(stored.Numbers))

	updated, err := s.MarkPredictionVerified(ctx, second.ID, 2)
	require.NoError(t, err)
	require.True(t, updated)

	// Verified rows are frozen
	err = s.SavePrediction(ctx, &schema.Prediction{
		TargetPeriod: "00100",
		Game:         domain.GameMega645,
		Numbers:      []int{13, 14, 15, 16, 17, 18},
		Confidence:   90,
	})
	assert.ErrorIs(t, err, domain.ErrPredictionVerified)
}

func TestMarkPredictionVerifiedOnce(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prediction := &schema.Prediction{
		TargetPeriod: "00200",
		Game:         domain.GamePower655,
		Numbers:      []int{1, 2, 3, 4, 5, 6},
		Confidence:   75,
	}
	require.NoError(t, s.SavePrediction(ctx, prediction))

	updated, err := s.MarkPredictionVerified(ctx, prediction.ID, 4)
	require.NoError(t, err)
	assert.True(t, updated)

	// The second attempt must not touch the stored count
	updated, err = s.MarkPredictionVerified(ctx, prediction.ID, 0)
	require.NoError(t, err)
	assert.False(t, updated)

	stored, err := s.GetPrediction(ctx, "00200", domain.GamePower655)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Verified)
	require.NotNil(t, stored.Matches)
	assert.Equal(t, 4, *stored.Matches)
}

func TestLatestPredictionAndCounts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	latest, err := s.LatestPrediction(ctx, domain.GameMega645)
	require.NoError(t, err)
	assert.Nil(t, latest)

	for _, period := range []string{"00101", "00103", "00102"} {
		require.NoError(t, s.SavePrediction(ctx, &schema.Prediction{
			TargetPeriod: period,
			Game:         domain.GameMega645,
			Numbers:      []int{1, 2, 3, 4, 5, 6},
			Confidence:   75,
		}))
	}

	latest, err = s.LatestPrediction(ctx, domain.GameMega645)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "00103", latest.TargetPeriod)

	verified, err := s.GetPrediction(ctx, "00101", domain.GameMega645)
	require.NoError(t, err)
	updated, err := s.MarkPredictionVerified(ctx, verified.ID, 1)
	require.NoError(t, err)
	require.True(t, updated)

	total, verifiedCount, err := s.CountPredictions(ctx, domain.GameMega645)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(1), verifiedCount)

	list, err := s.ListVerifiedPredictions(ctx, domain.GameMega645, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "00101", list[0].TargetPeriod)
}
