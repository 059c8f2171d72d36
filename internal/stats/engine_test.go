package stats_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	return store.NewPGStore(db)
}

// seedDraws stores three mega645 draws in chronological order:
//
//	00001: 1 2 3 4 5 6
//	00002: 1 7 8 9 10 11
//	00003: 1 2 12 13 14 15
func seedDraws(t *testing.T, s store.Store) (time.Time, time.Time, time.Time) {
	t.Helper()
	ctx := context.Background()

	d1 := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)

	draws := []schema.DrawResult{
		{DrawPeriod: "00001", Game: domain.GameMega645, DrawDate: d1, Numbers: []int{1, 2, 3, 4, 5, 6}},
		{DrawPeriod: "00002", Game: domain.GameMega645, DrawDate: d2, Numbers: []int{1, 7, 8, 9, 10, 11}},
		{DrawPeriod: "00003", Game: domain.GameMega645, DrawDate: d3, Numbers: []int{1, 2, 12, 13, 14, 15}},
	}
	for i := range draws {
		require.NoError(t, s.CreateDraw(ctx, &draws[i]))
	}
	return d1, d2, d3
}

func statByNumber(t *testing.T, rows []schema.NumberStat, number int) schema.NumberStat {
	t.Helper()
	for _, row := range rows {
		if row.Number == number {
			return row
		}
	}
	t.Fatalf("no stat row for number %d", number)
	return schema.NumberStat{}
}

func TestRefreshComputesFrequencyAndGaps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, d2, d3 := seedDraws(t, s)

	engine := stats.NewEngine(s, 0, 0)
	require.NoError(t, engine.Refresh(ctx, domain.GameMega645))

	rows, err := s.ListNumberStats(ctx, domain.GameMega645, store.StatOrderFrequencyDesc)
	require.NoError(t, err)
	require.Len(t, rows, 45)

	// Drawn in every period
	one := statByNumber(t, rows, 1)
	assert.Equal(t, 3, one.Frequency)
	assert.Zero(t, one.CurrentGap)
	assert.Zero(t, one.MaxGap)
	require.NotNil(t, one.LastSeen)
	assert.True(t, one.LastSeen.Equal(d3))

	// Missed the middle period, back in the latest
	two := statByNumber(t, rows, 2)
	assert.Equal(t, 2, two.Frequency)
	assert.Zero(t, two.CurrentGap)
	assert.Equal(t, 1, two.MaxGap)

	// Drawn only in the oldest period; the trailing run is both the
	// current gap and the max
	three := statByNumber(t, rows, 3)
	assert.Equal(t, 1, three.Frequency)
	assert.Equal(t, 2, three.CurrentGap)
	assert.Equal(t, 2, three.MaxGap)

	seven := statByNumber(t, rows, 7)
	assert.Equal(t, 1, seven.Frequency)
	assert.Equal(t, 1, seven.CurrentGap)
	require.NotNil(t, seven.LastSeen)
	assert.True(t, seven.LastSeen.Equal(d2))

	// Never drawn: gap spans the whole window, no last-seen date
	fortyFive := statByNumber(t, rows, 45)
	assert.Zero(t, fortyFive.Frequency)
	assert.Equal(t, 3, fortyFive.CurrentGap)
	assert.Equal(t, 3, fortyFive.MaxGap)
	assert.Nil(t, fortyFive.LastSeen)
}

func TestRefreshWithoutDrawsIsNoop(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	engine := stats.NewEngine(s, 0, 0)
	require.NoError(t, engine.Refresh(ctx, domain.GamePower655))

	rows, err := s.ListNumberStats(ctx, domain.GamePower655, store.StatOrderFrequencyDesc)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRefreshIsDeterministic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDraws(t, s)
	require.NoError(t, s.CreateDraw(ctx, &schema.DrawResult{
		DrawPeriod: "00004",
		Game:       domain.GameMega645,
		DrawDate:   time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC),
		Numbers:    []int{2, 7, 16, 17, 18, 19},
	}))

	engine := stats.NewEngine(s, 0, 0)
	require.NoError(t, engine.Refresh(ctx, domain.GameMega645))
	first, err := s.ListNumberStats(ctx, domain.GameMega645, store.StatOrderFrequencyDesc)
	require.NoError(t, err)
	require.Len(t, first, 45)

	require.NoError(t, engine.Refresh(ctx, domain.GameMega645))
	second, err := s.ListNumberStats(ctx, domain.GameMega645, store.StatOrderFrequencyDesc)
	require.NoError(t, err)
	require.Len(t, second, 45)

	for i := range first {
		assert.Equal(t, first[i].Number, second[i].Number)
		assert.Equal(t, first[i].Frequency, second[i].Frequency, "frequency for %d", first[i].Number)
		assert.Equal(t, first[i].CurrentGap, second[i].CurrentGap, "current gap for %d", first[i].Number)
		assert.Equal(t, first[i].MaxGap, second[i].MaxGap, "max gap for %d", first[i].Number)
		if first[i].LastSeen == nil {
			assert.Nil(t, second[i].LastSeen)
		} else {
			require.NotNil(t, second[i].LastSeen)
			assert.True(t, first[i].LastSeen.Equal(*second[i].LastSeen))
		}
		assert.GreaterOrEqual(t, first[i].MaxGap, first[i].CurrentGap)
	}
}

func TestFrequencyClassification(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDraws(t, s)

	engine := stats.NewEngine(s, 0, 0)
	require.NoError(t, engine.Refresh(ctx, domain.GameMega645))

	entries, err := engine.Frequency(ctx, domain.GameMega645)
	require.NoError(t, err)
	require.Len(t, entries, 45)

	// Sorted by frequency descending, ties by number ascending
	assert.Equal(t, 1, entries[0].Number)
	assert.Equal(t, 3, entries[0].Frequency)
	assert.Equal(t, 2, entries[1].Number)

	for i, entry := range entries {
		switch {
		case i < 5:
			assert.Equal(t, stats.ClassHot, entry.Classification, "entry %d", i)
		case i >= len(entries)-5:
			assert.Equal(t, stats.ClassCold, entry.Classification, "entry %d", i)
		default:
			assert.Equal(t, stats.ClassNeutral, entry.Classification, "entry %d", i)
		}
	}
}

func TestGapsOverdueFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDraws(t, s)

	engine := stats.NewEngine(s, 0, 0)
	require.NoError(t, engine.Refresh(ctx, domain.GameMega645))

	entries, err := engine.Gaps(ctx, domain.GameMega645)
	require.NoError(t, err)
	require.Len(t, entries, 45)

	// Never-drawn numbers lead with the full window as their gap, ties
	// broken by number ascending
	assert.Equal(t, 16, entries[0].Number)
	assert.Equal(t, 3, entries[0].CurrentGap)
	for i := 1; i < len(entries); i++ {
		assert.LessOrEqual(t, entries[i].CurrentGap, entries[i-1].CurrentGap)
	}
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDraws(t, s)

	engine := stats.NewEngine(s, 0, 0)
	require.NoError(t, engine.Refresh(ctx, domain.GameMega645))

	summary, err := engine.Summarize(ctx, domain.GameMega645)
	require.NoError(t, err)

	require.Len(t, summary.Hot, 6)
	assert.Equal(t, stats.SummaryEntry{Number: 1, Frequency: 3}, summary.Hot[0])
	assert.Equal(t, stats.SummaryEntry{Number: 2, Frequency: 2}, summary.Hot[1])

	require.Len(t, summary.Cold, 6)
	assert.Equal(t, stats.SummaryEntry{Number: 16, Frequency: 0}, summary.Cold[0])
}

func TestCooccurrence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedDraws(t, s)

	engine := stats.NewEngine(s, 0, 0)
	result, err := engine.Cooccurrence(ctx, domain.GameMega645)
	require.NoError(t, err)

	require.Len(t, result.Pairs, 6)
	// (1,2) appears in periods 00001 and 00003; every other pair once
	assert.Equal(t, []int{1, 2}, result.Pairs[0].Numbers)
	assert.Equal(t, 2, result.Pairs[0].Count)
	assert.Equal(t, []int{1, 3}, result.Pairs[1].Numbers)
	assert.Equal(t, 1, result.Pairs[1].Count)

	require.Len(t, result.Triplets, 6)
	assert.Equal(t, []int{1, 2, 3}, result.Triplets[0].Numbers)
	assert.Equal(t, 1, result.Triplets[0].Count)
}

func TestCooccurrenceUsesPrimaryNumbersOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A 7-number draw: the trailing power number never joins a pair
	require.NoError(t, s.CreateDraw(ctx, &schema.DrawResult{
		DrawPeriod: "00001",
		Game:       domain.GamePower655,
		DrawDate:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Numbers:    []int{3, 11, 19, 27, 38, 52, 44},
	}))

	engine := stats.NewEngine(s, 0, 0)
	result, err := engine.Cooccurrence(ctx, domain.GamePower655)
	require.NoError(t, err)

	for _, pair := range result.Pairs {
		assert.NotContains(t, pair.Numbers, 44)
	}
}
