package stats

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// Classification buckets for frequency stats
const (
	ClassHot     = "hot"
	ClassCold    = "cold"
	ClassNeutral = "neutral"
)

// FrequencyEntry is one number's appearance count with its hot/cold bucket
type FrequencyEntry struct {
	Number         int    `json:"number"`
	Frequency      int    `json:"frequency"`
	Classification string `json:"classification"`
}

// GapEntry is one number's gap profile
type GapEntry struct {
	Number     int        `json:"number"`
	CurrentGap int        `json:"currentGap"`
	MaxGap     int        `json:"maxGap"`
	LastSeen   *time.Time `json:"lastSeen"`
}

// SummaryEntry is a number with its frequency, used in hot/cold summaries
type SummaryEntry struct {
	Number    int `json:"number"`
	Frequency int `json:"frequency"`
}

// Summary holds the six most and six least frequent numbers
type Summary struct {
	Hot  []SummaryEntry `json:"hot"`
	Cold []SummaryEntry `json:"cold"`
}

// Combination is a pair or triplet with its co-occurrence count
type Combination struct {
	Numbers []int `json:"numbers"`
	Count   int   `json:"count"`
}

// Cooccurrence holds the most frequent pairs and triplets
type Cooccurrence struct {
	Pairs    []Combination `json:"pairs"`
	Triplets []Combination `json:"triplets"`
}

// Engine derives number statistics from stored draws
type Engine struct {
	store              store.Store
	windowSize         int
	cooccurrenceWindow int
}

// NewEngine creates a stats engine over the given store. Window sizes
// bound how many recent draws each derivation reads.
func NewEngine(s store.Store, windowSize, cooccurrenceWindow int) *Engine {
	if windowSize <= 0 {
		windowSize = 5000
	}
	if cooccurrenceWindow <= 0 {
		cooccurrenceWindow = 1500
	}
	return &Engine{
		store:              s,
		windowSize:         windowSize,
		cooccurrenceWindow: cooccurrenceWindow,
	}
}

// Refresh recomputes frequency and gap statistics for a game from the
// most recent draws and upserts them. A game with no stored draws is a
// no-op, not an error.
func (e *Engine) Refresh(ctx context.Context, game domain.GameType) error {
	draws, err := e.store.ListDraws(ctx, game, store.DrawOrderNewestFirst, e.windowSize, 0)
	if err != nil {
		return err
	}
	if len(draws) == 0 {
		logger.InfoCtx(ctx, "no draws available for stats refresh", zap.String("game", string(game)))
		return nil
	}

	maxNumber := game.MaxNumber()

	frequencies := make(map[int]int, maxNumber)
	lastSeen := make(map[int]time.Time, maxNumber)
	runningGaps := make(map[int]int, maxNumber)
	maxGaps := make(map[int]int, maxNumber)

	// Gap tracking needs a chronological walk, oldest draw first
	for i := len(draws) - 1; i >= 0; i-- {
		draw := &draws[i]
		drawn := make(map[int]bool, len(draw.Numbers))
		for _, num := range draw.Numbers {
			drawn[num] = true
		}

		for num := 1; num <= maxNumber; num++ {
			if drawn[num] {
				frequencies[num]++
				lastSeen[num] = draw.DrawDate
				if runningGaps[num] > maxGaps[num] {
					maxGaps[num] = runningGaps[num]
				}
				runningGaps[num] = 0
			} else {
				runningGaps[num]++
			}
		}
	}

	stats := make([]schema.NumberStat, 0, maxNumber)
	for num := 1; num <= maxNumber; num++ {
		// The trailing run is both the current gap and a max candidate
		currentGap := runningGaps[num]
		if currentGap > maxGaps[num] {
			maxGaps[num] = currentGap
		}

		stat := schema.NumberStat{
			Number:     num,
			Game:       game,
			Frequency:  frequencies[num],
			CurrentGap: currentGap,
			MaxGap:     maxGaps[num],
		}
		if seen, ok := lastSeen[num]; ok {
			stat.LastSeen = &seen
		}
		stats = append(stats, stat)
	}

	if err := e.store.UpsertNumberStats(ctx, game, stats); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "number stats refreshed",
		zap.String("game", string(game)),
		zap.Int("draws", len(draws)))
	return nil
}

// Frequency returns per-number frequencies sorted most frequent first,
// with the top five classified hot and the bottom five cold
func (e *Engine) Frequency(ctx context.Context, game domain.GameType) ([]FrequencyEntry, error) {
	stats, err := e.store.ListNumberStats(ctx, game, store.StatOrderFrequencyDesc)
	if err != nil {
		return nil, err
	}

	entries := make([]FrequencyEntry, 0, len(stats))
	for idx, stat := range stats {
		class := ClassNeutral
		switch {
		case idx < 5:
			class = ClassHot
		case idx >= len(stats)-5:
			class = ClassCold
		}
		entries = append(entries, FrequencyEntry{
			Number:         stat.Number,
			Frequency:      stat.Frequency,
			Classification: class,
		})
	}
	return entries, nil
}

// Gaps returns per-number gap profiles sorted by current gap descending,
// so overdue numbers come first
func (e *Engine) Gaps(ctx context.Context, game domain.GameType) ([]GapEntry, error) {
	stats, err := e.store.ListNumberStats(ctx, game, store.StatOrderGapDesc)
	if err != nil {
		return nil, err
	}

	entries := make([]GapEntry, 0, len(stats))
	for _, stat := range stats {
		entries = append(entries, GapEntry{
			Number:     stat.Number,
			CurrentGap: stat.CurrentGap,
			MaxGap:     stat.MaxGap,
			LastSeen:   stat.LastSeen,
		})
	}
	return entries, nil
}

// Summarize returns the six most and six least frequent numbers
func (e *Engine) Summarize(ctx context.Context, game domain.GameType) (*Summary, error) {
	hot, err := e.store.ListNumberStats(ctx, game, store.StatOrderFrequencyDesc)
	if err != nil {
		return nil, err
	}
	cold, err := e.store.ListNumberStats(ctx, game, store.StatOrderFrequencyAsc)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Hot:  make([]SummaryEntry, 0, 6),
		Cold: make([]SummaryEntry, 0, 6),
	}
	for i := 0; i < len(hot) && i < 6; i++ {
		summary.Hot = append(summary.Hot, SummaryEntry{Number: hot[i].Number, Frequency: hot[i].Frequency})
	}
	for i := 0; i < len(cold) && i < 6; i++ {
		summary.Cold = append(summary.Cold, SummaryEntry{Number: cold[i].Number, Frequency: cold[i].Frequency})
	}
	return summary, nil
}

// Cooccurrence counts pairs and triplets over the primary six numbers
// of recent draws and returns the six most frequent of each
func (e *Engine) Cooccurrence(ctx context.Context, game domain.GameType) (*Cooccurrence, error) {
	draws, err := e.store.ListDraws(ctx, game, store.DrawOrderNewestFirst, e.cooccurrenceWindow, 0)
	if err != nil {
		return nil, err
	}

	pairCounts := make(map[[2]int]int)
	tripletCounts := make(map[[3]int]int)

	for i := range draws {
		nums := draws[i].PrimaryNumbers()
		sorted := make([]int, len(nums))
		copy(sorted, nums)
		sort.Ints(sorted)

		for a := 0; a < len(sorted); a++ {
			for b := a + 1; b < len(sorted); b++ {
				pairCounts[[2]int{sorted[a], sorted[b]}]++
				for c := b + 1; c < len(sorted); c++ {
					tripletCounts[[3]int{sorted[a], sorted[b], sorted[c]}]++
				}
			}
		}
	}

	result := &Cooccurrence{
		Pairs:    topPairs(pairCounts, 6),
		Triplets: topTriplets(tripletCounts, 6),
	}
	return result, nil
}

func topPairs(counts map[[2]int]int, n int) []Combination {
	combos := make([]Combination, 0, len(counts))
	for pair, count := range counts {
		combos = append(combos, Combination{Numbers: []int{pair[0], pair[1]}, Count: count})
	}
	sortCombinations(combos)
	if len(combos) > n {
		combos = combos[:n]
	}
	return combos
}

func topTriplets(counts map[[3]int]int, n int) []Combination {
	combos := make([]Combination, 0, len(counts))
	for triplet, count := range counts {
		combos = append(combos, Combination{Numbers: []int{triplet[0], triplet[1], triplet[2]}, Count: count})
	}
	sortCombinations(combos)
	if len(combos) > n {
		combos = combos[:n]
	}
	return combos
}

// sortCombinations orders by count descending, breaking ties by the
// number sequence so results are stable across runs
func sortCombinations(combos []Combination) {
	sort.Slice(combos, func(i, j int) bool {
		if combos[i].Count != combos[j].Count {
			return combos[i].Count > combos[j].Count
		}
		for k := range combos[i].Numbers {
			if combos[i].Numbers[k] != combos[j].Numbers[k] {
				return combos[i].Numbers[k] < combos[j].Numbers[k]
			}
		}
		return false
	})
}
