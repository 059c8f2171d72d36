package prediction

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

const (
	confidenceFloor   = 70.0
	confidenceCeiling = 98.0
	premiumThreshold  = 85.0
)

// Member is one ensemble participant with its voting weight
type Member struct {
	Scorer Scorer
	Weight float64
}

// Engine combines weighted scorer outputs into ranked prediction sets
// and tracks how past predictions fared against actual draws
type Engine struct {
	store         store.Store
	members       []Member
	historyWindow int
}

// NewEngine builds the default three-member ensemble. The sequence and
// feature members each carry 40% of the vote, the markov member 20%.
func NewEngine(s store.Store, modelDir string, historyWindow int) *Engine {
	if historyWindow <= 0 {
		historyWindow = 10
	}
	return &Engine{
		store: s,
		members: []Member{
			{Scorer: NewSequenceScorer(modelDir, historyWindow), Weight: 0.4},
			{Scorer: NewFeatureScorer(modelDir), Weight: 0.4},
			{Scorer: NewMarkovScorer(modelDir), Weight: 0.2},
		},
		historyWindow: historyWindow,
	}
}

// NewEngineWithMembers builds an engine over an explicit member list
func NewEngineWithMembers(s store.Store, historyWindow int, members []Member) *Engine {
	return &Engine{store: s, members: members, historyWindow: historyWindow}
}

// Generate produces three prediction sets for the target period and
// upserts them. A prediction that was already verified is frozen and
// returns domain.ErrPredictionVerified.
func (e *Engine) Generate(ctx context.Context, game domain.GameType, targetPeriod string) (*schema.Prediction, error) {
	window, err := e.recentWindow(ctx, game)
	if err != nil {
		return nil, err
	}

	maxNumber := game.MaxNumber()
	combined := make([]float64, maxNumber)
	for _, member := range e.members {
		scores, err := member.Scorer.Score(game, window)
		if err != nil {
			return nil, err
		}
		for n := 0; n < maxNumber; n++ {
			combined[n] += member.Weight * scores[n]
		}
	}

	ranked := rankIndices(combined)

	sets := []schema.PredictionSet{
		buildSet(combined, ranked[:6], 1.0),
		buildSet(combined, append(append([]int{}, ranked[:5]...), ranked[6]), 0.98),
		buildSet(combined, append(append([]int{}, ranked[:4]...), ranked[6], ranked[7]), 0.96),
	}

	best := sets[0]
	prediction := &schema.Prediction{
		TargetPeriod: targetPeriod,
		Game:         game,
		Numbers:      best.Numbers,
		Confidence:   best.Confidence,
		Sets:         sets,
		PremiumOnly:  best.Confidence > premiumThreshold,
	}

	if err := e.store.SavePrediction(ctx, prediction); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "prediction sets generated",
		zap.String("game", string(game)),
		zap.String("targetPeriod", prediction.TargetPeriod),
		zap.Float64("confidence", prediction.Confidence))
	return prediction, nil
}

// Verify intersects the primary prediction set with the actual primary
// numbers and records the match count exactly once. It returns
// domain.ErrPredictionNotFound when no prediction targeted the period;
// a prediction that was already verified keeps its original count.
func (e *Engine) Verify(ctx context.Context, game domain.GameType, period string, actual []int) (int, error) {
	prediction, err := e.store.GetPrediction(ctx, period, game)
	if err != nil {
		return 0, err
	}
	if prediction == nil {
		return 0, domain.ErrPredictionNotFound
	}
	if prediction.Verified {
		if prediction.Matches != nil {
			return *prediction.Matches, nil
		}
		return 0, nil
	}

	if len(actual) > domain.PrimaryNumbers {
		actual = actual[:domain.PrimaryNumbers]
	}
	matched := countMatches(prediction.Numbers, actual)

	updated, err := e.store.MarkPredictionVerified(ctx, prediction.ID, matched)
	if err != nil {
		return 0, err
	}
	if !updated {
		// Lost the race to another verifier; its count stands
		current, err := e.store.GetPrediction(ctx, period, game)
		if err != nil {
			return 0, err
		}
		if current != nil && current.Matches != nil {
			return *current.Matches, nil
		}
		return 0, nil
	}

	logger.InfoCtx(ctx, "prediction verified",
		zap.String("game", string(game)),
		zap.String("period", period),
		zap.Int("matches", matched))
	return matched, nil
}

// AccuracyEntry is one verified prediction with the draw it targeted
type AccuracyEntry struct {
	Period     string                 `json:"period"`
	Predicted  []int                  `json:"predicted"`
	Sets       []schema.PredictionSet `json:"predictionSets"`
	Matches    int                    `json:"matches"`
	Confidence float64                `json:"confidence"`
	Actual     []int                  `json:"actual"`
}

// AccuracyReport aggregates verification outcomes for a game
type AccuracyReport struct {
	TotalPredictions int64           `json:"totalPredictions"`
	VerifiedCount    int64           `json:"verifiedCount"`
	AvgMatches       float64         `json:"avgMatches"`
	History          []AccuracyEntry `json:"history"`
}

// Accuracy reports totals and the fifty most recent verified predictions
func (e *Engine) Accuracy(ctx context.Context, game domain.GameType) (*AccuracyReport, error) {
	total, verified, err := e.store.CountPredictions(ctx, game)
	if err != nil {
		return nil, err
	}

	report := &AccuracyReport{
		TotalPredictions: total,
		VerifiedCount:    verified,
		History:          []AccuracyEntry{},
	}
	if verified == 0 {
		return report, nil
	}

	recent, err := e.store.ListVerifiedPredictions(ctx, game, 50)
	if err != nil {
		return nil, err
	}

	var matchSum int
	for i := range recent {
		p := &recent[i]
		entry := AccuracyEntry{
			Period:     p.TargetPeriod,
			Predicted:  p.Numbers,
			Sets:       p.Sets,
			Confidence: p.Confidence,
		}
		if p.Matches != nil {
			entry.Matches = *p.Matches
		}
		matchSum += entry.Matches

		draw, err := e.store.GetDraw(ctx, p.TargetPeriod, game)
		if err != nil {
			return nil, err
		}
		if draw != nil {
			entry.Actual = draw.Numbers
		}
		report.History = append(report.History, entry)
	}

	if len(recent) > 0 {
		report.AvgMatches = round2(float64(matchSum) / float64(len(recent)))
	}
	return report, nil
}

func (e *Engine) recentWindow(ctx context.Context, game domain.GameType) ([]schema.DrawResult, error) {
	draws, err := e.store.ListDraws(ctx, game, store.DrawOrderNewestFirst, e.historyWindow, 0)
	if err != nil {
		return nil, err
	}
	// Scorers expect chronological order
	for i, j := 0, len(draws)-1; i < j; i, j = i+1, j-1 {
		draws[i], draws[j] = draws[j], draws[i]
	}
	return draws, nil
}

// rankIndices returns zero-based number indices ordered by score
// descending, ties broken by the lower number
func rankIndices(scores []float64) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		if scores[indices[a]] != scores[indices[b]] {
			return scores[indices[a]] > scores[indices[b]]
		}
		return indices[a] < indices[b]
	})
	return indices
}

// buildSet converts ranked indices to sorted numbers with a confidence
// derived from their mean score, scaled and clamped for display
func buildSet(scores []float64, indices []int, scale float64) schema.PredictionSet {
	numbers := make([]int, 0, len(indices))
	var sum float64
	for _, idx := range indices {
		numbers = append(numbers, idx+1)
		sum += scores[idx]
	}
	sort.Ints(numbers)

	mean := sum / float64(len(indices))
	confidence := mean * 100 * 1.5
	if confidence < confidenceFloor {
		confidence = confidenceFloor
	}
	if confidence > confidenceCeiling {
		confidence = confidenceCeiling
	}
	return schema.PredictionSet{
		Numbers:    numbers,
		Confidence: round2(confidence * scale),
	}
}

func countMatches(predicted, actual []int) int {
	drawn := make(map[int]bool, len(actual))
	for _, num := range actual {
		drawn[num] = true
	}
	matched := 0
	for _, num := range predicted {
		if drawn[num] {
			matched++
		}
	}
	return matched
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
