package prediction

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// sequenceArtifact holds per-step weights for a recency-weighted linear
// model over a window of presence vectors. Weights[0] applies to the
// oldest draw in the window.
type sequenceArtifact struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// SequenceScorer scores numbers from how they appeared across the whole
// recent window, weighting each step of the sequence separately
type SequenceScorer struct {
	modelDir  string
	minWindow int
	rng       *rand.Rand
}

func NewSequenceScorer(modelDir string, minWindow int) *SequenceScorer {
	return &SequenceScorer{
		modelDir:  modelDir,
		minWindow: minWindow,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *SequenceScorer) Name() string { return "sequence" }

func (s *SequenceScorer) Score(game domain.GameType, window []schema.DrawResult) ([]float64, error) {
	maxNumber := game.MaxNumber()

	var artifact sequenceArtifact
	found, err := loadArtifact(artifactPath(s.modelDir, s.Name(), game), &artifact)
	if err != nil {
		logger.Warn("sequence model artifact unusable, falling back to random scores", zap.Error(err))
		return uniformScores(s.rng, maxNumber), nil
	}
	if !found || len(window) < s.minWindow || len(artifact.Weights) == 0 {
		return uniformScores(s.rng, maxNumber), nil
	}

	// Align the weight vector with the tail of the window, newest last
	steps := len(artifact.Weights)
	if len(window) < steps {
		steps = len(window)
	}
	tail := window[len(window)-steps:]
	weights := artifact.Weights[len(artifact.Weights)-steps:]

	scores := make([]float64, maxNumber)
	for i := range tail {
		vec := presenceVector(&tail[i], maxNumber)
		for n := 0; n < maxNumber; n++ {
			scores[n] += weights[i] * vec[n]
		}
	}
	for n := 0; n < maxNumber; n++ {
		scores[n] = sigmoid(scores[n] + artifact.Bias)
	}
	return scores, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
