package prediction

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// featureArtifact holds one weight row and bias per playable number.
// Each row spans the feature vector: per-number presence in the latest
// draw, then the draw sum, then the odd count.
type featureArtifact struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// FeatureScorer scores numbers from hand-built features of the latest draw
type FeatureScorer struct {
	modelDir string
	rng      *rand.Rand
}

func NewFeatureScorer(modelDir string) *FeatureScorer {
	return &FeatureScorer{
		modelDir: modelDir,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *FeatureScorer) Name() string { return "feature" }

func (s *FeatureScorer) Score(game domain.GameType, window []schema.DrawResult) ([]float64, error) {
	maxNumber := game.MaxNumber()

	var artifact featureArtifact
	found, err := loadArtifact(artifactPath(s.modelDir, s.Name(), game), &artifact)
	if err != nil {
		logger.Warn("feature model artifact unusable, falling back to random scores", zap.Error(err))
		return uniformScores(s.rng, maxNumber), nil
	}
	if !found || len(window) == 0 || len(artifact.Weights) != maxNumber {
		return uniformScores(s.rng, maxNumber), nil
	}

	last := &window[len(window)-1]
	features := featureVector(last, maxNumber)

	scores := make([]float64, maxNumber)
	for n := 0; n < maxNumber; n++ {
		row := artifact.Weights[n]
		if len(row) != len(features) {
			return uniformScores(s.rng, maxNumber), nil
		}
		var sum float64
		for i, f := range features {
			sum += row[i] * f
		}
		if n < len(artifact.Bias) {
			sum += artifact.Bias[n]
		}
		scores[n] = sigmoid(sum)
	}
	return scores, nil
}

// featureVector is the latest draw's presence vector extended with its
// number sum and odd count
func featureVector(draw *schema.DrawResult, maxNumber int) []float64 {
	vec := presenceVector(draw, maxNumber)

	var sum, odd float64
	for _, num := range draw.PrimaryNumbers() {
		sum += float64(num)
		if num%2 != 0 {
			odd++
		}
	}
	return append(vec, sum, odd)
}
