package prediction

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// markovArtifact is a square transition matrix. Row i holds the
// probability of each number appearing in the draw after one that
// contained number i+1.
type markovArtifact struct {
	Transitions [][]float64 `json:"transitions"`
}

// MarkovScorer averages transition rows over the latest draw's numbers
type MarkovScorer struct {
	modelDir string
	rng      *rand.Rand
}

func NewMarkovScorer(modelDir string) *MarkovScorer {
	return &MarkovScorer{
		modelDir: modelDir,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *MarkovScorer) Name() string { return "markov" }

func (s *MarkovScorer) Score(game domain.GameType, window []schema.DrawResult) ([]float64, error) {
	maxNumber := game.MaxNumber()

	var artifact markovArtifact
	found, err := loadArtifact(artifactPath(s.modelDir, s.Name(), game), &artifact)
	if err != nil {
		logger.Warn("markov model artifact unusable, falling back to random scores", zap.Error(err))
		return uniformScores(s.rng, maxNumber), nil
	}
	if !found || len(window) == 0 || len(artifact.Transitions) != maxNumber {
		return uniformScores(s.rng, maxNumber), nil
	}

	last := window[len(window)-1].PrimaryNumbers()
	scores := make([]float64, maxNumber)
	counted := 0
	for _, num := range last {
		if num < 1 || num > maxNumber {
			continue
		}
		row := artifact.Transitions[num-1]
		if len(row) != maxNumber {
			return uniformScores(s.rng, maxNumber), nil
		}
		for n := 0; n < maxNumber; n++ {
			scores[n] += row[n]
		}
		counted++
	}
	if counted == 0 {
		return uniformScores(s.rng, maxNumber), nil
	}
	for n := 0; n < maxNumber; n++ {
		scores[n] /= float64(counted)
	}
	return scores, nil
}
