package prediction

//go:generate mockgen -source=scorer.go -destination=../mocks/scorer.go -package=mocks

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

// Scorer assigns a likelihood in [0, 1] to every playable number of a
// game. The window is chronological, oldest draw first. Implementations
// fall back to uniform random scores when their trained artifact is
// missing or the window is too short, so an ensemble can always produce
// a ranking.
type Scorer interface {
	Name() string
	Score(game domain.GameType, window []schema.DrawResult) ([]float64, error)
}

// artifactPath resolves a scorer's trained artifact file for a game
func artifactPath(modelDir, name string, game domain.GameType) string {
	return filepath.Join(modelDir, fmt.Sprintf("lottery_%s_%s.json", name, game))
}

// loadArtifact reads and decodes a JSON artifact into dst. The boolean
// reports whether the artifact file exists at all.
func loadArtifact(path string, dst interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read model artifact %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return true, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}
	return true, nil
}

// uniformScores is the untrained fallback, one value per number in [0.1, 0.9]
func uniformScores(rng *rand.Rand, n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 0.1 + rng.Float64()*0.8
	}
	return scores
}

// presenceVector encodes a draw's primary numbers as a 0/1 vector
func presenceVector(draw *schema.DrawResult, maxNumber int) []float64 {
	vec := make([]float64, maxNumber)
	for _, num := range draw.PrimaryNumbers() {
		if num >= 1 && num <= maxNumber {
			vec[num-1] = 1
		}
	}
	return vec
}
