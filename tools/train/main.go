// Command train derives scorer model artifacts from the stored draw
// history and writes them to the model directory. Without artifacts the
// prediction engine falls back to random scores, so this is run after
// any substantial backfill.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/toannghia/vietlott-ai-analyzer/internal/config"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

func main() {
	configFile := flag.String("config", "", "Path to configuration file")
	envPath := flag.String("env", "", "Path to the directory containing env files")
	gameFlag := flag.String("game", string(domain.GameMega645), "Game to train artifacts for (mega645, power655)")
	flag.Parse()

	config.ChdirRepoRoot()

	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags:      map[string]string{"service": "train"},
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Flush(2 * time.Second)

	ctx := context.Background()

	game := domain.GameType(*gameFlag)
	if !game.Valid() {
		logger.FatalCtx(ctx, "unknown game type", zap.String("game", *gameFlag))
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "failed to connect to database", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	draws, err := dataStore.ListDraws(ctx, game, store.DrawOrderOldestFirst, cfg.Stats.WindowSize, 0)
	if err != nil {
		logger.FatalCtx(ctx, "failed to load draw history", zap.Error(err))
	}
	if len(draws) < 2 {
		logger.FatalCtx(ctx, "not enough draw history to train",
			zap.String("game", string(game)),
			zap.Int("draws", len(draws)))
	}

	modelDir := cfg.Prediction.ModelDir
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		logger.FatalCtx(ctx, "failed to create model directory", zap.Error(err))
	}

	if err := writeArtifact(modelDir, "sequence", game, trainSequence(cfg.Prediction.HistoryWindow)); err != nil {
		logger.FatalCtx(ctx, "failed to write sequence artifact", zap.Error(err))
	}
	if err := writeArtifact(modelDir, "feature", game, trainFeature(game, draws)); err != nil {
		logger.FatalCtx(ctx, "failed to write feature artifact", zap.Error(err))
	}
	if err := writeArtifact(modelDir, "markov", game, trainMarkov(game, draws)); err != nil {
		logger.FatalCtx(ctx, "failed to write markov artifact", zap.Error(err))
	}

	logger.InfoCtx(ctx, "model artifacts written",
		zap.String("game", string(game)),
		zap.String("modelDir", modelDir),
		zap.Int("draws", len(draws)))
}

// trainSequence produces linearly increasing recency weights, so the
// newest draw in the window carries the most influence
func trainSequence(window int) map[string]interface{} {
	if window <= 0 {
		window = 10
	}
	weights := make([]float64, window)
	var sum float64
	for i := range weights {
		weights[i] = float64(i + 1)
		sum += weights[i]
	}
	for i := range weights {
		weights[i] /= sum
	}
	return map[string]interface{}{
		"weights": weights,
		"bias":    -0.5,
	}
}

// trainFeature encodes each number's empirical draw probability as its
// bias, turning the feature scorer into a frequency prior
func trainFeature(game domain.GameType, draws []schema.DrawResult) map[string]interface{} {
	maxNumber := game.MaxNumber()

	counts := make([]int, maxNumber)
	for i := range draws {
		for _, num := range draws[i].PrimaryNumbers() {
			if num >= 1 && num <= maxNumber {
				counts[num-1]++
			}
		}
	}

	weights := make([][]float64, maxNumber)
	bias := make([]float64, maxNumber)
	total := float64(len(draws))
	for n := 0; n < maxNumber; n++ {
		weights[n] = make([]float64, maxNumber+2)
		p := float64(counts[n]) / total
		// Clamp away from 0 and 1 so the logit stays finite
		if p < 0.01 {
			p = 0.01
		}
		if p > 0.99 {
			p = 0.99
		}
		bias[n] = math.Log(p / (1 - p))
	}
	return map[string]interface{}{
		"weights": weights,
		"bias":    bias,
	}
}

// trainMarkov counts number transitions between consecutive draws and
// normalizes each row into a probability distribution
func trainMarkov(game domain.GameType, draws []schema.DrawResult) map[string]interface{} {
	maxNumber := game.MaxNumber()

	transitions := make([][]float64, maxNumber)
	for i := range transitions {
		transitions[i] = make([]float64, maxNumber)
	}

	for i := 0; i+1 < len(draws); i++ {
		for _, from := range draws[i].PrimaryNumbers() {
			if from < 1 || from > maxNumber {
				continue
			}
			for _, to := range draws[i+1].PrimaryNumbers() {
				if to >= 1 && to <= maxNumber {
					transitions[from-1][to-1]++
				}
			}
		}
	}

	for _, row := range transitions {
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum == 0 {
			continue
		}
		for i := range row {
			row[i] /= sum
		}
	}
	return map[string]interface{}{
		"transitions": transitions,
	}
}

func writeArtifact(modelDir, scorer string, game domain.GameType, artifact map[string]interface{}) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s artifact: %w", scorer, err)
	}
	path := filepath.Join(modelDir, fmt.Sprintf("lottery_%s_%s.json", scorer, game))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s artifact: %w", scorer, err)
	}
	return nil
}
