package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/toannghia/vietlott-ai-analyzer/internal/api/middleware"
	"github.com/toannghia/vietlott-ai-analyzer/internal/crawler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/prediction"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetStatsSummary returns the six most and least frequent numbers
	// GET /api/v1/stats/summary?type=<game>
	GetStatsSummary(c *gin.Context)

	// GetStatsFrequency returns per-number frequencies with hot/cold buckets
	// GET /api/v1/stats/frequency?type=<game>
	GetStatsFrequency(c *gin.Context)

	// GetStatsGaps returns per-number gap profiles, most overdue first
	// GET /api/v1/stats/gaps?type=<game>
	GetStatsGaps(c *gin.Context)

	// GetStatsCooccurrence returns the most frequent pairs and triplets
	// GET /api/v1/stats/cooccurrence?type=<game>
	GetStatsCooccurrence(c *gin.Context)

	// GetLatestPrediction returns the newest prediction; premium
	// predictions are masked unless the request carries an API key
	// GET /api/v1/predictions/latest?type=<game>
	GetLatestPrediction(c *gin.Context)

	// GetPredictionAccuracy returns verification aggregates and history
	// GET /api/v1/predictions/accuracy?type=<game>
	GetPredictionAccuracy(c *gin.Context)

	// RunCrawler dispatches an ingestion cycle in the background
	// POST /api/v1/crawler/run?type=<game>
	RunCrawler(c *gin.Context)

	// GetCrawlerHistory returns stored draws with pagination
	// GET /api/v1/crawler/history?type=<game>&page=<page>&limit=<limit>
	GetCrawlerHistory(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store       store.Store
	stats       *stats.Engine
	predictions *prediction.Engine
	coordinator *crawler.Coordinator
	authCfg     middleware.AuthConfig
}

// NewHandler creates a new REST API handler
func NewHandler(
	s store.Store,
	statsEngine *stats.Engine,
	predictionEngine *prediction.Engine,
	coordinator *crawler.Coordinator,
	authCfg middleware.AuthConfig,
) Handler {
	return &handler{
		store:       s,
		stats:       statsEngine,
		predictions: predictionEngine,
		coordinator: coordinator,
		authCfg:     authCfg,
	}
}

// gameParam resolves the ?type= query parameter, defaulting to mega645
// the way upstream consumers expect. The bool is false when the value
// names no known game; the handler has already responded.
func gameParam(c *gin.Context) (domain.GameType, bool) {
	game := domain.GameType(c.DefaultQuery("type", string(domain.GameMega645)))
	if !game.Valid() {
		respondBadRequest(c, "Unknown game type", string(game))
		return "", false
	}
	return game, true
}

func (h *handler) GetStatsSummary(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	summary, err := h.stats.Summarize(c.Request.Context(), game)
	if err != nil {
		respondInternalError(c, err, "Failed to load summary stats")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handler) GetStatsFrequency(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	entries, err := h.stats.Frequency(c.Request.Context(), game)
	if err != nil {
		respondInternalError(c, err, "Failed to load frequency stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *handler) GetStatsGaps(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	entries, err := h.stats.Gaps(c.Request.Context(), game)
	if err != nil {
		respondInternalError(c, err, "Failed to load gap stats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *handler) GetStatsCooccurrence(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	result, err := h.stats.Cooccurrence(c.Request.Context(), game)
	if err != nil {
		respondInternalError(c, err, "Failed to load co-occurrence stats")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) GetLatestPrediction(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	latest, err := h.store.LatestPrediction(c.Request.Context(), game)
	if err != nil {
		respondInternalError(c, err, "Failed to load latest prediction")
		return
	}
	if latest == nil {
		respondNotFound(c, "No predictions available yet", string(game))
		return
	}

	if latest.PremiumOnly && !middleware.HasValidAPIKey(c, h.authCfg) {
		// Tease the first half of the set; the rest stays behind the key
		masked := make([]interface{}, 0, len(latest.Numbers))
		for i, num := range latest.Numbers {
			if i < 3 {
				masked = append(masked, num)
			} else {
				masked = append(masked, "?")
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"targetPeriod":     latest.TargetPeriod,
			"type":             latest.Game,
			"predictedNumbers": masked,
			"predictionSets":   []interface{}{},
			"confidence":       "Premium Only",
			"message":          "Provide an API key to unlock the full predicted sequence and confidence rating.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"targetPeriod":     latest.TargetPeriod,
		"type":             latest.Game,
		"predictedNumbers": latest.Numbers,
		"predictionSets":   latest.Sets,
		"confidence":       latest.Confidence,
		"verified":         latest.Verified,
		"matches":          latest.Matches,
		"message":          "Predicted sequence unlocked. Good luck!",
	})
}

func (h *handler) GetPredictionAccuracy(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	report, err := h.predictions.Accuracy(c.Request.Context(), game)
	if err != nil {
		respondInternalError(c, err, "Failed to load prediction accuracy")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *handler) RunCrawler(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	// The cycle outlives the request; its outcome lands in the logs and
	// alert channel, same as a scheduled run
	go func() {
		result := h.coordinator.RunCycle(context.Background(), game)
		if !result.Succeeded() {
			logger.Error(result.Err, zap.String("game", string(game)))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Ingestion cycle dispatched for " + string(game),
	})
}

func (h *handler) GetCrawlerHistory(c *gin.Context) {
	game, ok := gameParam(c)
	if !ok {
		return
	}

	var params HistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBadRequest(c, "Invalid pagination parameters", err.Error())
		return
	}
	params.Normalize()

	ctx := c.Request.Context()

	total, err := h.store.CountDraws(ctx, game)
	if err != nil {
		respondInternalError(c, err, "Failed to count draws")
		return
	}

	latest, err := h.store.LatestDraw(ctx, game)
	if err != nil {
		respondInternalError(c, err, "Failed to load latest draw")
		return
	}

	draws, err := h.store.ListDraws(ctx, game, store.DrawOrderNewestFirst, params.Limit, params.Offset())
	if err != nil {
		respondInternalError(c, err, "Failed to list draws")
		return
	}

	data := make([]gin.H, 0, len(draws))
	for i := range draws {
		d := &draws[i]
		data = append(data, gin.H{
			"drawPeriod":         d.DrawPeriod,
			"drawDate":           d.DrawDate,
			"numbers":            d.Numbers,
			"jackpotWon":         d.JackpotWon,
			"jackpotValue":       d.JackpotValue,
			"jackpotWinners":     d.JackpotWinners,
			"jackpot2Value":      d.Jackpot2Value,
			"jackpot2Winners":    d.Jackpot2Winners,
			"firstPrizeValue":    d.FirstPrizeValue,
			"firstPrizeWinners":  d.FirstPrizeWinners,
			"secondPrizeValue":   d.SecondPrizeValue,
			"secondPrizeWinners": d.SecondPrizeWinners,
			"thirdPrizeValue":    d.ThirdPrizeValue,
			"thirdPrizeWinners":  d.ThirdPrizeWinners,
		})
	}

	response := gin.H{
		"total": total,
		"page":  params.Page,
		"limit": params.Limit,
		"data":  data,
	}
	if latest != nil {
		response["latestDraw"] = gin.H{
			"drawPeriod":    latest.DrawPeriod,
			"jackpotValue":  latest.JackpotValue,
			"jackpot2Value": latest.Jackpot2Value,
		}
	}
	c.JSON(http.StatusOK, response)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
