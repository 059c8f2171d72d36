package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/toannghia/vietlott-ai-analyzer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Statistics endpoints (public read access)
		v1.GET("/stats/summary", handler.GetStatsSummary)
		v1.GET("/stats/frequency", handler.GetStatsFrequency)
		v1.GET("/stats/gaps", handler.GetStatsGaps)
		v1.GET("/stats/cooccurrence", handler.GetStatsCooccurrence)

		// Prediction endpoints (public; premium content masked in-handler)
		v1.GET("/predictions/latest", handler.GetLatestPrediction)
		v1.GET("/predictions/accuracy", handler.GetPredictionAccuracy)

		// Manual ingestion trigger (requires API key authentication)
		v1.POST("/crawler/run", middleware.APIKeyAuth(authCfg), handler.RunCrawler)

		// Draw history (public read access)
		v1.GET("/crawler/history", handler.GetCrawlerHistory)
	}
}
