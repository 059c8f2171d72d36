package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/toannghia/vietlott-ai-analyzer/internal/adapter"
	"github.com/toannghia/vietlott-ai-analyzer/internal/alert"
	"github.com/toannghia/vietlott-ai-analyzer/internal/api/middleware"
	"github.com/toannghia/vietlott-ai-analyzer/internal/api/rest"
	"github.com/toannghia/vietlott-ai-analyzer/internal/crawler"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
	"github.com/toannghia/vietlott-ai-analyzer/internal/logger"
	"github.com/toannghia/vietlott-ai-analyzer/internal/prediction"
	"github.com/toannghia/vietlott-ai-analyzer/internal/stats"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store"
	"github.com/toannghia/vietlott-ai-analyzer/internal/store/schema"
)

const testAPIKey = "test-api-key"

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type apiFixture struct {
	router *gin.Engine
	store  store.Store
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	dataStore := store.NewPGStore(db)

	statsEngine := stats.NewEngine(dataStore, 0, 0)
	predictionEngine := prediction.NewEngineWithMembers(dataStore, 10, nil)

	// A coordinator with no source URLs fails fast; the dispatch endpoint
	// only needs something runnable behind it
	alerter, err := alert.NewTelegramAlerter("", 0)
	require.NoError(t, err)
	coordinator := crawler.NewCoordinator(
		crawler.NewFetcher(nil, map[string]string{}),
		crawler.NewParser(nil),
		dataStore, statsEngine, predictionEngine, alerter, adapter.NewClock())

	authCfg := middleware.AuthConfig{APIKeys: []string{testAPIKey}}
	handler := rest.NewHandler(dataStore, statsEngine, predictionEngine, coordinator, authCfg)

	router := gin.New()
	rest.SetupRoutes(router, handler, authCfg)

	return &apiFixture{router: router, store: dataStore}
}

func (f *apiFixture) request(t *testing.T, method, path string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func seedDraw(t *testing.T, s store.Store, period string, numbers []int) {
	t.Helper()
	require.NoError(t, s.CreateDraw(context.Background(), &schema.DrawResult{
		DrawPeriod: period,
		Game:       domain.GameMega645,
		DrawDate:   time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		Numbers:    numbers,
		JackpotValue: 30000000000,
	}))
}

func TestHealthCheck(t *testing.T) {
	f := newAPIFixture(t)
	rec, body := f.request(t, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownGameType(t *testing.T) {
	f := newAPIFixture(t)
	rec, body := f.request(t, http.MethodGet, "/api/v1/stats/summary?type=keno", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bad_request", errBody["code"])
}

func TestGetStatsSummary(t *testing.T) {
	f := newAPIFixture(t)
	seedDraw(t, f.store, "00001", []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, stats.NewEngine(f.store, 0, 0).Refresh(context.Background(), domain.GameMega645))

	rec, body := f.request(t, http.MethodGet, "/api/v1/stats/summary", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	hot, ok := body["hot"].([]interface{})
	require.True(t, ok)
	assert.Len(t, hot, 6)
	assert.Contains(t, body, "cold")
}

func TestGetStatsFrequencyEnvelope(t *testing.T) {
	f := newAPIFixture(t)
	seedDraw(t, f.store, "00001", []int{1, 2, 3, 4, 5, 6})
	require.NoError(t, stats.NewEngine(f.store, 0, 0).Refresh(context.Background(), domain.GameMega645))

	rec, body := f.request(t, http.MethodGet, "/api/v1/stats/frequency", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, data, 45)

	first, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hot", first["classification"])
}

func TestGetLatestPredictionNotFound(t *testing.T) {
	f := newAPIFixture(t)
	rec, body := f.request(t, http.MethodGet, "/api/v1/predictions/latest", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "not_found", errBody["code"])
}

func TestGetLatestPredictionPremiumMasking(t *testing.T) {
	f := newAPIFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.SavePrediction(ctx, &schema.Prediction{
		TargetPeriod: "00100",
		Game:         domain.GameMega645,
		Numbers:      []int{5, 12, 23, 28, 33, 41},
		Confidence:   92.5,
		Sets: []schema.PredictionSet{
			{Numbers: []int{5, 12, 23, 28, 33, 41}, Confidence: 92.5},
		},
		PremiumOnly: true,
	}))

	// Without a key the tail of the sequence is hidden
	rec, body := f.request(t, http.MethodGet, "/api/v1/predictions/latest", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	numbers, ok := body["predictedNumbers"].([]interface{})
	require.True(t, ok)
	require.Len(t, numbers, 6)
	assert.Equal(t, float64(5), numbers[0])
	assert.Equal(t, "?", numbers[3])
	assert.Equal(t, "?", numbers[5])
	assert.Equal(t, "Premium Only", body["confidence"])
	assert.Empty(t, body["predictionSets"])

	// With a key the full prediction comes back
	rec, body = f.request(t, http.MethodGet, "/api/v1/predictions/latest",
		map[string]string{"X-API-Key": testAPIKey})
	require.Equal(t, http.StatusOK, rec.Code)

	numbers, ok = body["predictedNumbers"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(41), numbers[5])
	assert.Equal(t, 92.5, body["confidence"])
	assert.Len(t, body["predictionSets"], 1)
}

func TestGetLatestPredictionFreeTier(t *testing.T) {
	f := newAPIFixture(t)
	require.NoError(t, f.store.SavePrediction(context.Background(), &schema.Prediction{
		TargetPeriod: "00100",
		Game:         domain.GameMega645,
		Numbers:      []int{1, 2, 3, 4, 5, 6},
		Confidence:   72.0,
	}))

	rec, body := f.request(t, http.MethodGet, "/api/v1/predictions/latest", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 72.0, body["confidence"])
	assert.Equal(t, false, body["verified"])
}

func TestGetPredictionAccuracy(t *testing.T) {
	f := newAPIFixture(t)
	rec, body := f.request(t, http.MethodGet, "/api/v1/predictions/accuracy", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["totalPredictions"])
	history, ok := body["history"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, history)
}

func TestRunCrawlerRequiresAPIKey(t *testing.T) {
	f := newAPIFixture(t)

	rec, _ := f.request(t, http.MethodPost, "/api/v1/crawler/run", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.request(t, http.MethodPost, "/api/v1/crawler/run",
		map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := f.request(t, http.MethodPost, "/api/v1/crawler/run",
		map[string]string{"Authorization": "ApiKey " + testAPIKey})
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, body["message"], "mega645")
}

func TestGetCrawlerHistory(t *testing.T) {
	f := newAPIFixture(t)
	seedDraw(t, f.store, "00001", []int{1, 2, 3, 4, 5, 6})
	seedDraw(t, f.store, "00002", []int{7, 8, 9, 10, 11, 12})

	rec, body := f.request(t, http.MethodGet, "/api/v1/crawler/history?page=1&limit=1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["total"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["limit"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)

	latest, ok := body["latestDraw"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "00002", latest["drawPeriod"])
	assert.Equal(t, float64(30000000000), latest["jackpotValue"])
}

func TestGetCrawlerHistoryClampsLimit(t *testing.T) {
	f := newAPIFixture(t)
	rec, body := f.request(t, http.MethodGet, "/api/v1/crawler/history?limit=9999", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(rest.MAX_PAGE_SIZE), body["limit"])
}
