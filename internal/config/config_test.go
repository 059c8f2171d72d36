package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toannghia/vietlott-ai-analyzer/internal/config"
	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
)

func TestLoadAPIConfigDefaults(t *testing.T) {
	cfg, err := config.LoadAPIConfig("", "")
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 120, cfg.Server.IdleTimeout)
	assert.Empty(t, cfg.Server.CORSOrigins)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "45 18 * * *", cfg.Scheduler.CronSpec)
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Scheduler.TimeZone)
	assert.Equal(t, []string{"mega645", "power655"}, cfg.Scheduler.Games)

	assert.Contains(t, cfg.Source.ResultURLs[string(domain.GameMega645)], "mega-6-45")
	assert.Contains(t, cfg.Source.ResultURLs[string(domain.GamePower655)], "655")
	assert.Contains(t, cfg.Source.DetailURLs[string(domain.GameMega645)], "winning-number-645")
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.NotEmpty(t, cfg.Source.UserAgent)

	assert.Equal(t, 5000, cfg.Stats.WindowSize)
	assert.Equal(t, 1500, cfg.Stats.CooccurrenceWindow)
	assert.Equal(t, "models/", cfg.Prediction.ModelDir)
	assert.Equal(t, 10, cfg.Prediction.HistoryWindow)

	// Alerting is opt-in
	assert.Empty(t, cfg.Telegram.BotToken)
	assert.Zero(t, cfg.Telegram.ChatID)
}

func TestLoadAPIConfigFromEnv(t *testing.T) {
	t.Setenv("VIETLOTT_DEBUG", "true")
	t.Setenv("VIETLOTT_SERVER_PORT", "9090")
	t.Setenv("VIETLOTT_DATABASE_HOST", "db.internal")
	t.Setenv("VIETLOTT_DATABASE_PASSWORD", "secret")
	t.Setenv("VIETLOTT_SCHEDULER_CRON_SPEC", "0 19 * * *")
	t.Setenv("VIETLOTT_TELEGRAM_CHAT_ID", "-100123456")

	cfg, err := config.LoadAPIConfig("", "")
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "0 19 * * *", cfg.Scheduler.CronSpec)
	assert.Equal(t, int64(-100123456), cfg.Telegram.ChatID)
}

func TestLoadBackfillConfigDefaults(t *testing.T) {
	cfg, err := config.LoadBackfillConfig("", "")
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Worker.PoolSize)
	assert.Equal(t, 256, cfg.Worker.QueueSize)
	assert.Equal(t, 5000, cfg.Stats.WindowSize)
	assert.Contains(t, cfg.Source.DetailURLs[string(domain.GamePower655)], "winning-number-655")
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "localhost",
		Port:     5433,
		User:     "vietlott",
		Password: "pw",
		DBName:   "draws",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5433 user=vietlott password=pw dbname=draws sslmode=disable",
		cfg.DSN())
}

func TestTierTable(t *testing.T) {
	defaults := config.TierLabelsConfig{}.TierTable()
	assert.Equal(t, "Jackpot 2", defaults[domain.TierJackpot2])
	assert.Equal(t, "Nhất", defaults[domain.TierFirst])

	overridden := config.TierLabelsConfig{
		"jackpot": "Giải đặc biệt",
		"first":   "",
	}.TierTable()
	assert.Equal(t, "Giải đặc biệt", overridden[domain.TierJackpot])
	// Empty overrides keep the default label
	assert.Equal(t, "Nhất", overridden[domain.TierFirst])
}
