package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/toannghia/vietlott-ai-analyzer/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// SourceConfig holds upstream result-page configuration
type SourceConfig struct {
	// ResultURLs maps game type to the latest-results listing page
	ResultURLs map[string]string `mapstructure:"result_urls"`
	// DetailURLs maps game type to the per-period detail page template;
	// the zero-padded period is appended as the id query parameter
	DetailURLs map[string]string `mapstructure:"detail_urls"`
	// UserAgent is sent on every fetch; upstream blocks default Go clients
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// SchedulerConfig holds the daily crawl trigger configuration
type SchedulerConfig struct {
	// CronSpec is a robfig/cron spec in the configured time zone.
	// Vietlott draws close around 18:30 local time; the default leaves
	// a safety margin.
	CronSpec string `mapstructure:"cron_spec"`
	TimeZone string `mapstructure:"time_zone"`
	// Games lists the products crawled on schedule
	Games []string `mapstructure:"games"`
}

// TelegramConfig holds alerting credentials. Both fields empty means
// alerting is a silent no-op.
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// StatsConfig holds statistics window sizes
type StatsConfig struct {
	// WindowSize caps how many recent draws feed frequency/gap recomputation
	WindowSize int `mapstructure:"window_size"`
	// CooccurrenceWindow caps the draws scanned for pair/triplet counting
	CooccurrenceWindow int `mapstructure:"cooccurrence_window"`
}

// PredictionConfig holds prediction engine configuration
type PredictionConfig struct {
	// ModelDir is where scorer artifacts live; a missing artifact
	// switches the scorer to its random fallback
	ModelDir string `mapstructure:"model_dir"`
	// HistoryWindow is how many recent draws the scorers see
	HistoryWindow int `mapstructure:"history_window"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// APIKeys gate the manual crawl trigger and unmask premium predictions
	APIKeys []string `mapstructure:"api_keys"`
	// CORSOrigins restricts cross-origin callers. Empty means any origin.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// TierLabelsConfig maps prize tier identity to the upstream label
// fragment matched against prize rows. Upstream text is not a stable
// contract, so it is configuration rather than code.
type TierLabelsConfig map[string]string

// APIConfig holds configuration for the api binary
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Source     SourceConfig     `mapstructure:"source"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	Stats      StatsConfig      `mapstructure:"stats"`
	Prediction PredictionConfig `mapstructure:"prediction"`
	TierLabels TierLabelsConfig `mapstructure:"tier_labels"`
}

// BackfillConfig holds configuration for the backfill binary
type BackfillConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Source     SourceConfig     `mapstructure:"source"`
	Stats      StatsConfig      `mapstructure:"stats"`
	TierLabels TierLabelsConfig `mapstructure:"tier_labels"`
	Worker     WorkerConfig     `mapstructure:"worker"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// LoadAPIConfig loads configuration for the api binary
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("scheduler.cron_spec", "45 18 * * *")
	v.SetDefault("scheduler.time_zone", "Asia/Ho_Chi_Minh")
	v.SetDefault("scheduler.games", []string{string(domain.GameMega645), string(domain.GamePower655)})
	v.SetDefault("prediction.model_dir", "models/")
	v.SetDefault("prediction.history_window", 10)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadBackfillConfig loads configuration for the backfill binary
func LoadBackfillConfig(configFile string, envPath string) (*BackfillConfig, error) {
	v := configureViper("backfill", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("worker.pool_size", 8)
	v.SetDefault("worker.queue_size", 256)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg BackfillConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("source.result_urls", map[string]string{
		string(domain.GameMega645):  "https://vietlott.vn/vi/trung-thuong/ket-qua-trung-thuong/mega-6-45",
		string(domain.GamePower655): "https://vietlott.vn/vi/trung-thuong/ket-qua-trung-thuong/655",
	})
	v.SetDefault("source.detail_urls", map[string]string{
		string(domain.GameMega645):  "https://vietlott.vn/vi/trung-thuong/ket-qua-trung-thuong/winning-number-645",
		string(domain.GamePower655): "https://vietlott.vn/vi/trung-thuong/ket-qua-trung-thuong/winning-number-655",
	})
	v.SetDefault("source.user_agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("source.timeout", "30s")
	v.SetDefault("stats.window_size", 5000)
	v.SetDefault("stats.cooccurrence_window", 1500)
}

func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// TierTable converts configured labels into the domain lookup table,
// falling back to the upstream defaults for any missing tier
func (t TierLabelsConfig) TierTable() map[domain.PrizeTier]string {
	table := domain.DefaultTierLabels()
	for tier, label := range t {
		if label != "" {
			table[domain.PrizeTier(tier)] = label
		}
	}
	return table
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("VIETLOTT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to config struct fields when no
// config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Source
		"source.user_agent",
		"source.timeout",
		// Scheduler
		"scheduler.cron_spec",
		"scheduler.time_zone",
		"scheduler.games",
		// Telegram
		"telegram.bot_token",
		"telegram.chat_id",
		// Stats
		"stats.window_size",
		"stats.cooccurrence_window",
		// Prediction
		"prediction.model_dir",
		"prediction.history_window",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.api_keys",
		"server.cors_origins",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
