package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	CronSpec    string
	SourcesFile string

	// 抓取相关
	FetchTimeout     time.Duration
	RetryAttempts    int
	MinContentLength int

	// 去重阈值：标题 / 正文相似度两个独立阈值，满足其一即判定重复
	TitleSimThreshold float64
	BodySimThreshold  float64
	DedupWindowHours  int

	// 情感与摘要
	SentimentThreshold float64
	SummarySentences   int
	MaxKeywords        int

	// 趋势统计窗口
	TrendWindowHours int
	TrendMinArticles int
	TrendMaxTopics   int

	RetentionDays int

	BasicAuthUser string
	BasicAuthPass string
}

func Load() *Config {
	// .env 存在则加载，不存在静默跳过
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=dailydigest password=dailydigest dbname=dailydigest port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		CronSpec:    getEnv("CRON_SPEC", "*/30 * * * *"),
		SourcesFile: getEnv("SOURCES_FILE", "sources.yaml"),

		FetchTimeout:     time.Duration(getEnvInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		RetryAttempts:    getEnvInt("FETCH_RETRY_ATTEMPTS", 3),
		MinContentLength: getEnvInt("MIN_CONTENT_LENGTH", 100),

		TitleSimThreshold: getEnvFloat("TITLE_SIM_THRESHOLD", 0.7),
		BodySimThreshold:  getEnvFloat("BODY_SIM_THRESHOLD", 0.9),
		DedupWindowHours:  getEnvInt("DEDUP_WINDOW_HOURS", 48),

		SentimentThreshold: getEnvFloat("SENTIMENT_THRESHOLD", 0.05),
		SummarySentences:   getEnvInt("SUMMARY_SENTENCES", 3),
		MaxKeywords:        getEnvInt("MAX_KEYWORDS", 10),

		TrendWindowHours: getEnvInt("TREND_WINDOW_HOURS", 24),
		TrendMinArticles: getEnvInt("TREND_MIN_ARTICLES", 3),
		TrendMaxTopics:   getEnvInt("TREND_MAX_TOPICS", 10),

		RetentionDays: getEnvInt("RETENTION_DAYS", 30),

		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	log.Printf("config loaded: port=%s cron=%s sources=%s", cfg.AppPort, cfg.CronSpec, cfg.SourcesFile)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("warn: env %s=%q is not an int, using default %d", key, v, def)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("warn: env %s=%q is not a float, using default %v", key, v, def)
	}
	return def
}
