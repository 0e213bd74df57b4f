package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.AppPort != "9000" {
		t.Fatalf("expected default port 9000, got %s", cfg.AppPort)
	}
	if cfg.CronSpec != "*/30 * * * *" {
		t.Fatalf("unexpected default cron spec: %s", cfg.CronSpec)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("unexpected default fetch timeout: %v", cfg.FetchTimeout)
	}
	if cfg.TitleSimThreshold != 0.7 || cfg.BodySimThreshold != 0.9 {
		t.Fatalf("unexpected default similarity thresholds: %v / %v",
			cfg.TitleSimThreshold, cfg.BodySimThreshold)
	}
	if cfg.SentimentThreshold != 0.05 {
		t.Fatalf("unexpected default sentiment threshold: %v", cfg.SentimentThreshold)
	}
	if cfg.DedupWindowHours != 48 {
		t.Fatalf("unexpected default dedup window: %d", cfg.DedupWindowHours)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("FETCH_RETRY_ATTEMPTS", "5")
	t.Setenv("TITLE_SIM_THRESHOLD", "0.6")

	cfg := Load()
	if cfg.AppPort != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.AppPort)
	}
	if cfg.RetryAttempts != 5 {
		t.Fatalf("expected 5 retry attempts, got %d", cfg.RetryAttempts)
	}
	if cfg.TitleSimThreshold != 0.6 {
		t.Fatalf("expected title threshold 0.6, got %v", cfg.TitleSimThreshold)
	}
}

func TestLoadInvalidEnvFallsBack(t *testing.T) {
	// 非法数字回退默认值，不报错
	t.Setenv("FETCH_RETRY_ATTEMPTS", "many")
	t.Setenv("SENTIMENT_THRESHOLD", "high")

	cfg := Load()
	if cfg.RetryAttempts != 3 {
		t.Fatalf("expected fallback retry attempts 3, got %d", cfg.RetryAttempts)
	}
	if cfg.SentimentThreshold != 0.05 {
		t.Fatalf("expected fallback sentiment threshold 0.05, got %v", cfg.SentimentThreshold)
	}
}
