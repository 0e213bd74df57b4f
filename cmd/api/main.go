package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LJTian/DailyDigest/internal/api"
	"github.com/LJTian/DailyDigest/internal/collector"
	"github.com/LJTian/DailyDigest/internal/config"
	"github.com/LJTian/DailyDigest/internal/dedup"
	"github.com/LJTian/DailyDigest/internal/enricher"
	"github.com/LJTian/DailyDigest/internal/extractor"
	"github.com/LJTian/DailyDigest/internal/scheduler"
	"github.com/LJTian/DailyDigest/internal/storage"
	"github.com/LJTian/DailyDigest/internal/trends"
)

func main() {
	cfg := config.Load()

	sources, err := config.LoadSources(cfg.SourcesFile)
	if err != nil {
		log.Fatalf("load sources failed: %v", err)
	}

	store, err := storage.NewStore(cfg.PostgresDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatalf("init store failed: %v", err)
	}

	// 确保每个配置的源在库里有统计行
	for i := range sources {
		src := &sources[i]
		if _, err := store.EnsureSource(src.Name, src.BaseURL, src.IsActive()); err != nil {
			log.Fatalf("ensure source %s failed: %v", src.Name, err)
		}
	}

	runner := scheduler.NewCycleRunner(
		collector.NewFetcher(cfg.FetchTimeout, cfg.RetryAttempts),
		extractor.New(cfg.MinContentLength),
		dedup.New(store, cfg.TitleSimThreshold, cfg.BodySimThreshold,
			time.Duration(cfg.DedupWindowHours)*time.Hour),
		enricher.New(cfg.SentimentThreshold, cfg.SummarySentences, cfg.MaxKeywords),
		store,
		cfg.FetchTimeout,
	)

	sched := scheduler.New(runner, store, config.ActiveSources(sources), cfg.CronSpec, cfg.RetentionDays)
	if err := sched.Start(context.Background()); err != nil {
		log.Fatalf("start scheduler failed: %v", err)
	}

	agg := trends.New(store, store.Redis, cfg.TrendWindowHours, cfg.TrendMinArticles, cfg.TrendMaxTopics)

	// API
	r := gin.Default()
	// 若配置了全局访问密码，则启用 Basic Auth 保护（/health 仍然免认证）
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		r.Use(basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass))
	}

	apiServer := api.NewServer(store, sched, agg)
	apiServer.RegisterRoutes(r)

	addr := ":" + cfg.AppPort
	log.Printf("starting api server at %s ...", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exit: %v", err)
	}
}

// basicAuthMiddleware 为整个站点增加一个简单的 Basic Auth 访问密码。
// 仅当配置了 APP_BASIC_USER / APP_BASIC_PASS 时启用。
// /health 不做认证，便于健康检查。
func basicAuthMiddleware(user, pass string) gin.HandlerFunc {
	const realm = "Restricted"
	uBytes := []byte(user)
	pBytes := []byte(pass)

	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}
		u, p, ok := c.Request.BasicAuth()
		if !ok ||
			subtle.ConstantTimeCompare([]byte(u), uBytes) != 1 ||
			subtle.ConstantTimeCompare([]byte(p), pBytes) != 1 {
			c.Header("WWW-Authenticate", `Basic realm="`+realm+`"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
