package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/LJTian/DailyDigest/internal/collector"
	"github.com/LJTian/DailyDigest/internal/config"
	"github.com/LJTian/DailyDigest/internal/dedup"
	"github.com/LJTian/DailyDigest/internal/enricher"
	"github.com/LJTian/DailyDigest/internal/extractor"
	"github.com/LJTian/DailyDigest/internal/scheduler"
	"github.com/LJTian/DailyDigest/internal/storage"
)

// 一个仅执行一轮采集的命令行入口：适合手动触发或定时任务外的补采
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

	// 确保每个配置的源在库里有统计行（与 cmd/api 保持一致）
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

	// 全部源并发各跑一轮，跑完即退出
	ctx := context.Background()
	active := config.ActiveSources(sources)

	var wg sync.WaitGroup
	for i := range active {
		src := &active[i]
		wg.Add(1)
		go func(src *config.SourceConfig) {
			defer wg.Done()
			runner.RunSource(ctx, src)
		}(src)
	}
	wg.Wait()

	log.Println("collect done")
}
