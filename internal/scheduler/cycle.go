// Package scheduler 负责周期性地驱动整条采集流水线：
// 链接发现 → 抓取 → 提取 → 去重 → 富化 → 入库。
// 单篇文章的失败只记入统计，不中断该源剩余文章，更不影响其他源。
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/LJTian/DailyDigest/internal/collector"
	"github.com/LJTian/DailyDigest/internal/config"
	"github.com/LJTian/DailyDigest/internal/dedup"
	"github.com/LJTian/DailyDigest/internal/enricher"
	"github.com/LJTian/DailyDigest/internal/extractor"
	"github.com/LJTian/DailyDigest/internal/storage"
)

// State 是单个源一轮流水线的当前阶段
type State string

const (
	StateIdle          State = "idle"
	StateFetching      State = "fetching"
	StateExtracting    State = "extracting"
	StateDeduplicating State = "deduplicating"
	StateEnriching     State = "enriching"
	StateStored        State = "stored"
	StateFailed        State = "failed"
)

// SourceReport 汇总一个源单轮的执行结果
type SourceReport struct {
	Source     string `json:"source"`
	State      State  `json:"state"`
	Discovered int    `json:"discovered"`
	Fetched    int    `json:"fetched"`
	Extracted  int    `json:"extracted"`
	Duplicates int    `json:"duplicates"`
	Stored     int    `json:"stored"`
	Errors     int    `json:"errors"`
	Err        string `json:"error,omitempty"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// ArticleStore 是流水线写入侧所需的最小存储能力
type ArticleStore interface {
	SaveArticle(a *storage.Article) (string, error)
	UpdateSourceStats(name string, success bool, ts time.Time) error
}

// CycleRunner 对单个源执行一轮完整流水线
type CycleRunner struct {
	fetcher   *collector.Fetcher
	extractor *extractor.Extractor
	dedup     *dedup.Deduplicator
	enricher  *enricher.Enricher
	store     ArticleStore

	fetchTimeout time.Duration
}

func NewCycleRunner(
	fetcher *collector.Fetcher,
	ex *extractor.Extractor,
	dd *dedup.Deduplicator,
	en *enricher.Enricher,
	store ArticleStore,
	fetchTimeout time.Duration,
) *CycleRunner {
	return &CycleRunner{
		fetcher:      fetcher,
		extractor:    ex,
		dedup:        dd,
		enricher:     en,
		store:        store,
		fetchTimeout: fetchTimeout,
	}
}

// RunSource 跑完一个源的一轮。链接发现失败视为该源整轮失败；
// 之后任何单篇文章的失败都只计数并继续下一篇。
func (r *CycleRunner) RunSource(ctx context.Context, src *config.SourceConfig) *SourceReport {
	report := &SourceReport{
		Source:    src.Name,
		State:     StateFetching,
		StartedAt: time.Now(),
	}

	links, err := collector.DiscoverLinks(src, r.fetchTimeout)
	if err != nil {
		report.State = StateFailed
		report.Err = fmt.Sprintf("discover links: %v", err)
		report.FinishedAt = time.Now()
		log.Printf("cycle %s: %s", src.Name, report.Err)
		return report
	}
	report.Discovered = len(links)

	for _, link := range links {
		if ctx.Err() != nil {
			report.Err = ctx.Err().Error()
			break
		}
		if err := r.runArticle(ctx, src, link, report); err != nil {
			report.Errors++
			if statErr := r.store.UpdateSourceStats(src.Name, false, time.Now()); statErr != nil {
				log.Printf("cycle %s: update stats: %v", src.Name, statErr)
			}
			log.Printf("cycle %s: %v", src.Name, err)
		}
	}

	// 全部文章都失败才算整轮失败；重复是正常结果
	if report.Stored == 0 && report.Duplicates == 0 && report.Errors > 0 {
		report.State = StateFailed
	} else {
		report.State = StateStored
	}
	report.FinishedAt = time.Now()

	log.Printf("cycle %s: discovered=%d fetched=%d extracted=%d duplicates=%d stored=%d errors=%d",
		src.Name, report.Discovered, report.Fetched, report.Extracted,
		report.Duplicates, report.Stored, report.Errors)
	return report
}

// runArticle 推进单篇文章走完各阶段。重复文章不算错误，静默跳过
func (r *CycleRunner) runArticle(ctx context.Context, src *config.SourceConfig, link string, report *SourceReport) error {
	report.State = StateFetching
	raw, err := r.fetcher.Fetch(ctx, src, link)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", link, err)
	}
	report.Fetched++

	report.State = StateExtracting
	draft, err := r.extractor.Extract(raw, src)
	if err != nil {
		return err
	}
	report.Extracted++

	report.State = StateDeduplicating
	decision, err := r.dedup.Check(draft)
	if err != nil {
		return err
	}
	if decision.IsDuplicate {
		report.Duplicates++
		return nil
	}

	report.State = StateEnriching
	article, err := r.enricher.Enrich(draft)
	if err != nil {
		return err
	}

	if _, err := r.store.SaveArticle(article); err != nil {
		// 并发轮次间的 URL 撞车是正常信号，按重复处理
		if errors.Is(err, storage.ErrDuplicateURL) {
			report.Duplicates++
			return nil
		}
		return fmt.Errorf("save %s: %w", link, err)
	}
	report.Stored++

	if err := r.store.UpdateSourceStats(src.Name, true, time.Now()); err != nil {
		log.Printf("cycle %s: update stats: %v", src.Name, err)
	}
	return nil
}
