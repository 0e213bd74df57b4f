package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/LJTian/DailyDigest/internal/config"
)

// Runner 抽象“跑完一个源的一轮”，方便测试时替换为假实现
type Runner interface {
	RunSource(ctx context.Context, src *config.SourceConfig) *SourceReport
}

// Cleaner 是保留期清理所需的最小存储能力
type Cleaner interface {
	CleanupOldArticles(retentionDays int) (int64, error)
}

// CycleResult 说明一次触发实际启动了哪些源、跳过了哪些源
type CycleResult struct {
	Started []string `json:"started"`
	Skipped []string `json:"skipped"`
}

// Scheduler 按 cron 表达式周期性触发采集，并提供手动触发入口。
// 每个源同时至多一轮在跑：上一轮未结束时新触发直接跳过该源。
type Scheduler struct {
	runner        Runner
	cleaner       Cleaner
	sources       []config.SourceConfig
	cronSpec      string
	retentionDays int

	cron *cron.Cron
	wg   sync.WaitGroup

	mu       sync.Mutex
	inFlight map[string]bool
	reports  map[string]*SourceReport
}

const startupDelay = 15 * time.Second

func New(runner Runner, cleaner Cleaner, sources []config.SourceConfig, cronSpec string, retentionDays int) *Scheduler {
	return &Scheduler{
		runner:        runner,
		cleaner:       cleaner,
		sources:       sources,
		cronSpec:      cronSpec,
		retentionDays: retentionDays,
		cron:          cron.New(),
		inFlight:      make(map[string]bool),
		reports:       make(map[string]*SourceReport),
	}
}

// Start 注册定时任务并在短暂延迟后跑第一轮，
// 让依赖的数据库 / Redis 有时间就绪
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.cronSpec, func() {
		s.TriggerCycle(ctx, "")
	}); err != nil {
		return err
	}

	// 保留期清理每天凌晨跑一次
	if _, err := s.cron.AddFunc("30 3 * * *", func() {
		s.runCleanup()
	}); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started: spec=%q sources=%d", s.cronSpec, len(s.sources))

	go func() {
		select {
		case <-time.After(startupDelay):
			s.TriggerCycle(ctx, "")
		case <-ctx.Done():
		}
	}()

	return nil
}

// Stop 停止后续触发并等待在途的源跑完
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.wg.Wait()
	log.Println("scheduler stopped")
}

// TriggerCycle 对全部源（source 为空）或指定源各启动一轮。
// 已在途的源被合并跳过，不排队、不并发叠加。
func (s *Scheduler) TriggerCycle(ctx context.Context, source string) *CycleResult {
	result := &CycleResult{}

	for i := range s.sources {
		src := &s.sources[i]
		if source != "" && src.Name != source {
			continue
		}
		if !src.IsActive() {
			continue
		}

		if !s.acquire(src.Name) {
			result.Skipped = append(result.Skipped, src.Name)
			continue
		}
		result.Started = append(result.Started, src.Name)

		s.wg.Add(1)
		go func(src *config.SourceConfig) {
			defer s.wg.Done()
			defer s.release(src.Name)

			report := s.runner.RunSource(ctx, src)

			s.mu.Lock()
			s.reports[src.Name] = report
			s.mu.Unlock()
		}(src)
	}

	if len(result.Started) > 0 || len(result.Skipped) > 0 {
		log.Printf("cycle triggered: started=%v skipped=%v", result.Started, result.Skipped)
	}
	return result
}

// LastReports 返回每个源最近一轮的执行结果快照
func (s *Scheduler) LastReports() map[string]*SourceReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*SourceReport, len(s.reports))
	for name, r := range s.reports {
		cp := *r
		out[name] = &cp
	}
	return out
}

func (s *Scheduler) HasSource(name string) bool {
	for i := range s.sources {
		if s.sources[i].Name == name {
			return true
		}
	}
	return false
}

func (s *Scheduler) acquire(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[name] {
		return false
	}
	s.inFlight[name] = true
	return true
}

func (s *Scheduler) release(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, name)
}

func (s *Scheduler) runCleanup() {
	if s.cleaner == nil || s.retentionDays <= 0 {
		return
	}
	deleted, err := s.cleaner.CleanupOldArticles(s.retentionDays)
	if err != nil {
		log.Printf("cleanup failed: %v", err)
		return
	}
	log.Printf("cleanup done: deleted=%d retention=%dd", deleted, s.retentionDays)
}
