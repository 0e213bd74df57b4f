package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LJTian/DailyDigest/internal/storage"
)

// Topic 是单个热点话题的聚合结果
type Topic struct {
	Keyword      string   `json:"keyword"`
	Score        float64  `json:"score"`
	ArticleCount int      `json:"article_count"`
	SourceCount  int      `json:"source_count"`
	AvgSentiment float64  `json:"avg_sentiment"`
	Sources      []string `json:"sources"`
	ArticleIDs   []string `json:"article_ids"`
}

// Snapshot 是一次热点计算的完整输出
type Snapshot struct {
	GeneratedAt  time.Time `json:"generated_at"`
	WindowHours  int       `json:"window_hours"`
	ArticleCount int       `json:"article_count"`
	Topics       []Topic   `json:"topics"`
}

// ArticleReader 提供窗口内文章的读取能力，便于测试时替换
type ArticleReader interface {
	GetRecentArticles(since time.Time, source string) ([]storage.Article, error)
}

// Aggregator 按关键词聚合近期文章并打分
type Aggregator struct {
	reader      ArticleReader
	rdb         *redis.Client
	window      time.Duration
	minArticles int
	maxTopics   int
}

func New(reader ArticleReader, rdb *redis.Client, windowHours, minArticles, maxTopics int) *Aggregator {
	if windowHours <= 0 {
		windowHours = 24
	}
	if minArticles <= 0 {
		minArticles = 3
	}
	if maxTopics <= 0 {
		maxTopics = 10
	}
	return &Aggregator{
		reader:      reader,
		rdb:         rdb,
		window:      time.Duration(windowHours) * time.Hour,
		minArticles: minArticles,
		maxTopics:   maxTopics,
	}
}

const trendsCacheTTL = 5 * time.Minute

// Snapshot 按默认窗口计算热点话题
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	return a.SnapshotWindow(ctx, a.window)
}

// SnapshotWindow 计算指定窗口的热点话题，结果在 Redis 里缓存几分钟
func (a *Aggregator) SnapshotWindow(ctx context.Context, window time.Duration) (*Snapshot, error) {
	if window <= 0 {
		window = a.window
	}

	cacheKey := fmt.Sprintf("trends:snapshot:%d", int(window/time.Hour))
	if a.rdb != nil {
		if raw, err := a.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached Snapshot
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	until := time.Now()
	articles, err := a.reader.GetRecentArticles(until.Add(-window), "")
	if err != nil {
		return nil, err
	}

	snap := a.computeWindow(articles, until, window)

	if a.rdb != nil {
		if raw, err := json.Marshal(snap); err == nil {
			if err := a.rdb.Set(ctx, cacheKey, raw, trendsCacheTTL).Err(); err != nil {
				log.Printf("trends: cache write failed: %v", err)
			}
		}
	}
	return snap, nil
}

// compute 是纯计算部分：相同的文章集合与时间点必然得到相同的快照
func (a *Aggregator) compute(articles []storage.Article, until time.Time) *Snapshot {
	return a.computeWindow(articles, until, a.window)
}

func (a *Aggregator) computeWindow(articles []storage.Article, until time.Time, window time.Duration) *Snapshot {
	type bucket struct {
		sources    map[string]struct{}
		articleIDs []string
		sentiment  float64
		recency    float64
		count      int
	}
	buckets := make(map[string]*bucket)

	for _, art := range articles {
		ts := art.ScrapedAt
		if art.PublishedAt != nil {
			ts = *art.PublishedAt
		}
		age := until.Sub(ts)
		recency := math.Max(0, 1-age.Seconds()/window.Seconds())

		for _, kw := range art.Keywords {
			b, ok := buckets[kw]
			if !ok {
				b = &bucket{sources: make(map[string]struct{})}
				buckets[kw] = b
			}
			b.sources[art.Source] = struct{}{}
			b.articleIDs = append(b.articleIDs, art.ID)
			b.sentiment += art.SentimentScore
			b.recency += recency
			b.count++
		}
	}

	topics := make([]Topic, 0, len(buckets))
	for kw, b := range buckets {
		if b.count < a.minArticles {
			continue
		}

		freq := math.Min(1, float64(b.count)/20)
		spread := math.Min(1, float64(len(b.sources))/10)
		avgSentiment := b.sentiment / float64(b.count)
		avgRecency := b.recency / float64(b.count)
		score := 0.3*freq + 0.3*spread + 0.2*math.Abs(avgSentiment) + 0.2*avgRecency

		sources := make([]string, 0, len(b.sources))
		for s := range b.sources {
			sources = append(sources, s)
		}
		sort.Strings(sources)

		topics = append(topics, Topic{
			Keyword:      kw,
			Score:        round3(score),
			ArticleCount: b.count,
			SourceCount:  len(b.sources),
			AvgSentiment: round3(avgSentiment),
			Sources:      sources,
			ArticleIDs:   b.articleIDs,
		})
	}

	// 得分相同按关键词字典序，保证同一输入输出顺序固定
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Score != topics[j].Score {
			return topics[i].Score > topics[j].Score
		}
		return topics[i].Keyword < topics[j].Keyword
	})
	if len(topics) > a.maxTopics {
		topics = topics[:a.maxTopics]
	}

	return &Snapshot{
		GeneratedAt:  until,
		WindowHours:  int(window / time.Hour),
		ArticleCount: len(articles),
		Topics:       topics,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
