package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrDuplicateURL 表示 URL 唯一约束冲突。对调用方而言这是正常的重复信号，
// 不作为失败处理（同一 URL 至多入库一次）。
var ErrDuplicateURL = errors.New("article with this url already exists")

// Source 记录一个新闻源的运行期状态；抓取规则在配置文件里，不入库
type Source struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"size:128;uniqueIndex" json:"name"`
	BaseURL      string     `gorm:"size:512" json:"baseUrl"`
	IsActive     bool       `gorm:"index" json:"isActive"`
	LastScraped  *time.Time `json:"lastScraped"`
	SuccessCount int        `json:"successCount"`
	ErrorCount   int        `json:"errorCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Article 是富化完成后的文章，入库后不再修改
type Article struct {
	ID      string `gorm:"primaryKey;size:40" json:"id"` // sha1(url)
	Title   string `gorm:"size:512" json:"title"`
	Content string `gorm:"type:text" json:"content"`
	Summary string `gorm:"type:text" json:"summary"`
	URL     string `gorm:"size:1024;uniqueIndex" json:"url"`
	Source  string `gorm:"size:128;index" json:"source"`
	Author  string `gorm:"size:256" json:"author"`

	Category       string                      `gorm:"size:64;index" json:"category"`
	Keywords       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"keywords"`
	SentimentScore float64                     `gorm:"index" json:"sentimentScore"`
	SentimentLabel string                      `gorm:"size:16;index" json:"sentimentLabel"`

	PublishedAt *time.Time `gorm:"index" json:"publishedAt"`
	ScrapedAt   time.Time  `gorm:"index" json:"scrapedAt"`

	CreatedAt time.Time `json:"createdAt"`
}

type Store struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewStore(dsn, redisAddr string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Source{}, &Article{}); err != nil {
		return nil, err
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warn: redis ping failed: %v", err)
	}

	return &Store{DB: db, Redis: rdb}, nil
}

// EnsureSource 确保某个源的统计行存在
func (s *Store) EnsureSource(name, baseURL string, active bool) (*Source, error) {
	src := &Source{}
	if err := s.DB.Where("name = ?", name).First(src).Error; err == nil {
		// 配置变化时同步入口与启停状态
		if src.BaseURL != baseURL || src.IsActive != active {
			_ = s.DB.Model(src).Updates(map[string]any{"base_url": baseURL, "is_active": active}).Error
		}
		return src, nil
	}

	src = &Source{
		Name:     name,
		BaseURL:  baseURL,
		IsActive: active,
	}
	if err := s.DB.Create(src).Error; err != nil {
		return nil, err
	}
	return src, nil
}

func (s *Store) ListSources(activeOnly bool) ([]Source, error) {
	var list []Source
	db := s.DB.Model(&Source{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	if err := db.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateSourceStats 由调度器在每篇文章落库 / 失败后调用；
// last_scraped 只在成功时前移
func (s *Store) UpdateSourceStats(name string, success bool, ts time.Time) error {
	db := s.DB.Model(&Source{}).Where("name = ?", name)
	if success {
		return db.Updates(map[string]any{
			"success_count": gorm.Expr("success_count + 1"),
			"last_scraped":  ts,
		}).Error
	}
	return db.Update("error_count", gorm.Expr("error_count + 1")).Error
}

// toValidUTF8 将字符串规范为合法 UTF-8，避免 PostgreSQL invalid byte sequence 错误
func toValidUTF8(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// truncateRunesDB 按 rune 数截断，防止异常长文本超过 varchar 字段长度
func truncateRunesDB(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.TrimSpace(s)
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	return string(rs[:limit])
}

// SaveArticle 保存一篇富化后的文章。URL 唯一冲突返回 ErrDuplicateURL，
// 调用方按正常重复信号处理。
func (s *Store) SaveArticle(a *Article) (string, error) {
	a.Title = truncateRunesDB(toValidUTF8(a.Title), 512)
	a.Content = toValidUTF8(a.Content)
	a.Summary = toValidUTF8(a.Summary)
	a.Author = truncateRunesDB(toValidUTF8(a.Author), 256)

	if err := s.DB.Create(a).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrDuplicateURL
		}
		return "", err
	}
	return a.ID, nil
}

// ArticleExists 以 URL 判断文章是否已入库，作为去重的快速通道
func (s *Store) ArticleExists(url string) (bool, error) {
	var count int64
	if err := s.DB.Model(&Article{}).Where("url = ?", url).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRecentArticles 返回 since 之后抓取的文章，source 为空表示全部源。
// 去重窗口与趋势统计都走这个只读入口。
func (s *Store) GetRecentArticles(since time.Time, source string) ([]Article, error) {
	var list []Article
	db := s.DB.Model(&Article{}).Where("scraped_at >= ?", since)
	if source != "" {
		db = db.Where("source = ?", source)
	}
	if err := db.Order("scraped_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListArticles 分页返回文章，使用 Redis 做短 TTL 缓存；
// 不做主动失效，依赖缓存自然过期
func (s *Store) ListArticles(source string, limit, offset int) ([]Article, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("articles:list:%s:%d:%d", source, limit, offset)

	if s.Redis != nil {
		if bs, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached []Article
			if err := json.Unmarshal(bs, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var list []Article
	db := s.DB.Model(&Article{})
	if source != "" {
		db = db.Where("source = ?", source)
	}
	if err := db.Order("scraped_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, err
	}

	const listCacheTTL = 2 * time.Minute
	if s.Redis != nil && len(list) > 0 {
		if bs, err := json.Marshal(list); err == nil {
			_ = s.Redis.Set(ctx, cacheKey, bs, listCacheTTL).Err()
		}
	}

	return list, nil
}

func (s *Store) GetArticle(id string) (*Article, error) {
	var a Article
	if err := s.DB.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// SearchArticles 在标题、正文与摘要上做大小写不敏感的模糊匹配
func (s *Store) SearchArticles(query string, limit int) ([]Article, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	pattern := "%" + query + "%"

	var list []Article
	err := s.DB.Model(&Article{}).
		Where("title ILIKE ? OR content ILIKE ? OR summary ILIKE ?", pattern, pattern, pattern).
		Order("scraped_at DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// SentimentDistribution 返回各情感标签的文章数
func (s *Store) SentimentDistribution() (map[string]int64, error) {
	var rows []struct {
		SentimentLabel string
		Count          int64
	}
	err := s.DB.Model(&Article{}).
		Select("sentiment_label, COUNT(*) as count").
		Where("sentiment_label <> ''").
		Group("sentiment_label").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	dist := make(map[string]int64, len(rows))
	for _, r := range rows {
		dist[r.SentimentLabel] = r.Count
	}
	return dist, nil
}

// CleanupOldArticles 删除超出保留期的文章，返回删除条数
func (s *Store) CleanupOldArticles(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	res := s.DB.Where("scraped_at < ?", cutoff).Delete(&Article{})
	return res.RowsAffected, res.Error
}
