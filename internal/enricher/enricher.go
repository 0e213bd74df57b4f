package enricher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/LJTian/DailyDigest/internal/extractor"
	"github.com/LJTian/DailyDigest/internal/storage"
)

// EnrichmentError 表示文章缺少可供分析的内容
type EnrichmentError struct {
	URL    string
	Reason string
}

func (e *EnrichmentError) Error() string {
	return fmt.Sprintf("enrich %s: %s", e.URL, e.Reason)
}

// Enricher 把抽取结果补全为可入库的文章：
// 情感打分、摘要、关键词、类目，以及基于 URL 的稳定主键
type Enricher struct {
	analyzer    *Analyzer
	summarizer  *Summarizer
	maxKeywords int
}

func New(threshold float64, summarySentences, maxKeywords int) *Enricher {
	if maxKeywords <= 0 {
		maxKeywords = 10
	}
	return &Enricher{
		analyzer:    NewAnalyzer(threshold),
		summarizer:  NewSummarizer(summarySentences),
		maxKeywords: maxKeywords,
	}
}

// Enrich 对单篇文章做全部补全。除空正文外不返回错误：
// 任一子步骤得不到结果时落到各自的零值 / 默认值，不影响入库
func (e *Enricher) Enrich(draft *extractor.Draft) (*storage.Article, error) {
	body := strings.TrimSpace(draft.Body)
	if body == "" {
		return nil, &EnrichmentError{URL: draft.URL, Reason: "empty body"}
	}

	score, label := e.analyzer.Analyze(draft.Title + " " + body)

	article := &storage.Article{
		ID:             hashURL(draft.URL),
		Title:          draft.Title,
		Content:        body,
		Summary:        e.summarizer.Summarize(body),
		URL:            draft.URL,
		Source:         draft.Source,
		Author:         draft.Author,
		Category:       Categorize(draft.Title, body),
		Keywords:       ExtractKeywords(body, e.maxKeywords),
		SentimentScore: score,
		SentimentLabel: label,
		PublishedAt:    draft.PublishedAt,
		ScrapedAt:      draft.ScrapedAt,
	}
	if article.ScrapedAt.IsZero() {
		article.ScrapedAt = time.Now()
	}
	return article, nil
}

// hashURL 用 URL 的 sha1 十六进制作为文章主键，同一链接重复抓取时 ID 不变
func hashURL(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}
