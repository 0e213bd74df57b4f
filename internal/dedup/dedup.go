// Package dedup 判断新提取的文章是否为已入库文章的近重复。
// 比对限定在一个最近时间窗口内（跨源），窗口大小可配置。
package dedup

import (
	"fmt"
	"time"

	"github.com/LJTian/DailyDigest/internal/extractor"
	"github.com/LJTian/DailyDigest/internal/storage"
	"github.com/LJTian/DailyDigest/internal/textutil"
)

// Decision 是一次比对的临时结果，不入库
type Decision struct {
	IsDuplicate bool    `json:"isDuplicate"`
	Similarity  float64 `json:"similarity"`
	MatchedID   string  `json:"matchedId,omitempty"`
	Reason      string  `json:"reason,omitempty"` // url / title / body
}

// RecentReader 是去重所需的最小存储读取能力
type RecentReader interface {
	ArticleExists(url string) (bool, error)
	GetRecentArticles(since time.Time, source string) ([]storage.Article, error)
}

type Deduplicator struct {
	store          RecentReader
	titleThreshold float64
	bodyThreshold  float64
	window         time.Duration
}

func New(store RecentReader, titleThreshold, bodyThreshold float64, window time.Duration) *Deduplicator {
	return &Deduplicator{
		store:          store,
		titleThreshold: titleThreshold,
		bodyThreshold:  bodyThreshold,
		window:         window,
	}
}

// Check 依次尝试三条判定路径：URL 精确匹配、标题相似度、正文相似度。
// 标题与正文阈值相互独立，任一超过即判定重复（不合并为单一分数）。
func (d *Deduplicator) Check(draft *extractor.Draft) (*Decision, error) {
	exists, err := d.store.ArticleExists(draft.URL)
	if err != nil {
		return nil, fmt.Errorf("dedup url check: %w", err)
	}
	if exists {
		return &Decision{IsDuplicate: true, Similarity: 1, Reason: "url"}, nil
	}

	since := time.Now().Add(-d.window)
	recent, err := d.store.GetRecentArticles(since, "")
	if err != nil {
		return nil, fmt.Errorf("dedup window read: %w", err)
	}

	best := &Decision{}
	for i := range recent {
		candidate := &recent[i]

		if sim := textutil.Similarity(draft.Title, candidate.Title); sim >= d.titleThreshold {
			return &Decision{IsDuplicate: true, Similarity: sim, MatchedID: candidate.ID, Reason: "title"}, nil
		} else if sim > best.Similarity {
			best = &Decision{Similarity: sim, MatchedID: candidate.ID}
		}

		// 正文相似度捕捉换了标题的转载 / 通稿
		if sim := textutil.Similarity(draft.Body, candidate.Content); sim >= d.bodyThreshold {
			return &Decision{IsDuplicate: true, Similarity: sim, MatchedID: candidate.ID, Reason: "body"}, nil
		} else if sim > best.Similarity {
			best = &Decision{Similarity: sim, MatchedID: candidate.ID}
		}
	}

	return best, nil
}
