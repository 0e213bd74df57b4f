package dedup

import (
	"testing"
	"time"

	"github.com/LJTian/DailyDigest/internal/extractor"
	"github.com/LJTian/DailyDigest/internal/storage"
)

// fakeReader 在内存里模拟最近窗口内的已入库文章
type fakeReader struct {
	urls   map[string]bool
	recent []storage.Article
}

func (f *fakeReader) ArticleExists(url string) (bool, error) {
	return f.urls[url], nil
}

func (f *fakeReader) GetRecentArticles(since time.Time, source string) ([]storage.Article, error) {
	return f.recent, nil
}

func newDraft(title, body, url string) *extractor.Draft {
	return &extractor.Draft{
		Title:     title,
		Body:      body,
		URL:       url,
		Source:    "test",
		ScrapedAt: time.Now(),
	}
}

func TestCheckURLFastPath(t *testing.T) {
	reader := &fakeReader{urls: map[string]bool{"https://example.com/a": true}}
	d := New(reader, 0.7, 0.9, 48*time.Hour)

	dec, err := d.Check(newDraft("Any Title", "any body", "https://example.com/a"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !dec.IsDuplicate || dec.Reason != "url" || dec.Similarity != 1 {
		t.Fatalf("expected url duplicate, got %+v", dec)
	}
}

func TestCheckTitleSimilarity(t *testing.T) {
	reader := &fakeReader{
		urls: map[string]bool{},
		recent: []storage.Article{{
			ID:      "abc",
			Title:   "Central bank raises interest rates amid inflation concerns",
			Content: "completely different body text about monetary policy decisions",
		}},
	}
	d := New(reader, 0.7, 0.9, 48*time.Hour)

	// 标题几乎相同，换了个别词序
	dec, err := d.Check(newDraft(
		"Central bank raises interest rates amid inflation concerns today",
		"an entirely unrelated body about weather patterns and local farming seasons",
		"https://example.com/new",
	))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !dec.IsDuplicate || dec.Reason != "title" {
		t.Fatalf("expected title duplicate, got %+v", dec)
	}
	if dec.MatchedID != "abc" {
		t.Fatalf("expected matched id abc, got %s", dec.MatchedID)
	}
}

func TestCheckBodySimilarityIgnoresTitle(t *testing.T) {
	body := "Global shipping routes face renewed disruption as carriers reroute vessels around affected regions, pushing freight costs sharply higher for importers worldwide."
	reader := &fakeReader{
		urls: map[string]bool{},
		recent: []storage.Article{{
			ID:      "xyz",
			Title:   "Shipping costs climb",
			Content: body,
		}},
	}
	d := New(reader, 0.7, 0.9, 48*time.Hour)

	// 标题完全不同的转载：正文仅在末尾多了时间戳，数字不进入词集
	dec, err := d.Check(newDraft(
		"Importers brace for freight squeeze",
		body+" 20260801120000",
		"https://example.com/reprint",
	))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !dec.IsDuplicate || dec.Reason != "body" {
		t.Fatalf("expected body duplicate, got %+v", dec)
	}
}

func TestCheckNotDuplicate(t *testing.T) {
	reader := &fakeReader{
		urls: map[string]bool{},
		recent: []storage.Article{{
			ID:      "old",
			Title:   "Local team wins championship final",
			Content: "The home side secured the trophy after a dramatic penalty shootout on Saturday evening.",
		}},
	}
	d := New(reader, 0.7, 0.9, 48*time.Hour)

	dec, err := d.Check(newDraft(
		"New species of deep sea fish discovered",
		"Researchers described a previously unknown species found at record depths in the Pacific trench.",
		"https://example.com/science",
	))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec.IsDuplicate {
		t.Fatalf("expected not duplicate, got %+v", dec)
	}
}

func TestCheckEmptyWindow(t *testing.T) {
	reader := &fakeReader{urls: map[string]bool{}}
	d := New(reader, 0.7, 0.9, 48*time.Hour)

	dec, err := d.Check(newDraft("Fresh Title", "fresh body text", "https://example.com/fresh"))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if dec.IsDuplicate || dec.Similarity != 0 {
		t.Fatalf("expected clean decision on empty window, got %+v", dec)
	}
}
