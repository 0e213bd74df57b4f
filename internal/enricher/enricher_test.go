package enricher

import (
	"strings"
	"testing"
	"time"

	"github.com/LJTian/DailyDigest/internal/extractor"
)

func testDraft() *extractor.Draft {
	published := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	return &extractor.Draft{
		Title:  "Breakthrough battery technology promises cheaper storage",
		Body:   "Researchers unveiled a breakthrough battery design on Thursday. The new technology stores energy at a fraction of current costs. Early tests show excellent durability across thousands of cycles. Industry analysts called the progress promising for renewable storage. Commercial production could begin within two years.",
		Author: "Sam Writer",
		URL:    "https://example.com/news/battery",
		Source: "example",

		PublishedAt: &published,
		ScrapedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEnrichFillsAllFields(t *testing.T) {
	e := New(0.05, 3, 10)
	article, err := e.Enrich(testDraft())
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}

	// sha1 十六进制，40 字符
	if len(article.ID) != 40 {
		t.Fatalf("expected sha1 hex id, got %q", article.ID)
	}
	if article.Title == "" || article.Content == "" || article.URL == "" {
		t.Fatalf("core fields missing: %+v", article)
	}
	if article.Summary == "" {
		t.Fatalf("expected summary")
	}
	if len(article.Keywords) == 0 {
		t.Fatalf("expected keywords")
	}
	if article.Category != "technology" {
		t.Fatalf("expected technology category, got %q", article.Category)
	}
	if article.SentimentLabel != "positive" {
		t.Fatalf("expected positive sentiment, got %s (%v)", article.SentimentLabel, article.SentimentScore)
	}
	if article.PublishedAt == nil || article.Author != "Sam Writer" {
		t.Fatalf("metadata not carried over: %+v", article)
	}
}

func TestEnrichStableID(t *testing.T) {
	e := New(0.05, 3, 10)
	a1, err := e.Enrich(testDraft())
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	a2, err := e.Enrich(testDraft())
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	// 同一 URL 重复富化得到同一主键
	if a1.ID != a2.ID {
		t.Fatalf("id not stable: %s vs %s", a1.ID, a2.ID)
	}

	other := testDraft()
	other.URL = "https://example.com/news/other"
	a3, err := e.Enrich(other)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if a3.ID == a1.ID {
		t.Fatalf("different urls must get different ids")
	}
}

func TestEnrichEmptyBody(t *testing.T) {
	e := New(0.05, 3, 10)
	d := testDraft()
	d.Body = "   "
	if _, err := e.Enrich(d); err == nil {
		t.Fatalf("expected error for empty body")
	}
}

func TestEnrichDeterministic(t *testing.T) {
	e := New(0.05, 3, 10)
	first, err := e.Enrich(testDraft())
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := e.Enrich(testDraft())
		if err != nil {
			t.Fatalf("enrich: %v", err)
		}
		if got.Summary != first.Summary ||
			got.SentimentScore != first.SentimentScore ||
			got.Category != first.Category ||
			strings.Join(got.Keywords, ",") != strings.Join(first.Keywords, ",") {
			t.Fatalf("enrichment not deterministic on run %d", i)
		}
	}
}
