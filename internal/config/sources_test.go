package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSourcesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}
	return path
}

func TestLoadSourcesDefaults(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: example
    base_url: https://example.com/news
`)

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("load sources: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(sources))
	}

	s := sources[0]
	if s.RateLimitSeconds != 2 {
		t.Fatalf("expected default rate limit 2s, got %v", s.RateLimitSeconds)
	}
	if s.MaxArticles != 20 {
		t.Fatalf("expected default max articles 20, got %d", s.MaxArticles)
	}
	if s.Selectors.ArticleLinks != "a" || s.Selectors.Title != "h1" {
		t.Fatalf("expected default selectors, got %+v", s.Selectors)
	}
	// 未配置 active 默认启用
	if !s.IsActive() {
		t.Fatalf("expected source active by default")
	}
	if s.RateInterval() != 2*time.Second {
		t.Fatalf("unexpected rate interval: %v", s.RateInterval())
	}
}

func TestLoadSourcesExplicitInactive(t *testing.T) {
	path := writeSourcesFile(t, `
sources:
  - name: a
    base_url: https://a.example.com
  - name: b
    base_url: https://b.example.com
    active: false
`)

	sources, err := LoadSources(path)
	if err != nil {
		t.Fatalf("load sources: %v", err)
	}

	active := ActiveSources(sources)
	if len(active) != 1 || active[0].Name != "a" {
		t.Fatalf("expected only source a active, got %+v", active)
	}
}

func TestLoadSourcesValidation(t *testing.T) {
	// 缺少 name
	if _, err := LoadSources(writeSourcesFile(t, `
sources:
  - base_url: https://example.com
`)); err == nil {
		t.Fatalf("expected error for missing name")
	}

	// 缺少 base_url
	if _, err := LoadSources(writeSourcesFile(t, `
sources:
  - name: x
`)); err == nil {
		t.Fatalf("expected error for missing base_url")
	}

	// 重名
	if _, err := LoadSources(writeSourcesFile(t, `
sources:
  - name: x
    base_url: https://a.example.com
  - name: x
    base_url: https://b.example.com
`)); err == nil {
		t.Fatalf("expected error for duplicate names")
	}

	// 空文件
	if _, err := LoadSources(writeSourcesFile(t, `sources: []`)); err == nil {
		t.Fatalf("expected error for empty sources list")
	}
}
