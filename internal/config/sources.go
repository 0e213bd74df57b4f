package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Selectors 描述一个源的各字段提取规则（CSS 选择器）
type Selectors struct {
	// 首页上指向文章详情页的链接
	ArticleLinks string `yaml:"article_links"`
	Title        string `yaml:"title"`
	Content      string `yaml:"content"`
	Date         string `yaml:"date"`
	Author       string `yaml:"author"`
}

// SourceConfig 描述一个新闻源：抓取入口、提取规则、限速与单轮上限
type SourceConfig struct {
	Name             string    `yaml:"name"`
	BaseURL          string    `yaml:"base_url"`
	Selectors        Selectors `yaml:"selectors"`
	RateLimitSeconds float64   `yaml:"rate_limit_seconds"`
	MaxArticles      int       `yaml:"max_articles"`
	// 指针用于区分“未配置”（默认启用）与显式 active: false
	Active *bool `yaml:"active"`
}

// IsActive 未配置 active 时默认启用
func (s *SourceConfig) IsActive() bool {
	return s.Active == nil || *s.Active
}

// RateInterval 返回同一源两次请求之间的最小间隔
func (s *SourceConfig) RateInterval() time.Duration {
	return time.Duration(s.RateLimitSeconds * float64(time.Second))
}

type sourcesFile struct {
	Sources []SourceConfig `yaml:"sources"`
}

// LoadSources 从 YAML 文件加载源配置，补齐默认值并做基础校验
func LoadSources(path string) ([]SourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var f sourcesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	if len(f.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s defines no sources", path)
	}

	seen := make(map[string]struct{}, len(f.Sources))
	for i := range f.Sources {
		s := &f.Sources[i]
		if s.Name == "" {
			return nil, fmt.Errorf("source #%d: name is required", i+1)
		}
		if s.BaseURL == "" {
			return nil, fmt.Errorf("source %q: base_url is required", s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("source %q: duplicate name", s.Name)
		}
		seen[s.Name] = struct{}{}

		if s.RateLimitSeconds <= 0 {
			s.RateLimitSeconds = 2
		}
		if s.MaxArticles <= 0 {
			s.MaxArticles = 20
		}
		if s.Selectors.ArticleLinks == "" {
			s.Selectors.ArticleLinks = "a"
		}
		if s.Selectors.Title == "" {
			s.Selectors.Title = "h1"
		}
		if s.Selectors.Content == "" {
			s.Selectors.Content = "p"
		}
		if s.Selectors.Date == "" {
			s.Selectors.Date = "time"
		}
	}

	return f.Sources, nil
}

// ActiveSources 过滤出启用状态的源
func ActiveSources(all []SourceConfig) []SourceConfig {
	out := make([]SourceConfig, 0, len(all))
	for _, s := range all {
		if s.IsActive() {
			out = append(out, s)
		}
	}
	return out
}
