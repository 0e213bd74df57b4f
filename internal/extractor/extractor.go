// Package extractor 把 RawFetch 的原始 HTML 规范化为文章草稿。
// 标题与正文是必需字段，拿不到即视为该页提取失败；
// 作者与发布时间缺失时使用空值兜底，不影响整篇文章。
package extractor

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"

	"github.com/LJTian/DailyDigest/internal/collector"
	"github.com/LJTian/DailyDigest/internal/config"
)

// Draft 是通过提取但尚未去重 / 富化的文章草稿
type Draft struct {
	Title       string
	Body        string
	Author      string
	PublishedAt *time.Time
	URL         string
	Source      string
	ScrapedAt   time.Time
}

// ExtractionError 表示单页提取失败；调用方跳过该页并继续本轮其余页面
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.URL, e.Reason)
}

// 作者选择器兜底序列，源未配置或未命中时逐个尝试
var authorFallbacks = []string{".author", ".byline", `[rel="author"]`, ".article-author", ".post-author"}

var (
	spaceRE     = regexp.MustCompile(`\s+`)
	adPrefixRE  = regexp.MustCompile(`(?i)^\s*advertisement\s*`)
	shareThisRE = regexp.MustCompile(`(?i)^\s*share this\S*\s*`)
)

type Extractor struct {
	minContentLength int
}

func New(minContentLength int) *Extractor {
	return &Extractor{minContentLength: minContentLength}
}

// Extract 按源的选择器规则提取文章字段，选择器未命中时降级为
// 通用 <p> 聚合，再不行交给 readability 做正文识别。
func (x *Extractor) Extract(raw *collector.RawFetch, src *config.SourceConfig) (*Draft, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Body))
	if err != nil {
		return nil, &ExtractionError{URL: raw.URL, Reason: fmt.Sprintf("parse html: %v", err)}
	}

	pageURL, err := url.Parse(raw.URL)
	if err != nil {
		return nil, &ExtractionError{URL: raw.URL, Reason: "malformed page url"}
	}

	doc.Find("script, style, noscript").Remove()
	absolutizeLinks(doc, pageURL)

	draft := &Draft{
		URL:       raw.URL,
		Source:    raw.Source,
		ScrapedAt: raw.FetchedAt,
	}

	draft.Title = extractTitle(doc, src.Selectors.Title)
	draft.Body = extractBody(doc, src.Selectors.Content)
	draft.Author = extractAuthor(doc, src.Selectors.Author)
	draft.PublishedAt = extractDate(doc, src.Selectors.Date)

	// 选择器拿不到正文时用 readability 兜底
	if draft.Title == "" || len(draft.Body) < x.minContentLength {
		if art, err := readability.FromReader(bytes.NewReader(raw.Body), pageURL); err == nil {
			if draft.Title == "" {
				draft.Title = strings.TrimSpace(art.Title)
			}
			if len(draft.Body) < x.minContentLength {
				draft.Body = cleanBody(art.TextContent)
			}
			if draft.Author == "" {
				draft.Author = strings.TrimSpace(art.Byline)
			}
		}
	}

	if draft.Title == "" {
		return nil, &ExtractionError{URL: raw.URL, Reason: "title not found"}
	}
	if draft.Body == "" {
		return nil, &ExtractionError{URL: raw.URL, Reason: "content not found"}
	}
	if len(draft.Body) < x.minContentLength {
		return nil, &ExtractionError{URL: raw.URL, Reason: fmt.Sprintf("content too short: %d chars", len(draft.Body))}
	}

	return draft, nil
}

func extractTitle(doc *goquery.Document, selector string) string {
	if selector != "" {
		if t := strings.TrimSpace(doc.Find(selector).First().Text()); t != "" {
			return t
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractBody(doc *goquery.Document, selector string) string {
	parts := collectParagraphs(doc, selector)
	if len(parts) == 0 && selector != "p" {
		parts = collectParagraphs(doc, "p")
	}
	return cleanBody(strings.Join(parts, " "))
}

// collectParagraphs 取选择器命中的各段文本，丢弃过短的导航 / 注脚碎片
func collectParagraphs(doc *goquery.Document, selector string) []string {
	var parts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if len(t) > 20 {
			parts = append(parts, t)
		}
	})
	return parts
}

func extractAuthor(doc *goquery.Document, selector string) string {
	selectors := authorFallbacks
	if selector != "" {
		selectors = append([]string{selector}, authorFallbacks...)
	}
	for _, sel := range selectors {
		if a := strings.TrimSpace(doc.Find(sel).First().Text()); a != "" {
			return a
		}
	}
	return ""
}

func extractDate(doc *goquery.Document, selector string) *time.Time {
	el := doc.Find(selector).First()
	if el.Length() == 0 {
		return nil
	}

	candidate := strings.TrimSpace(el.AttrOr("datetime", ""))
	if candidate == "" {
		candidate = strings.TrimSpace(el.Text())
	}
	if candidate == "" {
		return nil
	}

	t, err := dateparse.ParseAny(candidate)
	if err != nil {
		return nil
	}
	return &t
}

// absolutizeLinks 把文档内的相对链接改写为绝对地址，
// 保证正文里残留的地址不依赖页面上下文
func absolutizeLinks(doc *goquery.Document, pageURL *url.URL) {
	rewrite := func(s *goquery.Selection, attr string) {
		v, ok := s.Attr(attr)
		if !ok || v == "" {
			return
		}
		ref, err := url.Parse(v)
		if err != nil || ref.IsAbs() {
			return
		}
		s.SetAttr(attr, pageURL.ResolveReference(ref).String())
	}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) { rewrite(s, "href") })
	doc.Find("img[src]").Each(func(_ int, s *goquery.Selection) { rewrite(s, "src") })
}

// cleanBody 折叠空白并剔除常见的页面噪音前缀
func cleanBody(body string) string {
	body = spaceRE.ReplaceAllString(body, " ")
	body = adPrefixRE.ReplaceAllString(body, "")
	body = shareThisRE.ReplaceAllString(body, "")
	return strings.TrimSpace(body)
}
