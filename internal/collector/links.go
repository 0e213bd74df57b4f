package collector

import (
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/LJTian/DailyDigest/internal/config"
)

// 非文章页面的路径特征，出现即跳过
var invalidURLParts = []string{
	"/video/", "/gallery/", "/live/", "/podcast/",
	"/tag/", "/author/", "/category/", "/search",
	"/subscribe", "/newsletter",
	"javascript:", "mailto:", "tel:",
}

// DiscoverLinks 抓取源首页，按 article_links 选择器收集候选文章链接。
// 链接会被绝对化、过滤、去重，并截断到该源的单轮上限。
func DiscoverLinks(src *config.SourceConfig, timeout time.Duration) ([]string, error) {
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(timeout)

	links := make([]string, 0, src.MaxArticles)
	seen := make(map[string]struct{})

	c.OnHTML(src.Selectors.ArticleLinks, func(e *colly.HTMLElement) {
		if len(links) >= src.MaxArticles {
			return
		}
		href := e.Attr("href")
		if href == "" {
			// 选择器可能命中链接的容器元素，再向内找一层 a
			href = e.ChildAttr("a", "href")
		}
		if href == "" {
			return
		}
		abs := e.Request.AbsoluteURL(href)
		if abs == "" || !validArticleURL(src.BaseURL, abs) {
			return
		}
		if _, dup := seen[abs]; dup {
			return
		}
		seen[abs] = struct{}{}
		links = append(links, abs)
	})

	if err := c.Visit(src.BaseURL); err != nil {
		log.Printf("discover links for %s failed: %v", src.Name, err)
		return nil, &FetchError{URL: src.BaseURL, Transient: true, Err: err}
	}

	return links, nil
}

// validArticleURL 过滤掉明显不是文章详情页的链接；
// 同时要求与源同域，避免把聚合页上的外链当成本源文章
func validArticleURL(baseURL, candidate string) bool {
	u, err := url.Parse(candidate)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Fragment != "" {
		return false
	}

	if base, err := url.Parse(baseURL); err == nil && base.Host != "" {
		if !strings.EqualFold(u.Host, base.Host) {
			return false
		}
		// 首页本身不算文章
		if strings.EqualFold(candidate, baseURL) {
			return false
		}
	}

	lower := strings.ToLower(candidate)
	for _, part := range invalidURLParts {
		if strings.Contains(lower, part) {
			return false
		}
	}
	return true
}
