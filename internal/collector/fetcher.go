package collector

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/LJTian/DailyDigest/internal/config"
)

const (
	userAgent        = "DailyDigestBot/1.0"
	maxResponseBytes = 2 << 20 // 2MB
	baseBackoff      = time.Second
)

// Fetcher 负责按源限速抓取页面。限速按源独立（非全局）：
// 每个源一把令牌，间隔 = 源配置的 rate_limit_seconds。
type Fetcher struct {
	client        *http.Client
	retryAttempts int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewFetcher(timeout time.Duration, retryAttempts int) *Fetcher {
	if retryAttempts < 1 {
		retryAttempts = 1
	}
	return &Fetcher{
		client:        &http.Client{Timeout: timeout},
		retryAttempts: retryAttempts,
		limiters:      make(map[string]*rate.Limiter),
	}
}

// limiter 返回某个源的限速器，首次使用时按源配置创建
func (f *Fetcher) limiter(src *config.SourceConfig) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.limiters[src.Name]; ok {
		return l
	}
	l := rate.NewLimiter(rate.Every(src.RateInterval()), 1)
	f.limiters[src.Name] = l
	return l
}

// Fetch 抓取一个页面。瞬时失败按指数退避重试，永久失败立即放弃。
// 每次请求（含重试）都要先过该源的限速闸门。
func (f *Fetcher) Fetch(ctx context.Context, src *config.SourceConfig, target string) (*RawFetch, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &FetchError{URL: target, Transient: false, Err: fmt.Errorf("malformed url")}
	}

	lim := f.limiter(src)

	var lastErr error
	for attempt := 0; attempt < f.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := baseBackoff << (attempt - 1)
			log.Printf("fetch %s: retry %d/%d after %v", target, attempt, f.retryAttempts-1, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, &FetchError{URL: target, Transient: true, Err: ctx.Err()}
			}
		}

		if err := lim.Wait(ctx); err != nil {
			return nil, &FetchError{URL: target, Transient: true, Err: err}
		}

		raw, err := f.doFetch(ctx, src.Name, target)
		if err == nil {
			return raw, nil
		}
		if !IsTransient(err) {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

func (f *Fetcher) doFetch(ctx context.Context, source, target string) (*RawFetch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Transient: false, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		// 网络错误与超时一律按瞬时处理
		return nil, &FetchError{URL: target, Transient: true, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// ok
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &FetchError{URL: target, Status: resp.StatusCode, Transient: true, Err: fmt.Errorf("status %d", resp.StatusCode)}
	default:
		return nil, &FetchError{URL: target, Status: resp.StatusCode, Transient: false, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &FetchError{URL: target, Status: resp.StatusCode, Transient: true, Err: err}
	}

	return &RawFetch{
		Source:    source,
		URL:       target,
		Body:      body,
		Status:    resp.StatusCode,
		FetchedAt: time.Now(),
	}, nil
}
