package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/LJTian/DailyDigest/internal/config"
)

func testSource(name string, rateSeconds float64) *config.SourceConfig {
	return &config.SourceConfig{
		Name:             name,
		BaseURL:          "https://example.com",
		RateLimitSeconds: rateSeconds,
		MaxArticles:      10,
	}
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != userAgent {
			t.Errorf("unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("<html>hello</html>"))
	}))
	defer srv.Close()

	f := NewFetcher(2*time.Second, 3)
	raw, err := f.Fetch(context.Background(), testSource("s1", 0.001), srv.URL)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if raw.Status != http.StatusOK {
		t.Fatalf("unexpected status: %d", raw.Status)
	}
	if string(raw.Body) != "<html>hello</html>" {
		t.Fatalf("unexpected body: %q", raw.Body)
	}
	if raw.Source != "s1" {
		t.Fatalf("unexpected source: %s", raw.Source)
	}
}

func TestFetchRetriesTransientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(2*time.Second, 3)
	raw, err := f.Fetch(context.Background(), testSource("s1", 0.001), srv.URL)
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if string(raw.Body) != "ok" {
		t.Fatalf("unexpected body: %q", raw.Body)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
}

func TestFetchPermanentErrorNoRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher(2*time.Second, 3)
	_, err := f.Fetch(context.Background(), testSource("s1", 0.001), srv.URL)
	if err == nil {
		t.Fatalf("expected error for 404")
	}
	if IsTransient(err) {
		t.Fatalf("404 must be permanent, got transient: %v", err)
	}
	// 永久错误不重试
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected single attempt, got %d", n)
	}
}

func TestFetchTransientClassification(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		f := NewFetcher(time.Second, 1)
		_, err := f.Fetch(context.Background(), testSource("s1", 0.001), srv.URL)
		srv.Close()
		if err == nil {
			t.Fatalf("expected error for status %d", status)
		}
		if !IsTransient(err) {
			t.Fatalf("status %d must be transient, got %v", status, err)
		}
	}
}

func TestFetchMalformedURL(t *testing.T) {
	f := NewFetcher(time.Second, 3)
	_, err := f.Fetch(context.Background(), testSource("s1", 0.001), "not a url")
	if err == nil {
		t.Fatalf("expected error for malformed url")
	}
	if IsTransient(err) {
		t.Fatalf("malformed url must be permanent")
	}
}

func TestFetchRateLimitPerSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := NewFetcher(2*time.Second, 1)
	src := testSource("slow", 0.2)

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := f.Fetch(context.Background(), src, srv.URL); err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	// 首个请求消耗初始令牌，其后两次各需等待约 0.2s
	if elapsed := time.Since(start); elapsed < 350*time.Millisecond {
		t.Fatalf("expected per-source rate limiting to space requests, elapsed %v", elapsed)
	}

	// 不同的源互不影响：新源立即可用
	fastStart := time.Now()
	if _, err := f.Fetch(context.Background(), testSource("fast", 0.001), srv.URL); err != nil {
		t.Fatalf("fetch fast source: %v", err)
	}
	if elapsed := time.Since(fastStart); elapsed > 150*time.Millisecond {
		t.Fatalf("independent source should not wait, elapsed %v", elapsed)
	}
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewFetcher(5*time.Second, 3)
	_, err := f.Fetch(ctx, testSource("s1", 0.001), srv.URL)
	if err == nil {
		t.Fatalf("expected error when context expires")
	}
}
