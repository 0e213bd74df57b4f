package collector

import (
	"errors"
	"fmt"
	"time"
)

// RawFetch 是 Fetcher 到 Extractor 之间的临时交接结构，提取完成后即丢弃
type RawFetch struct {
	Source    string
	URL       string
	Body      []byte
	Status    int
	FetchedAt time.Time
}

// FetchError 区分瞬时失败（超时 / 5xx / 429，可重试）与永久失败（其余 4xx / 非法 URL）
type FetchError struct {
	URL       string
	Status    int
	Transient bool
	Err       error
}

func (e *FetchError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}
	if e.Status > 0 {
		return fmt.Sprintf("fetch %s: %s failure, status %d: %v", e.URL, kind, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s failure: %v", e.URL, kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsTransient 判断错误是否为可重试的瞬时抓取失败
func IsTransient(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Transient
}
