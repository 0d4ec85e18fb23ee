package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// FilmFetcher 上游影片详情抓取接口，方便测试替换
type FilmFetcher interface {
	FetchFilm(ctx context.Context, slug string) ([]byte, error)
}

// DefaultFilmFetcher 默认实现，带重试的 HTTP 抓取
type DefaultFilmFetcher struct {
	baseURL     string
	client      *http.Client
	maxAttempts int
	baseDelay   time.Duration
}

// NewFilmFetcher 创建抓取器，baseURL 形如 https://ophim1.com
func NewFilmFetcher(baseURL string) *DefaultFilmFetcher {
	return &DefaultFilmFetcher{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		maxAttempts: 3,
		baseDelay:   time.Second,
	}
}

// FetchFilm 抓取 {base}/phim/{slug}，最多尝试 3 次，间隔指数退避
// 非 2xx 和网络错误都算失败；重试耗尽后返回 ErrFetchFailed
func (f *DefaultFilmFetcher) FetchFilm(ctx context.Context, slug string) ([]byte, error) {
	url := fmt.Sprintf("%s/phim/%s", f.baseURL, slug)

	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if attempt > 1 {
			// 第 n 次重试前等待 baseDelay * 2^(n-2)
			delay := f.baseDelay << (attempt - 2)
			log.Printf("[CrawlFilm] %s 第 %d 次请求失败，%v 后重试: %v", slug, attempt-1, delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrFetchFailed, ctx.Err())
			}
		}

		body, err := f.doFetch(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %s 重试 %d 次后放弃: %v", ErrFetchFailed, slug, f.maxAttempts, lastErr)
}

func (f *DefaultFilmFetcher) doFetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("上游返回状态码 %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
