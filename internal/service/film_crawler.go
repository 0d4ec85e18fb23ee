package service

import (
	"context"
	"log"
	"time"

	"github.com/user/phimhub/internal/model"
	"golang.org/x/sync/singleflight"
)

// FilmSummary 单个 slug 的采集结果
type FilmSummary struct {
	Slug    string `json:"slug"`
	Status  string `json:"status"` // ok / failed
	MovieID int    `json:"movie_id,omitempty"`
	Name    string `json:"name,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FilmCrawler 采集编排器，串起抓取、解析、入库
type FilmCrawler struct {
	fetcher FilmFetcher
	saver   *FilmSaver
	group   singleflight.Group
}

// NewFilmCrawler 创建采集编排器
func NewFilmCrawler(fetcher FilmFetcher, saver *FilmSaver) *FilmCrawler {
	return &FilmCrawler{
		fetcher: fetcher,
		saver:   saver,
	}
}

// CrawlFilms 逐个处理 slug 列表，单个失败不影响其余
// 永远返回完整的结果列表，不向上层抛错
func (c *FilmCrawler) CrawlFilms(ctx context.Context, slugs []string) []FilmSummary {
	results := make([]FilmSummary, 0, len(slugs))
	for _, slug := range slugs {
		results = append(results, c.crawlOne(ctx, slug))
		if ctx.Err() != nil {
			// 上下文取消后剩余 slug 直接标记失败
			for _, rest := range slugs[len(results):] {
				results = append(results, FilmSummary{Slug: rest, Status: "failed", Error: ctx.Err().Error()})
			}
			break
		}
	}
	return results
}

// crawlOne 处理单个 slug，同一 slug 的并发请求合并为一次执行
func (c *FilmCrawler) crawlOne(ctx context.Context, slug string) FilmSummary {
	v, err, _ := c.group.Do(slug, func() (interface{}, error) {
		start := time.Now()
		body, err := c.fetcher.FetchFilm(ctx, slug)
		if err != nil {
			return nil, err
		}
		record, err := ParseFilmRecord(body)
		if err != nil {
			return nil, err
		}
		movie, err := c.saver.SaveFilm(record)
		if err != nil {
			return nil, err
		}
		log.Printf("[CrawlFilm] %s 采集完成，耗时 %v", slug, time.Since(start))
		return movie, nil
	})
	if err != nil {
		log.Printf("[CrawlFilm] %s 采集失败: %v", slug, err)
		return FilmSummary{Slug: slug, Status: "failed", Error: err.Error()}
	}

	movie := v.(*model.Movie)
	return FilmSummary{Slug: slug, Status: "ok", MovieID: movie.MovieID, Name: movie.Name}
}

// CrawlAsync 后台批量采集，立即返回
func (c *FilmCrawler) CrawlAsync(slugs []string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		results := c.CrawlFilms(ctx, slugs)
		okCount := 0
		for _, r := range results {
			if r.Status == "ok" {
				okCount++
			}
		}
		log.Printf("[CrawlFilm] 后台批量采集结束，成功 %d/%d", okCount, len(results))
	}()
}
