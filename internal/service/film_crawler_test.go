package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func upstreamPayload(slug, name string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"status": true,
		"movie": map[string]interface{}{
			"name": name,
			"slug": slug,
			"year": 2023,
		},
		"episodes": []map[string]interface{}{
			{
				"server_name": "Vietsub #1",
				"server_data": []map[string]string{
					{"name": "Tập 01", "slug": "tap-01", "link_embed": "https://play.example.com/" + slug},
				},
			},
		},
	})
	return string(body)
}

func newTestCrawler(t *testing.T, handler http.HandlerFunc) (*FilmCrawler, *fakeFilmStore, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := newFakeFilmStore()
	crawler := NewFilmCrawler(newTestFetcher(srv.URL), NewFilmSaver(store))
	return crawler, store, srv
}

func TestCrawlFilmsEndToEnd(t *testing.T) {
	crawler, store, _ := newTestCrawler(t, func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/phim/")
		fmt.Fprint(w, upstreamPayload(slug, "Phim "+slug))
	})

	results := crawler.CrawlFilms(context.Background(), []string{"phim-mot", "phim-hai"})
	require.Len(t, results, 2)

	for _, result := range results {
		assert.Equal(t, "ok", result.Status)
		assert.NotZero(t, result.MovieID)
		assert.Empty(t, result.Error)
	}
	assert.Len(t, store.movies, 2)
	assert.Len(t, store.episodes, 2)
}

func TestCrawlFilmsIsolatesFailures(t *testing.T) {
	crawler, store, _ := newTestCrawler(t, func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimPrefix(r.URL.Path, "/phim/")
		switch slug {
		case "phim-hong":
			w.WriteHeader(http.StatusInternalServerError)
		case "phim-rac":
			fmt.Fprint(w, `{"status": true}`) // 缺 movie 块
		default:
			fmt.Fprint(w, upstreamPayload(slug, "Phim "+slug))
		}
	})

	results := crawler.CrawlFilms(context.Background(), []string{"phim-tot", "phim-hong", "phim-rac", "phim-cuoi"})
	require.Len(t, results, 4)

	assert.Equal(t, "ok", results[0].Status)
	assert.Equal(t, "failed", results[1].Status)
	assert.Contains(t, results[1].Error, ErrFetchFailed.Error())
	assert.Equal(t, "failed", results[2].Status)
	assert.Contains(t, results[2].Error, ErrMalformedPayload.Error())
	// 前面失败不影响后面的 slug
	assert.Equal(t, "ok", results[3].Status)

	assert.Len(t, store.movies, 2)
}

func TestCrawlFilmsEmptySlugList(t *testing.T) {
	crawler, _, _ := newTestCrawler(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("不应发起任何请求")
	})

	results := crawler.CrawlFilms(context.Background(), nil)
	assert.Empty(t, results)
}

func TestCrawlFilmsReportsSummaryFields(t *testing.T) {
	crawler, _, _ := newTestCrawler(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, upstreamPayload("phim-mot", "Tên Phim"))
	})

	results := crawler.CrawlFilms(context.Background(), []string{"phim-mot"})
	require.Len(t, results, 1)
	assert.Equal(t, "phim-mot", results[0].Slug)
	assert.Equal(t, "Tên Phim", results[0].Name)
}
