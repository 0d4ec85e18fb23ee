package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(baseURL string) *DefaultFilmFetcher {
	f := NewFilmFetcher(baseURL)
	f.baseDelay = time.Millisecond // 测试不等真实退避
	return f
}

func TestFetchFilmSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"movie": {"name": "x", "slug": "x"}}`))
	}))
	defer srv.Close()

	body, err := newTestFetcher(srv.URL).FetchFilm(context.Background(), "vung-dat-quy-du")
	require.NoError(t, err)
	assert.Equal(t, "/phim/vung-dat-quy-du", gotPath)
	assert.Contains(t, string(body), `"slug": "x"`)
}

func TestFetchFilmRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 前两次 500，第三次成功
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchFilm(context.Background(), "some-slug")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchFilmExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchFilm(context.Background(), "some-slug")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchFilmNotFoundIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(srv.URL).FetchFilm(context.Background(), "khong-ton-tai")
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchFilmContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestFetcher(srv.URL).FetchFilm(ctx, "some-slug")
	assert.ErrorIs(t, err, ErrFetchFailed)
}
