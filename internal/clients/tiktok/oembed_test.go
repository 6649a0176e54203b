package tiktok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

func testResolver(t *testing.T, oembedURL string) *resolver {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &resolver{
		log:        log,
		oembedURL:  oembedURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cache:      NewMemoryCache(),
		ttl:        time.Hour,
	}
}

func TestThumbnailResolvesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("url") != "https://www.tiktok.com/@glow/video/1" {
			t.Errorf("unexpected url param %q", r.URL.Query().Get("url"))
		}
		_, _ = w.Write([]byte(`{"thumbnail_url": "https://cdn.tiktok.com/thumb1.jpg"}`))
	}))
	defer srv.Close()

	r := testResolver(t, srv.URL)
	for i := 0; i < 3; i++ {
		thumb, err := r.Thumbnail(context.Background(), "https://www.tiktok.com/@glow/video/1")
		if err != nil {
			t.Fatalf("Thumbnail: %v", err)
		}
		if thumb != "https://cdn.tiktok.com/thumb1.jpg" {
			t.Fatalf("unexpected thumb %q", thumb)
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 upstream hit, got %d", hits.Load())
	}
}

func TestThumbnailDeduplicatesConcurrentLookups(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"thumbnail_url": "https://cdn.tiktok.com/thumb.jpg"}`))
	}))
	defer srv.Close()

	r := testResolver(t, srv.URL)
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Thumbnail(context.Background(), "https://www.tiktok.com/@glow/video/2"); err != nil {
				t.Errorf("Thumbnail: %v", err)
			}
		}()
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Fatalf("expected singleflight to collapse to 1 hit, got %d", hits.Load())
	}
}

func TestThumbnailUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	r := testResolver(t, srv.URL)
	_, err := r.Thumbnail(context.Background(), "https://www.tiktok.com/@glow/video/3")
	if !apierr.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	c := NewMemoryCache()
	c.Set(context.Background(), "k", "v", 10*time.Millisecond)
	if v, ok := c.Get(context.Background(), "k"); !ok || v != "v" {
		t.Fatalf("expected fresh hit, got %q %v", v, ok)
	}
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatalf("expected expiry")
	}
}
