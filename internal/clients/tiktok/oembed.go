package tiktok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// Cache stores resolved thumbnail URLs keyed by video URL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Resolver turns TikTok video URLs into thumbnail URLs via the public
// oEmbed endpoint. Lookups are cached and deduplicated so a burst of
// requests for the same video hits TikTok once.
type Resolver interface {
	Thumbnail(ctx context.Context, videoURL string) (string, error)
}

type resolver struct {
	log        *logger.Logger
	oembedURL  string
	httpClient *http.Client
	cache      Cache
	ttl        time.Duration
	group      singleflight.Group
}

func NewResolver(log *logger.Logger, cache Cache) Resolver {
	return &resolver{
		log:       log.With("service", "TikTokResolver"),
		oembedURL: strings.TrimRight(envutil.String("TIKTOK_OEMBED_URL", "https://www.tiktok.com/oembed"), "/"),
		// oEmbed lookups never block a listing for more than 5s.
		httpClient: &http.Client{Timeout: 5 * time.Second},
		cache:      cache,
		ttl:        time.Duration(envutil.Int("TIKTOK_THUMB_TTL_HOURS", 24)) * time.Hour,
	}
}

func (r *resolver) Thumbnail(ctx context.Context, videoURL string) (string, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return "", fmt.Errorf("empty video url")
	}

	if thumb, ok := r.cache.Get(ctx, videoURL); ok {
		return thumb, nil
	}

	v, err, _ := r.group.Do(videoURL, func() (any, error) {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		thumb, err := r.fetch(ctx, videoURL)
		if err != nil {
			return "", err
		}
		r.cache.Set(ctx, videoURL, thumb, r.ttl)
		return thumb, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *resolver) fetch(ctx context.Context, videoURL string) (string, error) {
	endpoint := r.oembedURL + "?url=" + url.QueryEscape(videoURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create oembed request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", apierr.Upstream("tiktok", 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apierr.Upstream("tiktok", resp.StatusCode, fmt.Errorf("oembed lookup for %s", videoURL))
	}

	var payload struct {
		ThumbnailURL string `json:"thumbnail_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apierr.Upstream("tiktok", resp.StatusCode, fmt.Errorf("decode oembed: %w", err))
	}
	if payload.ThumbnailURL == "" {
		return "", apierr.Upstream("tiktok", resp.StatusCode, fmt.Errorf("oembed missing thumbnail_url"))
	}
	return payload.ThumbnailURL, nil
}

// MemoryCache is the in-process fallback when Redis is not configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}
