package apify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

func testClient(t *testing.T, baseURL, token string) *client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &client{
		log:          log,
		baseURL:      strings.TrimRight(baseURL, "/"),
		token:        token,
		profileActor: "apify~instagram-profile-scraper",
		reelActor:    "apify~instagram-reel-scraper",
		tiktokActor:  "clockworks~tiktok-scraper",
		httpClient:   &http.Client{Timeout: 5 * time.Second},
	}
}

func TestGetProfileWithoutTokenReturnsDeterministicMock(t *testing.T) {
	c := testClient(t, "http://unused", "")

	first, err := c.GetProfile(context.Background(), "@glowlab")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	second, err := c.GetProfile(context.Background(), "glowlab")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if first.Username != "glowlab" {
		t.Fatalf("expected @ stripped, got %q", first.Username)
	}
	if first.FollowersCount != second.FollowersCount || first.PostsCount != second.PostsCount {
		t.Fatalf("mock profile must be deterministic: %+v vs %+v", first, second)
	}
	if first.FollowersCount < 1000 {
		t.Fatalf("unexpected mock followers %d", first.FollowersCount)
	}
}

func TestGetReelsWithoutTokenIsConfigurationError(t *testing.T) {
	c := testClient(t, "http://unused", "")
	_, err := c.GetReels(context.Background(), []string{"glowlab"}, 5)
	if !apierr.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "APIFY_API_TOKEN is not set") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestGetReelsSkipsFailingUsername(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Username []string `json:"username"`
		}
		_ = json.NewDecoder(r.Body).Decode(&input)
		calls = append(calls, input.Username[0])
		if input.Username[0] == "broken" {
			http.Error(w, "actor crashed", http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": "r1", "ownerUsername": input.Username[0], "videoPlayCount": 42},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, "tok")
	reels, err := c.GetReels(context.Background(), []string{"glowlab", "broken", "rival"}, 5)
	if err != nil {
		t.Fatalf("GetReels: %v", err)
	}
	if len(reels) != 2 {
		t.Fatalf("expected 2 reels, got %d", len(reels))
	}
	if len(calls) != 3 {
		t.Fatalf("expected all 3 usernames attempted, got %v", calls)
	}
	if reels[0].Username != "glowlab" || reels[1].Username != "rival" {
		t.Fatalf("unexpected reels: %+v", reels)
	}
}

func TestRunActorUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, "tok")
	_, err := c.GetProfile(context.Background(), "glowlab")
	if !apierr.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestSearchTikTokFiltersHandleless(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"uniqueId": "glow.lab", "fans": 100},
			{"signature": "no handle here"},
		})
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, "tok")
	out, err := c.SearchTikTok(context.Background(), "skincare", 5)
	if err != nil {
		t.Fatalf("SearchTikTok: %v", err)
	}
	if len(out) != 1 || out[0].Handle != "glow.lab" {
		t.Fatalf("unexpected results: %+v", out)
	}
}
