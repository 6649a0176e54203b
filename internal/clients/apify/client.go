package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// Profile is a normalized social-media profile scrape result.
type Profile struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int64  `json:"followers_count"`
	PostsCount     int64  `json:"posts_count"`
}

// Reel is a normalized short-form video post from any provider.
type Reel struct {
	SourceID     string     `json:"source_id"`
	Username     string     `json:"username"`
	Caption      string     `json:"caption"`
	URL          string     `json:"url"`
	VideoURL     string     `json:"video_url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	PostedAt     *time.Time `json:"posted_at,omitempty"`
	ViewCount    int64      `json:"view_count"`
	LikeCount    int64      `json:"like_count"`
	CommentCount int64      `json:"comment_count"`
	Platform     string     `json:"platform"`
}

// CompetitorResult is one account returned by competitor search.
type CompetitorResult struct {
	Handle         string `json:"handle"`
	FullName       string `json:"full_name"`
	Platform       string `json:"platform"`
	AvatarURL      string `json:"avatar_url"`
	Bio            string `json:"bio"`
	FollowersCount int64  `json:"followers_count"`
}

// Client wraps the Apify actor invocation API. GetProfile degrades to
// deterministic mock data when no token is configured; the other
// operations refuse to run without one.
type Client interface {
	Configured() bool
	GetProfile(ctx context.Context, username string) (*Profile, error)
	GetReels(ctx context.Context, usernames []string, perUser int) ([]Reel, error)
	SearchTikTok(ctx context.Context, query string, limit int) ([]CompetitorResult, error)
}

type client struct {
	log     *logger.Logger
	baseURL string
	token   string

	profileActor string
	reelActor    string
	tiktokActor  string

	httpClient *http.Client
}

func NewClient(log *logger.Logger) Client {
	return &client{
		log:          log.With("service", "ApifyClient"),
		baseURL:      strings.TrimRight(envutil.String("APIFY_BASE_URL", "https://api.apify.com"), "/"),
		token:        envutil.String("APIFY_API_TOKEN", ""),
		profileActor: envutil.String("APIFY_PROFILE_ACTOR", "apify~instagram-profile-scraper"),
		reelActor:    envutil.String("APIFY_REEL_ACTOR", "apify~instagram-reel-scraper"),
		tiktokActor:  envutil.String("APIFY_TIKTOK_ACTOR", "clockworks~tiktok-scraper"),
		httpClient: &http.Client{
			Timeout: time.Duration(envutil.Int("APIFY_TIMEOUT_SECONDS", 120)) * time.Second,
		},
	}
}

func (c *client) Configured() bool { return c.token != "" }

func (c *client) GetProfile(ctx context.Context, username string) (*Profile, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("empty username")
	}
	if !c.Configured() {
		// Demo fallback: profile fetch is the one operation that works
		// without a token.
		c.log.Warn("APIFY_API_TOKEN not set, returning mock profile", "username", username)
		return mockProfile(username), nil
	}

	items, err := c.runActor(ctx, c.profileActor, map[string]any{
		"usernames":    []string{username},
		"resultsLimit": 1,
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	profile := normalizeProfile(items[0])
	if profile.Username == "" {
		profile.Username = username
	}
	return &profile, nil
}

func (c *client) GetReels(ctx context.Context, usernames []string, perUser int) ([]Reel, error) {
	if !c.Configured() {
		return nil, apierr.MissingConfig("APIFY_API_TOKEN")
	}
	if perUser <= 0 {
		perUser = 10
	}

	// Sequential by design: one failing username is logged and skipped,
	// it never aborts the batch.
	var out []Reel
	for _, raw := range usernames {
		username := strings.TrimPrefix(strings.TrimSpace(raw), "@")
		if username == "" {
			continue
		}
		items, err := c.runActor(ctx, c.reelActor, map[string]any{
			"username":     []string{username},
			"resultsLimit": perUser,
		})
		if err != nil {
			c.log.Warn("reel fetch failed, skipping username", "username", username, "error", err)
			continue
		}
		for _, item := range items {
			reel := normalizeReel(item)
			if reel.Username == "" {
				reel.Username = username
			}
			out = append(out, reel)
		}
	}
	return out, nil
}

func (c *client) SearchTikTok(ctx context.Context, query string, limit int) ([]CompetitorResult, error) {
	if !c.Configured() {
		return nil, apierr.MissingConfig("APIFY_API_TOKEN")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}
	items, err := c.runActor(ctx, c.tiktokActor, map[string]any{
		"searchQueries":  []string{query},
		"resultsPerPage": limit,
		"searchSection":  "user",
	})
	if err != nil {
		return nil, err
	}
	out := make([]CompetitorResult, 0, len(items))
	for _, item := range items {
		res := normalizeTikTokUser(item)
		if res.Handle == "" {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (c *client) runActor(ctx context.Context, actor string, input any) ([]map[string]any, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(actor), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create actor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.Upstream("apify", 0, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Upstream("apify", resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.Upstream("apify", resp.StatusCode, fmt.Errorf("actor %s: %s", actor, truncate(string(raw), 200)))
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apierr.Upstream("apify", resp.StatusCode, fmt.Errorf("decode dataset items: %w", err))
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// mockProfile derives stable demo numbers from the username so repeated
// calls agree with each other.
func mockProfile(username string) *Profile {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(username)))
	seed := int64(h.Sum32())
	return &Profile{
		Username:       username,
		FullName:       strings.ReplaceAll(username, "_", " "),
		Bio:            "Demo profile for " + username,
		AvatarURL:      "https://placehold.co/150x150?text=" + url.QueryEscape(username),
		FollowersCount: 1000 + seed%90000,
		PostsCount:     10 + seed%490,
	}
}
