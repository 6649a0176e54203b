package apify

import (
	"strconv"
	"strings"
	"time"

	"github.com/velmora/brandpulse-backend/internal/domain"
)

// Scrape providers disagree on field names (snake_case vs camelCase,
// nested vs flat). Each provider gets an explicit ordered rule set; the
// first path that yields a value wins. Paths use dots for nesting.

type fieldRule struct {
	Field string
	Paths []string
}

type ruleSet struct {
	Provider string
	Rules    []fieldRule
}

func (rs ruleSet) paths(field string) []string {
	for _, r := range rs.Rules {
		if r.Field == field {
			return r.Paths
		}
	}
	return nil
}

func (rs ruleSet) str(item map[string]any, field string) string {
	for _, p := range rs.paths(field) {
		if v, ok := lookup(item, p); ok {
			if s := asString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func (rs ruleSet) i64(item map[string]any, field string) int64 {
	for _, p := range rs.paths(field) {
		if v, ok := lookup(item, p); ok {
			if n, ok := asInt64(v); ok {
				return n
			}
		}
	}
	return 0
}

func (rs ruleSet) timestamp(item map[string]any, field string) *time.Time {
	for _, p := range rs.paths(field) {
		v, ok := lookup(item, p)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
				if parsed, err := time.Parse(layout, t); err == nil {
					return &parsed
				}
			}
		case float64:
			parsed := time.Unix(int64(t), 0).UTC()
			return &parsed
		}
	}
	return nil
}

func lookup(item map[string]any, path string) (any, bool) {
	cur := any(item)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, cur != nil
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

var instagramProfileRules = ruleSet{
	Provider: "instagram-profile",
	Rules: []fieldRule{
		{Field: "username", Paths: []string{"username", "userName", "ownerUsername"}},
		{Field: "full_name", Paths: []string{"fullName", "full_name", "name"}},
		{Field: "bio", Paths: []string{"biography", "bio", "description"}},
		{Field: "avatar_url", Paths: []string{"profilePicUrlHD", "profilePicUrl", "profile_pic_url", "avatar"}},
		{Field: "followers_count", Paths: []string{"followersCount", "followers_count", "followers", "edge_followed_by.count"}},
		{Field: "posts_count", Paths: []string{"postsCount", "posts_count", "mediaCount", "edge_owner_to_timeline_media.count"}},
	},
}

var instagramReelRules = ruleSet{
	Provider: "instagram-reel",
	Rules: []fieldRule{
		{Field: "source_id", Paths: []string{"id", "pk", "shortCode", "shortcode"}},
		{Field: "username", Paths: []string{"ownerUsername", "owner_username", "username", "owner.username"}},
		{Field: "caption", Paths: []string{"caption", "caption.text", "text", "description"}},
		{Field: "url", Paths: []string{"url", "postUrl", "permalink"}},
		{Field: "video_url", Paths: []string{"videoUrl", "video_url", "videoUrlHD"}},
		{Field: "thumbnail_url", Paths: []string{"displayUrl", "display_url", "thumbnailUrl", "thumbnail_src", "imageUrl"}},
		{Field: "posted_at", Paths: []string{"timestamp", "takenAt", "taken_at_timestamp"}},
		{Field: "view_count", Paths: []string{"videoPlayCount", "videoViewCount", "playCount", "video_view_count", "viewCount"}},
		{Field: "like_count", Paths: []string{"likesCount", "likeCount", "likes", "edge_liked_by.count"}},
		{Field: "comment_count", Paths: []string{"commentsCount", "commentCount", "comments", "edge_media_to_comment.count"}},
	},
}

var tiktokUserRules = ruleSet{
	Provider: "tiktok-user",
	Rules: []fieldRule{
		{Field: "handle", Paths: []string{"uniqueId", "unique_id", "authorMeta.name", "username"}},
		{Field: "full_name", Paths: []string{"nickname", "nickName", "authorMeta.nickName", "fullName"}},
		{Field: "avatar_url", Paths: []string{"avatarLarger", "avatarMedium", "avatarThumb", "authorMeta.avatar"}},
		{Field: "bio", Paths: []string{"signature", "authorMeta.signature", "bio"}},
		{Field: "followers_count", Paths: []string{"fans", "followerCount", "authorMeta.fans", "stats.followerCount"}},
	},
}

func normalizeProfile(item map[string]any) Profile {
	rs := instagramProfileRules
	return Profile{
		Username:       rs.str(item, "username"),
		FullName:       rs.str(item, "full_name"),
		Bio:            rs.str(item, "bio"),
		AvatarURL:      rs.str(item, "avatar_url"),
		FollowersCount: rs.i64(item, "followers_count"),
		PostsCount:     rs.i64(item, "posts_count"),
	}
}

func normalizeReel(item map[string]any) Reel {
	rs := instagramReelRules
	return Reel{
		SourceID:     rs.str(item, "source_id"),
		Username:     rs.str(item, "username"),
		Caption:      rs.str(item, "caption"),
		URL:          rs.str(item, "url"),
		VideoURL:     rs.str(item, "video_url"),
		ThumbnailURL: rs.str(item, "thumbnail_url"),
		PostedAt:     rs.timestamp(item, "posted_at"),
		ViewCount:    rs.i64(item, "view_count"),
		LikeCount:    rs.i64(item, "like_count"),
		CommentCount: rs.i64(item, "comment_count"),
		Platform:     domain.PlatformInstagram,
	}
}

func normalizeTikTokUser(item map[string]any) CompetitorResult {
	rs := tiktokUserRules
	return CompetitorResult{
		Handle:         rs.str(item, "handle"),
		FullName:       rs.str(item, "full_name"),
		Platform:       domain.PlatformTikTok,
		AvatarURL:      rs.str(item, "avatar_url"),
		Bio:            rs.str(item, "bio"),
		FollowersCount: rs.i64(item, "followers_count"),
	}
}
