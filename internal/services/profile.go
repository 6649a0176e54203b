package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/clients/tiktok"
	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type AddProfileInput struct {
	ClientID uuid.UUID `json:"client_id"`
	Handle   string    `json:"handle"`
	Platform string    `json:"platform"`
	Tags     []string  `json:"tags"`
}

// ProfileService manages the competitor accounts tracked per client and
// serves their recent posts.
type ProfileService interface {
	Add(ctx context.Context, input AddProfileInput) (*domain.TrackedProfile, error)
	List(ctx context.Context, clientID uuid.UUID) ([]*domain.TrackedProfile, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RecentPosts serves tracked competitors' posts from the ingestion
	// table. TikTok posts missing a thumbnail get one resolved via oEmbed;
	// a failed resolution leaves the post untouched.
	RecentPosts(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.ScrapedPost, error)

	// RefreshReels pulls fresh reels for every tracked Instagram handle.
	RefreshReels(ctx context.Context, clientID uuid.UUID, perUser int) ([]apify.Reel, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.TrackedProfileRepo
	postRepo    repos.ScrapedPostRepo
	scraper     apify.Client
	thumbs      tiktok.Resolver
}

func NewProfileService(
	db *gorm.DB,
	baseLog *logger.Logger,
	profileRepo repos.TrackedProfileRepo,
	postRepo repos.ScrapedPostRepo,
	scraper apify.Client,
	thumbs tiktok.Resolver,
) ProfileService {
	return &profileService{
		db:          db,
		log:         baseLog.With("service", "ProfileService"),
		profileRepo: profileRepo,
		postRepo:    postRepo,
		scraper:     scraper,
		thumbs:      thumbs,
	}
}

func (s *profileService) Add(ctx context.Context, input AddProfileInput) (*domain.TrackedProfile, error) {
	handle := strings.TrimPrefix(strings.TrimSpace(input.Handle), "@")
	if handle == "" {
		return nil, fmt.Errorf("handle is required")
	}
	platform := input.Platform
	if platform == "" {
		platform = domain.PlatformInstagram
	}
	if !domain.ValidPlatform(platform) {
		return nil, fmt.Errorf("unknown platform %q", input.Platform)
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	profile := &domain.TrackedProfile{
		ID:       uuid.New(),
		ClientID: input.ClientID,
		Handle:   handle,
		Platform: platform,
		Tags:     datatypes.JSON(rawTags),
	}

	// Avatar is a decoration; profile creation succeeds without it.
	if scraped, err := s.scraper.GetProfile(ctx, handle); err == nil && scraped != nil {
		profile.AvatarURL = scraped.AvatarURL
	} else if err != nil {
		s.log.Warn("avatar lookup failed", "handle", handle, "error", err)
	}

	created, err := s.profileRepo.Create(dbctx.New(ctx), profile)
	if err != nil {
		return nil, fmt.Errorf("create tracked profile: %w", err)
	}
	return created, nil
}

func (s *profileService) List(ctx context.Context, clientID uuid.UUID) ([]*domain.TrackedProfile, error) {
	return s.profileRepo.ListByClient(dbctx.New(ctx), clientID)
}

func (s *profileService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.profileRepo.Delete(dbctx.New(ctx), id)
}

func (s *profileService) RecentPosts(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.ScrapedPost, error) {
	dbc := dbctx.New(ctx)

	profiles, err := s.profileRepo.ListByClient(dbc, clientID)
	if err != nil {
		return nil, fmt.Errorf("load tracked profiles: %w", err)
	}
	if len(profiles) == 0 {
		return []*domain.ScrapedPost{}, nil
	}

	usernames := make([]string, 0, len(profiles))
	for _, p := range profiles {
		usernames = append(usernames, p.Handle)
	}

	posts, err := s.postRepo.ListByUsernames(dbc, usernames, limit)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	if s.thumbs != nil {
		for _, post := range posts {
			if post.Platform != domain.PlatformTikTok || post.ThumbnailURL != "" || post.VideoURL == "" {
				continue
			}
			thumb, err := s.thumbs.Thumbnail(ctx, post.VideoURL)
			if err != nil {
				s.log.Warn("thumbnail resolution failed", "video_url", post.VideoURL, "error", err)
				continue
			}
			post.ThumbnailURL = thumb
		}
	}
	return posts, nil
}

func (s *profileService) RefreshReels(ctx context.Context, clientID uuid.UUID, perUser int) ([]apify.Reel, error) {
	handles, err := s.profileRepo.HandlesByClient(dbctx.New(ctx), clientID, domain.PlatformInstagram)
	if err != nil {
		return nil, fmt.Errorf("load handles: %w", err)
	}
	if len(handles) == 0 {
		return []apify.Reel{}, nil
	}
	return s.scraper.GetReels(ctx, handles, perUser)
}
