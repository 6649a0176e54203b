package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/clients/n8n"
	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// SaveReelInput is an ephemeral discovery result the user chose to keep.
// SourceRef is the scrape-side identifier; saving the same reel twice
// returns the existing row.
type SaveReelInput struct {
	ClientID     uuid.UUID  `json:"client_id"`
	SourceRef    string     `json:"source_ref"`
	Title        string     `json:"title"`
	URL          string     `json:"url"`
	ThumbnailURL string     `json:"thumbnail_url"`
	Platform     string     `json:"platform"`
	Views        int64      `json:"views"`
	Likes        int64      `json:"likes"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
}

type CreateMarkerInput struct {
	ClientID    uuid.UUID `json:"client_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type ContentService interface {
	SaveDiscoveredReel(ctx context.Context, input SaveReelInput) (*domain.ContentItem, error)
	ListContent(ctx context.Context, clientID uuid.UUID) ([]*domain.ContentItem, error)
	GetContent(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error)
	DeleteContent(ctx context.Context, id uuid.UUID) error

	CreateMarker(ctx context.Context, input CreateMarkerInput) (*domain.ContentMarker, error)
	ListMarkers(ctx context.Context, clientID uuid.UUID) ([]*domain.ContentMarker, error)
	UpdateMarker(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.ContentMarker, error)
	DeleteMarker(ctx context.Context, id uuid.UUID) error

	// GenerateScript asks the script workflow to draft a shooting script
	// for a saved content item.
	GenerateScript(ctx context.Context, contentItemID uuid.UUID) (string, error)
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.ContentItemRepo
	markerRepo  repos.ContentMarkerRepo
	n8n         n8n.Client
}

func NewContentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	contentRepo repos.ContentItemRepo,
	markerRepo repos.ContentMarkerRepo,
	n8nClient n8n.Client,
) ContentService {
	return &contentService{
		db:          db,
		log:         baseLog.With("service", "ContentService"),
		contentRepo: contentRepo,
		markerRepo:  markerRepo,
		n8n:         n8nClient,
	}
}

// SaveDiscoveredReel migrates an ephemeral scrape result into a durable
// content_items row. The source_ref lookup makes re-saving idempotent.
func (s *contentService) SaveDiscoveredReel(ctx context.Context, input SaveReelInput) (*domain.ContentItem, error) {
	dbc := dbctx.New(ctx)

	if input.ClientID == uuid.Nil {
		return nil, fmt.Errorf("client_id is required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, fmt.Errorf("url is required")
	}

	sourceRef := strings.TrimSpace(input.SourceRef)
	if sourceRef != "" {
		existing, err := s.contentRepo.GetBySourceRef(dbc, input.ClientID, sourceRef)
		if err != nil {
			return nil, fmt.Errorf("lookup source ref: %w", err)
		}
		if existing != nil {
			return existing, nil
		}
	}

	platform := input.Platform
	if !domain.ValidPlatform(platform) {
		platform = domain.PlatformInstagram
	}

	item := &domain.ContentItem{
		ID:           uuid.New(),
		ClientID:     input.ClientID,
		Title:        strings.TrimSpace(input.Title),
		URL:          strings.TrimSpace(input.URL),
		ThumbnailURL: strings.TrimSpace(input.ThumbnailURL),
		Platform:     platform,
		Views:        input.Views,
		Likes:        input.Likes,
		PublishedAt:  input.PublishedAt,
		IsSaved:      true,
		SourceRef:    sourceRef,
	}
	created, err := s.contentRepo.Create(dbc, item)
	if err != nil {
		s.log.Error("save reel failed", "client_id", input.ClientID, "source_ref", sourceRef, "error", err)
		return nil, fmt.Errorf("save reel: %w", err)
	}
	return created, nil
}

func (s *contentService) ListContent(ctx context.Context, clientID uuid.UUID) ([]*domain.ContentItem, error) {
	return s.contentRepo.ListByClient(dbctx.New(ctx), clientID)
}

func (s *contentService) GetContent(ctx context.Context, id uuid.UUID) (*domain.ContentItem, error) {
	return s.contentRepo.GetByID(dbctx.New(ctx), id)
}

func (s *contentService) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return s.contentRepo.Delete(dbctx.New(ctx), id)
}

// CreateMarker assigns the next palette color by cycling through the
// fixed palette in creation order.
func (s *contentService) CreateMarker(ctx context.Context, input CreateMarkerInput) (*domain.ContentMarker, error) {
	dbc := dbctx.New(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("marker name is required")
	}

	count, err := s.markerRepo.CountByClient(dbc, input.ClientID)
	if err != nil {
		return nil, fmt.Errorf("count markers: %w", err)
	}

	marker := &domain.ContentMarker{
		ID:          uuid.New(),
		ClientID:    input.ClientID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Color:       domain.MarkerPalette[count%int64(len(domain.MarkerPalette))],
	}
	created, err := s.markerRepo.Create(dbc, marker)
	if err != nil {
		return nil, fmt.Errorf("create marker: %w", err)
	}
	return created, nil
}

func (s *contentService) ListMarkers(ctx context.Context, clientID uuid.UUID) ([]*domain.ContentMarker, error) {
	return s.markerRepo.ListByClient(dbctx.New(ctx), clientID)
}

var updatableMarkerFields = map[string]bool{
	"name":        true,
	"description": true,
	"color":       true,
}

func (s *contentService) UpdateMarker(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.ContentMarker, error) {
	dbc := dbctx.New(ctx)

	existing, err := s.markerRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load marker: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	filtered := map[string]interface{}{}
	for k, v := range updates {
		if updatableMarkerFields[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return existing, nil
	}
	if err := s.markerRepo.UpdateFields(dbc, id, filtered); err != nil {
		return nil, fmt.Errorf("update marker: %w", err)
	}
	return s.markerRepo.GetByID(dbc, id)
}

func (s *contentService) DeleteMarker(ctx context.Context, id uuid.UUID) error {
	return s.markerRepo.Delete(dbctx.New(ctx), id)
}

func (s *contentService) GenerateScript(ctx context.Context, contentItemID uuid.UUID) (string, error) {
	item, err := s.contentRepo.GetByID(dbctx.New(ctx), contentItemID)
	if err != nil {
		return "", fmt.Errorf("load content item: %w", err)
	}
	if item == nil {
		return "", fmt.Errorf("content item %s not found", contentItemID)
	}
	script, err := s.n8n.TriggerScript(ctx, item.URL, item.Title)
	if err != nil {
		return "", fmt.Errorf("generate script: %w", err)
	}
	return script, nil
}
