package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// CreateClientInput carries the fields a client can be created with.
type CreateClientInput struct {
	Name              string `json:"name"`
	Brief             string `json:"brief"`
	InstagramUsername string `json:"instagram_username"`
	LogoURL           string `json:"logo_url"`
}

// GrowthPoint is one point on the dashboard followers chart.
type GrowthPoint struct {
	Date      string `json:"date"`
	Followers int64  `json:"followers"`
}

// Dashboard aggregates everything the client overview screen renders.
type Dashboard struct {
	Client   *domain.Client           `json:"client"`
	Profiles []*domain.TrackedProfile `json:"profiles"`
	Content  []*domain.ContentItem    `json:"content"`
	Markers  []*domain.ContentMarker  `json:"markers"`
	Events   []*domain.CalendarEvent  `json:"events"`
	Growth   []GrowthPoint            `json:"growth"`
}

type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetFollowersGrowth(ctx context.Context, id uuid.UUID) ([]GrowthPoint, error)
	GetDashboard(ctx context.Context, id uuid.UUID) (*Dashboard, error)
}

type clientService struct {
	db          *gorm.DB
	log         *logger.Logger
	clientRepo  repos.ClientRepo
	profileRepo repos.TrackedProfileRepo
	contentRepo repos.ContentItemRepo
	markerRepo  repos.ContentMarkerRepo
	eventRepo   repos.CalendarEventRepo
	growthRepo  repos.FollowersGrowthRepo
	runRepo     repos.EnrichmentRunRepo
}

func NewClientService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	profileRepo repos.TrackedProfileRepo,
	contentRepo repos.ContentItemRepo,
	markerRepo repos.ContentMarkerRepo,
	eventRepo repos.CalendarEventRepo,
	growthRepo repos.FollowersGrowthRepo,
	runRepo repos.EnrichmentRunRepo,
) ClientService {
	return &clientService{
		db:          db,
		log:         baseLog.With("service", "ClientService"),
		clientRepo:  clientRepo,
		profileRepo: profileRepo,
		contentRepo: contentRepo,
		markerRepo:  markerRepo,
		eventRepo:   eventRepo,
		growthRepo:  growthRepo,
		runRepo:     runRepo,
	}
}

func (s *clientService) Create(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("client name is required")
	}
	client := &domain.Client{
		ID:                uuid.New(),
		Name:              name,
		Brief:             strings.TrimSpace(input.Brief),
		InstagramUsername: strings.TrimPrefix(strings.TrimSpace(input.InstagramUsername), "@"),
		LogoURL:           strings.TrimSpace(input.LogoURL),
		ContentStrategy:   datatypes.JSON([]byte("[]")),
		KeyCompetitors:    datatypes.JSON([]byte("[]")),
	}
	created, err := s.clientRepo.Create(dbctx.New(ctx), client)
	if err != nil {
		s.log.Error("create client failed", "error", err)
		return nil, fmt.Errorf("create client: %w", err)
	}
	return created, nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(dbctx.New(ctx), id)
}

func (s *clientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List(dbctx.New(ctx))
}

var updatableClientFields = map[string]bool{
	"name":               true,
	"brief":              true,
	"instagram_username": true,
	"logo_url":           true,
	"category":           true,
	"sub_category":       true,
	"niche_description":  true,
	"location":           true,
	"target_audience":    true,
	"tone_of_voice":      true,
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.Client, error) {
	dbc := dbctx.New(ctx)

	existing, err := s.clientRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	filtered := map[string]interface{}{}
	for k, v := range updates {
		if updatableClientFields[k] {
			filtered[k] = v
		}
	}
	if len(filtered) == 0 {
		return existing, nil
	}

	if err := s.clientRepo.UpdateFields(dbc, id, filtered); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.clientRepo.GetByID(dbc, id)
}

// Delete removes the client and all dependent rows in one transaction.
func (s *clientService) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, s.db, func(txc dbctx.Context) error {
		if err := s.eventRepo.DeleteByClient(txc, id); err != nil {
			return fmt.Errorf("delete calendar events: %w", err)
		}
		if err := s.markerRepo.DeleteByClient(txc, id); err != nil {
			return fmt.Errorf("delete markers: %w", err)
		}
		if err := s.contentRepo.DeleteByClient(txc, id); err != nil {
			return fmt.Errorf("delete content items: %w", err)
		}
		if err := s.profileRepo.DeleteByClient(txc, id); err != nil {
			return fmt.Errorf("delete tracked profiles: %w", err)
		}
		if err := s.growthRepo.DeleteByClient(txc, id); err != nil {
			return fmt.Errorf("delete growth samples: %w", err)
		}
		if err := s.runRepo.DeleteByClient(txc, id); err != nil {
			return fmt.Errorf("delete enrichment runs: %w", err)
		}
		if err := s.clientRepo.Delete(txc, id); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
}

// GetFollowersGrowth maps daily samples into chart points labeled like
// "Jan 02". Samples with a null follower count render as zero.
func (s *clientService) GetFollowersGrowth(ctx context.Context, id uuid.UUID) ([]GrowthPoint, error) {
	rows, err := s.growthRepo.ListByClient(dbctx.New(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("load growth: %w", err)
	}
	points := make([]GrowthPoint, 0, len(rows))
	for _, row := range rows {
		var followers int64
		if row.Followers != nil {
			followers = *row.Followers
		}
		points = append(points, GrowthPoint{
			Date:      row.RecordedOn.Format("Jan 02"),
			Followers: followers,
		})
	}
	return points, nil
}

func (s *clientService) GetDashboard(ctx context.Context, id uuid.UUID) (*Dashboard, error) {
	dbc := dbctx.New(ctx)

	client, err := s.clientRepo.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if client == nil {
		return nil, nil
	}

	profiles, err := s.profileRepo.ListByClient(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	content, err := s.contentRepo.ListByClient(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	markers, err := s.markerRepo.ListByClient(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load markers: %w", err)
	}
	events, err := s.eventRepo.ListByClient(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	growth, err := s.GetFollowersGrowth(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Client:   client,
		Profiles: profiles,
		Content:  content,
		Markers:  markers,
		Events:   events,
		Growth:   growth,
	}, nil
}
