package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

var ErrProfileNotFound = errors.New("instagram profile not found")

// EnrichmentService runs the scrape -> enrich -> persist pipeline for a
// client and records each run in enrichment_runs.
type EnrichmentService interface {
	Enrich(ctx context.Context, clientID uuid.UUID) (*domain.Client, error)
	ListRuns(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.EnrichmentRun, error)
}

type enrichmentService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	growthRepo repos.FollowersGrowthRepo
	runRepo    repos.EnrichmentRunRepo
	postRepo   repos.ScrapedPostRepo
	scraper    apify.Client
	ai         AIService
}

func NewEnrichmentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	growthRepo repos.FollowersGrowthRepo,
	runRepo repos.EnrichmentRunRepo,
	postRepo repos.ScrapedPostRepo,
	scraper apify.Client,
	ai AIService,
) EnrichmentService {
	return &enrichmentService{
		db:         db,
		log:        baseLog.With("service", "EnrichmentService"),
		clientRepo: clientRepo,
		growthRepo: growthRepo,
		runRepo:    runRepo,
		postRepo:   postRepo,
		scraper:    scraper,
		ai:         ai,
	}
}

// EstimatedViews is the dashboard heuristic: floor of followers * 1.5.
func EstimatedViews(followers int64) int64 {
	return int64(math.Floor(float64(followers) * 1.5))
}

func (s *enrichmentService) Enrich(ctx context.Context, clientID uuid.UUID) (*domain.Client, error) {
	dbc := dbctx.New(ctx)

	client, err := s.clientRepo.GetByID(dbc, clientID)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s not found", clientID)
	}

	run, err := s.runRepo.Create(dbc, &domain.EnrichmentRun{
		ID:       uuid.New(),
		ClientID: client.ID,
		Username: client.InstagramUsername,
		Status:   domain.RunStatusRunning,
		Stage:    domain.RunStageScrape,
	})
	if err != nil {
		return nil, fmt.Errorf("create enrichment run: %w", err)
	}

	updated, err := s.enrich(ctx, client, run)
	if err != nil {
		s.failRun(ctx, run.ID, err)
		return nil, err
	}

	if uErr := s.runRepo.UpdateFields(dbc, run.ID, map[string]interface{}{
		"status": domain.RunStatusSucceeded,
		"stage":  domain.RunStageDone,
	}); uErr != nil {
		s.log.Warn("failed to close enrichment run", "run_id", run.ID, "error", uErr)
	}
	return updated, nil
}

func (s *enrichmentService) enrich(ctx context.Context, client *domain.Client, run *domain.EnrichmentRun) (*domain.Client, error) {
	dbc := dbctx.New(ctx)

	profile, err := s.scraper.GetProfile(ctx, client.InstagramUsername)
	if err != nil {
		return nil, fmt.Errorf("scrape profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if err := s.runRepo.UpdateFields(dbc, run.ID, map[string]interface{}{"stage": domain.RunStageEnrich}); err != nil {
		s.log.Warn("failed to advance run stage", "run_id", run.ID, "error", err)
	}

	// Enrichment never fails the pipeline; it degrades to a neutral profile.
	enriched := s.ai.EnrichProfile(ctx, profile, s.recentCaptions(dbc, client.InstagramUsername))

	if err := s.runRepo.UpdateFields(dbc, run.ID, map[string]interface{}{"stage": domain.RunStagePersist}); err != nil {
		s.log.Warn("failed to advance run stage", "run_id", run.ID, "error", err)
	}

	strategy, _ := json.Marshal(enriched.ContentStrategy)
	competitors, _ := json.Marshal(enriched.KeyCompetitors)

	updates := map[string]interface{}{
		"category":          enriched.Category,
		"sub_category":      enriched.SubCategory,
		"niche_description": enriched.NicheDescription,
		"content_strategy":  datatypes.JSON(strategy),
		"location":          enriched.Location,
		"target_audience":   enriched.TargetAudience,
		"tone_of_voice":     enriched.ToneOfVoice,
		"key_competitors":   datatypes.JSON(competitors),
		"followers_count":   profile.FollowersCount,
		"posts_count":       profile.PostsCount,
		"views_count":       EstimatedViews(profile.FollowersCount),
	}
	if profile.AvatarURL != "" {
		updates["logo_url"] = profile.AvatarURL
	}

	err = withTx(ctx, s.db, func(txc dbctx.Context) error {
		if err := s.clientRepo.UpdateFields(txc, client.ID, updates); err != nil {
			return fmt.Errorf("persist enrichment: %w", err)
		}
		if err := s.growthRepo.UpsertDay(txc, client.ID, time.Now(), profile.FollowersCount); err != nil {
			return fmt.Errorf("record growth point: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.clientRepo.GetByID(dbc, client.ID)
}

func (s *enrichmentService) recentCaptions(dbc dbctx.Context, username string) []string {
	if username == "" {
		return nil
	}
	posts, err := s.postRepo.ListByUsernames(dbc, []string{username}, 10)
	if err != nil {
		s.log.Warn("failed to load recent posts for enrichment", "username", username, "error", err)
		return nil
	}
	var captions []string
	for _, p := range posts {
		if p.Caption != "" {
			captions = append(captions, p.Caption)
		}
	}
	return captions
}

func (s *enrichmentService) failRun(ctx context.Context, runID uuid.UUID, cause error) {
	if err := s.runRepo.UpdateFields(dbctx.New(ctx), runID, map[string]interface{}{
		"status": domain.RunStatusFailed,
		"error":  cause.Error(),
	}); err != nil {
		s.log.Warn("failed to mark enrichment run failed", "run_id", runID, "error", err)
	}
}

func (s *enrichmentService) ListRuns(ctx context.Context, clientID uuid.UUID, limit int) ([]*domain.EnrichmentRun, error) {
	return s.runRepo.ListByClient(dbctx.New(ctx), clientID, limit)
}
