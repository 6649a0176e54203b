package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/clients/n8n"
	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// DiscoveryResult is the combined output of one competitor discovery
// run. Channels fail independently: an empty slice plus a note means
// that channel was skipped or errored, not that the run failed.
type DiscoveryResult struct {
	Keywords  []string                 `json:"keywords"`
	TikTok    []apify.CompetitorResult `json:"tiktok"`
	Instagram json.RawMessage          `json:"instagram,omitempty"`
	Notes     []string                 `json:"notes,omitempty"`
}

// DiscoveryService finds competitor accounts for a client from its
// niche keywords.
type DiscoveryService interface {
	Discover(ctx context.Context, clientID uuid.UUID) (*DiscoveryResult, error)
}

type discoveryService struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	ai         AIService
	scraper    apify.Client
	n8n        n8n.Client
}

func NewDiscoveryService(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	ai AIService,
	scraper apify.Client,
	n8nClient n8n.Client,
) DiscoveryService {
	return &discoveryService{
		db:         db,
		log:        baseLog.With("service", "DiscoveryService"),
		clientRepo: clientRepo,
		ai:         ai,
		scraper:    scraper,
		n8n:        n8nClient,
	}
}

func (s *discoveryService) Discover(ctx context.Context, clientID uuid.UUID) (*DiscoveryResult, error) {
	client, err := s.clientRepo.GetByID(dbctx.New(ctx), clientID)
	if err != nil {
		return nil, fmt.Errorf("load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client %s not found", clientID)
	}

	keywords := s.ai.GenerateSearchKeywords(ctx, client)
	result := &DiscoveryResult{Keywords: keywords, TikTok: []apify.CompetitorResult{}}
	if len(keywords) == 0 {
		result.Notes = append(result.Notes, "no keywords available; set the client's category first")
		return result, nil
	}

	// Instagram goes through the keyword-search workflow.
	raw, err := s.n8n.TriggerKeywordSearch(ctx, keywords, clientID)
	if err != nil {
		s.log.Warn("instagram discovery failed", "client_id", clientID, "error", err)
		result.Notes = append(result.Notes, "instagram search unavailable: "+err.Error())
	} else {
		result.Instagram = raw
	}

	// TikTok goes straight through the scraper, one query per keyword.
	for _, kw := range keywords {
		found, err := s.scraper.SearchTikTok(ctx, kw, 10)
		if err != nil {
			s.log.Warn("tiktok discovery failed", "keyword", kw, "error", err)
			result.Notes = append(result.Notes, fmt.Sprintf("tiktok search for %q unavailable", kw))
			continue
		}
		result.TikTok = append(result.TikTok, found...)
	}

	return result, nil
}
