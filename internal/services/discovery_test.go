package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
)

type fakeClientRepo struct {
	clients     map[uuid.UUID]*domain.Client
	lastUpdates map[string]interface{}
}

func newFakeClientRepo(list ...*domain.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: map[uuid.UUID]*domain.Client{}}
	for _, c := range list {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) Create(_ dbctx.Context, c *domain.Client) (*domain.Client, error) {
	f.clients[c.ID] = c
	return c, nil
}

func (f *fakeClientRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.Client, error) {
	return f.clients[id], nil
}

func (f *fakeClientRepo) List(_ dbctx.Context) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeClientRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	f.lastUpdates = updates
	return nil
}

func (f *fakeClientRepo) Delete(_ dbctx.Context, id uuid.UUID) error {
	delete(f.clients, id)
	return nil
}

func TestDiscoverCombinesChannels(t *testing.T) {
	client := &domain.Client{ID: uuid.New(), Name: "Glow", Category: "Beauty", SubCategory: "Skincare"}
	scraper := &fakeScraper{tiktok: []apify.CompetitorResult{{Handle: "glow.rival"}}}
	n8nClient := &fakeN8N{searchResp: json.RawMessage(`[{"username":"insta.rival"}]`)}

	svc := NewDiscoveryService(nil, testLog(t), newFakeClientRepo(client), NewAIService(testLog(t), nil), scraper, n8nClient)
	result, err := svc.Discover(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(result.Keywords) != 2 {
		t.Fatalf("expected fallback keywords, got %v", result.Keywords)
	}
	// One TikTok search per keyword.
	if len(result.TikTok) != 2 {
		t.Fatalf("expected 2 tiktok results, got %d", len(result.TikTok))
	}
	if result.Instagram == nil {
		t.Fatalf("expected instagram payload")
	}
}

func TestDiscoverChannelFailureIsIsolated(t *testing.T) {
	client := &domain.Client{ID: uuid.New(), Name: "Glow", Category: "Beauty"}
	scraper := &fakeScraper{tiktokErr: errors.New("quota")}
	n8nClient := &fakeN8N{searchErr: errors.New("workflow down")}

	svc := NewDiscoveryService(nil, testLog(t), newFakeClientRepo(client), NewAIService(testLog(t), nil), scraper, n8nClient)
	result, err := svc.Discover(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("channel failures must not fail the run: %v", err)
	}
	if len(result.TikTok) != 0 || result.Instagram != nil {
		t.Fatalf("unexpected results: %+v", result)
	}
	if len(result.Notes) == 0 {
		t.Fatalf("expected failure notes")
	}
}

func TestDiscoverWithoutKeywords(t *testing.T) {
	client := &domain.Client{ID: uuid.New(), Name: "Fresh"}
	svc := NewDiscoveryService(nil, testLog(t), newFakeClientRepo(client), NewAIService(testLog(t), nil), &fakeScraper{}, &fakeN8N{})

	result, err := svc.Discover(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(result.Keywords) != 0 || len(result.Notes) == 0 {
		t.Fatalf("expected empty run with a note: %+v", result)
	}
}

func TestDiscoverUnknownClient(t *testing.T) {
	svc := NewDiscoveryService(nil, testLog(t), newFakeClientRepo(), NewAIService(testLog(t), nil), &fakeScraper{}, &fakeN8N{})
	if _, err := svc.Discover(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error for unknown client")
	}
}
