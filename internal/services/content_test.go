package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/domain"
)

func newContentService(t *testing.T, contentRepo *fakeContentRepo, markerRepo *fakeMarkerRepo, n8nClient *fakeN8N) ContentService {
	t.Helper()
	if contentRepo == nil {
		contentRepo = newFakeContentRepo()
	}
	if markerRepo == nil {
		markerRepo = newFakeMarkerRepo()
	}
	if n8nClient == nil {
		n8nClient = &fakeN8N{}
	}
	return NewContentService(nil, testLog(t), contentRepo, markerRepo, n8nClient)
}

func TestSaveDiscoveredReelIsIdempotent(t *testing.T) {
	repo := newFakeContentRepo()
	svc := newContentService(t, repo, nil, nil)
	clientID := uuid.New()

	input := SaveReelInput{
		ClientID:  clientID,
		SourceRef: "12345",
		Title:     "morning routine",
		URL:       "https://instagram.com/reel/abc",
		Views:     1000,
	}
	first, err := svc.SaveDiscoveredReel(context.Background(), input)
	if err != nil {
		t.Fatalf("SaveDiscoveredReel: %v", err)
	}
	second, err := svc.SaveDiscoveredReel(context.Background(), input)
	if err != nil {
		t.Fatalf("SaveDiscoveredReel: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("re-saving the same source_ref must return the existing row")
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored item, got %d", len(repo.items))
	}
}

func TestSaveDiscoveredReelScopedPerClient(t *testing.T) {
	repo := newFakeContentRepo()
	svc := newContentService(t, repo, nil, nil)

	input := SaveReelInput{SourceRef: "12345", URL: "https://instagram.com/reel/abc"}
	input.ClientID = uuid.New()
	if _, err := svc.SaveDiscoveredReel(context.Background(), input); err != nil {
		t.Fatalf("SaveDiscoveredReel: %v", err)
	}
	input.ClientID = uuid.New()
	if _, err := svc.SaveDiscoveredReel(context.Background(), input); err != nil {
		t.Fatalf("SaveDiscoveredReel: %v", err)
	}
	if len(repo.items) != 2 {
		t.Fatalf("same source_ref under different clients must create separate rows, got %d", len(repo.items))
	}
}

func TestSaveDiscoveredReelNormalizesPlatform(t *testing.T) {
	svc := newContentService(t, nil, nil, nil)
	item, err := svc.SaveDiscoveredReel(context.Background(), SaveReelInput{
		ClientID: uuid.New(),
		URL:      "https://example.com/x",
		Platform: "myspace",
	})
	if err != nil {
		t.Fatalf("SaveDiscoveredReel: %v", err)
	}
	if item.Platform != domain.PlatformInstagram {
		t.Fatalf("unknown platform should default to instagram, got %q", item.Platform)
	}
}

func TestSaveDiscoveredReelValidation(t *testing.T) {
	svc := newContentService(t, nil, nil, nil)
	if _, err := svc.SaveDiscoveredReel(context.Background(), SaveReelInput{URL: "https://x"}); err == nil {
		t.Fatalf("expected error for missing client_id")
	}
	if _, err := svc.SaveDiscoveredReel(context.Background(), SaveReelInput{ClientID: uuid.New()}); err == nil {
		t.Fatalf("expected error for missing url")
	}
}

func TestCreateMarkerCyclesPalette(t *testing.T) {
	svc := newContentService(t, nil, nil, nil)
	clientID := uuid.New()

	for i := 0; i < 10; i++ {
		m, err := svc.CreateMarker(context.Background(), CreateMarkerInput{
			ClientID: clientID,
			Name:     "marker",
		})
		if err != nil {
			t.Fatalf("CreateMarker: %v", err)
		}
		want := domain.MarkerPalette[i%len(domain.MarkerPalette)]
		if m.Color != want {
			t.Fatalf("marker %d got color %q, want %q", i, m.Color, want)
		}
	}
}

func TestCreateMarkerPaletteIsPerClient(t *testing.T) {
	svc := newContentService(t, nil, nil, nil)

	a, _ := svc.CreateMarker(context.Background(), CreateMarkerInput{ClientID: uuid.New(), Name: "a"})
	b, _ := svc.CreateMarker(context.Background(), CreateMarkerInput{ClientID: uuid.New(), Name: "b"})
	if a.Color != domain.MarkerPalette[0] || b.Color != domain.MarkerPalette[0] {
		t.Fatalf("each client starts at the first palette color: %q %q", a.Color, b.Color)
	}
}

func TestGenerateScriptUsesItemURL(t *testing.T) {
	contentRepo := newFakeContentRepo()
	n8nClient := &fakeN8N{script: "Scene 1"}
	svc := newContentService(t, contentRepo, nil, n8nClient)

	item, err := svc.SaveDiscoveredReel(context.Background(), SaveReelInput{
		ClientID: uuid.New(),
		URL:      "https://instagram.com/reel/abc",
		Title:    "hook",
	})
	if err != nil {
		t.Fatalf("SaveDiscoveredReel: %v", err)
	}

	script, err := svc.GenerateScript(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if script != "Scene 1" {
		t.Fatalf("unexpected script %q", script)
	}
	if n8nClient.lastURL != item.URL {
		t.Fatalf("workflow called with %q, want %q", n8nClient.lastURL, item.URL)
	}
}

func TestGenerateScriptMissingItem(t *testing.T) {
	svc := newContentService(t, nil, nil, nil)
	if _, err := svc.GenerateScript(context.Background(), uuid.New()); err == nil {
		t.Fatalf("expected error for unknown content item")
	}
}
