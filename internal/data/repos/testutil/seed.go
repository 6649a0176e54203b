package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
)

func SeedClient(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *domain.Client {
	tb.Helper()
	c := &domain.Client{
		ID:                uuid.New(),
		Name:              name,
		InstagramUsername: name,
		ContentStrategy:   datatypes.JSON([]byte("[]")),
		KeyCompetitors:    datatypes.JSON([]byte("[]")),
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed client: %v", err)
	}
	return c
}

func SeedTrackedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID uuid.UUID, handle, platform string) *domain.TrackedProfile {
	tb.Helper()
	p := &domain.TrackedProfile{
		ID:       uuid.New(),
		ClientID: clientID,
		Handle:   handle,
		Platform: platform,
		Tags:     datatypes.JSON([]byte("[]")),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed tracked profile: %v", err)
	}
	return p
}

func SeedContentItem(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID uuid.UUID, sourceRef string) *domain.ContentItem {
	tb.Helper()
	item := &domain.ContentItem{
		ID:        uuid.New(),
		ClientID:  clientID,
		Title:     "reel",
		URL:       "https://example.com/reel/" + sourceRef,
		Platform:  domain.PlatformInstagram,
		IsSaved:   true,
		SourceRef: sourceRef,
	}
	if err := tx.WithContext(ctx).Create(item).Error; err != nil {
		tb.Fatalf("seed content item: %v", err)
	}
	return item
}

func SeedMarker(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID uuid.UUID, name, color string) *domain.ContentMarker {
	tb.Helper()
	m := &domain.ContentMarker{
		ID:       uuid.New(),
		ClientID: clientID,
		Name:     name,
		Color:    color,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed marker: %v", err)
	}
	return m
}

func SeedCalendarEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, clientID uuid.UUID, markerID *uuid.UUID, at time.Time, groupID *uuid.UUID) *domain.CalendarEvent {
	tb.Helper()
	e := &domain.CalendarEvent{
		ID:                uuid.New(),
		ClientID:          clientID,
		ScheduledAt:       at,
		MarkerID:          markerID,
		Status:            domain.EventStatusScheduled,
		RecurrenceGroupID: groupID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed calendar event: %v", err)
	}
	return e
}

func SeedScrapedPost(tb testing.TB, ctx context.Context, tx *gorm.DB, username string, postedAt time.Time) *domain.ScrapedPost {
	tb.Helper()
	p := &domain.ScrapedPost{
		ID:       uuid.New(),
		Username: username,
		Caption:  "caption",
		PostedAt: &postedAt,
		Platform: domain.PlatformInstagram,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed scraped post: %v", err)
	}
	return p
}
