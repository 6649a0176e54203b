package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/velmora/brandpulse-backend/internal/services"
)

func TestScheduleCommandConfirmSwapsPlaceholder(t *testing.T) {
	calendarSvc := &fakeCalendarService{}
	store := testStore(t, nil, nil, calendarSvc)
	ctx := context.Background()

	c, _ := store.AddClient(ctx, services.CreateClientInput{Name: "A"})
	item, _ := store.SaveReel(ctx, services.SaveReelInput{ClientID: c.ID, SourceRef: "r1", URL: "https://x"})

	cmd := store.NewScheduleCommand(services.ScheduleInput{
		ClientID:      c.ID,
		ContentItemID: &item.ID,
		StartAt:       time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		Recurrence:    services.Recurrence{Mode: services.RecurrenceWeeks, Weeks: 3},
	})

	cmd.Apply()
	if got := len(store.ActiveClient().Events); got != 1 {
		t.Fatalf("expected 1 placeholder after Apply, got %d", got)
	}
	placeholderID := store.ActiveClient().Events[0].ID

	events, err := cmd.Commit(ctx)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	cmd.Confirm(events)

	mirrored := store.ActiveClient().Events
	if len(mirrored) != 3 {
		t.Fatalf("expected 3 confirmed events, got %d", len(mirrored))
	}
	for _, e := range mirrored {
		if e.ID == placeholderID {
			t.Fatalf("placeholder survived Confirm")
		}
	}
}

func TestScheduleCommandRollbackRestoresMirror(t *testing.T) {
	calendarSvc := &fakeCalendarService{err: errors.New("insert failed")}
	store := testStore(t, nil, nil, calendarSvc)
	ctx := context.Background()

	c, _ := store.AddClient(ctx, services.CreateClientInput{Name: "A"})
	item, _ := store.SaveReel(ctx, services.SaveReelInput{ClientID: c.ID, SourceRef: "r1", URL: "https://x"})

	cmd := store.NewScheduleCommand(services.ScheduleInput{
		ClientID:      c.ID,
		ContentItemID: &item.ID,
		StartAt:       time.Now(),
	})
	cmd.Apply()

	if _, err := cmd.Commit(ctx); err == nil {
		t.Fatalf("expected commit failure")
	}
	cmd.Rollback()

	if got := len(store.ActiveClient().Events); got != 0 {
		t.Fatalf("rollback left %d events in mirror", got)
	}
}

func TestScheduleCommandApplyIsIdempotent(t *testing.T) {
	store := testStore(t, nil, nil, &fakeCalendarService{})
	ctx := context.Background()

	c, _ := store.AddClient(ctx, services.CreateClientInput{Name: "A"})
	item, _ := store.SaveReel(ctx, services.SaveReelInput{ClientID: c.ID, SourceRef: "r1", URL: "https://x"})

	cmd := store.NewScheduleCommand(services.ScheduleInput{
		ClientID:      c.ID,
		ContentItemID: &item.ID,
		StartAt:       time.Now(),
	})
	cmd.Apply()
	cmd.Apply()
	if got := len(store.ActiveClient().Events); got != 1 {
		t.Fatalf("double Apply produced %d placeholders", got)
	}
}

func TestScheduleContentKeepsContentOnCalendarFailure(t *testing.T) {
	calendarSvc := &fakeCalendarService{err: errors.New("insert failed")}
	store := testStore(t, nil, &fakeContentService{}, calendarSvc)
	ctx := context.Background()

	c, _ := store.AddClient(ctx, services.CreateClientInput{Name: "A"})

	_, err := store.ScheduleContent(ctx,
		services.SaveReelInput{ClientID: c.ID, SourceRef: "r9", URL: "https://x"},
		services.ScheduleInput{StartAt: time.Now()},
	)
	if err == nil {
		t.Fatalf("expected scheduling failure")
	}

	cs := store.ActiveClient()
	if len(cs.Content) != 1 {
		t.Fatalf("content row must survive a scheduling failure, got %d", len(cs.Content))
	}
	if len(cs.Events) != 0 {
		t.Fatalf("calendar mirror must be rolled back, got %d events", len(cs.Events))
	}
}

func TestScheduleContentHappyPath(t *testing.T) {
	store := testStore(t, nil, &fakeContentService{}, &fakeCalendarService{})
	ctx := context.Background()

	c, _ := store.AddClient(ctx, services.CreateClientInput{Name: "A"})

	events, err := store.ScheduleContent(ctx,
		services.SaveReelInput{ClientID: c.ID, SourceRef: "r9", URL: "https://x"},
		services.ScheduleInput{StartAt: time.Now()},
	)
	if err != nil {
		t.Fatalf("ScheduleContent: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ContentItemID == nil {
		t.Fatalf("event must reference the migrated content item")
	}

	cs := store.ActiveClient()
	if len(cs.Content) != 1 || len(cs.Events) != 1 {
		t.Fatalf("mirror out of sync: %d content, %d events", len(cs.Content), len(cs.Events))
	}
}
