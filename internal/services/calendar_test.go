package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func markerInput(clientID uuid.UUID, rec Recurrence) ScheduleInput {
	markerID := uuid.New()
	return ScheduleInput{
		ClientID:   clientID,
		MarkerID:   &markerID,
		StartAt:    time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		Recurrence: rec,
	}
}

func TestExpandSingleEvent(t *testing.T) {
	events, err := expand(markerInput(uuid.New(), Recurrence{Mode: RecurrenceNone}))
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].RecurrenceGroupID != nil {
		t.Fatalf("single event must not carry a group id")
	}
}

func TestExpandEmptyModeMeansSingle(t *testing.T) {
	events, err := expand(markerInput(uuid.New(), Recurrence{}))
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(events) != 1 || events[0].RecurrenceGroupID != nil {
		t.Fatalf("unexpected expansion: %d events", len(events))
	}
}

func TestExpandWeeklySeries(t *testing.T) {
	events, err := expand(markerInput(uuid.New(), Recurrence{Mode: RecurrenceWeeks, Weeks: 4}))
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	group := events[0].RecurrenceGroupID
	if group == nil {
		t.Fatalf("series events must share a group id")
	}
	for i, e := range events {
		if e.RecurrenceGroupID == nil || *e.RecurrenceGroupID != *group {
			t.Fatalf("event %d has wrong group id", i)
		}
		want := events[0].ScheduledAt.AddDate(0, 0, 7*i)
		if !e.ScheduledAt.Equal(want) {
			t.Fatalf("event %d scheduled at %v, want %v", i, e.ScheduledAt, want)
		}
	}
}

func TestExpandPermanentSeries(t *testing.T) {
	events, err := expand(markerInput(uuid.New(), Recurrence{Mode: RecurrencePermanent}))
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(events) != 260 {
		t.Fatalf("expected 260 events, got %d", len(events))
	}
	last := events[259].ScheduledAt
	want := events[0].ScheduledAt.AddDate(0, 0, 7*259)
	if !last.Equal(want) {
		t.Fatalf("last event at %v, want %v", last, want)
	}
}

func TestExpandValidation(t *testing.T) {
	clientID := uuid.New()
	markerID := uuid.New()
	contentID := uuid.New()
	start := time.Now()

	cases := []struct {
		name  string
		input ScheduleInput
	}{
		{"neither target", ScheduleInput{ClientID: clientID, StartAt: start}},
		{"both targets", ScheduleInput{ClientID: clientID, MarkerID: &markerID, ContentItemID: &contentID, StartAt: start}},
		{"zero start", ScheduleInput{ClientID: clientID, MarkerID: &markerID}},
		{"zero weeks", ScheduleInput{ClientID: clientID, MarkerID: &markerID, StartAt: start, Recurrence: Recurrence{Mode: RecurrenceWeeks}}},
		{"unknown mode", ScheduleInput{ClientID: clientID, MarkerID: &markerID, StartAt: start, Recurrence: Recurrence{Mode: "daily"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := expand(tc.input); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestScheduleAndDeleteGroup(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(nil, testLog(t), repo)
	ctx := context.Background()
	clientID := uuid.New()

	series, err := svc.Schedule(ctx, markerInput(clientID, Recurrence{Mode: RecurrenceWeeks, Weeks: 3}))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	single, err := svc.Schedule(ctx, markerInput(clientID, Recurrence{Mode: RecurrenceNone}))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if len(repo.events) != 4 {
		t.Fatalf("expected 4 stored events, got %d", len(repo.events))
	}

	// Deleting one series member with deleteGroup removes the whole series.
	if err := svc.Delete(ctx, series[1].ID, true); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected only the single event to survive, got %d", len(repo.events))
	}
	if _, ok := repo.events[single[0].ID]; !ok {
		t.Fatalf("single event was removed with the series")
	}

	// deleteGroup on a groupless event degrades to a single delete.
	if err := svc.Delete(ctx, single[0].ID, true); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.events) != 0 {
		t.Fatalf("expected empty store, got %d", len(repo.events))
	}
}

func TestScheduleBatchFailureInsertsNothing(t *testing.T) {
	repo := newFakeEventRepo()
	repo.createErr = errors.New("deadlock detected")
	svc := NewCalendarService(nil, testLog(t), repo)

	_, err := svc.Schedule(context.Background(), markerInput(uuid.New(), Recurrence{Mode: RecurrenceWeeks, Weeks: 3}))
	if err == nil {
		t.Fatalf("expected insert error")
	}
	if len(repo.events) != 0 {
		t.Fatalf("partial series persisted: %d events", len(repo.events))
	}
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(nil, testLog(t), repo)
	ctx := context.Background()

	events, err := svc.Schedule(ctx, markerInput(uuid.New(), Recurrence{}))
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, events[0].ID, domain.EventStatusPosted)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated == nil || updated.Status != domain.EventStatusPosted {
		t.Fatalf("status not applied: %+v", updated)
	}

	if _, err := svc.UpdateStatus(ctx, events[0].ID, "archived"); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	missing, err := svc.UpdateStatus(ctx, uuid.New(), domain.EventStatusSkipped)
	if err != nil || missing != nil {
		t.Fatalf("missing event should be a nil no-op, got %+v, %v", missing, err)
	}
}

func TestDeleteMissingEventIsNoop(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewCalendarService(nil, testLog(t), repo)
	if err := svc.Delete(context.Background(), uuid.New(), true); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
