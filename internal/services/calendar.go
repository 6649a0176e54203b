package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

const (
	RecurrenceNone      = "none"
	RecurrenceWeeks     = "weeks"
	RecurrencePermanent = "permanent"

	// permanentWeeks covers five years of weekly slots.
	permanentWeeks = 260
)

// Recurrence describes how a scheduling action expands into events.
type Recurrence struct {
	Mode  string `json:"mode"`
	Weeks int    `json:"weeks,omitempty"`
}

// ScheduleInput is one scheduling action. Exactly one of MarkerID and
// ContentItemID must be set.
type ScheduleInput struct {
	ClientID      uuid.UUID  `json:"client_id"`
	MarkerID      *uuid.UUID `json:"marker_id,omitempty"`
	ContentItemID *uuid.UUID `json:"content_item_id,omitempty"`
	StartAt       time.Time  `json:"start_at"`
	Notes         string     `json:"notes"`
	Recurrence    Recurrence `json:"recurrence"`
}

type CalendarService interface {
	// Schedule expands the recurrence into events and inserts them as one
	// batch; a partial series is never persisted.
	Schedule(ctx context.Context, input ScheduleInput) ([]*domain.CalendarEvent, error)

	List(ctx context.Context, clientID uuid.UUID) ([]*domain.CalendarEvent, error)

	// Delete removes one event, or the whole recurrence series when
	// deleteGroup is set and the event belongs to one.
	Delete(ctx context.Context, eventID uuid.UUID, deleteGroup bool) error

	// EditRecurrence replaces an event's series with a freshly expanded
	// one in a single transaction.
	EditRecurrence(ctx context.Context, eventID uuid.UUID, startAt time.Time, recurrence Recurrence) ([]*domain.CalendarEvent, error)

	UpdateStatus(ctx context.Context, eventID uuid.UUID, status string) (*domain.CalendarEvent, error)
}

type calendarService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.CalendarEventRepo
}

func NewCalendarService(db *gorm.DB, baseLog *logger.Logger, eventRepo repos.CalendarEventRepo) CalendarService {
	return &calendarService{
		db:        db,
		log:       baseLog.With("service", "CalendarService"),
		eventRepo: eventRepo,
	}
}

// expand turns a scheduling action into its event rows. Single events
// carry no group id; every event of a series shares one fresh group id.
func expand(input ScheduleInput) ([]*domain.CalendarEvent, error) {
	if (input.MarkerID == nil) == (input.ContentItemID == nil) {
		return nil, fmt.Errorf("exactly one of marker_id and content_item_id is required")
	}
	if input.StartAt.IsZero() {
		return nil, fmt.Errorf("start_at is required")
	}

	count := 1
	var groupID *uuid.UUID
	switch input.Recurrence.Mode {
	case "", RecurrenceNone:
	case RecurrenceWeeks:
		if input.Recurrence.Weeks < 1 {
			return nil, fmt.Errorf("weeks recurrence requires a positive week count")
		}
		count = input.Recurrence.Weeks
		g := uuid.New()
		groupID = &g
	case RecurrencePermanent:
		count = permanentWeeks
		g := uuid.New()
		groupID = &g
	default:
		return nil, fmt.Errorf("unknown recurrence mode %q", input.Recurrence.Mode)
	}

	events := make([]*domain.CalendarEvent, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, &domain.CalendarEvent{
			ID:                uuid.New(),
			ClientID:          input.ClientID,
			ScheduledAt:       input.StartAt.AddDate(0, 0, 7*i),
			MarkerID:          input.MarkerID,
			ContentItemID:     input.ContentItemID,
			Status:            domain.EventStatusScheduled,
			Notes:             input.Notes,
			RecurrenceGroupID: groupID,
		})
	}
	return events, nil
}

func (s *calendarService) Schedule(ctx context.Context, input ScheduleInput) ([]*domain.CalendarEvent, error) {
	events, err := expand(input)
	if err != nil {
		return nil, err
	}
	created, err := s.eventRepo.CreateBatch(dbctx.New(ctx), events)
	if err != nil {
		s.log.Error("schedule batch insert failed", "client_id", input.ClientID, "count", len(events), "error", err)
		return nil, fmt.Errorf("insert events: %w", err)
	}
	return created, nil
}

func (s *calendarService) List(ctx context.Context, clientID uuid.UUID) ([]*domain.CalendarEvent, error) {
	return s.eventRepo.ListByClient(dbctx.New(ctx), clientID)
}

func (s *calendarService) Delete(ctx context.Context, eventID uuid.UUID, deleteGroup bool) error {
	dbc := dbctx.New(ctx)

	event, err := s.eventRepo.GetByID(dbc, eventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return nil
	}

	if deleteGroup && event.RecurrenceGroupID != nil {
		removed, err := s.eventRepo.DeleteByGroup(dbc, *event.RecurrenceGroupID)
		if err != nil {
			return fmt.Errorf("delete series: %w", err)
		}
		s.log.Info("deleted recurrence series", "group_id", event.RecurrenceGroupID, "events", removed)
		return nil
	}
	return s.eventRepo.Delete(dbc, eventID)
}

func (s *calendarService) EditRecurrence(ctx context.Context, eventID uuid.UUID, startAt time.Time, recurrence Recurrence) ([]*domain.CalendarEvent, error) {
	dbc := dbctx.New(ctx)

	event, err := s.eventRepo.GetByID(dbc, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s not found", eventID)
	}

	replacement, err := expand(ScheduleInput{
		ClientID:      event.ClientID,
		MarkerID:      event.MarkerID,
		ContentItemID: event.ContentItemID,
		StartAt:       startAt,
		Notes:         event.Notes,
		Recurrence:    recurrence,
	})
	if err != nil {
		return nil, err
	}

	var created []*domain.CalendarEvent
	err = withTx(ctx, s.db, func(txc dbctx.Context) error {
		if event.RecurrenceGroupID != nil {
			if _, err := s.eventRepo.DeleteByGroup(txc, *event.RecurrenceGroupID); err != nil {
				return fmt.Errorf("delete old series: %w", err)
			}
		} else {
			if err := s.eventRepo.Delete(txc, event.ID); err != nil {
				return fmt.Errorf("delete old event: %w", err)
			}
		}
		var cErr error
		created, cErr = s.eventRepo.CreateBatch(txc, replacement)
		if cErr != nil {
			return fmt.Errorf("insert new series: %w", cErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *calendarService) UpdateStatus(ctx context.Context, eventID uuid.UUID, status string) (*domain.CalendarEvent, error) {
	switch status {
	case domain.EventStatusScheduled, domain.EventStatusPosted, domain.EventStatusSkipped:
	default:
		return nil, fmt.Errorf("unknown event status %q", status)
	}

	dbc := dbctx.New(ctx)
	event, err := s.eventRepo.GetByID(dbc, eventID)
	if err != nil {
		return nil, fmt.Errorf("load event: %w", err)
	}
	if event == nil {
		return nil, nil
	}

	if err := s.eventRepo.UpdateFields(dbc, eventID, map[string]interface{}{"status": status}); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	return s.eventRepo.GetByID(dbc, eventID)
}
