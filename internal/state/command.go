package state

import (
	"context"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/services"
)

// ScheduleCommand is the optimistic calendar mutation. Apply inserts
// placeholder events into the mirror so the UI reflects the action
// immediately; Commit sends the action to the server; Confirm swaps the
// placeholders for the server rows; Rollback removes them after a failed
// commit. Placeholders never leave the mirror: they are not persisted
// and carry ids the server has never seen.
type ScheduleCommand struct {
	store        *Store
	input        services.ScheduleInput
	placeholders map[uuid.UUID]bool
	applied      bool
}

func (s *Store) NewScheduleCommand(input services.ScheduleInput) *ScheduleCommand {
	return &ScheduleCommand{
		store:        s,
		input:        input,
		placeholders: map[uuid.UUID]bool{},
	}
}

// Apply inserts placeholder events mirroring what the server is expected
// to create. Only the first occurrence is materialized for series; the
// confirmed expansion replaces it.
func (c *ScheduleCommand) Apply() {
	if c.applied {
		return
	}
	c.applied = true

	placeholder := &domain.CalendarEvent{
		ID:            uuid.New(),
		ClientID:      c.input.ClientID,
		ScheduledAt:   c.input.StartAt,
		MarkerID:      c.input.MarkerID,
		ContentItemID: c.input.ContentItemID,
		Status:        domain.EventStatusScheduled,
		Notes:         c.input.Notes,
	}
	c.placeholders[placeholder.ID] = true

	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	if cs, ok := c.store.clients[c.input.ClientID]; ok {
		cs.Events = append(cs.Events, placeholder)
	}
}

// Commit performs the server-side scheduling. It does not touch the
// mirror; call Confirm or Rollback with the outcome.
func (c *ScheduleCommand) Commit(ctx context.Context) ([]*domain.CalendarEvent, error) {
	return c.store.calendarSvc.Schedule(ctx, c.input)
}

// Confirm replaces the placeholders with the server-confirmed rows.
func (c *ScheduleCommand) Confirm(events []*domain.CalendarEvent) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.replaceEvents(c.input.ClientID, func(e *domain.CalendarEvent) bool {
		return c.placeholders[e.ID]
	}, events)
	c.placeholders = map[uuid.UUID]bool{}
}

// Rollback removes the placeholders, restoring the pre-Apply mirror.
func (c *ScheduleCommand) Rollback() {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	c.store.replaceEvents(c.input.ClientID, func(e *domain.CalendarEvent) bool {
		return c.placeholders[e.ID]
	}, nil)
	c.placeholders = map[uuid.UUID]bool{}
	c.applied = false
}
