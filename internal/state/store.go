package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
	"github.com/velmora/brandpulse-backend/internal/services"
)

// ClientState is the in-memory mirror of one client and its nested
// collections.
type ClientState struct {
	Client   *domain.Client
	Profiles []*domain.TrackedProfile
	Content  []*domain.ContentItem
	Markers  []*domain.ContentMarker
	Events   []*domain.CalendarEvent
}

// Store is the session-scoped working set. Every mutation goes through
// the backing services first; the mirror only reflects what the server
// confirmed. Calendar scheduling is the one optimistic path, expressed
// as an explicit command (see ScheduleCommand).
type Store struct {
	mu       sync.RWMutex
	clients  map[uuid.UUID]*ClientState
	order    []uuid.UUID
	activeID uuid.UUID

	log         *logger.Logger
	clientSvc   services.ClientService
	contentSvc  services.ContentService
	calendarSvc services.CalendarService
}

func NewStore(
	baseLog *logger.Logger,
	clientSvc services.ClientService,
	contentSvc services.ContentService,
	calendarSvc services.CalendarService,
) *Store {
	return &Store{
		clients:     map[uuid.UUID]*ClientState{},
		log:         baseLog.With("component", "StateStore"),
		clientSvc:   clientSvc,
		contentSvc:  contentSvc,
		calendarSvc: calendarSvc,
	}
}

// Load replaces the working set with the server's current state.
func (s *Store) Load(ctx context.Context) error {
	clients, err := s.clientSvc.List(ctx)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}

	fresh := map[uuid.UUID]*ClientState{}
	order := make([]uuid.UUID, 0, len(clients))
	for _, c := range clients {
		dash, err := s.clientSvc.GetDashboard(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("load dashboard for %s: %w", c.ID, err)
		}
		if dash == nil {
			continue
		}
		fresh[c.ID] = &ClientState{
			Client:   dash.Client,
			Profiles: dash.Profiles,
			Content:  dash.Content,
			Markers:  dash.Markers,
			Events:   dash.Events,
		}
		order = append(order, c.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = fresh
	s.order = order
	if _, ok := s.clients[s.activeID]; !ok {
		s.activeID = uuid.Nil
		if len(order) > 0 {
			s.activeID = order[0]
		}
	}
	return nil
}

func (s *Store) SetActive(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[id]; !ok {
		return fmt.Errorf("client %s not loaded", id)
	}
	s.activeID = id
	return nil
}

// ActiveClient scans the ordered set for the active id. Returns nil when
// nothing is selected.
func (s *Store) ActiveClient() *ClientState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.order {
		if id == s.activeID {
			return s.clients[id]
		}
	}
	return nil
}

func (s *Store) Clients() []*ClientState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*ClientState, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.clients[id])
	}
	return out
}

// AddClient creates the client on the server, then mirrors it.
func (s *Store) AddClient(ctx context.Context, input services.CreateClientInput) (*domain.Client, error) {
	created, err := s.clientSvc.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[created.ID] = &ClientState{Client: created}
	s.order = append(s.order, created.ID)
	if s.activeID == uuid.Nil {
		s.activeID = created.ID
	}
	return created, nil
}

// RemoveClient deletes server-side first; the mirror keeps the client
// when deletion fails.
func (s *Store) RemoveClient(ctx context.Context, id uuid.UUID) error {
	if err := s.clientSvc.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.activeID == id {
		s.activeID = uuid.Nil
		if len(s.order) > 0 {
			s.activeID = s.order[0]
		}
	}
	return nil
}

// SaveReel persists a discovered reel and mirrors the confirmed row.
// Saving is idempotent, so the mirror dedupes by id.
func (s *Store) SaveReel(ctx context.Context, input services.SaveReelInput) (*domain.ContentItem, error) {
	item, err := s.contentSvc.SaveDiscoveredReel(ctx, input)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.clients[item.ClientID]
	if !ok {
		return item, nil
	}
	for _, existing := range cs.Content {
		if existing.ID == item.ID {
			return item, nil
		}
	}
	cs.Content = append(cs.Content, item)
	return item, nil
}

// ScheduleContent saves the reel first, then schedules it. The content
// row survives a scheduling failure; only the calendar part rolls back.
func (s *Store) ScheduleContent(ctx context.Context, reel services.SaveReelInput, startAt services.ScheduleInput) ([]*domain.CalendarEvent, error) {
	item, err := s.SaveReel(ctx, reel)
	if err != nil {
		return nil, fmt.Errorf("persist content before scheduling: %w", err)
	}

	startAt.ClientID = item.ClientID
	startAt.ContentItemID = &item.ID
	startAt.MarkerID = nil

	cmd := s.NewScheduleCommand(startAt)
	cmd.Apply()
	events, err := cmd.Commit(ctx)
	if err != nil {
		cmd.Rollback()
		return nil, err
	}
	cmd.Confirm(events)
	return events, nil
}

func (s *Store) replaceEvents(clientID uuid.UUID, drop func(*domain.CalendarEvent) bool, add []*domain.CalendarEvent) {
	cs, ok := s.clients[clientID]
	if !ok {
		return
	}
	kept := cs.Events[:0]
	for _, e := range cs.Events {
		if !drop(e) {
			kept = append(kept, e)
		}
	}
	cs.Events = append(kept, add...)
}
