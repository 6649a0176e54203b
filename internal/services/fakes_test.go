package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
)

type fakeGroq struct {
	jsonResp map[string]any
	textResp string
	err      error
	calls    int
}

func (f *fakeGroq) GenerateJSON(ctx context.Context, system, user string) (map[string]any, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.jsonResp, nil
}

func (f *fakeGroq) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.calls++
	return f.textResp, f.err
}

type fakeEventRepo struct {
	events map[uuid.UUID]*domain.CalendarEvent
	// forced error for CreateBatch
	createErr error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[uuid.UUID]*domain.CalendarEvent{}}
}

func (f *fakeEventRepo) CreateBatch(_ dbctx.Context, events []*domain.CalendarEvent) ([]*domain.CalendarEvent, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, e := range events {
		f.events[e.ID] = e
	}
	return events, nil
}

func (f *fakeEventRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	return f.events[id], nil
}

func (f *fakeEventRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	e, ok := f.events[id]
	if !ok {
		return nil
	}
	if v, ok := updates["status"].(string); ok {
		e.Status = v
	}
	if v, ok := updates["notes"].(string); ok {
		e.Notes = v
	}
	return nil
}

func (f *fakeEventRepo) ListByClient(_ dbctx.Context, clientID uuid.UUID) ([]*domain.CalendarEvent, error) {
	var out []*domain.CalendarEvent
	for _, e := range f.events {
		if e.ClientID == clientID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (f *fakeEventRepo) ListByGroup(_ dbctx.Context, groupID uuid.UUID) ([]*domain.CalendarEvent, error) {
	var out []*domain.CalendarEvent
	for _, e := range f.events {
		if e.RecurrenceGroupID != nil && *e.RecurrenceGroupID == groupID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(_ dbctx.Context, id uuid.UUID) error {
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) DeleteByGroup(_ dbctx.Context, groupID uuid.UUID) (int64, error) {
	var removed int64
	for id, e := range f.events {
		if e.RecurrenceGroupID != nil && *e.RecurrenceGroupID == groupID {
			delete(f.events, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeEventRepo) DeleteByClient(_ dbctx.Context, clientID uuid.UUID) error {
	for id, e := range f.events {
		if e.ClientID == clientID {
			delete(f.events, id)
		}
	}
	return nil
}

func (f *fakeEventRepo) DetachFromGroup(_ dbctx.Context, id uuid.UUID) error {
	if e, ok := f.events[id]; ok {
		e.RecurrenceGroupID = nil
	}
	return nil
}

type fakeContentRepo struct {
	items map[uuid.UUID]*domain.ContentItem
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{items: map[uuid.UUID]*domain.ContentItem{}}
}

func (f *fakeContentRepo) Create(_ dbctx.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeContentRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.ContentItem, error) {
	return f.items[id], nil
}

func (f *fakeContentRepo) GetBySourceRef(_ dbctx.Context, clientID uuid.UUID, sourceRef string) (*domain.ContentItem, error) {
	for _, item := range f.items {
		if item.ClientID == clientID && item.SourceRef == sourceRef {
			return item, nil
		}
	}
	return nil, nil
}

func (f *fakeContentRepo) ListByClient(_ dbctx.Context, clientID uuid.UUID) ([]*domain.ContentItem, error) {
	var out []*domain.ContentItem
	for _, item := range f.items {
		if item.ClientID == clientID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) Delete(_ dbctx.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeContentRepo) DeleteByClient(_ dbctx.Context, clientID uuid.UUID) error {
	for id, item := range f.items {
		if item.ClientID == clientID {
			delete(f.items, id)
		}
	}
	return nil
}

type fakeMarkerRepo struct {
	markers map[uuid.UUID]*domain.ContentMarker
	order   []uuid.UUID
}

func newFakeMarkerRepo() *fakeMarkerRepo {
	return &fakeMarkerRepo{markers: map[uuid.UUID]*domain.ContentMarker{}}
}

func (f *fakeMarkerRepo) Create(_ dbctx.Context, m *domain.ContentMarker) (*domain.ContentMarker, error) {
	f.markers[m.ID] = m
	f.order = append(f.order, m.ID)
	return m, nil
}

func (f *fakeMarkerRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.ContentMarker, error) {
	return f.markers[id], nil
}

func (f *fakeMarkerRepo) ListByClient(_ dbctx.Context, clientID uuid.UUID) ([]*domain.ContentMarker, error) {
	var out []*domain.ContentMarker
	for _, id := range f.order {
		if m, ok := f.markers[id]; ok && m.ClientID == clientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMarkerRepo) CountByClient(_ dbctx.Context, clientID uuid.UUID) (int64, error) {
	var n int64
	for _, m := range f.markers {
		if m.ClientID == clientID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMarkerRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	m, ok := f.markers[id]
	if !ok {
		return nil
	}
	if v, ok := updates["name"].(string); ok {
		m.Name = v
	}
	if v, ok := updates["description"].(string); ok {
		m.Description = v
	}
	if v, ok := updates["color"].(string); ok {
		m.Color = v
	}
	return nil
}

func (f *fakeMarkerRepo) Delete(_ dbctx.Context, id uuid.UUID) error {
	delete(f.markers, id)
	return nil
}

func (f *fakeMarkerRepo) DeleteByClient(_ dbctx.Context, clientID uuid.UUID) error {
	for id, m := range f.markers {
		if m.ClientID == clientID {
			delete(f.markers, id)
		}
	}
	return nil
}

type fakeGrowthRepo struct {
	rows []*domain.FollowersGrowth
}

func (f *fakeGrowthRepo) UpsertDay(_ dbctx.Context, clientID uuid.UUID, day time.Time, followers int64) error {
	day = day.UTC().Truncate(24 * time.Hour)
	for _, row := range f.rows {
		if row.ClientID == clientID && row.RecordedOn.Equal(day) {
			row.Followers = &followers
			return nil
		}
	}
	f.rows = append(f.rows, &domain.FollowersGrowth{
		ID:         uuid.New(),
		ClientID:   clientID,
		RecordedOn: day,
		Followers:  &followers,
	})
	return nil
}

func (f *fakeGrowthRepo) ListByClient(_ dbctx.Context, clientID uuid.UUID) ([]*domain.FollowersGrowth, error) {
	var out []*domain.FollowersGrowth
	for _, row := range f.rows {
		if row.ClientID == clientID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedOn.Before(out[j].RecordedOn) })
	return out, nil
}

func (f *fakeGrowthRepo) DeleteByClient(_ dbctx.Context, clientID uuid.UUID) error {
	kept := f.rows[:0]
	for _, row := range f.rows {
		if row.ClientID != clientID {
			kept = append(kept, row)
		}
	}
	f.rows = kept
	return nil
}

type fakeRunRepo struct {
	runs map[uuid.UUID]*domain.EnrichmentRun
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: map[uuid.UUID]*domain.EnrichmentRun{}}
}

func (f *fakeRunRepo) Create(_ dbctx.Context, run *domain.EnrichmentRun) (*domain.EnrichmentRun, error) {
	f.runs[run.ID] = run
	return run, nil
}

func (f *fakeRunRepo) UpdateFields(_ dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	run, ok := f.runs[id]
	if !ok {
		return nil
	}
	if v, ok := updates["status"].(string); ok {
		run.Status = v
	}
	if v, ok := updates["stage"].(string); ok {
		run.Stage = v
	}
	if v, ok := updates["error"].(string); ok {
		run.Error = v
	}
	return nil
}

func (f *fakeRunRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.EnrichmentRun, error) {
	return f.runs[id], nil
}

func (f *fakeRunRepo) ListByClient(_ dbctx.Context, clientID uuid.UUID, limit int) ([]*domain.EnrichmentRun, error) {
	var out []*domain.EnrichmentRun
	for _, run := range f.runs {
		if run.ClientID == clientID {
			out = append(out, run)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRunRepo) DeleteByClient(_ dbctx.Context, clientID uuid.UUID) error {
	for id, run := range f.runs {
		if run.ClientID == clientID {
			delete(f.runs, id)
		}
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*domain.TrackedProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[uuid.UUID]*domain.TrackedProfile{}}
}

func (f *fakeProfileRepo) Create(_ dbctx.Context, p *domain.TrackedProfile) (*domain.TrackedProfile, error) {
	f.profiles[p.ID] = p
	return p, nil
}

func (f *fakeProfileRepo) GetByID(_ dbctx.Context, id uuid.UUID) (*domain.TrackedProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileRepo) ListByClient(_ dbctx.Context, clientID uuid.UUID) ([]*domain.TrackedProfile, error) {
	var out []*domain.TrackedProfile
	for _, p := range f.profiles {
		if p.ClientID == clientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) HandlesByClient(_ dbctx.Context, clientID uuid.UUID, platform string) ([]string, error) {
	var out []string
	for _, p := range f.profiles {
		if p.ClientID == clientID && p.Platform == platform {
			out = append(out, p.Handle)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) Delete(_ dbctx.Context, id uuid.UUID) error {
	delete(f.profiles, id)
	return nil
}

func (f *fakeProfileRepo) DeleteByClient(_ dbctx.Context, clientID uuid.UUID) error {
	for id, p := range f.profiles {
		if p.ClientID == clientID {
			delete(f.profiles, id)
		}
	}
	return nil
}

type fakePostRepo struct {
	posts []*domain.ScrapedPost
}

func (f *fakePostRepo) ListByUsernames(_ dbctx.Context, usernames []string, limit int) ([]*domain.ScrapedPost, error) {
	var out []*domain.ScrapedPost
	for _, p := range f.posts {
		for _, u := range usernames {
			if p.Username == u {
				out = append(out, p)
			}
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeScraper struct {
	profile    *apify.Profile
	profileErr error
	reels      []apify.Reel
	reelsErr   error
	tiktok     []apify.CompetitorResult
	tiktokErr  error
	configured bool
}

func (f *fakeScraper) Configured() bool { return f.configured }

func (f *fakeScraper) GetProfile(ctx context.Context, username string) (*apify.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeScraper) GetReels(ctx context.Context, usernames []string, perUser int) ([]apify.Reel, error) {
	return f.reels, f.reelsErr
}

func (f *fakeScraper) SearchTikTok(ctx context.Context, query string, limit int) ([]apify.CompetitorResult, error) {
	return f.tiktok, f.tiktokErr
}

type fakeN8N struct {
	searchResp json.RawMessage
	searchErr  error
	script     string
	scriptErr  error
	lastURL    string
}

func (f *fakeN8N) TriggerKeywordSearch(ctx context.Context, keywords []string, clientID uuid.UUID) (json.RawMessage, error) {
	return f.searchResp, f.searchErr
}

func (f *fakeN8N) TriggerScript(ctx context.Context, postURL string, caption string) (string, error) {
	f.lastURL = postURL
	return f.script, f.scriptErr
}
