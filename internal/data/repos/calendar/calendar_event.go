package calendar

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type CalendarEventRepo interface {
	// CreateBatch inserts all events in a single statement; either every
	// row commits or none do.
	CreateBatch(dbc dbctx.Context, events []*domain.CalendarEvent) ([]*domain.CalendarEvent, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.CalendarEvent, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.CalendarEvent, error)
	ListByGroup(dbc dbctx.Context, groupID uuid.UUID) ([]*domain.CalendarEvent, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteByGroup(dbc dbctx.Context, groupID uuid.UUID) (int64, error)
	DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error
	DetachFromGroup(dbc dbctx.Context, id uuid.UUID) error
}

type calendarEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	return &calendarEventRepo{
		db:  db,
		log: baseLog.With("repo", "CalendarEventRepo"),
	}
}

func (r *calendarEventRepo) CreateBatch(dbc dbctx.Context, events []*domain.CalendarEvent) ([]*domain.CalendarEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(events) == 0 {
		return []*domain.CalendarEvent{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *calendarEventRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.CalendarEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var event domain.CalendarEvent
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&event).Error
	if err != nil {
		return nil, err
	}
	if event.ID == uuid.Nil {
		return nil, nil
	}
	return &event, nil
}

func (r *calendarEventRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now()
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&domain.CalendarEvent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *calendarEventRepo) ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.CalendarEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.CalendarEvent
	if clientID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Order("scheduled_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *calendarEventRepo) ListByGroup(dbc dbctx.Context, groupID uuid.UUID) ([]*domain.CalendarEvent, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.CalendarEvent
	if groupID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("recurrence_group_id = ?", groupID).
		Order("scheduled_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *calendarEventRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.CalendarEvent{}).Error
}

func (r *calendarEventRepo) DeleteByGroup(dbc dbctx.Context, groupID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if groupID == uuid.Nil {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("recurrence_group_id = ?", groupID).
		Delete(&domain.CalendarEvent{})
	return res.RowsAffected, res.Error
}

func (r *calendarEventRepo) DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Delete(&domain.CalendarEvent{}).Error
}

func (r *calendarEventRepo) DetachFromGroup(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&domain.CalendarEvent{}).
		Where("id = ?", id).
		Update("recurrence_group_id", nil).Error
}
