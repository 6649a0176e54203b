package content

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type ContentMarkerRepo interface {
	Create(dbc dbctx.Context, marker *domain.ContentMarker) (*domain.ContentMarker, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ContentMarker, error)
	ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.ContentMarker, error)
	CountByClient(dbc dbctx.Context, clientID uuid.UUID) (int64, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error
}

type contentMarkerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentMarkerRepo(db *gorm.DB, baseLog *logger.Logger) ContentMarkerRepo {
	return &contentMarkerRepo{
		db:  db,
		log: baseLog.With("repo", "ContentMarkerRepo"),
	}
}

func (r *contentMarkerRepo) Create(dbc dbctx.Context, marker *domain.ContentMarker) (*domain.ContentMarker, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if marker == nil {
		return nil, errors.New("nil marker")
	}
	if err := transaction.WithContext(dbc.Ctx).Create(marker).Error; err != nil {
		return nil, err
	}
	return marker, nil
}

func (r *contentMarkerRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ContentMarker, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var marker domain.ContentMarker
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&marker).Error
	if err != nil {
		return nil, err
	}
	if marker.ID == uuid.Nil {
		return nil, nil
	}
	return &marker, nil
}

func (r *contentMarkerRepo) ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.ContentMarker, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.ContentMarker
	if clientID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentMarkerRepo) CountByClient(dbc dbctx.Context, clientID uuid.UUID) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return 0, nil
	}
	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&domain.ContentMarker{}).
		Where("client_id = ?", clientID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contentMarkerRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.ContentMarker{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *contentMarkerRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.ContentMarker{}).Error
}

func (r *contentMarkerRepo) DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Delete(&domain.ContentMarker{}).Error
}
