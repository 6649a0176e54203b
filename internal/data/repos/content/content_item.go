package content

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type ContentItemRepo interface {
	Create(dbc dbctx.Context, item *domain.ContentItem) (*domain.ContentItem, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ContentItem, error)
	GetBySourceRef(dbc dbctx.Context, clientID uuid.UUID, sourceRef string) (*domain.ContentItem, error)
	ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.ContentItem, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error
}

type contentItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentItemRepo(db *gorm.DB, baseLog *logger.Logger) ContentItemRepo {
	return &contentItemRepo{
		db:  db,
		log: baseLog.With("repo", "ContentItemRepo"),
	}
}

func (r *contentItemRepo) Create(dbc dbctx.Context, item *domain.ContentItem) (*domain.ContentItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if item == nil {
		return nil, errors.New("nil content item")
	}
	if err := transaction.WithContext(dbc.Ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *contentItemRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.ContentItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var item domain.ContentItem
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, nil
	}
	return &item, nil
}

func (r *contentItemRepo) GetBySourceRef(dbc dbctx.Context, clientID uuid.UUID, sourceRef string) (*domain.ContentItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil || sourceRef == "" {
		return nil, nil
	}
	var item domain.ContentItem
	err := transaction.WithContext(dbc.Ctx).
		Where("client_id = ? AND source_ref = ?", clientID, sourceRef).
		Limit(1).
		Find(&item).Error
	if err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, nil
	}
	return &item, nil
}

func (r *contentItemRepo) ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.ContentItem, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.ContentItem
	if clientID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentItemRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.ContentItem{}).Error
}

func (r *contentItemRepo) DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Delete(&domain.ContentItem{}).Error
}
