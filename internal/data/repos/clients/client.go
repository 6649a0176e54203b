package clients

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type ClientRepo interface {
	Create(dbc dbctx.Context, client *domain.Client) (*domain.Client, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Client, error)
	List(dbc dbctx.Context) ([]*domain.Client, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type clientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return &clientRepo{
		db:  db,
		log: baseLog.With("repo", "ClientRepo"),
	}
}

func (r *clientRepo) Create(dbc dbctx.Context, client *domain.Client) (*domain.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if client == nil {
		return nil, errors.New("nil client")
	}
	if err := transaction.WithContext(dbc.Ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var client domain.Client
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == uuid.Nil {
		return nil, nil
	}
	return &client, nil
}

func (r *clientRepo) List(dbc dbctx.Context) ([]*domain.Client, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.Client
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clientRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.Client{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *clientRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.Client{}).Error
}
