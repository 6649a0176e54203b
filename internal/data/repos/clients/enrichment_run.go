package clients

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type EnrichmentRunRepo interface {
	Create(dbc dbctx.Context, run *domain.EnrichmentRun) (*domain.EnrichmentRun, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.EnrichmentRun, error)
	ListByClient(dbc dbctx.Context, clientID uuid.UUID, limit int) ([]*domain.EnrichmentRun, error)
	DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error
}

type enrichmentRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrichmentRunRepo(db *gorm.DB, baseLog *logger.Logger) EnrichmentRunRepo {
	return &enrichmentRunRepo{
		db:  db,
		log: baseLog.With("repo", "EnrichmentRunRepo"),
	}
}

func (r *enrichmentRunRepo) Create(dbc dbctx.Context, run *domain.EnrichmentRun) (*domain.EnrichmentRun, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(dbc.Ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (r *enrichmentRunRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&domain.EnrichmentRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *enrichmentRunRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.EnrichmentRun, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var run domain.EnrichmentRun
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&run).Error
	if err != nil {
		return nil, err
	}
	if run.ID == uuid.Nil {
		return nil, nil
	}
	return &run, nil
}

func (r *enrichmentRunRepo) ListByClient(dbc dbctx.Context, clientID uuid.UUID, limit int) ([]*domain.EnrichmentRun, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.EnrichmentRun
	if clientID == uuid.Nil {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *enrichmentRunRepo) DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Delete(&domain.EnrichmentRun{}).Error
}
