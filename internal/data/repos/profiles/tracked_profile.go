package profiles

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type TrackedProfileRepo interface {
	Create(dbc dbctx.Context, profile *domain.TrackedProfile) (*domain.TrackedProfile, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.TrackedProfile, error)
	ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.TrackedProfile, error)
	HandlesByClient(dbc dbctx.Context, clientID uuid.UUID, platform string) ([]string, error)
	Delete(dbc dbctx.Context, id uuid.UUID) error
	DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error
}

type trackedProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackedProfileRepo(db *gorm.DB, baseLog *logger.Logger) TrackedProfileRepo {
	return &trackedProfileRepo{
		db:  db,
		log: baseLog.With("repo", "TrackedProfileRepo"),
	}
}

func (r *trackedProfileRepo) Create(dbc dbctx.Context, profile *domain.TrackedProfile) (*domain.TrackedProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if profile == nil {
		return nil, errors.New("nil profile")
	}
	if err := transaction.WithContext(dbc.Ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *trackedProfileRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*domain.TrackedProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var profile domain.TrackedProfile
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&profile).Error
	if err != nil {
		return nil, err
	}
	if profile.ID == uuid.Nil {
		return nil, nil
	}
	return &profile, nil
}

func (r *trackedProfileRepo) ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.TrackedProfile, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.TrackedProfile
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

func (r *trackedProfileRepo) HandlesByClient(dbc dbctx.Context, clientID uuid.UUID, platform string) ([]string, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var handles []string
	if clientID == uuid.Nil {
		return handles, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Model(&domain.TrackedProfile{}).
		Where("client_id = ?", clientID)
	if platform != "" {
		q = q.Where("platform = ?", platform)
	}
	if err := q.Order("created_at ASC").Pluck("handle", &handles).Error; err != nil {
		return nil, err
	}
	return handles, nil
}

func (r *trackedProfileRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&domain.TrackedProfile{}).Error
}

func (r *trackedProfileRepo) DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Delete(&domain.TrackedProfile{}).Error
}
