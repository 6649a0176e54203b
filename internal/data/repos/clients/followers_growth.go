package clients

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type FollowersGrowthRepo interface {
	UpsertDay(dbc dbctx.Context, clientID uuid.UUID, day time.Time, followers int64) error
	ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.FollowersGrowth, error)
	DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error
}

type followersGrowthRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFollowersGrowthRepo(db *gorm.DB, baseLog *logger.Logger) FollowersGrowthRepo {
	return &followersGrowthRepo{
		db:  db,
		log: baseLog.With("repo", "FollowersGrowthRepo"),
	}
}

func (r *followersGrowthRepo) UpsertDay(dbc dbctx.Context, clientID uuid.UUID, day time.Time, followers int64) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	day = day.UTC().Truncate(24 * time.Hour)
	row := &domain.FollowersGrowth{
		ID:         uuid.New(),
		ClientID:   clientID,
		RecordedOn: day,
		Followers:  &followers,
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}, {Name: "recorded_on"}},
			DoUpdates: clause.AssignmentColumns([]string{"followers"}),
		}).
		Create(row).Error
}

func (r *followersGrowthRepo) ListByClient(dbc dbctx.Context, clientID uuid.UUID) ([]*domain.FollowersGrowth, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.FollowersGrowth
	if clientID == uuid.Nil {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Order("recorded_on ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *followersGrowthRepo) DeleteByClient(dbc dbctx.Context, clientID uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if clientID == uuid.Nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("client_id = ?", clientID).
		Delete(&domain.FollowersGrowth{}).Error
}
