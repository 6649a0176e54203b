package content

import (
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/domain"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// ScrapedPostRepo reads the ingestion table the external scraper writes.
type ScrapedPostRepo interface {
	ListByUsernames(dbc dbctx.Context, usernames []string, limit int) ([]*domain.ScrapedPost, error)
}

type scrapedPostRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScrapedPostRepo(db *gorm.DB, baseLog *logger.Logger) ScrapedPostRepo {
	return &scrapedPostRepo{
		db:  db,
		log: baseLog.With("repo", "ScrapedPostRepo"),
	}
}

func (r *scrapedPostRepo) ListByUsernames(dbc dbctx.Context, usernames []string, limit int) ([]*domain.ScrapedPost, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*domain.ScrapedPost
	if len(usernames) == 0 {
		return out, nil
	}
	q := transaction.WithContext(dbc.Ctx).
		Where("username IN ?", usernames).
		Order("posted_at DESC NULLS LAST")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
