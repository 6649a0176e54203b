package repos

import (
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/data/repos/calendar"
	"github.com/velmora/brandpulse-backend/internal/data/repos/clients"
	"github.com/velmora/brandpulse-backend/internal/data/repos/content"
	"github.com/velmora/brandpulse-backend/internal/data/repos/profiles"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type ClientRepo = clients.ClientRepo
type FollowersGrowthRepo = clients.FollowersGrowthRepo
type EnrichmentRunRepo = clients.EnrichmentRunRepo

type TrackedProfileRepo = profiles.TrackedProfileRepo

type ContentItemRepo = content.ContentItemRepo
type ContentMarkerRepo = content.ContentMarkerRepo
type ScrapedPostRepo = content.ScrapedPostRepo

type CalendarEventRepo = calendar.CalendarEventRepo

func NewClientRepo(db *gorm.DB, baseLog *logger.Logger) ClientRepo {
	return clients.NewClientRepo(db, baseLog)
}
func NewFollowersGrowthRepo(db *gorm.DB, baseLog *logger.Logger) FollowersGrowthRepo {
	return clients.NewFollowersGrowthRepo(db, baseLog)
}
func NewEnrichmentRunRepo(db *gorm.DB, baseLog *logger.Logger) EnrichmentRunRepo {
	return clients.NewEnrichmentRunRepo(db, baseLog)
}
func NewTrackedProfileRepo(db *gorm.DB, baseLog *logger.Logger) TrackedProfileRepo {
	return profiles.NewTrackedProfileRepo(db, baseLog)
}
func NewContentItemRepo(db *gorm.DB, baseLog *logger.Logger) ContentItemRepo {
	return content.NewContentItemRepo(db, baseLog)
}
func NewContentMarkerRepo(db *gorm.DB, baseLog *logger.Logger) ContentMarkerRepo {
	return content.NewContentMarkerRepo(db, baseLog)
}
func NewScrapedPostRepo(db *gorm.DB, baseLog *logger.Logger) ScrapedPostRepo {
	return content.NewScrapedPostRepo(db, baseLog)
}
func NewCalendarEventRepo(db *gorm.DB, baseLog *logger.Logger) CalendarEventRepo {
	return calendar.NewCalendarEventRepo(db, baseLog)
}
