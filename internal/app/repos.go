package app

import (
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type Repos struct {
	Client          repos.ClientRepo
	FollowersGrowth repos.FollowersGrowthRepo
	EnrichmentRun   repos.EnrichmentRunRepo
	TrackedProfile  repos.TrackedProfileRepo
	ContentItem     repos.ContentItemRepo
	ContentMarker   repos.ContentMarkerRepo
	ScrapedPost     repos.ScrapedPostRepo
	CalendarEvent   repos.CalendarEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Client:          repos.NewClientRepo(db, log),
		FollowersGrowth: repos.NewFollowersGrowthRepo(db, log),
		EnrichmentRun:   repos.NewEnrichmentRunRepo(db, log),
		TrackedProfile:  repos.NewTrackedProfileRepo(db, log),
		ContentItem:     repos.NewContentItemRepo(db, log),
		ContentMarker:   repos.NewContentMarkerRepo(db, log),
		ScrapedPost:     repos.NewScrapedPostRepo(db, log),
		CalendarEvent:   repos.NewCalendarEventRepo(db, log),
	}
}
