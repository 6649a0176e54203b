package app

import (
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/jobs"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
	"github.com/velmora/brandpulse-backend/internal/services"
)

type Services struct {
	AI         services.AIService
	Client     services.ClientService
	Enrichment services.EnrichmentService
	Profile    services.ProfileService
	Content    services.ContentService
	Calendar   services.CalendarService
	Discovery  services.DiscoveryService

	GrowthJob *jobs.GrowthSnapshot
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, clientset Clients) Services {
	log.Info("Wiring services...")

	ai := services.NewAIService(log, clientset.Groq)

	return Services{
		AI: ai,
		Client: services.NewClientService(
			db, log,
			reposet.Client,
			reposet.TrackedProfile,
			reposet.ContentItem,
			reposet.ContentMarker,
			reposet.CalendarEvent,
			reposet.FollowersGrowth,
			reposet.EnrichmentRun,
		),
		Enrichment: services.NewEnrichmentService(
			db, log,
			reposet.Client,
			reposet.FollowersGrowth,
			reposet.EnrichmentRun,
			reposet.ScrapedPost,
			clientset.Apify,
			ai,
		),
		Profile: services.NewProfileService(
			db, log,
			reposet.TrackedProfile,
			reposet.ScrapedPost,
			clientset.Apify,
			clientset.TikTok,
		),
		Content: services.NewContentService(
			db, log,
			reposet.ContentItem,
			reposet.ContentMarker,
			clientset.N8N,
		),
		Calendar: services.NewCalendarService(db, log, reposet.CalendarEvent),
		Discovery: services.NewDiscoveryService(
			db, log,
			reposet.Client,
			ai,
			clientset.Apify,
			clientset.N8N,
		),
		GrowthJob: jobs.NewGrowthSnapshot(db, log, reposet.Client, reposet.FollowersGrowth, clientset.Apify),
	}
}
