package app

import (
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/http/handlers"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Client     *handlers.ClientHandler
	Profile    *handlers.ProfileHandler
	Content    *handlers.ContentHandler
	Calendar   *handlers.CalendarHandler
	ImageProxy *handlers.ImageProxyHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:     handlers.NewHealthHandler(db),
		Client:     handlers.NewClientHandler(serviceset.Client, serviceset.Enrichment, serviceset.Discovery),
		Profile:    handlers.NewProfileHandler(serviceset.Profile),
		Content:    handlers.NewContentHandler(serviceset.Content),
		Calendar:   handlers.NewCalendarHandler(serviceset.Calendar),
		ImageProxy: handlers.NewImageProxyHandler(log),
	}
}
