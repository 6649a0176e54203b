package app

import (
	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/platform/logger"
	"github.com/velmora/brandpulse-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:             log,
		HealthHandler:   handlerset.Health,
		ClientHandler:   handlerset.Client,
		ProfileHandler:  handlerset.Profile,
		ContentHandler:  handlerset.Content,
		CalendarHandler: handlerset.Calendar,
		ImageProxy:      handlerset.ImageProxy,
	})
}
