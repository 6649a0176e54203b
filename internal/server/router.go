package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/velmora/brandpulse-backend/internal/http/handlers"
	"github.com/velmora/brandpulse-backend/internal/http/middleware"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	HealthHandler   *handlers.HealthHandler
	ClientHandler   *handlers.ClientHandler
	ProfileHandler  *handlers.ProfileHandler
	ContentHandler  *handlers.ContentHandler
	CalendarHandler *handlers.CalendarHandler
	ImageProxy      *handlers.ImageProxyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	origins := strings.Split(envutil.String("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.Check)

	api := router.Group("/api")
	{
		api.GET("/image-proxy", cfg.ImageProxy.Proxy)

		// Clients
		api.POST("/clients", cfg.ClientHandler.Create)
		api.GET("/clients", cfg.ClientHandler.List)
		api.GET("/clients/:id", cfg.ClientHandler.Get)
		api.PATCH("/clients/:id", cfg.ClientHandler.Update)
		api.DELETE("/clients/:id", cfg.ClientHandler.Delete)
		api.GET("/clients/:id/dashboard", cfg.ClientHandler.Dashboard)
		api.GET("/clients/:id/growth", cfg.ClientHandler.Growth)
		api.POST("/clients/:id/enrich", cfg.ClientHandler.Enrich)
		api.GET("/clients/:id/enrichment-runs", cfg.ClientHandler.EnrichmentRuns)
		api.POST("/clients/:id/discover", cfg.ClientHandler.Discover)

		// Tracked competitor profiles
		api.POST("/clients/:id/profiles", cfg.ProfileHandler.Add)
		api.GET("/clients/:id/profiles", cfg.ProfileHandler.List)
		api.DELETE("/profiles/:id", cfg.ProfileHandler.Delete)
		api.GET("/clients/:id/scraped-posts", cfg.ProfileHandler.RecentPosts)
		api.POST("/clients/:id/reels/refresh", cfg.ProfileHandler.RefreshReels)

		// Content and markers
		api.POST("/clients/:id/content", cfg.ContentHandler.Save)
		api.GET("/clients/:id/content", cfg.ContentHandler.List)
		api.DELETE("/content/:id", cfg.ContentHandler.Delete)
		api.POST("/content/:id/script", cfg.ContentHandler.GenerateScript)
		api.POST("/clients/:id/markers", cfg.ContentHandler.CreateMarker)
		api.GET("/clients/:id/markers", cfg.ContentHandler.ListMarkers)
		api.PATCH("/markers/:id", cfg.ContentHandler.UpdateMarker)
		api.DELETE("/markers/:id", cfg.ContentHandler.DeleteMarker)

		// Calendar
		api.POST("/clients/:id/calendar", cfg.CalendarHandler.Schedule)
		api.GET("/clients/:id/calendar", cfg.CalendarHandler.List)
		api.DELETE("/calendar/:id", cfg.CalendarHandler.Delete)
		api.PUT("/calendar/:id/recurrence", cfg.CalendarHandler.EditRecurrence)
		api.PATCH("/calendar/:id/status", cfg.CalendarHandler.UpdateStatus)
	}

	return router
}
