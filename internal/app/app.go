package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/data/db"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	clientset := wireClients(log)
	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, reposet, clientset)
	handlerset := wireHandlers(theDB, log, serviceset)
	router := wireRouter(log, handlerset)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Clients:  clientset,
		Services: serviceset,
	}, nil
}

// Start launches background jobs.
func (a *App) Start() {
	if a == nil {
		return
	}
	if a.Cfg.EnableGrowthJob && a.Services.GrowthJob != nil {
		if err := a.Services.GrowthJob.Start(); err != nil {
			a.Log.Warn("growth snapshot job failed to start", "error", err)
		}
	}
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.Addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Services.GrowthJob != nil {
		a.Services.GrowthJob.Stop()
	}
	a.Clients.Close()
	a.Log.Sync()
}
