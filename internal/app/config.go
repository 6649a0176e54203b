package app

import (
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type Config struct {
	Addr            string
	EnableGrowthJob bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:            envutil.String("HTTP_ADDR", ":8080"),
		EnableGrowthJob: envutil.Bool("GROWTH_SNAPSHOT_ENABLED", true),
	}
	log.Info("config loaded", "addr", cfg.Addr, "growth_job", cfg.EnableGrowthJob)
	return cfg
}
