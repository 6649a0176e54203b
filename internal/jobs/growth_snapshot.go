package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/data/repos"
	"github.com/velmora/brandpulse-backend/internal/pkg/dbctx"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
	"github.com/velmora/brandpulse-backend/internal/services"
)

// GrowthSnapshot samples every client's follower count once a day so
// the growth chart has points even when nobody triggers enrichment.
type GrowthSnapshot struct {
	db         *gorm.DB
	log        *logger.Logger
	clientRepo repos.ClientRepo
	growthRepo repos.FollowersGrowthRepo
	scraper    apify.Client
	cron       *cron.Cron
	spec       string
}

func NewGrowthSnapshot(
	db *gorm.DB,
	baseLog *logger.Logger,
	clientRepo repos.ClientRepo,
	growthRepo repos.FollowersGrowthRepo,
	scraper apify.Client,
) *GrowthSnapshot {
	return &GrowthSnapshot{
		db:         db,
		log:        baseLog.With("job", "GrowthSnapshot"),
		clientRepo: clientRepo,
		growthRepo: growthRepo,
		scraper:    scraper,
		spec:       envutil.String("GROWTH_SNAPSHOT_CRON", "0 3 * * *"),
	}
}

func (j *GrowthSnapshot) Start() error {
	if j.cron != nil {
		return nil
	}
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		j.RunOnce(ctx)
	}); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info("growth snapshot scheduled", "cron", j.spec)
	return nil
}

func (j *GrowthSnapshot) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

// RunOnce samples all clients. A failing client is logged and skipped;
// it never stops the sweep.
func (j *GrowthSnapshot) RunOnce(ctx context.Context) {
	if !j.scraper.Configured() {
		j.log.Warn("scraper not configured, skipping growth snapshot")
		return
	}

	dbc := dbctx.New(ctx)
	clients, err := j.clientRepo.List(dbc)
	if err != nil {
		j.log.Error("growth snapshot failed to list clients", "error", err)
		return
	}

	var sampled int
	for _, client := range clients {
		if client.InstagramUsername == "" {
			continue
		}
		profile, err := j.scraper.GetProfile(ctx, client.InstagramUsername)
		if err != nil || profile == nil {
			j.log.Warn("growth snapshot skipping client", "client_id", client.ID, "error", err)
			continue
		}
		if err := j.growthRepo.UpsertDay(dbc, client.ID, time.Now(), profile.FollowersCount); err != nil {
			j.log.Warn("growth snapshot upsert failed", "client_id", client.ID, "error", err)
			continue
		}
		if err := j.clientRepo.UpdateFields(dbc, client.ID, map[string]interface{}{
			"followers_count": profile.FollowersCount,
			"posts_count":     profile.PostsCount,
			"views_count":     services.EstimatedViews(profile.FollowersCount),
		}); err != nil {
			j.log.Warn("growth snapshot client update failed", "client_id", client.ID, "error", err)
			continue
		}
		sampled++
	}
	j.log.Info("growth snapshot completed", "clients", len(clients), "sampled", sampled)
}
