package app

import (
	"github.com/velmora/brandpulse-backend/internal/clients/apify"
	"github.com/velmora/brandpulse-backend/internal/clients/groq"
	"github.com/velmora/brandpulse-backend/internal/clients/n8n"
	"github.com/velmora/brandpulse-backend/internal/clients/redis"
	"github.com/velmora/brandpulse-backend/internal/clients/tiktok"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

type Clients struct {
	Apify  apify.Client
	Groq   groq.Client
	N8N    n8n.Client
	TikTok tiktok.Resolver

	thumbCache *redis.ThumbCache
}

// wireClients builds the outbound adapters. Groq and Redis are
// optional: without GROQ_API_KEY enrichment degrades to neutral
// profiles, without REDIS_ADDR the thumbnail cache is in-process.
func wireClients(log *logger.Logger) Clients {
	log.Info("Wiring outbound clients...")

	var set Clients
	set.Apify = apify.NewClient(log)
	set.N8N = n8n.NewClient(log)

	if g, err := groq.NewClient(log); err != nil {
		log.Warn("groq client unavailable, enrichment will degrade", "error", err)
	} else {
		set.Groq = g
	}

	var cache tiktok.Cache
	if rc, err := redis.NewThumbCache(log); err != nil {
		log.Warn("redis thumbnail cache unavailable, using in-memory cache", "error", err)
		cache = tiktok.NewMemoryCache()
	} else {
		set.thumbCache = rc
		cache = rc
	}
	set.TikTok = tiktok.NewResolver(log, cache)

	return set
}

func (c Clients) Close() {
	if c.thumbCache != nil {
		_ = c.thumbCache.Close()
	}
}
