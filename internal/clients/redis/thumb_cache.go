package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/velmora/brandpulse-backend/internal/platform/apierr"
	"github.com/velmora/brandpulse-backend/internal/platform/envutil"
	"github.com/velmora/brandpulse-backend/internal/platform/logger"
)

// ThumbCache backs the TikTok thumbnail resolver with Redis so resolved
// URLs survive restarts and are shared across replicas.
type ThumbCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewThumbCache(log *logger.Logger) (*ThumbCache, error) {
	addr := strings.TrimSpace(envutil.String("REDIS_ADDR", ""))
	if addr == "" {
		return nil, apierr.MissingConfig("REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    envutil.String("REDIS_PASSWORD", ""),
		DB:          envutil.Int("REDIS_DB", 0),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &ThumbCache{
		log:    log.With("service", "RedisThumbCache"),
		rdb:    rdb,
		prefix: envutil.String("REDIS_THUMB_PREFIX", "thumb:"),
	}, nil
}

func (c *ThumbCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("thumb cache read failed", "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *ThumbCache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if err := c.rdb.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.log.Warn("thumb cache write failed", "error", err)
	}
}

func (c *ThumbCache) Close() error { return c.rdb.Close() }
