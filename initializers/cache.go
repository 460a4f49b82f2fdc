package initializers

import (
	"context"
	"time"

	"campus-jobs-backend/config"
	"campus-jobs-backend/lib/cache"
	log "github.com/sirupsen/logrus"
)

func InitCache(ctx context.Context) {
	if config.Conf.Redis.URL != "" {
		client, err := cache.Connect(ctx, config.Conf.Redis.URL)
		if err == nil {
			cache.Instance = cache.NewRedis(client)
			log.Info("redis cache connected")
			return
		}
		log.WithError(err).Error("redis connection failed, using in-memory cache")
	}
	cache.Instance = cache.NewMemory(10 * time.Minute)
}
