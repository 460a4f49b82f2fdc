package cache

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Provider stores JSON-encodable values for a limited time
type Provider interface {
	// Get decodes the cached value into dest, found is false on a miss or an expired entry
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Ping(ctx context.Context) error
}

var Instance Provider

// GetOrLoad returns the cached value or calls load and caches its result.
// Cache failures fall through to load.
func GetOrLoad[T any](ctx context.Context, c Provider, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if c != nil {
		found, err := c.Get(ctx, key, &cached)
		if err != nil {
			log.WithError(err).WithField("cache_key", key).Warn("cache read failed")
		} else if found {
			return cached, nil
		}
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	if c != nil {
		if err = c.Set(ctx, key, value, ttl); err != nil {
			log.WithError(err).WithField("cache_key", key).Warn("cache write failed")
		}
	}
	return value, nil
}
