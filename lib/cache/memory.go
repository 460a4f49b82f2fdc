package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// NewMemory is the in-process cache used when Redis is not configured.
// Values are kept JSON encoded so both backends decode the same way.
func NewMemory(cleanupInterval time.Duration) Provider {
	return memoryCache{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

type memoryCache struct {
	store *gocache.Cache
}

func (c memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	value, ok := c.store.Get(key)
	if !ok {
		return false, nil
	}
	body, ok := value.([]byte)
	if !ok {
		return false, errors.Errorf("unexpected cached value type %T", value)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return false, errors.Wrap(err, "cached value decode failed")
	}
	return true, nil
}

func (c memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "cached value encode failed")
	}
	c.store.Set(key, body, ttl)
	return nil
}

func (c memoryCache) Ping(ctx context.Context) error {
	return nil
}
