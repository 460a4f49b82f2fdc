package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Connect parses redisURL and verifies the connection
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "redis url parse failed")
	}
	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping failed")
	}
	return client, nil
}

func NewRedis(client *redis.Client) Provider {
	return redisCache{client: client}
}

type redisCache struct {
	client *redis.Client
}

func (c redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	body, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, errors.Wrap(err, "redis get failed")
	}
	if err = json.Unmarshal(body, dest); err != nil {
		return false, errors.Wrap(err, "cached value decode failed")
	}
	return true, nil
}

func (c redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	body, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "cached value encode failed")
	}
	return c.client.Set(ctx, key, body, ttl).Err()
}

func (c redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
