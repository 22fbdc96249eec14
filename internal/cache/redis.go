package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisProvider struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisProvider stores entries for ttl; a zero ttl keeps them until deleted
func NewRedisProvider(redisClient *redis.Client, ttl time.Duration) Provider {
	return &redisProvider{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (p *redisProvider) Get(ctx context.Context, prefix, cacheName, key string) (string, bool, error) {
	val, err := p.redisClient.Get(ctx, fullKey(prefix, cacheName, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s from cache %s: %w", key, cacheName, err)
	}
	return val, true, nil
}

func (p *redisProvider) Put(ctx context.Context, prefix, cacheName, key, value string) error {
	err := p.redisClient.Set(ctx, fullKey(prefix, cacheName, key), value, p.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to put %s into cache %s: %w", key, cacheName, err)
	}
	return nil
}

func (p *redisProvider) Delete(ctx context.Context, prefix, cacheName, key string) error {
	err := p.redisClient.Del(ctx, fullKey(prefix, cacheName, key)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete %s from cache %s: %w", key, cacheName, err)
	}
	return nil
}
