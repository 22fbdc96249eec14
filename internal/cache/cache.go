package cache

import (
	"context"
	"fmt"

	"commerce/storefront/internal/config"

	"github.com/redis/go-redis/v9"
)

// Provider is a string key/value cache partitioned by prefix and cache name.
// Implementations must be safe for concurrent use.
type Provider interface {
	Get(ctx context.Context, prefix, cacheName, key string) (string, bool, error)
	Put(ctx context.Context, prefix, cacheName, key, value string) error
	Delete(ctx context.Context, prefix, cacheName, key string) error
}

// New picks the provider named in the config
func New(cfg config.CacheConfig, redisClient *redis.Client) (Provider, error) {
	switch cfg.Provider {
	case "", "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("redis cache provider needs a redis client")
		}
		return NewRedisProvider(redisClient, cfg.Expiration()), nil
	case "memory":
		return NewMemoryProvider(cfg.Expiration()), nil
	default:
		return nil, fmt.Errorf("unknown cache provider %q", cfg.Provider)
	}
}

func fullKey(prefix, cacheName, key string) string {
	return prefix + ":" + cacheName + ":" + key
}
