package blacklist

import (
	"context"
	"fmt"
	"time"

	"commerce/storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

// KV is the part of a key/value store the blacklist needs
type KV interface {
	SetNX(ctx context.Context, key string, val string, ttl time.Duration) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

type Store struct {
	kv     KV
	prefix string
}

var _ domain.TokenBlacklist = (*Store)(nil)

func NewStore(kv KV, prefix string) *Store {
	return &Store{kv: kv, prefix: prefix}
}

func (s *Store) key(jti string) string {
	if s.prefix == "" {
		return domain.CacheKeyTokenJTI(jti)
	}
	return s.prefix + ":" + domain.CacheKeyTokenJTI(jti)
}

// Revoke marks jti revoked until exp
func (s *Store) Revoke(ctx context.Context, jti string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		ttl = time.Minute
	}
	if _, err := s.kv.SetNX(ctx, s.key(jti), "1", ttl); err != nil {
		return fmt.Errorf("failed to revoke token %s: %w", jti, err)
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.kv.Exists(ctx, s.key(jti))
}

type redisKV struct {
	redisClient *redis.Client
}

func NewRedisKV(redisClient *redis.Client) KV {
	return &redisKV{redisClient: redisClient}
}

func (r *redisKV) SetNX(ctx context.Context, key string, val string, ttl time.Duration) (bool, error) {
	return r.redisClient.SetNX(ctx, key, val, ttl).Result()
}

func (r *redisKV) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.redisClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
