package blacklist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	mu   sync.Mutex
	keys map[string]time.Duration
}

func (m *memKV) SetNX(ctx context.Context, key string, val string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = ttl
	return true, nil
}

func (m *memKV) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	return ok, nil
}

func TestStore_Revoke(t *testing.T) {
	kv := &memKV{keys: map[string]time.Duration{}}
	s := NewStore(kv, "storefront")

	revoked, err := s.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(context.Background(), "abc", time.Now().Add(time.Hour)))

	revoked, err = s.IsRevoked(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := kv.keys["storefront:jti:abc"]
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
}

func TestStore_RevokeExpired(t *testing.T) {
	kv := &memKV{keys: map[string]time.Duration{}}
	s := NewStore(kv, "")

	require.NoError(t, s.Revoke(context.Background(), "old", time.Now().Add(-time.Hour)))
	assert.Equal(t, time.Minute, kv.keys["jti:old"])
}
