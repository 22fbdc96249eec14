package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   string
	expires time.Time // zero never expires
}

type memoryProvider struct {
	entries sync.Map // map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryProvider returns a process local provider, used in tests and single instance setups.
// Expired entries read as misses and are dropped on access.
func NewMemoryProvider(ttl time.Duration) Provider {
	return &memoryProvider{ttl: ttl, now: time.Now}
}

func (p *memoryProvider) Get(ctx context.Context, prefix, cacheName, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	k := fullKey(prefix, cacheName, key)
	val, ok := p.entries.Load(k)
	if !ok {
		return "", false, nil
	}
	entry := val.(memoryEntry)
	if !entry.expires.IsZero() && !p.now().Before(entry.expires) {
		p.entries.CompareAndDelete(k, entry)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (p *memoryProvider) Put(ctx context.Context, prefix, cacheName, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entry := memoryEntry{value: value}
	if p.ttl > 0 {
		entry.expires = p.now().Add(p.ttl)
	}
	p.entries.Store(fullKey(prefix, cacheName, key), entry)
	return nil
}

func (p *memoryProvider) Delete(ctx context.Context, prefix, cacheName, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.entries.Delete(fullKey(prefix, cacheName, key))
	return nil
}
