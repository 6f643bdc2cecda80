package cache

import (
	"context"
	"time"
)

// NullCache disables layout caching: every Get misses, so each request
// recomputes the layout from the day sheet. It backs the --no-cache
// flag and keeps tests independent of cache state.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always reports a miss, forcing a fresh layout pass.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the computed layout.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op; there is never anything to evict.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op; there is no backend to release.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
