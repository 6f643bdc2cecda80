// Package cache provides byte-level caching for computed layouts.
//
// Layout passes are pure functions of their inputs, so a layout can be
// cached under a hash of the canonical day sheet, policy, and window.
// Three backends cover the deployment shapes:
//   - FileCache: CLI usage, entries under ~/.cache/tableyeah/
//   - RedisCache: server usage, shared across instances
//   - NullCache: caching disabled (tests, --no-cache)
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the cache backend cannot be
	// reached. Callers treat this as a miss, never a fatal error.
	ErrUnavailable = errors.New("cache unavailable")
)

// Cache is the interface all backends implement. Get reports a miss via
// ok=false rather than an error; backend failures surface as errors so
// callers can log them and continue uncached.
type Cache interface {
	// Get retrieves a value. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DefaultLayoutTTL bounds how long a cached layout stays valid. Layouts
// are cheap to recompute; the cache exists to absorb bursts of identical
// requests, not to persist results.
const DefaultLayoutTTL = 15 * time.Minute
