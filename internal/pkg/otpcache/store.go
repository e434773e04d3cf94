package otpcache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when no live value exists for the key,
// whether it was never stored, already consumed, or expired.
var ErrNotFound = errors.New("otpcache: not found")

// Store is a keyed, time-bound single-value cache. At most one live value
// exists per key; Put replaces any previous value and resets its expiry.
//
// Implementations must be safe for concurrent use. Operations on distinct
// keys must not block each other; operations on the same key must be
// linearizable so an overwrite is never lost and a stale value is never
// observed after an overwrite completes.
type Store interface {
	// Put stores value under key with the given time-to-live, replacing any
	// existing entry.
	Put(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the live value for key. Expired entries behave as absent
	// regardless of eviction timing.
	Get(ctx context.Context, key string) (string, error)

	// Evict removes any entry for key. Evicting an absent key is a no-op.
	Evict(ctx context.Context, key string) error
}
