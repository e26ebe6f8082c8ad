// Package cache provides the TTL cache used for access-control grant sets.
// Keys are typed as (namespace, key) so unrelated subsystems sharing one
// backend cannot collide on raw key strings.
package cache

import (
	"context"
	"time"
)

// Cache is a read-through-friendly TTL store. Get reports a miss (not an
// error) for absent or expired entries. Concurrent misses for the same key
// may recompute in parallel; callers must tolerate duplicate Sets.
type Cache interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, namespace, key string) error
}

func compositeKey(namespace, key string) string {
	return namespace + ":" + key
}
