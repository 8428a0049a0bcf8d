package cache

import (
	"context"
	"time"
)

// Cache is the short-lived detail cache in front of the remote product
// lookup. Get reports whether the key was present and fresh.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix = "product"
	SessionKeyPrefix = "session"
)
