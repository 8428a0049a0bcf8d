package utils

import (
	"context"
	"time"
)

const dbTimeout = 5 * time.Second

// WithDBTimeout bounds a database round trip.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, dbTimeout)
}
