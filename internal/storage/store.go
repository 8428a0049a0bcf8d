package storage

import "context"

// Keys for the persisted snapshots. One key per concern, each holding a
// JSON-serialized value, last writer wins.
const (
	KeyCart             = "storefront:cart"
	KeyFilters          = "storefront:filters"
	KeyWishlist         = "storefront:wishlist"
	KeyCompare          = "storefront:compare"
	KeyAnalyticsPending = "storefront:analytics_pending"
)

// Store is the key-value snapshot store the engine persists its state to.
// Load reports whether the key existed.
type Store interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}
