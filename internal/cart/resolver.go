package cart

import (
	"context"
	"log/slog"
	"time"

	"github.com/maisonlux/storefront/internal/cache"
	"github.com/maisonlux/storefront/internal/models"
)

// ProductFetcher looks up a live product record, typically over the wire.
type ProductFetcher interface {
	Product(ctx context.Context, id string) (models.Product, error)
}

// FallbackFunc answers with an already-known snapshot, e.g. from an entry
// that is currently in the cart.
type FallbackFunc func(productID string) (models.ProductSnapshot, bool)

// Resolver produces the display snapshot for a product id. Lookup order:
// cache, live fetch (which refreshes the cache), caller-supplied fallback,
// and finally a usable placeholder. Resolve never fails.
type Resolver struct {
	log      *slog.Logger
	cache    cache.Cache
	fetcher  ProductFetcher
	fallback FallbackFunc
	ttl      time.Duration
}

func NewResolver(log *slog.Logger, c cache.Cache, fetcher ProductFetcher, ttl time.Duration) *Resolver {
	return &Resolver{
		log:     log,
		cache:   c,
		fetcher: fetcher,
		ttl:     ttl,
	}
}

// SetFallback registers the last-resort local lookup. It exists as a setter
// because the cart service that provides it is constructed after the
// resolver.
func (r *Resolver) SetFallback(fn FallbackFunc) {
	r.fallback = fn
}

func (r *Resolver) Resolve(ctx context.Context, productID string) models.ProductSnapshot {
	key := cache.Key(cache.ProductKeyPrefix, productID)

	var cached models.ProductSnapshot

	found, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.log.Warn("product cache read failed", slog.String("product_id", productID), slog.String("error", err.Error()))
	}

	if found {
		return cached
	}

	if r.fetcher != nil {
		product, err := r.fetcher.Product(ctx, productID)
		if err == nil {
			snapshot := snapshotOf(product)

			if err := r.cache.Set(ctx, key, snapshot, r.ttl); err != nil {
				r.log.Warn("product cache write failed", slog.String("product_id", productID), slog.String("error", err.Error()))
			}

			return snapshot
		}

		r.log.Warn("product fetch failed", slog.String("product_id", productID), slog.String("error", err.Error()))
	}

	if r.fallback != nil {
		if snapshot, ok := r.fallback(productID); ok {
			return snapshot
		}
	}

	return placeholderSnapshot(productID)
}

func snapshotOf(p models.Product) models.ProductSnapshot {
	return models.ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Category: p.Category,
		Stock:    p.Stock,
		Discount: p.Discount,
	}
}

// placeholderSnapshot keeps the cart functional when nothing at all is known
// about the product.
func placeholderSnapshot(productID string) models.ProductSnapshot {
	return models.ProductSnapshot{
		ID:       productID,
		Name:     "Product",
		Price:    1000,
		Stock:    10,
		Discount: 0,
	}
}
