package cart_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/maisonlux/storefront/internal/cache"
	"github.com/maisonlux/storefront/internal/cart"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/stretchr/testify/assert"
)

type stubFetcher struct {
	product models.Product
	err     error
	calls   int
}

func (s *stubFetcher) Product(ctx context.Context, id string) (models.Product, error) {
	s.calls++

	return s.product, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolver(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Live Fetch Populates The Cache", func(t *testing.T) {
		// Arrange
		fetcher := &stubFetcher{product: models.Product{ID: "p1", Name: "Silk Dress", Price: 4500, Stock: 3}}
		resolver := cart.NewResolver(testLogger(), cache.NewMemoryCache(time.Minute), fetcher, time.Minute)

		// Act
		first := resolver.Resolve(ctx, "p1")
		second := resolver.Resolve(ctx, "p1")

		// Assert
		assert.Equal(t, "Silk Dress", first.Name)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, fetcher.calls, "second lookup must come from the cache")
	})

	t.Run("Success - Fallback Answers When The Fetch Fails", func(t *testing.T) {
		// Arrange
		fetcher := &stubFetcher{err: errors.New("upstream down")}
		resolver := cart.NewResolver(testLogger(), cache.NewMemoryCache(time.Minute), fetcher, time.Minute)
		resolver.SetFallback(func(productID string) (models.ProductSnapshot, bool) {
			return models.ProductSnapshot{ID: productID, Name: "Known Item", Price: 2000, Stock: 2}, true
		})

		// Act
		snapshot := resolver.Resolve(ctx, "p2")

		// Assert
		assert.Equal(t, "Known Item", snapshot.Name)
	})

	t.Run("Success - Placeholder Keeps The Cart Functional", func(t *testing.T) {
		// Arrange
		fetcher := &stubFetcher{err: errors.New("upstream down")}
		resolver := cart.NewResolver(testLogger(), cache.NewMemoryCache(time.Minute), fetcher, time.Minute)

		// Act
		snapshot := resolver.Resolve(ctx, "unknown")

		// Assert
		assert.Equal(t, "unknown", snapshot.ID)
		assert.Equal(t, "Product", snapshot.Name)
		assert.Equal(t, 1000.0, snapshot.Price)
		assert.Equal(t, 10, snapshot.Stock)
	})
}
