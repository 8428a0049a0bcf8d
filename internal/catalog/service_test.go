package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/maisonlux/storefront/internal/catalog"
	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/events"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
)

type stubSource struct {
	products []models.Product
	err      error
}

func (s *stubSource) Products(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func newTestService(t *testing.T, store storage.Store, sources ...catalog.ProductSource) *catalog.Service {
	t.Helper()

	cfg := &config.CatalogConfig{
		PageSize:       12,
		MaxPrice:       models.DefaultMaxPrice,
		SearchDebounce: 20 * time.Millisecond,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return catalog.NewService(cfg, logger, events.NewBus(), store, sources...)
}

func TestServiceLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - First Answering Source Wins", func(t *testing.T) {
		// Arrange
		want := []models.Product{{ID: "p1", Name: "One", Price: 100, CreatedAt: time.Now()}}
		svc := newTestService(t, storage.NewMemoryStore(),
			&stubSource{err: errors.New("unreachable")},
			&stubSource{products: want},
		)

		// Act
		svc.Load(ctx)

		// Assert
		page := svc.Page()
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, "p1", page.Items[0].ID)
	})

	t.Run("Success - Falls Back To The Demo Catalog", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore(),
			&stubSource{err: errors.New("unreachable")},
		)

		// Act
		svc.Load(ctx)

		// Assert
		assert.Equal(t, 48, svc.Page().Total)
	})

	t.Run("Success - Restored Spec Starts On Page One", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		first := newTestService(t, store)
		first.Load(ctx)
		first.SetCategory("Dresses")
		first.GoToPage(99)

		// Act: a fresh engine over the same store
		second := newTestService(t, store)
		second.Load(ctx)

		// Assert
		page := second.Page()
		assert.Equal(t, "Dresses", second.Spec().Category)
		assert.Equal(t, 1, page.Page)
	})

	t.Run("Success - Sanitizes Descriptions", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore(), &stubSource{products: []models.Product{
			{ID: "p1", Description: `plain <script>alert("x")</script> text`},
		}})

		// Act
		svc.Load(ctx)

		// Assert
		page := svc.Page()
		assert.NotContains(t, page.Items[0].Description, "<script>")
	})
}

func TestServiceFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Every Mutation Resets To Page One", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)
		svc.GoToPage(3)

		// Act
		result := svc.ToggleBrand("Dior")

		// Assert
		assert.Equal(t, 1, result.Page)
	})

	t.Run("Success - Toggle Twice Restores The Set", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)
		before := svc.Page().Total

		// Act
		svc.ToggleColor("red")
		after := svc.ToggleColor("red")

		// Assert
		assert.Equal(t, before, after.Total)
	})

	t.Run("Success - Inverted Price Bounds Are Swapped", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)

		// Act
		result := svc.SetPriceRange(3000, 2000)

		// Assert
		assert.Equal(t, models.PriceRange{Min: 2000, Max: 3000}, svc.Spec().Price)
		for _, p := range result.Items {
			assert.GreaterOrEqual(t, p.Price, 2000.0)
			assert.LessOrEqual(t, p.Price, 3000.0)
		}
	})

	t.Run("Success - Reset Keeps Page Size And Price Ceiling", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)
		svc.SetPageSize(24)
		svc.ToggleBrand("Dior")
		svc.SetCategory("Shoes")

		// Act
		result := svc.ResetFilters()

		// Assert
		assert.Equal(t, 48, result.Total)
		assert.Equal(t, 24, svc.Spec().PageSize)
		assert.Equal(t, models.CategoryAll, svc.Spec().Category)
		assert.Empty(t, svc.Spec().Brands)
	})

	t.Run("Success - Search Overrides Active Structural Filters", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)
		svc.SetCategory("Shoes")

		// Act
		result := svc.SearchNow("dior")

		// Assert: more than the Shoes slice of Dior comes back
		categories := map[string]bool{}
		for _, p := range result.Items {
			categories[p.Category] = true
		}
		assert.NotEmpty(t, result.Items)
		assert.Greater(t, len(categories), 1)
	})

	t.Run("Success - Debounced Search Applies After The Window", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)

		// Act: rapid keystrokes, only the last query should land
		svc.Search("di")
		svc.Search("dio")
		svc.Search("dior")

		// Assert
		assert.Eventually(t, func() bool {
			return svc.Spec().Query == "dior"
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Success - Category Counts Cover The Full Set", func(t *testing.T) {
		// Arrange
		svc := newTestService(t, storage.NewMemoryStore())
		svc.Load(ctx)
		svc.SetCategory("Dresses")

		// Act: counts ignore the active filters
		counts := svc.CategoryCounts()

		// Assert
		assert.Equal(t, 48, counts.All)
		assert.Equal(t, 12, counts.New)

		sum := 0
		for _, n := range counts.PerCategory {
			sum += n
		}
		assert.Equal(t, 48, sum)
	})
}

func TestServicePagination(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - GoToPage Clamps And Publishes", func(t *testing.T) {
		// Arrange
		bus := events.NewBus()
		cfg := &config.CatalogConfig{PageSize: 12, MaxPrice: models.DefaultMaxPrice, SearchDebounce: time.Millisecond}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := catalog.NewService(cfg, logger, bus, storage.NewMemoryStore())
		svc.Load(ctx)

		var got events.PageNavigated
		bus.Subscribe(events.TopicPageNavigated, func(evt events.Event) {
			got = evt.Payload.(events.PageNavigated)
		})

		// Act
		result := svc.GoToPage(99)

		// Assert
		assert.Equal(t, 4, result.Page)
		assert.Equal(t, 4, got.Page)
		assert.Equal(t, 4, got.TotalPages)
	})
}
