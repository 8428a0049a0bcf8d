package storeapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/pkg/storeapi"
	"github.com/stretchr/testify/assert"
)

func TestProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Decodes The Product Envelope", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products/p1", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"product": models.Product{ID: "p1", Name: "Wool Blazer", Price: 3200, Stock: 6},
			})
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)

		// Act
		product, err := client.Product(ctx, "p1")

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "Wool Blazer", product.Name)
		assert.Equal(t, 3200.0, product.Price)
	})

	t.Run("Failure - Unsuccessful Envelope", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"success": false})
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)

		// Act
		_, err := client.Product(ctx, "missing")

		// Assert
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Failure - Non-200 Status", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)

		// Act
		_, err := client.Product(ctx, "p1")

		// Assert
		assert.Error(t, err)
	})
}

func TestProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Decodes The Full Set", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/products", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"products": []models.Product{
					{ID: "p1", Name: "One"},
					{ID: "p2", Name: "Two"},
				},
			})
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)

		// Act
		products, err := client.Products(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Len(t, products, 2)
	})
}

func TestCheckSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Reads The Session Flag", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/check", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]bool{"is_authenticated": true})
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)

		// Act
		ok, err := client.CheckSession(ctx)

		// Assert
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Failure - Unreachable Upstream", func(t *testing.T) {
		// Arrange
		client := storeapi.NewClient("http://127.0.0.1:1", 100*time.Millisecond)

		// Act
		ok, err := client.CheckSession(ctx)

		// Assert
		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestTrackEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Posts The Event As JSON", func(t *testing.T) {
		// Arrange
		var received models.AnalyticsEvent

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/analytics/track", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)
		event := models.AnalyticsEvent{Category: "cart", Action: "itemAdded", Timestamp: time.Now()}

		// Act
		err := client.TrackEvent(ctx, event)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, "cart", received.Category)
	})

	t.Run("Failure - Collector Rejects The Event", func(t *testing.T) {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := storeapi.NewClient(server.URL, time.Second)

		// Act
		err := client.TrackEvent(ctx, models.AnalyticsEvent{Category: "cart", Action: "x"})

		// Assert
		assert.Error(t, err)
	})
}
