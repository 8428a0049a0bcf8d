package analytics_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/maisonlux/storefront/internal/analytics"
	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/storage"
	"github.com/stretchr/testify/assert"
)

type stubSender struct {
	fail     bool
	received []models.AnalyticsEvent
}

func (s *stubSender) TrackEvent(ctx context.Context, event models.AnalyticsEvent) error {
	if s.fail {
		return errors.New("collector unavailable")
	}

	s.received = append(s.received, event)

	return nil
}

func newTracker(t *testing.T, store storage.Store, sender *stubSender, limit int) *analytics.Tracker {
	t.Helper()

	cfg := &config.AnalyticsConfig{PendingLimit: limit, Enabled: true}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return analytics.NewTracker(cfg, logger, store, sender)
}

func TestTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Delivered Events Do Not Queue", func(t *testing.T) {
		// Arrange
		sender := &stubSender{}
		tracker := newTracker(t, storage.NewMemoryStore(), sender, 100)

		// Act
		tracker.Track(ctx, "catalog", "filtersApplied", map[string]any{"total": 12})

		// Assert
		assert.Len(t, sender.received, 1)
		assert.Equal(t, "catalog", sender.received[0].Category)
		assert.Equal(t, 0, tracker.PendingCount())
	})

	t.Run("Success - Failed Delivery Queues The Event", func(t *testing.T) {
		// Arrange
		sender := &stubSender{fail: true}
		tracker := newTracker(t, storage.NewMemoryStore(), sender, 100)

		// Act
		tracker.Track(ctx, "cart", "itemAdded", nil)

		// Assert
		assert.Equal(t, 1, tracker.PendingCount())
	})

	t.Run("Success - Queue Caps At The Limit, Oldest Evicted", func(t *testing.T) {
		// Arrange
		sender := &stubSender{fail: true}
		tracker := newTracker(t, storage.NewMemoryStore(), sender, 3)

		// Act
		tracker.Track(ctx, "cart", "first", nil)
		tracker.Track(ctx, "cart", "second", nil)
		tracker.Track(ctx, "cart", "third", nil)
		tracker.Track(ctx, "cart", "fourth", nil)

		// Assert: first is gone, the newest three remain
		assert.Equal(t, 3, tracker.PendingCount())

		sender.fail = false
		tracker.Flush(ctx)

		actions := make([]string, 0, len(sender.received))
		for _, evt := range sender.received {
			actions = append(actions, evt.Action)
		}
		assert.Equal(t, []string{"second", "third", "fourth"}, actions)
	})

	t.Run("Success - Disabled Tracker Is Silent", func(t *testing.T) {
		// Arrange
		sender := &stubSender{}
		cfg := &config.AnalyticsConfig{PendingLimit: 100, Enabled: false}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		tracker := analytics.NewTracker(cfg, logger, storage.NewMemoryStore(), sender)

		// Act
		tracker.Track(ctx, "cart", "itemAdded", nil)

		// Assert
		assert.Empty(t, sender.received)
		assert.Equal(t, 0, tracker.PendingCount())
	})
}

func TestFlushAndRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Flush Retries In Order", func(t *testing.T) {
		// Arrange
		sender := &stubSender{fail: true}
		tracker := newTracker(t, storage.NewMemoryStore(), sender, 100)
		tracker.Track(ctx, "cart", "a", nil)
		tracker.Track(ctx, "cart", "b", nil)

		// Act
		sender.fail = false
		tracker.Flush(ctx)

		// Assert
		assert.Equal(t, 0, tracker.PendingCount())
		assert.Equal(t, "a", sender.received[0].Action)
		assert.Equal(t, "b", sender.received[1].Action)
	})

	t.Run("Success - Events That Fail Again Stay Queued", func(t *testing.T) {
		// Arrange
		sender := &stubSender{fail: true}
		tracker := newTracker(t, storage.NewMemoryStore(), sender, 100)
		tracker.Track(ctx, "cart", "a", nil)

		// Act
		tracker.Flush(ctx)

		// Assert
		assert.Equal(t, 1, tracker.PendingCount())
	})

	t.Run("Success - Queue Survives A Restart", func(t *testing.T) {
		// Arrange
		store := storage.NewMemoryStore()
		sender := &stubSender{fail: true}
		first := newTracker(t, store, sender, 100)
		first.Track(ctx, "cart", "queued", nil)

		// Act
		second := newTracker(t, store, sender, 100)
		second.Restore(ctx)

		// Assert
		assert.Equal(t, 1, second.PendingCount())

		sender.fail = false
		second.Flush(ctx)
		assert.Equal(t, "queued", sender.received[0].Action)
	})
}
