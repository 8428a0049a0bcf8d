package analytics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maisonlux/storefront/internal/config"
	"github.com/maisonlux/storefront/internal/metrics"
	"github.com/maisonlux/storefront/internal/models"
	"github.com/maisonlux/storefront/internal/storage"
)

// EventSender delivers one event to the collector.
type EventSender interface {
	TrackEvent(ctx context.Context, event models.AnalyticsEvent) error
}

// Tracker delivers analytics events and queues the ones that could not be
// sent. The queue is bounded; once full the oldest event is evicted. The
// queue survives restarts through the store.
type Tracker struct {
	mu        sync.Mutex
	log       *slog.Logger
	store     storage.Store
	transport EventSender

	pending []models.AnalyticsEvent
	limit   int
	enabled bool
}

func NewTracker(cfg *config.AnalyticsConfig, log *slog.Logger, store storage.Store, transport EventSender) *Tracker {
	return &Tracker{
		log:       log,
		store:     store,
		transport: transport,
		limit:     cfg.PendingLimit,
		enabled:   cfg.Enabled,
	}
}

// Restore loads the queued events persisted by a previous run.
func (t *Tracker) Restore(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var pending []models.AnalyticsEvent

	found, err := t.store.Load(ctx, storage.KeyAnalyticsPending, &pending)
	if err != nil {
		t.log.Warn("failed to restore pending analytics", slog.String("error", err.Error()))

		return
	}

	if found {
		t.pending = pending
		t.log.Info("pending analytics restored", slog.Int("events", len(pending)))
	}
}

// Track records one event. A delivery failure queues the event rather than
// surfacing an error; tracking never disturbs the caller.
func (t *Tracker) Track(ctx context.Context, category, action string, payload map[string]any) {
	if !t.enabled {
		return
	}

	event := models.AnalyticsEvent{
		Category:  category,
		Action:    action,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	if err := t.transport.TrackEvent(ctx, event); err != nil {
		t.log.Debug("analytics delivery failed, queueing",
			slog.String("category", category),
			slog.String("action", action),
			slog.String("error", err.Error()))

		t.enqueue(ctx, event)
		metrics.ObserveAnalyticsEvent(false)

		return
	}

	metrics.ObserveAnalyticsEvent(true)
}

// Flush retries every queued event in order. Events that fail again stay
// queued.
func (t *Tracker) Flush(ctx context.Context) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	var remaining []models.AnalyticsEvent

	for _, event := range pending {
		if err := t.transport.TrackEvent(ctx, event); err != nil {
			remaining = append(remaining, event)

			continue
		}

		metrics.ObserveAnalyticsEvent(true)
	}

	t.mu.Lock()
	t.pending = append(remaining, t.pending...)
	t.persist(ctx)
	t.mu.Unlock()

	if len(remaining) > 0 {
		t.log.Info("analytics flush incomplete", slog.Int("remaining", len(remaining)))
	}
}

// PendingCount reports the current queue depth.
func (t *Tracker) PendingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.pending)
}

func (t *Tracker) enqueue(ctx context.Context, event models.AnalyticsEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = append(t.pending, event)

	if t.limit > 0 && len(t.pending) > t.limit {
		t.pending = t.pending[len(t.pending)-t.limit:]
	}

	t.persist(ctx)
}

// persist writes the queue; callers must hold the mutex.
func (t *Tracker) persist(ctx context.Context) {
	if err := t.store.Save(ctx, storage.KeyAnalyticsPending, t.pending); err != nil {
		t.log.Warn("failed to persist pending analytics", slog.String("error", err.Error()))
	}
}
