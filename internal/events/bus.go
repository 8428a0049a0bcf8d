package events

import (
	"sync"
	"time"

	"github.com/maisonlux/storefront/internal/models"
)

type Topic string

const (
	TopicItemAdded       Topic = "cart:itemAdded"
	TopicQuantityUpdated Topic = "cart:quantityUpdated"
	TopicItemRemoved     Topic = "cart:itemRemoved"
	TopicCartCleared     Topic = "cart:cartCleared"
	TopicFiltersApplied  Topic = "catalog:filtersApplied"
	TopicSearchResults   Topic = "catalog:searchResults"
	TopicPageNavigated   Topic = "catalog:pageNavigated"
)

type ItemAdded struct {
	Product  models.ProductSnapshot
	Quantity int
}

type QuantityUpdated struct {
	EntryID  string
	Quantity int
}

type ItemRemoved struct {
	EntryID string
}

type CartCleared struct{}

type FiltersApplied struct {
	Spec       models.FilterSpec
	Total      int
	Page       int
	TotalPages int
}

type SearchResults struct {
	Query string
	Total int
}

type PageNavigated struct {
	Page       int
	TotalPages int
}

type Event struct {
	Topic   Topic
	At      time.Time
	Payload any
}

type Handler func(Event)

// Bus is an in-process publish/subscribe mechanism keyed by topic. Delivery
// is synchronous with no guaranteed order across subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]Handler
	all  []Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]Handler)}
}

// Subscribe registers a handler for one topic and returns an unsubscribe
// function.
func (b *Bus) Subscribe(topic Topic, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[topic] = append(b.subs[topic], h)
	idx := len(b.subs[topic]) - 1

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		handlers := b.subs[topic]
		if idx < len(handlers) {
			b.subs[topic] = append(handlers[:idx], handlers[idx+1:]...)
		}
	}
}

// SubscribeAll registers a handler for every topic.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.all = append(b.all, h)
}

func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic])+len(b.all))
	handlers = append(handlers, b.subs[topic]...)
	handlers = append(handlers, b.all...)
	b.mu.RUnlock()

	event := Event{Topic: topic, At: time.Now(), Payload: payload}

	for _, h := range handlers {
		h(event)
	}
}
