package events_test

import (
	"testing"

	"github.com/maisonlux/storefront/internal/events"
	"github.com/stretchr/testify/assert"
)

func TestBus(t *testing.T) {
	t.Run("Success - Subscribers Receive Their Topic Only", func(t *testing.T) {
		// Arrange
		bus := events.NewBus()

		var added, removed int

		bus.Subscribe(events.TopicItemAdded, func(evt events.Event) { added++ })
		bus.Subscribe(events.TopicItemRemoved, func(evt events.Event) { removed++ })

		// Act
		bus.Publish(events.TopicItemAdded, events.ItemAdded{Quantity: 1})

		// Assert
		assert.Equal(t, 1, added)
		assert.Equal(t, 0, removed)
	})

	t.Run("Success - SubscribeAll Sees Every Topic", func(t *testing.T) {
		// Arrange
		bus := events.NewBus()

		var topics []events.Topic

		bus.SubscribeAll(func(evt events.Event) { topics = append(topics, evt.Topic) })

		// Act
		bus.Publish(events.TopicItemAdded, events.ItemAdded{})
		bus.Publish(events.TopicCartCleared, events.CartCleared{})
		bus.Publish(events.TopicPageNavigated, events.PageNavigated{Page: 2})

		// Assert
		assert.Equal(t, []events.Topic{
			events.TopicItemAdded,
			events.TopicCartCleared,
			events.TopicPageNavigated,
		}, topics)
	})

	t.Run("Success - Unsubscribe Stops Delivery", func(t *testing.T) {
		// Arrange
		bus := events.NewBus()

		var count int

		unsubscribe := bus.Subscribe(events.TopicCartCleared, func(evt events.Event) { count++ })

		// Act
		bus.Publish(events.TopicCartCleared, events.CartCleared{})
		unsubscribe()
		bus.Publish(events.TopicCartCleared, events.CartCleared{})

		// Assert
		assert.Equal(t, 1, count)
	})

	t.Run("Success - Payload Carries The Event Data", func(t *testing.T) {
		// Arrange
		bus := events.NewBus()

		var got events.SearchResults

		bus.Subscribe(events.TopicSearchResults, func(evt events.Event) {
			got = evt.Payload.(events.SearchResults)
		})

		// Act
		bus.Publish(events.TopicSearchResults, events.SearchResults{Query: "silk", Total: 7})

		// Assert
		assert.Equal(t, "silk", got.Query)
		assert.Equal(t, 7, got.Total)
		assert.False(t, got.Total == 0)
	})
}
