package events

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EventBus is a synchronous, in-process event bus. Delivery order is
// subscription order. It is not safe for concurrent use; the engine that
// owns it is single-threaded.
type EventBus struct {
	subscribers  []Subscriber
	funcHandlers map[string][]EventHandler
	anyHandlers  []EventHandler
	logger       zerolog.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates a bus that logs through the given logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		funcHandlers: make(map[string][]EventHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus. A subscriber with the
// same ID replaces the previous one.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	for i, s := range eb.subscribers {
		if s.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	for i, s := range eb.subscribers {
		if s.ID() == subscriberID {
			// copy so a Publish in progress keeps its view of the list
			eb.subscribers = append(eb.subscribers[:i:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().
				Str("subscriber_id", subscriberID).
				Msg("Subscriber removed from event bus")
			return
		}
	}
}

// SubscribeFunc adds a function handler for specific event types
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)

	handlerID := fmt.Sprintf("%s_func_%d", eventType, len(eb.funcHandlers[eventType]))
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// SubscribeAll adds a handler that receives every event
func (eb *EventBus) SubscribeAll(handler EventHandler) {
	eb.anyHandlers = append(eb.anyHandlers, handler)
}

// Listen registers a handler for one concrete event type. The payload type
// is checked at compile time:
//
//	events.Listen(bus, func(e *events.CityFoundedEvent) { ... })
func Listen[E Event](eb *EventBus, fn func(E)) {
	eb.SubscribeAll(func(e Event) {
		if typed, ok := e.(E); ok {
			fn(typed)
		}
	})
}

// Publish sends an event to all interested subscribers synchronously.
// Handlers added during delivery first see the next event.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	if ev := eb.logger.Debug(); ev.Enabled() {
		ev.Str("event_type", eventType).
			Str("game_id", event.GameID()).
			Int("turn", event.Meta().Turn).
			Msg("Publishing event")
	}

	// The lists are append-only or replaced on unsubscribe, so these
	// headers stay stable while handlers run.
	subscribers := eb.subscribers
	funcHandlers := eb.funcHandlers[eventType]
	anyHandlers := eb.anyHandlers

	for _, subscriber := range subscribers {
		if subscriber.InterestedIn(eventType) {
			eb.deliver(event, subscriber.ID(), -1, subscriber.HandleEvent)
		}
	}
	for i, handler := range funcHandlers {
		eb.deliver(event, "func", i+1, handler)
	}
	for i, handler := range anyHandlers {
		eb.deliver(event, "any", i+1, handler)
	}
}

// deliver runs one handler, recovering panics so one bad handler cannot
// break the others or the engine. The handler id is only formatted when
// something went wrong.
func (eb *EventBus) deliver(event Event, handlerID string, n int, handler EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			if n > 0 {
				handlerID = fmt.Sprintf("%s_%d", handlerID, n)
			}
			eb.logger.Error().
				Str("handler_id", handlerID).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	handler(event)
}

// GetSubscriberCount returns the number of subscribers for debugging
func (eb *EventBus) GetSubscriberCount() int {
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	return len(eb.funcHandlers[eventType])
}
