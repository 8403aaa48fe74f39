package events

import "sync"

// subscriberBuffer is the number of events a slow subscriber may lag behind
// before further events are dropped for it
const subscriberBuffer = 100

// Subscriber is a channel that transports events of type T
type Subscriber[T any] chan T

// EventBus fans out published events to every subscriber without blocking
// the publisher
type EventBus[T any] struct {
	subscribers map[Subscriber[T]]struct{}
	mutex       sync.RWMutex
	closed      bool
}

func NewEventBus[T any]() *EventBus[T] {
	return &EventBus[T]{
		subscribers: make(map[Subscriber[T]]struct{}),
	}
}

// Subscribe registers a new subscriber. On a closed bus the returned
// channel is already closed.
func (bus *EventBus[T]) Subscribe() Subscriber[T] {
	ch := make(Subscriber[T], subscriberBuffer)

	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if bus.closed {
		close(ch)
		return ch
	}
	bus.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes and closes the subscriber. Unknown or already
// removed subscribers are ignored.
func (bus *EventBus[T]) Unsubscribe(ch Subscriber[T]) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if _, ok := bus.subscribers[ch]; !ok {
		return
	}
	delete(bus.subscribers, ch)
	close(ch)
}

// Publish broadcasts an event to all registered subscribers. Subscribers
// with a full buffer miss the event.
func (bus *EventBus[T]) Publish(event T) {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()

	for subscriber := range bus.subscribers {
		select {
		case subscriber <- event:
		default:
		}
	}
}

// Close closes every subscriber channel; later subscriptions are closed
// immediately and later publishes are no-ops
func (bus *EventBus[T]) Close() {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()

	if bus.closed {
		return
	}
	bus.closed = true
	for subscriber := range bus.subscribers {
		delete(bus.subscribers, subscriber)
		close(subscriber)
	}
}
