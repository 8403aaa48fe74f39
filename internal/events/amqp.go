package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishTimeout bounds a single broker publish
const publishTimeout = 5 * time.Second

// Publisher is the part of *amqp.Channel the forwarder needs
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Forwarder relays events from the bus to a RabbitMQ queue
type Forwarder struct {
	log        hclog.Logger
	bus        *EventBus[Event]
	publisher  Publisher
	queue      string
	subscriber Subscriber[Event]
	wg         sync.WaitGroup
	once       sync.Once
	closers    []func() error
}

// DialForwarder connects to the broker, declares a durable queue and starts
// forwarding events published on bus
func DialForwarder(log hclog.Logger, bus *EventBus[Event], url, queue string) (*Forwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	f := NewForwarder(log, bus, ch, queue)
	f.closers = append(f.closers, ch.Close, conn.Close)
	return f, nil
}

// NewForwarder starts forwarding events published on bus to the queue via
// publisher
func NewForwarder(log hclog.Logger, bus *EventBus[Event], publisher Publisher, queue string) *Forwarder {
	f := &Forwarder{
		log:        log,
		bus:        bus,
		publisher:  publisher,
		queue:      queue,
		subscriber: bus.Subscribe(),
	}

	f.wg.Add(1)
	go f.run()

	return f
}

func (f *Forwarder) run() {
	defer f.wg.Done()
	for event := range f.subscriber {
		if err := f.publish(event); err != nil {
			f.log.Error("Unable to publish event", "event", event.EventType(), "error", err)
			continue
		}
		f.log.Debug("Published event", "event", event.EventType(), "queue", f.queue)
	}
}

func (f *Forwarder) publish(event Event) error {
	body, err := json.Marshal(NewMessage(event))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	return f.publisher.PublishWithContext(ctx, "", f.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.EventType(),
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Close stops forwarding, waits for in-flight events and releases the
// broker connection if the forwarder owns one
func (f *Forwarder) Close() error {
	var err error
	f.once.Do(func() {
		f.bus.Unsubscribe(f.subscriber)
		f.wg.Wait()

		for _, c := range f.closers {
			if cerr := c(); cerr != nil && err == nil {
				err = cerr
			}
		}
		f.log.Info("Event forwarder stopped")
	})
	return err
}
