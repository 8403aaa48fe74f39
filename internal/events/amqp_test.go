package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	fail      bool
}

func (p *fakePublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, key)
	p.published = append(p.published, msg)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func TestForwarderPublishesEvents(t *testing.T) {
	bus := NewEventBus[Event]()
	pub := &fakePublisher{}
	f := NewForwarder(hclog.NewNullLogger(), bus, pub, "product-events")

	bus.Publish(ProductDeleted{ProductID: 9})

	require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, f.Close())

	msg := pub.published[0]
	assert.Equal(t, "product-events", pub.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, "product_deleted", msg.Type)

	var body struct {
		EventType string `json:"event-type"`
		Data      struct {
			ProductID int `json:"product_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Body, &body))
	assert.Equal(t, "product_deleted", body.EventType)
	assert.Equal(t, 9, body.Data.ProductID)
}

func TestForwarderSurvivesPublishErrors(t *testing.T) {
	bus := NewEventBus[Event]()
	pub := &fakePublisher{fail: true}
	f := NewForwarder(hclog.NewNullLogger(), bus, pub, "q")

	bus.Publish(ProductDeleted{ProductID: 1})
	bus.Publish(ProductDeleted{ProductID: 2})

	require.NoError(t, f.Close())
	assert.Equal(t, 0, pub.count())
	assert.NoError(t, f.Close())
}
