package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, h *Handler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// publishUntil keeps publishing e until stop is closed; the handler
// subscribes only after the handshake so a single publish could be missed
func publishUntil(bus *events.EventBus[events.Event], e events.Event, stop chan struct{}) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			bus.Publish(e)
		case <-stop:
			return
		}
	}
}

func TestHandleWebSocketStreamsEvents(t *testing.T) {
	bus := events.NewEventBus[events.Event]()
	h := NewHandler(hclog.NewNullLogger(), bus)
	conn := dial(t, h)

	stop := make(chan struct{})
	defer close(stop)
	go publishUntil(bus, events.ProductDeleted{ProductID: 5}, stop)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg struct {
		EventType string `json:"event-type"`
		Data      struct {
			ProductID int `json:"product_id"`
		} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "product_deleted", msg.EventType)
	assert.Equal(t, 5, msg.Data.ProductID)
}

func TestHandleWebSocketClosesOnShutdown(t *testing.T) {
	bus := events.NewEventBus[events.Event]()
	h := NewHandler(hclog.NewNullLogger(), bus)
	conn := dial(t, h)

	stop := make(chan struct{})
	go publishUntil(bus, events.ProductDeleted{ProductID: 1}, stop)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	require.NoError(t, err)
	close(stop)

	bus.Close()

	for {
		_, _, err = conn.ReadMessage()
		if err != nil {
			break
		}
	}
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}
