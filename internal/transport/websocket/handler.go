package websocket

import (
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/menu-api/internal/events"
	"net/http"
	"time"
)

// writeWait is the time allowed to write a single message to the client
const writeWait = 10 * time.Second

// Handler streams product events to websocket clients
type Handler struct {
	Upgrader websocket.Upgrader
	Log      hclog.Logger
	EventBus *events.EventBus[events.Event]
}

func NewHandler(log hclog.Logger, eventBus *events.EventBus[events.Event]) *Handler {
	return &Handler{
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the API is open to any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Log:      log,
		EventBus: eventBus,
	}
}

func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Error("Unable to upgrade to WebSocket", "error", err)
		return
	}
	defer conn.Close()

	subscriber := h.EventBus.Subscribe()
	defer h.EventBus.Unsubscribe(subscriber)

	done := make(chan struct{})
	go h.readPump(conn, done)

	h.Log.Debug("WebSocket client connected", "remote", r.RemoteAddr)

	for {
		select {
		case event, ok := <-subscriber:
			if !ok {
				// bus closed, server is shutting down
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeWait))
				return
			}

			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(events.NewMessage(event)); err != nil {
				h.Log.Error("Error writing message to WebSocket", "error", err)
				return
			}
		case <-done:
			h.Log.Debug("WebSocket connection closed by the client")
			return
		}
	}
}

// readPump drains client messages so control frames are processed, and
// closes done once the connection fails
func (h *Handler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Error("Error reading message", "error", err)
			}
			return
		}
	}
}
