package events

// Event is anything published on the product event bus
type Event interface {
	// EventType is the wire name of the event
	EventType() string
}

type ProductAdded struct {
	ProductID    int     `json:"product_id"`
	RestaurantID int     `json:"restaurant_id"`
	Name         *string `json:"name"`
}

type ProductUpdated struct {
	ProductID int     `json:"product_id"`
	Name      *string `json:"name"`
}

type ProductDeleted struct {
	ProductID int `json:"product_id"`
}

func (ProductAdded) EventType() string   { return "product_added" }
func (ProductUpdated) EventType() string { return "product_updated" }
func (ProductDeleted) EventType() string { return "product_deleted" }

// Message is the envelope events are serialized in for external consumers
type Message struct {
	EventType string `json:"event-type"`
	Data      Event  `json:"data"`
}

// NewMessage wraps the event in its envelope
func NewMessage(e Event) Message {
	return Message{EventType: e.EventType(), Data: e}
}
