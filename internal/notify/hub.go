package notify

import (
	"go-minimart/internal/model"

	"github.com/asaskevich/EventBus"
)

const (
	TopicProductCreated = "product:created"
	TopicProductUpdated = "product:updated"
	TopicProductDeleted = "product:deleted"
	TopicStockChanged   = "stock:changed"
	TopicLowStock       = "stock:low"
)

// Event is what subscribers receive. Transaction is nil for catalog-only changes.
type Event struct {
	Topic       string
	Product     model.Product
	Transaction *model.Transaction
	Message     string
}

// Hub fans catalog and stock events out to in-process subscribers.
type Hub struct {
	bus EventBus.Bus
}

func NewHub() *Hub {
	return &Hub{bus: EventBus.New()}
}

// Subscribe registers fn for topic and returns a function that removes it.
// Handlers run on the publishing goroutine and must not publish themselves.
func (h *Hub) Subscribe(topic string, fn func(Event)) (func(), error) {
	if err := h.bus.Subscribe(topic, fn); err != nil {
		return nil, err
	}
	return func() {
		_ = h.bus.Unsubscribe(topic, fn)
	}, nil
}

// Publish delivers ev synchronously to every subscriber of topic.
// A nil hub drops the event.
func (h *Hub) Publish(topic string, ev Event) {
	if h == nil {
		return
	}
	ev.Topic = topic
	h.bus.Publish(topic, ev)
}

func (h *Hub) HasSubscribers(topic string) bool {
	if h == nil {
		return false
	}
	return h.bus.HasCallback(topic)
}
