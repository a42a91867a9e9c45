// Package notify is the in-process feed behind the back-office notification
// badge. Publishing is fire-and-forget: no listener has to be present and
// slow listeners are skipped rather than awaited.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	KindOrder    Kind = "order"
	KindCustomer Kind = "customer"
)

// OrderSummary is the order slice of a notification message.
type OrderSummary struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	TotalAmount float64 `json:"totalAmount"`
}

// CustomerSummary is the customer slice of a notification message.
type CustomerSummary struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Message is the tagged union delivered to subscribers; exactly one of
// Order and Customer is set, matching Kind.
type Message struct {
	Kind       Kind             `json:"type"`
	Order      *OrderSummary    `json:"order,omitempty"`
	Customer   *CustomerSummary `json:"customer,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}

const recentLimit = 50

// Hub fans messages out to subscribers and keeps a bounded recent history
// for the admin feed endpoint.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan Message
	nextID int
	recent []Message
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Message)}
}

// Publish delivers msg to every subscriber whose buffer has room and
// records it in the recent history. It never blocks.
func (h *Hub) Publish(msg Message) {
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now().UTC()
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.recent = append([]Message{msg}, h.recent...)
	if len(h.recent) > recentLimit {
		h.recent = h.recent[:recentLimit]
	}

	for _, ch := range h.subs {
		select {
		case ch <- msg:
		default:
			// subscriber is not keeping up; drop rather than block
		}
	}
}

// Subscribe registers a listener and returns its channel plus an
// unsubscribe function. The channel is closed on unsubscribe.
func (h *Hub) Subscribe(buffer int) (<-chan Message, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Message, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

// Recent returns the latest messages, newest first.
func (h *Hub) Recent() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.recent))
	copy(out, h.recent)
	return out
}
