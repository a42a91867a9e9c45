package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

const (
	EventsExchange = "storefront.events"

	OrderPlacedRoutingKey        = "order.placed.v1"
	QuoteSavedRoutingKey         = "quote.saved.v1"
	CustomerRegisteredRoutingKey = "customer.registered.v1"

	producerName = "storefront"

	OrderPlacedEventName        = "OrderPlaced"
	QuoteSavedEventName         = "QuoteSaved"
	CustomerRegisteredEventName = "CustomerRegistered"

	eventVersion = 1
)

// OrderPlaced is published after an order record is stored.
type OrderPlaced struct {
	OrderID       string            `json:"orderId"`
	OrderNumber   string            `json:"orderNumber"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail"`
	Items         []OrderPlacedItem `json:"items"`
	TotalAmount   float64           `json:"totalAmount"`
	PaymentMethod string            `json:"paymentMethod"`
}

type OrderPlacedItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// QuoteSaved is published after a visitor saves a quote.
type QuoteSaved struct {
	QuoteID                string  `json:"quoteId"`
	QuoteNumber            string  `json:"quoteNumber"`
	CustomerName           string  `json:"customerName"`
	CustomerEmail          string  `json:"customerEmail"`
	TotalAmount            float64 `json:"totalAmount"`
	PhysicalVisitRequested bool    `json:"physicalVisitRequested"`
	NeedExpertHelp         bool    `json:"needExpertHelp"`
}

// CustomerRegistered is published the first time an email address checks
// out.
type CustomerRegistered struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Metadata carries correlation context plus the overridable identity fields
// tests pin down.
type Metadata struct {
	CorrelationID string
	EventID       string
	OccurredAt    time.Time
	Sequence      int64
}

func newEnvelope[T any](name, partitionKey string, payload T, meta Metadata) Envelope[T] {
	eventID := meta.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	occurredAt := meta.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	return Envelope[T]{
		EventName:     name,
		EventVersion:  eventVersion,
		EventID:       eventID,
		CorrelationID: meta.CorrelationID,
		Producer:      producerName,
		PartitionKey:  partitionKey,
		Sequence:      meta.Sequence,
		OccurredAt:    occurredAt,
		Payload:       payload,
	}
}

// BuildOrderPlacedEvent wraps the order into an enveloped event partitioned
// by order ID.
func BuildOrderPlacedEvent(o *order.Order, meta Metadata) Envelope[OrderPlaced] {
	payload := OrderPlaced{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.Customer.Name,
		CustomerEmail: o.Customer.Email,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.PaymentMethod,
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, OrderPlacedItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return newEnvelope(OrderPlacedEventName, o.ID, payload, meta)
}

// BuildQuoteSavedEvent wraps the quote into an enveloped event partitioned
// by quote ID.
func BuildQuoteSavedEvent(q *quote.Quote, meta Metadata) Envelope[QuoteSaved] {
	payload := QuoteSaved{
		QuoteID:                q.ID,
		QuoteNumber:            q.QuoteNumber,
		CustomerName:           q.Customer.Name,
		CustomerEmail:          q.Customer.Email,
		TotalAmount:            q.TotalAmount,
		PhysicalVisitRequested: q.PhysicalVisitRequested,
		NeedExpertHelp:         q.NeedExpertHelp,
	}
	return newEnvelope(QuoteSavedEventName, q.ID, payload, meta)
}

// BuildCustomerRegisteredEvent wraps the customer into an enveloped event
// partitioned by email.
func BuildCustomerRegisteredEvent(c CustomerRegistered, meta Metadata) Envelope[CustomerRegistered] {
	return newEnvelope(CustomerRegisteredEventName, c.Email, c, meta)
}
