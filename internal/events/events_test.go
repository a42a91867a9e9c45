package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

func sampleOrder() *order.Order {
	return &order.Order{
		ID:          "order-1",
		OrderNumber: "ORD1700000000000",
		Customer: order.Customer{
			Name:  "Rahim Uddin",
			Email: "rahim@example.com",
		},
		Items: []order.Item{
			{ProductID: "sw-1", ProductName: "Smart Switch", Quantity: 2, UnitPrice: 1200},
		},
		TotalAmount:   2400,
		PaymentMethod: "cod",
	}
}

func TestBuildOrderPlacedEvent(t *testing.T) {
	meta := Metadata{
		EventID:       "evt-1",
		CorrelationID: "corr-1",
		OccurredAt:    time.UnixMilli(1700000000000).UTC(),
		Sequence:      7,
	}

	env := BuildOrderPlacedEvent(sampleOrder(), meta)

	assert.Equal(t, OrderPlacedEventName, env.EventName)
	assert.Equal(t, "order-1", env.PartitionKey)
	assert.Equal(t, int64(7), env.Sequence)
	assert.Equal(t, "evt-1", env.EventID)
	assert.Equal(t, "corr-1", env.CorrelationID)
	assert.Equal(t, 2400.0, env.Payload.TotalAmount)
	require.Len(t, env.Payload.Items, 1)
	assert.Equal(t, "sw-1", env.Payload.Items[0].ProductID)

	require.NoError(t, env.Validate(OrderPlacedEventName, 1))
}

func TestBuildEventDefaultsIdentity(t *testing.T) {
	env := BuildOrderPlacedEvent(sampleOrder(), Metadata{})

	assert.NotEmpty(t, env.EventID)
	assert.False(t, env.OccurredAt.IsZero())
}

func TestBuildQuoteSavedEvent(t *testing.T) {
	q := &quote.Quote{
		ID:                     "quote-1",
		QuoteNumber:            "QT1700000000000",
		Customer:               order.Customer{Name: "Karim", Email: "karim@example.com"},
		TotalAmount:            900,
		PhysicalVisitRequested: true,
	}

	env := BuildQuoteSavedEvent(q, Metadata{Sequence: 1})

	assert.Equal(t, QuoteSavedEventName, env.EventName)
	assert.Equal(t, "quote-1", env.PartitionKey)
	assert.True(t, env.Payload.PhysicalVisitRequested)
}

func TestBuildCustomerRegisteredEventPartitionsByEmail(t *testing.T) {
	env := BuildCustomerRegisteredEvent(CustomerRegistered{
		Name:  "Rahim Uddin",
		Email: "rahim@example.com",
	}, Metadata{Sequence: 1})

	assert.Equal(t, "rahim@example.com", env.PartitionKey)
}

func TestEnvelopeValidate(t *testing.T) {
	env := BuildOrderPlacedEvent(sampleOrder(), Metadata{Sequence: 1})

	assert.Error(t, env.Validate("something.else.v1", 1))
	assert.Error(t, env.Validate(OrderPlacedEventName, 2))

	env.PartitionKey = ""
	assert.Error(t, env.Validate(OrderPlacedEventName, 1))
}

func TestEnvelopeJSONRoundTrip(t *testing.T) {
	env := BuildOrderPlacedEvent(sampleOrder(), Metadata{Sequence: 3})

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded Envelope[OrderPlaced]
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, env.EventID, decoded.EventID)
	assert.Equal(t, env.Payload, decoded.Payload)
}
