package events

import (
	"encoding/json"
	"testing"

	"github.com/sohub23/Smart-Home-sub003/internal/notify"
)

func TestHandleNotificationOrderPlaced(t *testing.T) {
	hub := notify.NewHub()

	env := BuildOrderPlacedEvent(sampleOrder(), Metadata{Sequence: 1})
	body, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := handleNotification(OrderPlacedRoutingKey, body, hub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recent := hub.Recent()
	if len(recent) != 1 {
		t.Fatalf("expected one notification, got %d", len(recent))
	}
	if recent[0].Kind != notify.KindOrder || recent[0].Order.OrderID != "order-1" {
		t.Fatalf("unexpected notification: %+v", recent[0])
	}
}

func TestHandleNotificationCustomerRegistered(t *testing.T) {
	hub := notify.NewHub()

	env := BuildCustomerRegisteredEvent(CustomerRegistered{
		Name:  "Rahim Uddin",
		Email: "rahim@example.com",
	}, Metadata{Sequence: 1})
	body, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := handleNotification(CustomerRegisteredRoutingKey, body, hub); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recent := hub.Recent()
	if len(recent) != 1 || recent[0].Kind != notify.KindCustomer {
		t.Fatalf("expected one customer notification, got %+v", recent)
	}
}

func TestHandleNotificationRejectsMalformedBody(t *testing.T) {
	hub := notify.NewHub()

	if err := handleNotification(OrderPlacedRoutingKey, []byte("{not json"), hub); err == nil {
		t.Fatalf("expected error for malformed body")
	}
	if len(hub.Recent()) != 0 {
		t.Fatalf("malformed event must not reach the hub")
	}
}

func TestHandleNotificationRejectsWrongEventName(t *testing.T) {
	hub := notify.NewHub()

	env := BuildOrderPlacedEvent(sampleOrder(), Metadata{Sequence: 1})
	env.EventName = "SomethingElse"
	body, _ := json.Marshal(env)

	if err := handleNotification(OrderPlacedRoutingKey, body, hub); err == nil {
		t.Fatalf("expected validation error")
	}
}
