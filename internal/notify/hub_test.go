package notify

import (
	"fmt"
	"testing"
	"time"
)

func orderMsg(n int) Message {
	return Message{
		Kind: KindOrder,
		Order: &OrderSummary{
			OrderID:     fmt.Sprintf("order-%d", n),
			OrderNumber: fmt.Sprintf("ORD%d", n),
			TotalAmount: float64(n),
		},
	}
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	h := NewHub()
	ch, unsubscribe := h.Subscribe(4)
	defer unsubscribe()

	h.Publish(orderMsg(1))

	select {
	case got := <-ch:
		if got.Kind != KindOrder || got.Order.OrderID != "order-1" {
			t.Fatalf("unexpected message: %+v", got)
		}
		if got.OccurredAt.IsZero() {
			t.Fatalf("expected OccurredAt to be stamped")
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for message")
	}
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	h := NewHub()
	_, unsubscribe := h.Subscribe(1)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		// buffer of one: everything past the first publish must be dropped,
		// not awaited
		for i := 0; i < 100; i++ {
			h.Publish(orderMsg(i))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch, unsubscribe := h.Subscribe(1)

	unsubscribe()
	unsubscribe() // second call must be harmless

	if _, open := <-ch; open {
		t.Fatalf("expected channel closed after unsubscribe")
	}

	// publishing after unsubscribe must not panic on the closed channel
	h.Publish(orderMsg(1))
}

func TestRecentIsBoundedNewestFirst(t *testing.T) {
	h := NewHub()
	for i := 0; i < recentLimit+10; i++ {
		h.Publish(orderMsg(i))
	}

	recent := h.Recent()
	if len(recent) != recentLimit {
		t.Fatalf("expected %d recent messages, got %d", recentLimit, len(recent))
	}
	if recent[0].Order.OrderID != fmt.Sprintf("order-%d", recentLimit+9) {
		t.Fatalf("expected newest first, got %s", recent[0].Order.OrderID)
	}
}

func TestCustomerMessages(t *testing.T) {
	h := NewHub()
	h.Publish(Message{
		Kind:     KindCustomer,
		Customer: &CustomerSummary{Name: "Rahim", Email: "rahim@example.com"},
	})

	recent := h.Recent()
	if len(recent) != 1 {
		t.Fatalf("expected one message, got %d", len(recent))
	}
	if recent[0].Kind != KindCustomer || recent[0].Customer.Email != "rahim@example.com" {
		t.Fatalf("unexpected message: %+v", recent[0])
	}
}
