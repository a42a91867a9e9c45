package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sohub23/Smart-Home-sub003/internal/notify"
)

const notificationsQueue = "storefront.notifications"

// StartNotificationsConsumer binds a queue to the order and customer
// routing keys and forwards arriving events into the notification hub. It
// returns after the consumer goroutine is running; ctx cancellation stops
// it.
func StartNotificationsConsumer(ctx context.Context, conn *amqp.Connection, hub *notify.Hub, logger *log.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		notificationsQueue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	for _, key := range []string{OrderPlacedRoutingKey, CustomerRegisteredRoutingKey} {
		if err := ch.QueueBind(q.Name, key, EventsExchange, false, nil); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}

	msgs, err := ch.Consume(
		q.Name,
		"storefront-notifications", // consumer tag
		false,                      // autoAck
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Println("stopping notifications consumer")
				return
			case msg, ok := <-msgs:
				if !ok {
					logger.Println("messages channel closed")
					return
				}

				if err := handleNotification(msg.RoutingKey, msg.Body, hub); err != nil {
					logger.Printf("handle %s: %v", msg.RoutingKey, err)
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func handleNotification(routingKey string, body []byte, hub *notify.Hub) error {
	switch routingKey {
	case OrderPlacedRoutingKey:
		var ev Envelope[OrderPlaced]
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal OrderPlaced: %w", err)
		}
		if err := ev.Validate(OrderPlacedEventName, eventVersion); err != nil {
			return err
		}
		hub.Publish(notify.Message{
			Kind: notify.KindOrder,
			Order: &notify.OrderSummary{
				OrderID:     ev.Payload.OrderID,
				OrderNumber: ev.Payload.OrderNumber,
				TotalAmount: ev.Payload.TotalAmount,
			},
			OccurredAt: ev.OccurredAt,
		})
		return nil

	case CustomerRegisteredRoutingKey:
		var ev Envelope[CustomerRegistered]
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("unmarshal CustomerRegistered: %w", err)
		}
		if err := ev.Validate(CustomerRegisteredEventName, eventVersion); err != nil {
			return err
		}
		hub.Publish(notify.Message{
			Kind: notify.KindCustomer,
			Customer: &notify.CustomerSummary{
				Name:  ev.Payload.Name,
				Email: ev.Payload.Email,
			},
			OccurredAt: ev.OccurredAt,
		})
		return nil

	default:
		return fmt.Errorf("unexpected routing key: %s", routingKey)
	}
}
