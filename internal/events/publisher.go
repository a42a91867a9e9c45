package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/sohub23/Smart-Home-sub003/internal/order"
	"github.com/sohub23/Smart-Home-sub003/internal/quote"
)

// Publisher emits storefront events to the topic exchange. Each partition
// key gets a database-backed sequence so consumers can deduplicate and
// order.
type Publisher struct {
	ch        *amqp.Channel
	sequences SequenceRepository
}

func NewPublisher(conn *amqp.Connection, sequences SequenceRepository) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", EventsExchange, err)
	}

	return &Publisher{ch: ch, sequences: sequences}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	)
}

// PublishOrderPlaced emits order.placed.v1 for a freshly stored order.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *order.Order, meta Metadata) error {
	seq, err := p.sequences.NextSequence(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	meta.Sequence = seq

	ev := BuildOrderPlacedEvent(o, meta)
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	return p.publish(ctx, OrderPlacedRoutingKey, body)
}

// PublishQuoteSaved emits quote.saved.v1 for a stored quote.
func (p *Publisher) PublishQuoteSaved(ctx context.Context, q *quote.Quote, meta Metadata) error {
	seq, err := p.sequences.NextSequence(ctx, q.ID)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	meta.Sequence = seq

	ev := BuildQuoteSavedEvent(q, meta)
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal QuoteSaved: %w", err)
	}

	return p.publish(ctx, QuoteSavedRoutingKey, body)
}

// PublishCustomerRegistered emits customer.registered.v1 for a first-time
// customer.
func (p *Publisher) PublishCustomerRegistered(ctx context.Context, c CustomerRegistered, meta Metadata) error {
	seq, err := p.sequences.NextSequence(ctx, c.Email)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	meta.Sequence = seq

	ev := BuildCustomerRegisteredEvent(c, meta)
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal CustomerRegistered: %w", err)
	}

	return p.publish(ctx, CustomerRegisteredRoutingKey, body)
}

func (p *Publisher) publish(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
