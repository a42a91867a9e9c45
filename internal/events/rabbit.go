package events

import (
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MustDialRabbit connects to RabbitMQ or exits; meant for main.
func MustDialRabbit(url string) *amqp.Connection {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("connect to RabbitMQ: %v", err)
	}
	return conn
}
