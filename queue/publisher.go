package queue

import (
	"context"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

type publisher struct {
	ch     *amqp.Channel
	config PublishConfig
}

func NewPublisher(ch *amqp.Channel, config PublishConfig) Publisher {
	if config.ContentType == "" {
		config.ContentType = ContentTypeJSON
	}
	return &publisher{ch, config}
}

// Publish publishes a message to the configured exchange. An empty routingKey
// falls back to the configured one.
func (p *publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	if routingKey == "" {
		routingKey = p.config.RoutingKey
	}

	message := amqp.Publishing{
		ContentType:  p.config.ContentType,
		Body:         body,
		DeliveryMode: p.config.DeliveryMode,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
	}

	return p.ch.PublishWithContext(
		ctx,
		p.config.Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		message,
	)
}

// Close closes the channel the publisher writes to.
func (p *publisher) Close() error {
	return p.ch.Close()
}
