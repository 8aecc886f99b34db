package queue

import (
	"context"
	"fmt"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

type Consumer interface {
	// Consume hands every delivery to handler until ctx is done or the
	// channel closes. Deliveries are acked when handler succeeds and
	// rejected without requeue otherwise.
	Consume(ctx context.Context, handler func(context.Context, []byte) error) error
	Close() error
}

type consumer struct {
	ch         *amqp.Channel
	deliveryCh <-chan amqp.Delivery
	config     ConsumeConfig
}

func NewConsumer(ch *amqp.Channel, config ConsumeConfig) (Consumer, error) {
	deliveryCh, err := ch.Consume(
		config.Queue,
		config.Consumer,
		config.AutoAck,
		config.Exclusive,
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume from %s: %w", config.Queue, err)
	}

	return &consumer{ch, deliveryCh, config}, nil
}

func (c *consumer) Consume(ctx context.Context, handler func(context.Context, []byte) error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-c.deliveryCh:
			if !ok {
				return nil
			}
			err := handler(ctx, msg.Body)
			if c.config.AutoAck {
				continue
			}
			if err != nil {
				log.Errorf("Failed to handle message %s: %v", msg.MessageId, err)
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

func (c *consumer) Close() error {
	return c.ch.Close()
}
