package queue

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Connection struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// NewConnection dials the broker, opens a channel and declares the topic
// exchange, plus the queue bound to it when one is configured.
func NewConnection(config ConnectionConfig) (*Connection, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid amqp configuration: %w", err)
	}

	conn, err := amqp.Dial(config.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to amqp broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	if err := ch.ExchangeDeclare(config.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", config.Exchange, err)
	}

	if q := config.Queue; q != nil {
		if _, err := ch.QueueDeclare(q.Name, q.Durable, !q.Durable, false, false, q.args()); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", q.Name, err)
		}
		if err := ch.QueueBind(q.Name, q.bindingKey(), config.Exchange, false, nil); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to bind queue %s: %w", q.Name, err)
		}
	}

	return &Connection{conn, ch}, nil
}

func (c *Connection) Close() error {
	return c.Conn.Close()
}
