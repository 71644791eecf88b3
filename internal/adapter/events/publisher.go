package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/caffeinepub/food-order-delivery-platform/internal/domain/model"
)

const publishTimeout = 5 * time.Second

// Channel is the subset of *amqp.Channel used for publishing.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

var dial = func(url string) (io.Closer, Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// AMQPPublisher publishes order events to a durable topic exchange.
type AMQPPublisher struct {
	mu       sync.Mutex
	conn     io.Closer
	ch       Channel
	exchange string
	logger   *slog.Logger
}

// Dial connects to the broker at url and declares exchange.
func Dial(url, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	conn, ch, err := dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}
	publisher, err := NewAMQPPublisher(conn, ch, exchange, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return publisher, nil
}

// NewAMQPPublisher declares exchange on ch and returns a publisher using it.
// conn may be nil when the caller owns the connection.
func NewAMQPPublisher(conn io.Closer, ch Channel, exchange string, logger *slog.Logger) (*AMQPPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// RoutingKey returns the topic an event of type t is published under.
func RoutingKey(t model.OrderEventType) string {
	return "order." + string(t)
}

// Publish sends event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, event model.OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	key := RoutingKey(event.Type)
	p.mu.Lock()
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Type:         string(event.Type),
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	p.logger.Debug("order event published",
		slog.String("routing_key", key),
		slog.String("order", event.OrderID),
	)
	return nil
}

// Close closes the channel and the owned connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.ch.Close()
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}

// Nop discards events. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, model.OrderEvent) error { return nil }
