// Package events publishes booking and rental-session events to RabbitMQ.
package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gearshare-backend/internal/logger"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
)

// Routing keys on the topic exchange.
const (
	KeyBookingCreated       = "booking.created"
	KeyBookingStatusChanged = "booking.status_changed"
	KeySessionTransitioned  = "session.transitioned"
)

// BookingStatusChanged is published whenever a booking's persisted status moves.
type BookingStatusChanged struct {
	BookingID int32     `json:"booking_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Version   int64     `json:"version"`
	ActorID   int32     `json:"actor_id"`
	At        time.Time `json:"at"`
}

// channel is the part of *amqp091.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp091.Connection
	exchange string

	mu sync.Mutex
	ch channel
}

// Dial connects to the broker and declares the durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info("Connected to RabbitMQ", "exchange", exchange)
	return &Publisher{conn: conn, exchange: exchange, ch: ch}, nil
}

func (p *Publisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	logger.ExternalServiceCall("rabbitmq", "Publish", "exchange", p.exchange, "key", routingKey)
	err = p.ch.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp091.Persistent,
		},
	)
	logger.ExternalServiceResult("rabbitmq", "Publish", err, "key", routingKey)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// LogPublisher writes events to the log. It is used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "Event", "key", routingKey, "payload", string(body))
	return nil
}

func (LogPublisher) Close() error { return nil }
