package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher emits storefront events to the events exchange. Publishing is
// best-effort and never retried; a failed publish is the caller's to log.
type Publisher struct {
	ch *amqp.Channel
}

func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	return conn, nil
}

func NewPublisher(conn *amqp.Connection) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	return &Publisher{ch: ch}, nil
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

func (p *Publisher) PublishCatalogUpdated(ctx context.Context, action string, count int) error {
	ev := CatalogUpdated{
		EventID:   uuid.NewString(),
		EventType: EventTypeCatalogUpdated,
		Action:    action,
		Count:     count,
		Timestamp: time.Now().UTC(),
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal CatalogUpdated: %w", err)
	}
	return p.ch.PublishWithContext(ctx,
		EventsExchange,
		EventTypeCatalogUpdated,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.Timestamp,
			Body:         body,
		},
	)
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
