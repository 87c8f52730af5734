package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends domain events to RabbitMQ.  Each publish dials its own
// connection so a broker outage never blocks the request path for longer
// than the caller's context allows.  A Publisher with an empty URL is a
// no-op.
type Publisher struct {
	url  string
	now  func() time.Time
	dial func(url string) (*amqp.Connection, error)
}

// NewPublisher returns a publisher for the given AMQP URL.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, now: time.Now, dial: amqp.Dial}
}

// Enabled reports whether a broker URL was configured.
func (p *Publisher) Enabled() bool { return p != nil && p.url != "" }

// PublishContactReceived publishes ev to the contact.received queue.
// Errors are logged and returned; callers treat them as non-fatal.
func (p *Publisher) PublishContactReceived(ctx context.Context, ev ContactReceivedEvent) error {
	if !p.Enabled() {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.publish(ctx, ContactReceivedQueue, body); err != nil {
		slog.Warn("rabbitmq publish failed", "queue", ContactReceivedQueue, "error", err)
		return err
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, body []byte) error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// durable, not auto-deleted, not exclusive
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now().UTC(),
		Body:         body,
	}
	// default exchange, routing key = queue name
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}
