package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
	"github.com/iliyamo/armhub-seatdesk/internal/queue"
)

// AMQPPublisher publishes seat events to a durable RabbitMQ queue.  Each
// publish dials its own connection, so a broker outage never wedges a
// request beyond the caller's context.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   *zap.Logger
}

// Publish sends ev as a persistent JSON message on the default exchange.
func (p *AMQPPublisher) Publish(ctx context.Context, ev queue.SeatEvent) error {
	conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(5 * time.Second)})
	if err != nil {
		return fmt.Errorf("rabbitmq dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// idempotent; durable so messages survive broker restarts
	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal seat event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         ev.Type,
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.Queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	p.Log.Debug("seat event published", zap.String("type", ev.Type), zap.String("booking_id", ev.BookingID))
	return nil
}

// NopPublisher drops every event.  It is used when AMQP_URL is empty.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.SeatEvent) error { return nil }

// publishTimeout bounds how long a workflow waits on the broker.  Publishing
// runs inline after the store write, so an unreachable broker adds at most
// this much to a request.
const publishTimeout = 5 * time.Second

// emit publishes an event for b without failing the workflow.
func emit(ctx context.Context, pub EventPublisher, log *zap.Logger, typ string, b model.Booking, actor string, now time.Time) {
	if pub == nil {
		return
	}
	ev := queue.NewSeatEvent(typ, b, actor, now.UTC().Format(time.RFC3339))
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := pub.Publish(pctx, ev); err != nil {
		log.Warn("publish seat event failed",
			zap.String("type", typ), zap.String("booking_id", ev.BookingID), zap.Error(err))
	}
}
