package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const queueName = "reservation.notify"

// Publisher sends NotifyEvents to RabbitMQ. A nil *Publisher is a valid
// no-op sender so wiring can skip the broker in dev.
type Publisher struct {
	url string
}

func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// Notify publishes one message of the given kind for a booking. The
// connection is short-lived; the function never panics and any error is
// logged and returned so the caller can ignore it.
func (p *Publisher) Notify(ctx context.Context, kind string, bookingID int64, customer, phone string) error {
	if p == nil {
		return nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Warn().Err(err).Msg("notification: dial failed")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Warn().Err(err).Msg("notification: channel open failed")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Warn().Err(err).Msg("notification: queue declare failed")
		return err
	}

	event := NotifyEvent{
		EventID:     uuid.NewString(),
		Kind:        kind,
		BookingID:   bookingID,
		Customer:    customer,
		Phone:       phone,
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Warn().Err(err).Int64("booking_id", bookingID).Msg("notification: publish failed")
		return err
	}
	return nil
}
