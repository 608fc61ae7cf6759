// Package service holds collaborators that sit between handlers and
// external systems. The queue publisher pushes reservation lifecycle
// events to RabbitMQ; errors are logged and returned so callers can
// choose to ignore broker outages without failing the request.
package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dinebook/table-reservation/internal/queue"
)

// PublishEvent wraps the payload in an envelope and publishes it to the
// durable reservation events queue. A fresh connection is dialed per
// publish; event volume is low enough that connection reuse is not worth
// the reconnect bookkeeping.
func PublishEvent(ctx context.Context, kind string, payload any) error {
	env, err := queue.Wrap(kind, payload)
	if err != nil {
		log.Printf("rabbitmq: wrap %s event failed: %v", kind, err)
		return err
	}

	conn, err := amqp.Dial(queue.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so events survive broker restarts.
	if _, err := ch.QueueDeclare(queue.EventsQueueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(env)
	if err != nil {
		log.Printf("rabbitmq: marshal envelope failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queue.EventsQueueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish %s failed: %v", kind, err)
		return err
	}
	return nil
}

// PublishReservationConfirmed emits a reservation.confirmed event.
func PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error {
	return PublishEvent(ctx, queue.KindReservationConfirmed, ev)
}

// PublishReservationSettled emits a reservation.settled event.
func PublishReservationSettled(ctx context.Context, ev queue.ReservationSettledEvent) error {
	return PublishEvent(ctx, queue.KindReservationSettled, ev)
}

// PublishReservationCancelled emits a reservation.cancelled event.
func PublishReservationCancelled(ctx context.Context, ev queue.ReservationCancelledEvent) error {
	return PublishEvent(ctx, queue.KindReservationCancelled, ev)
}
