// Package queue defines the reservation lifecycle events exchanged over the
// message broker and the background consumer that records them.
package queue

import "encoding/json"

// EventsQueueName is the durable queue all reservation lifecycle events
// flow through. Consumers dispatch on the envelope's Kind field.
const EventsQueueName = "reservation.events"

// Event kinds carried in the envelope.
const (
	KindReservationConfirmed = "reservation.confirmed"
	KindReservationSettled   = "reservation.settled"
	KindReservationCancelled = "reservation.cancelled"
)

// Event is the envelope published to the broker. Payload holds the
// kind-specific event marshalled as JSON.
type Event struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// ReservationConfirmedEvent is published after a reservation commits. It
// carries enough detail for downstream consumers to log or notify without
// querying the primary database.
type ReservationConfirmedEvent struct {
	ReservationID  string   `json:"reservation_id"`
	RestaurantID   uint64   `json:"restaurant_id"`
	RestaurantName string   `json:"restaurant_name"`
	UserID         uint64   `json:"user_id"`
	Seats          []string `json:"seats"` // "table/seat" labels, e.g. "3/1"
	ConfirmedAt    string   `json:"confirmed_at"`
}

// ReservationSettledEvent is published when an owner settles a reservation
// and its record moves to history.
type ReservationSettledEvent struct {
	ReservationID string `json:"reservation_id"`
	RestaurantID  uint64 `json:"restaurant_id"`
	UserID        uint64 `json:"user_id"`
	BilledAt      string `json:"billed_at"`
}

// ReservationCancelledEvent is published when a reservation is deleted
// before settlement, either by the diner or the restaurant owner.
type ReservationCancelledEvent struct {
	ReservationID string `json:"reservation_id"`
	RestaurantID  uint64 `json:"restaurant_id"`
	CancelledBy   uint64 `json:"cancelled_by"`
	CancelledAt   string `json:"cancelled_at"`
}

// Wrap marshals a kind-specific event into the broker envelope.
func Wrap(kind string, payload any) (Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: kind, Payload: raw}, nil
}
