package model

import "time"

// Reservation records a diner's committed seat booking at a restaurant.
// It corresponds to a row in the `reservations` table; the individual
// seats claimed live in `reservation_seats` (one row per table/seat
// pair).  Reservation IDs are UUIDs generated at creation time.
//
// Fields:
//  ID           – UUID primary key, generated when the booking commits.
//  RestaurantID – restaurant the seats belong to.
//  UserID       – diner who made the booking.
//  IsPaid       – whether the bill has been settled.
//  BillingTime  – when settlement completed (null while active).
//  CreatedAt    – creation timestamp.
type Reservation struct {
	ID           string     // reservations.id (UUID)
	RestaurantID uint64     // reservations.restaurant_id
	UserID       uint64     // reservations.user_id
	IsPaid       bool       // reservations.is_paid
	BillingTime  *time.Time // reservations.billing_time (nullable)
	CreatedAt    time.Time  // reservations.created_at
}

// ReservationSeat links a reservation to a single claimed seat.  The
// restaurant ID is denormalized onto every row so that a unique index
// over (restaurant_id, table_no, seat_index) can reject two live
// reservations claiming the same seat.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – parent reservation.
//  RestaurantID  – restaurant the seat belongs to.
//  TableNo       – 1-based table number in the booking grid.
//  SeatIndex     – 0-based seat slot on the table (0..3).
type ReservationSeat struct {
	ID            uint64 // reservation_seats.id
	ReservationID string // reservation_seats.reservation_id
	RestaurantID  uint64 // reservation_seats.restaurant_id
	TableNo       int    // reservation_seats.table_no
	SeatIndex     int    // reservation_seats.seat_index
}

// HistoryRecord is a settled reservation archived out of the active
// set.  It mirrors the reservation it was copied from, with a mandatory
// billing time.  History rows are never mutated after creation.
//
// Fields:
//  ID           – UUID of the original reservation.
//  RestaurantID – restaurant the booking belonged to.
//  UserID       – diner who made the booking.
//  BillingTime  – when the reservation was settled.
//  CreatedAt    – when the original reservation was created.
type HistoryRecord struct {
	ID           string    // history.id (UUID)
	RestaurantID uint64    // history.restaurant_id
	UserID       uint64    // history.user_id
	BillingTime  time.Time // history.billing_time
	CreatedAt    time.Time // history.created_at
}

// HistorySeat preserves a seat claim of an archived reservation.
type HistorySeat struct {
	ID        uint64 // history_seats.id
	HistoryID string // history_seats.history_id
	TableNo   int    // history_seats.table_no
	SeatIndex int    // history_seats.seat_index
}
