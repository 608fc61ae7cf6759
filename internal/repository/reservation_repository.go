package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dinebook/table-reservation/internal/booking"
	"github.com/dinebook/table-reservation/internal/model"
)

// ReservationRepo provides persistence for reservations and their
// seats.  A reservation groups the seats a diner claimed across one or
// more tables of a restaurant; individual claims live in the
// reservation_seats table.  Only live (unsettled, uncancelled)
// reservations have seat rows: settling moves the record to history and
// cancelling deletes it, so the reservation_seats table always holds
// exactly the active seat occupancy of every restaurant.  All
// timestamps are stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle for callers that need transactions
// spanning repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationDetail is a reservation with its seat map and derived
// people counts, as returned to API clients.
type ReservationDetail struct {
	ID           string          `json:"id"`
	RestaurantID uint64          `json:"restaurant_id"`
	UserID       uint64          `json:"user_id"`
	IsPaid       bool            `json:"is_paid"`
	BillingTime  *time.Time      `json:"billing_time,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	Seats        booking.SeatMap `json:"seats"`
	PeopleCount  map[int]int     `json:"people_count"`
}

// Create commits a diner's seat selection as a new reservation.  The
// whole operation runs in one transaction:
//
//  1. the restaurant's current seat occupancy is read FOR UPDATE,
//     locking the seat rows against concurrent submissions;
//  2. the selection is re-validated against that fresh snapshot, since
//     the draft the diner built may be stale: another diner can have
//     booked the same seat in between;
//  3. the reservation row (UUID id, created now, unpaid) and one seat
//     row per claimed (table, seat) pair are inserted.
//
// A conflict at step 2 rolls back and returns *booking.ConflictError
// naming the offending table/seat.  The unique index on
// (restaurant_id, table_no, seat_index) backs the check at the schema
// level, so even a submission that slips past the snapshot cannot
// double-book; the duplicate-key failure is mapped to the same
// conflict error.
func (r *ReservationRepo) Create(ctx context.Context, restaurantID, userID uint64, selected booking.SeatMap) (model.Reservation, error) {
	if len(booking.PeopleCounts(selected)) == 0 {
		return model.Reservation{}, ErrEmptySelection
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	reserved, err := r.reservedSeatsTx(ctx, tx, restaurantID, true)
	if err != nil {
		return model.Reservation{}, err
	}
	if err := booking.Validate(selected, reserved); err != nil {
		return model.Reservation{}, err
	}

	res := model.Reservation{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		UserID:       userID,
		IsPaid:       false,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (id, restaurant_id, user_id, is_paid, created_at) VALUES (?,?,?,?,?)",
		res.ID, res.RestaurantID, res.UserID, res.IsPaid, res.CreatedAt); err != nil {
		return model.Reservation{}, err
	}
	if err := insertSeatsTx(ctx, tx, res.ID, restaurantID, selected); err != nil {
		if conflict := duplicateSeatConflict(err); conflict != nil {
			// Lost a race despite the row locks (e.g. gap between two
			// restaurants' first bookings); report it as a conflict.
			return model.Reservation{}, conflict
		}
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return res, nil
}

// duplicateSeatConflict maps a duplicate-key failure on the live seat
// index to the conflict error the snapshot re-check would have raised.
// MySQL quotes the colliding entry as 'restaurantID-tableNo-seatIndex';
// the table and seat are recovered from it so the diner learns which
// claim lost the race.  Unparseable messages yield a conflict with
// Table 0, meaning the pair is unknown.  Non-duplicate errors yield nil.
func duplicateSeatConflict(err error) *booking.ConflictError {
	msg := err.Error()
	if !strings.Contains(msg, "1062") {
		return nil
	}
	conflict := &booking.ConflictError{}
	open := strings.Index(msg, "'")
	if open < 0 {
		return conflict
	}
	length := strings.Index(msg[open+1:], "'")
	if length < 0 {
		return conflict
	}
	parts := strings.Split(msg[open+1:open+1+length], "-")
	if len(parts) != 3 {
		return conflict
	}
	table, errTable := strconv.Atoi(parts[1])
	seat, errSeat := strconv.Atoi(parts[2])
	if errTable != nil || errSeat != nil {
		return conflict
	}
	conflict.Table = table
	conflict.Seat = seat
	return conflict
}

// insertSeatsTx bulk-inserts one row per selected seat.
func insertSeatsTx(ctx context.Context, tx *sql.Tx, reservationID string, restaurantID uint64, selected booking.SeatMap) error {
	q := "INSERT INTO reservation_seats (reservation_id, restaurant_id, table_no, seat_index) VALUES "
	args := []any{}
	for table, state := range selected {
		for seat, taken := range state {
			if !taken {
				continue
			}
			if len(args) > 0 {
				q += ","
			}
			q += "(?,?,?,?)"
			args = append(args, reservationID, restaurantID, table, seat)
		}
	}
	if len(args) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// ReservedSeats rebuilds the aggregate reserved-seat snapshot for a
// restaurant from its active reservations.  The per-reservation seat
// maps are loaded and OR'd together with booking.RecomputeReserved, so
// the result is independent of row order and safe to recompute at any
// time; the active reservations stay the source of truth.
func (r *ReservationRepo) ReservedSeats(ctx context.Context, restaurantID uint64) (booking.SeatMap, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT reservation_id, table_no, seat_index FROM reservation_seats WHERE restaurant_id=?",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	perReservation := map[string]booking.SeatMap{}
	for rows.Next() {
		var (
			id          string
			table, seat int
		)
		if err := rows.Scan(&id, &table, &seat); err != nil {
			return nil, err
		}
		m, ok := perReservation[id]
		if !ok {
			m = booking.SeatMap{}
			perReservation[id] = m
		}
		state := m[table]
		if seat >= 0 && seat < booking.SeatsPerTable {
			state[seat] = true
		}
		m[table] = state
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	maps := make([]booking.SeatMap, 0, len(perReservation))
	for _, m := range perReservation {
		maps = append(maps, m)
	}
	return booking.RecomputeReserved(maps), nil
}

// reservedSeatsTx is the transactional variant used by Create.  With
// forUpdate it locks the matching seat rows for the duration of the
// transaction.
func (r *ReservationRepo) reservedSeatsTx(ctx context.Context, tx *sql.Tx, restaurantID uint64, forUpdate bool) (booking.SeatMap, error) {
	q := "SELECT table_no, seat_index FROM reservation_seats WHERE restaurant_id=?"
	if forUpdate {
		q += " FOR UPDATE"
	}
	rows, err := tx.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := booking.SeatMap{}
	for rows.Next() {
		var table, seat int
		if err := rows.Scan(&table, &seat); err != nil {
			return nil, err
		}
		state := out[table]
		if seat >= 0 && seat < booking.SeatsPerTable {
			state[seat] = true
		}
		out[table] = state
	}
	return out, rows.Err()
}

// GetByID loads one reservation with its seats.  Returns ErrNotFound
// when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (ReservationDetail, error) {
	var (
		det     ReservationDetail
		billing sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		"SELECT id, restaurant_id, user_id, is_paid, billing_time, created_at FROM reservations WHERE id=? LIMIT 1",
		id).Scan(&det.ID, &det.RestaurantID, &det.UserID, &det.IsPaid, &billing, &det.CreatedAt)
	if err == sql.ErrNoRows {
		return ReservationDetail{}, ErrNotFound
	}
	if err != nil {
		return ReservationDetail{}, err
	}
	if billing.Valid {
		t := billing.Time
		det.BillingTime = &t
	}
	det.Seats, err = r.seatsOf(ctx, det.ID)
	if err != nil {
		return ReservationDetail{}, err
	}
	det.PeopleCount = booking.PeopleCounts(det.Seats)
	return det, nil
}

// seatsOf loads the seat map of one reservation.
func (r *ReservationRepo) seatsOf(ctx context.Context, reservationID string) (booking.SeatMap, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT table_no, seat_index FROM reservation_seats WHERE reservation_id=? ORDER BY table_no, seat_index",
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := booking.SeatMap{}
	for rows.Next() {
		var table, seat int
		if err := rows.Scan(&table, &seat); err != nil {
			return nil, err
		}
		state := out[table]
		if seat >= 0 && seat < booking.SeatsPerTable {
			state[seat] = true
		}
		out[table] = state
	}
	return out, rows.Err()
}

// ListByRestaurant returns the active reservations of a restaurant,
// newest first, for the operator's reservation screen.
func (r *ReservationRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]ReservationDetail, error) {
	return r.list(ctx,
		"SELECT id, restaurant_id, user_id, is_paid, billing_time, created_at FROM reservations WHERE restaurant_id=? ORDER BY created_at DESC",
		restaurantID)
}

// ListByUser returns a diner's active reservations, newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	return r.list(ctx,
		"SELECT id, restaurant_id, user_id, is_paid, billing_time, created_at FROM reservations WHERE user_id=? ORDER BY created_at DESC",
		userID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, arg any) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReservationDetail{}
	for rows.Next() {
		var (
			det     ReservationDetail
			billing sql.NullTime
		)
		if err := rows.Scan(&det.ID, &det.RestaurantID, &det.UserID, &det.IsPaid, &billing, &det.CreatedAt); err != nil {
			return nil, err
		}
		if billing.Valid {
			t := billing.Time
			det.BillingTime = &t
		}
		out = append(out, det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Seats, err = r.seatsOf(ctx, out[i].ID); err != nil {
			return nil, err
		}
		out[i].PeopleCount = booking.PeopleCounts(out[i].Seats)
	}
	return out, nil
}

// Delete cancels a reservation.  The cascade runs inside a single
// transaction in dependency order: order items, then orders, then seat
// rows, then the reservation itself.  If any step fails everything
// rolls back, so a failed order cascade leaves the reservation intact
// instead of silently orphaning it.  Callers must be either the diner
// who booked or the restaurant's operator; anyone else gets
// ErrForbidden.
func (r *ReservationRepo) Delete(ctx context.Context, id string, callerID uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := checkReservationAccessTx(ctx, tx, id, callerID); err != nil {
		return err
	}
	if err := deleteReservationRowsTx(ctx, tx, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// checkReservationAccessTx verifies that the caller is the booking
// diner or the owner of the restaurant the reservation belongs to.
func checkReservationAccessTx(ctx context.Context, tx *sql.Tx, id string, callerID uint64) error {
	var dinerID, ownerID uint64
	err := tx.QueryRowContext(ctx,
		`SELECT r.user_id, rest.owner_id
		 FROM reservations r
		 JOIN restaurants rest ON rest.id = r.restaurant_id
		 WHERE r.id=?`, id).Scan(&dinerID, &ownerID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if callerID != dinerID && callerID != ownerID {
		return ErrForbidden
	}
	return nil
}

// deleteReservationRowsTx removes a reservation and all dependent rows.
// Shared by Delete and SettleAndArchive.
func deleteReservationRowsTx(ctx context.Context, tx *sql.Tx, id string) error {
	steps := []string{
		"DELETE oi FROM order_items oi JOIN orders o ON o.id = oi.order_id WHERE o.reservation_id=?",
		"DELETE FROM orders WHERE reservation_id=?",
		"DELETE FROM reservation_seats WHERE reservation_id=?",
		"DELETE FROM reservations WHERE id=?",
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}
	return nil
}

// SettleAndArchive marks a reservation paid, copies it (with its seats)
// into the history tables and removes the live rows in one transaction,
// so a crash can neither lose the record nor leave it in both places.
// Only the restaurant's operator may settle; the booking diner cannot.
func (r *ReservationRepo) SettleAndArchive(ctx context.Context, id string, ownerID uint64) (model.HistoryRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.HistoryRecord{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		rec     model.HistoryRecord
		actual  uint64
		created time.Time
	)
	err = tx.QueryRowContext(ctx,
		`SELECT r.restaurant_id, r.user_id, r.created_at, rest.owner_id
		 FROM reservations r
		 JOIN restaurants rest ON rest.id = r.restaurant_id
		 WHERE r.id=?`, id).Scan(&rec.RestaurantID, &rec.UserID, &created, &actual)
	if err == sql.ErrNoRows {
		return model.HistoryRecord{}, ErrNotFound
	}
	if err != nil {
		return model.HistoryRecord{}, err
	}
	if actual != ownerID {
		return model.HistoryRecord{}, ErrForbidden
	}

	rec.ID = id
	rec.CreatedAt = created
	rec.BillingTime = time.Now().UTC()

	// Mark the live row paid first so the archived copy reflects the
	// settled state even though the row is deleted moments later.
	if _, err := tx.ExecContext(ctx,
		"UPDATE reservations SET is_paid=1, billing_time=? WHERE id=?",
		rec.BillingTime, id); err != nil {
		return model.HistoryRecord{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO history (id, restaurant_id, user_id, billing_time, created_at) VALUES (?,?,?,?,?)",
		rec.ID, rec.RestaurantID, rec.UserID, rec.BillingTime, rec.CreatedAt); err != nil {
		return model.HistoryRecord{}, err
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO history_seats (history_id, table_no, seat_index) SELECT reservation_id, table_no, seat_index FROM reservation_seats WHERE reservation_id=?",
		id); err != nil {
		return model.HistoryRecord{}, err
	}
	if err := deleteReservationRowsTx(ctx, tx, id); err != nil {
		return model.HistoryRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.HistoryRecord{}, err
	}
	committed = true
	return rec, nil
}
