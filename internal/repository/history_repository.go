package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/dinebook/table-reservation/internal/booking"
)

// HistoryRepo reads settled reservations.  History rows are written
// only by ReservationRepo.SettleAndArchive and never mutated afterward.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo returns a HistoryRepo bound to the given database.
func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{db: db} }

// HistoryDetail is an archived reservation with its seat map, as
// returned to the operator's history screen.
type HistoryDetail struct {
	ID           string          `json:"id"`
	RestaurantID uint64          `json:"restaurant_id"`
	UserID       uint64          `json:"user_id"`
	BillingTime  time.Time       `json:"billing_time"`
	CreatedAt    time.Time       `json:"created_at"`
	Seats        booking.SeatMap `json:"seats"`
	PeopleCount  map[int]int     `json:"people_count"`
}

// ListByRestaurant returns a restaurant's settled reservations, most
// recently billed first.  Access control (only the operator may read
// history) is enforced by the caller via RestaurantRepo.
func (r *HistoryRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]HistoryDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, restaurant_id, user_id, billing_time, created_at FROM history WHERE restaurant_id=? ORDER BY billing_time DESC",
		restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []HistoryDetail{}
	for rows.Next() {
		var det HistoryDetail
		if err := rows.Scan(&det.ID, &det.RestaurantID, &det.UserID, &det.BillingTime, &det.CreatedAt); err != nil {
			return nil, err
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

func (r *HistoryRepo) seatsOf(ctx context.Context, historyID string) (booking.SeatMap, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT table_no, seat_index FROM history_seats WHERE history_id=? ORDER BY table_no, seat_index",
		historyID)
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
