package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dinebook/table-reservation/internal/booking"
)

const occupancyForUpdate = "SELECT table_no, seat_index FROM reservation_seats WHERE restaurant_id=? FOR UPDATE"

func newMockRepo(t *testing.T) (*ReservationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewReservationRepo(db), mock
}

// A selection overlapping the committed occupancy must roll back with a
// conflict before any row is written.
func TestCreateConflictWritesNothing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(occupancyForUpdate)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"table_no", "seat_index"}).AddRow(3, 0))
	mock.ExpectRollback()

	selected := booking.SeatMap{3: {true, false, false, false}}
	_, err := repo.Create(context.Background(), 7, 42, selected)

	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Create() = %v, want *booking.ConflictError", err)
	}
	if conflict.Table != 3 || conflict.Seat != 0 {
		t.Errorf("conflict = table %d seat %d, want table 3 seat 0", conflict.Table, conflict.Seat)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

// A duplicate-key failure on the seat insert, the schema-level backstop
// for a submission that slipped past the locked snapshot, must roll
// back and surface as a conflict naming the colliding table and seat.
func TestCreateDuplicateKeyRollsBackAsConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(occupancyForUpdate)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"table_no", "seat_index"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservations")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO reservation_seats")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '7-2-1' for key 'reservation_seats.uq_live_seat'"))
	mock.ExpectRollback()

	selected := booking.SeatMap{2: {false, true, false, false}}
	_, err := repo.Create(context.Background(), 7, 42, selected)

	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Create() = %v, want *booking.ConflictError", err)
	}
	if conflict.Table != 2 || conflict.Seat != 1 {
		t.Errorf("conflict = table %d seat %d, want table 2 seat 1", conflict.Table, conflict.Seat)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

func TestDuplicateSeatConflict(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantNil     bool
		table, seat int
	}{
		{
			name:  "full duplicate message",
			err:   errors.New("Error 1062 (23000): Duplicate entry '12-4-3' for key 'reservation_seats.uq_live_seat'"),
			table: 12, seat: 3,
		},
		{
			name: "entry without three parts",
			err:  errors.New("Error 1062 (23000): Duplicate entry 'abc' for key 'x'"),
		},
		{
			name: "no quoted entry",
			err:  errors.New("Error 1062 (23000): duplicate"),
		},
		{
			name:    "unrelated error",
			err:     errors.New("Error 1213 (40001): Deadlock found"),
			wantNil: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := duplicateSeatConflict(tc.err)
			if tc.wantNil {
				if got != nil {
					t.Fatalf("duplicateSeatConflict() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("duplicateSeatConflict() = nil, want conflict")
			}
			if got.Table != tc.table || got.Seat != tc.seat {
				t.Errorf("conflict = table %d seat %d, want table %d seat %d",
					got.Table, got.Seat, tc.table, tc.seat)
			}
		})
	}
}

const reservationAccessQuery = `SELECT r.user_id, rest.owner_id
		 FROM reservations r
		 JOIN restaurants rest ON rest.id = r.restaurant_id
		 WHERE r.id=?`

// A failure mid-cascade must roll the whole transaction back, so the
// reservation row survives when its orders could not be removed.
func TestDeleteRollsBackWhenOrderCascadeFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(reservationAccessQuery)).
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "owner_id"}).AddRow(42, 9))
	mock.ExpectExec(regexp.QuoteMeta("DELETE oi FROM order_items oi")).
		WithArgs("res-1").
		WillReturnError(errors.New("lock wait timeout exceeded"))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), "res-1", 42); err == nil {
		t.Fatal("Delete() = nil, want error from failed cascade step")
	}
	// The ordered expectations end at the rollback; the reservation row
	// was never touched.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

// The happy-path cascade removes dependents before the reservation and
// commits once.
func TestDeleteCascadeOrderAndCommit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(reservationAccessQuery)).
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "owner_id"}).AddRow(42, 9))
	for _, q := range []string{
		"DELETE oi FROM order_items oi JOIN orders o ON o.id = oi.order_id WHERE o.reservation_id=?",
		"DELETE FROM orders WHERE reservation_id=?",
		"DELETE FROM reservation_seats WHERE reservation_id=?",
		"DELETE FROM reservations WHERE id=?",
	} {
		mock.ExpectExec(regexp.QuoteMeta(q)).WithArgs("res-1").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := repo.Delete(context.Background(), "res-1", 42); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}

// Neither the diner nor the operator: nothing past the access check may
// run.
func TestDeleteForbiddenForStrangers(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(reservationAccessQuery)).
		WithArgs("res-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "owner_id"}).AddRow(42, 9))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), "res-1", 1000); err != ErrForbidden {
		t.Fatalf("Delete() = %v, want ErrForbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected database activity: %v", err)
	}
}
