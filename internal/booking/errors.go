package booking

import (
	"errors"
	"fmt"
)

// ConflictError reports that a requested seat is already reserved by a
// committed reservation.  The operation that produced it has not mutated
// any state; callers should refresh the reserved snapshot and retry.
type ConflictError struct {
	Table int // 1-based table number
	Seat  int // 0-based seat index on the table
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seat %d on table %d is already reserved", e.Seat, e.Table)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// ErrSeatOutOfRange is returned when a seat index is outside 0..3 or a
// table number is outside the current layout.
var ErrSeatOutOfRange = errors.New("table or seat index out of range")
