package booking

import (
	"errors"
	"testing"
)

func TestSelectRejectsReservedSeat(t *testing.T) {
	layout := Layout{Rows: 4, Columns: 2}
	reserved := SeatMap{3: {true, false, false, false}}
	d := NewDraft(layout, reserved)

	err := d.Select(3, 0, true)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Select(3, 0, true) error = %v, want *ConflictError", err)
	}
	if ce.Table != 3 || ce.Seat != 0 {
		t.Errorf("ConflictError = table %d seat %d, want table 3 seat 0", ce.Table, ce.Seat)
	}
	if d.Selected[3][0] {
		t.Error("Select() must not mutate the draft on conflict")
	}
	if len(d.People) != 0 {
		t.Errorf("People = %v, want empty after rejected selection", d.People)
	}
}

func TestSelectReleaseAlwaysSucceeds(t *testing.T) {
	layout := Layout{Rows: 2, Columns: 2}
	tests := []struct {
		name     string
		reserved SeatMap
		table    int
		seat     int
	}{
		{name: "freeSeat", reserved: SeatMap{}, table: 1, seat: 0},
		{name: "reservedSeat", reserved: SeatMap{2: {false, true, false, false}}, table: 2, seat: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(layout, tt.reserved)
			if err := d.Select(tt.table, tt.seat, false); err != nil {
				t.Errorf("Select(%d, %d, false) = %v, want nil", tt.table, tt.seat, err)
			}
		})
	}
}

func TestSelectMaintainsPeopleCounts(t *testing.T) {
	layout := Layout{Rows: 4, Columns: 2}
	d := NewDraft(layout, SeatMap{})

	steps := []struct {
		table, seat int
		selected    bool
	}{
		{1, 0, true},
		{1, 2, true},
		{5, 3, true},
		{1, 0, false},
		{5, 3, false},
	}
	for _, s := range steps {
		if err := d.Select(s.table, s.seat, s.selected); err != nil {
			t.Fatalf("Select(%d, %d, %v) = %v", s.table, s.seat, s.selected, err)
		}
	}

	if got := d.People[1]; got != 1 {
		t.Errorf("People[1] = %d, want 1", got)
	}
	if _, ok := d.People[5]; ok {
		t.Error("People must not contain table 5 after its last seat was released")
	}
	// Every table with a selected seat must have a matching count.
	for table, state := range d.Selected {
		if n := state.Count(); n > 0 && d.People[table] != n {
			t.Errorf("People[%d] = %d, want %d", table, d.People[table], n)
		}
	}
}

func TestSelectOutOfRange(t *testing.T) {
	layout := Layout{Rows: 2, Columns: 2}
	d := NewDraft(layout, SeatMap{})

	tests := []struct {
		name        string
		table, seat int
	}{
		{name: "tableZero", table: 0, seat: 0},
		{name: "tableBeyondGrid", table: 5, seat: 0},
		{name: "seatNegative", table: 1, seat: -1},
		{name: "seatTooHigh", table: 1, seat: SeatsPerTable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.Select(tt.table, tt.seat, true); !errors.Is(err, ErrSeatOutOfRange) {
				t.Errorf("Select(%d, %d, true) = %v, want ErrSeatOutOfRange", tt.table, tt.seat, err)
			}
		})
	}
}

func TestValidateNamesFirstConflict(t *testing.T) {
	selected := SeatMap{2: {false, true, false, false}}
	reserved := SeatMap{2: {false, true, false, false}}

	err := Validate(selected, reserved)
	var ce *ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("Validate() = %v, want *ConflictError", err)
	}
	if ce.Table != 2 || ce.Seat != 1 {
		t.Errorf("ConflictError = table %d seat %d, want table 2 seat 1", ce.Table, ce.Seat)
	}

	if err := Validate(selected, SeatMap{}); err != nil {
		t.Errorf("Validate() against empty snapshot = %v, want nil", err)
	}
}

func TestDraftResetClearsSelection(t *testing.T) {
	layout := Layout{Rows: 4, Columns: 2}
	d := NewDraft(layout, SeatMap{})
	if err := d.Select(3, 1, true); err != nil {
		t.Fatalf("Select() = %v", err)
	}

	d.Reset()

	if !d.Empty() {
		t.Error("draft must be empty after Reset()")
	}
	if len(d.Selected) != layout.TableCount() {
		t.Errorf("Selected has %d entries, want %d", len(d.Selected), layout.TableCount())
	}
	for table, state := range d.Selected {
		if state != (SeatState{}) {
			t.Errorf("Selected[%d] = %v, want all free", table, state)
		}
	}
}

// TestBookingScenario walks the end-to-end flow a diner goes through: a
// 4x2 layout with one seat already taken on table 3, a rejected pick of
// that seat, a successful pick of the adjacent one, final validation and
// draft reset after submission.
func TestBookingScenario(t *testing.T) {
	layout := Layout{Rows: 4, Columns: 2}
	reserved := SeatMap{3: {true, false, false, false}}
	d := NewDraft(layout, reserved)

	if err := d.Select(3, 0, true); !IsConflict(err) {
		t.Fatalf("Select(3, 0, true) = %v, want conflict", err)
	}
	if err := d.Select(3, 1, true); err != nil {
		t.Fatalf("Select(3, 1, true) = %v, want nil", err)
	}
	if got := d.People[3]; got != 1 {
		t.Errorf("People[3] = %d, want 1", got)
	}

	// Final pre-submission check against the same snapshot passes.
	if err := Validate(d.Selected, reserved); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	d.Reset()
	if !d.Empty() {
		t.Error("draft must be empty after submission reset")
	}
}
