package booking

// Draft is an in-progress seat selection for one restaurant, built
// against a snapshot of the seats already reserved by committed
// reservations.  A draft belongs to a single diner; it is not shared
// between goroutines.  The committed snapshot may go stale while the
// diner picks seats, which is why submission re-checks conflicts against
// fresh data (see repository.ReservationRepo.Create).
type Draft struct {
	Layout   Layout
	Selected SeatMap     // seats picked in this draft, one entry per table
	People   map[int]int // table -> number of selected seats; zero-count tables absent
	Reserved SeatMap     // committed occupancy the draft validates against
}

// NewDraft builds an empty draft for the given layout and reserved
// snapshot.  Selected gets exactly one all-free entry per table.
func NewDraft(layout Layout, reserved SeatMap) *Draft {
	d := &Draft{
		Layout:   layout,
		Selected: SeatMap{},
		People:   map[int]int{},
		Reserved: reserved,
	}
	layout.EnsureTables(d.Selected)
	return d
}

// Select toggles one seat in the draft.  Selecting a seat that the
// reserved snapshot marks taken fails with *ConflictError and leaves the
// draft untouched.  Releasing a seat (selected=false) always succeeds,
// even if the seat is reserved; releasing never conflicts.  On success
// the per-table people count is recomputed; a table whose count drops to
// zero is removed from People.
func (d *Draft) Select(table, seat int, selected bool) error {
	if seat < 0 || seat >= SeatsPerTable || !d.Layout.Contains(table) {
		return ErrSeatOutOfRange
	}
	if selected && d.Reserved[table][seat] {
		return &ConflictError{Table: table, Seat: seat}
	}
	state := d.Selected[table]
	state[seat] = selected
	d.Selected[table] = state
	if n := state.Count(); n > 0 {
		d.People[table] = n
	} else {
		delete(d.People, table)
	}
	return nil
}

// Tables returns the numbers of tables with at least one selected seat.
func (d *Draft) Tables() []int {
	tables := make([]int, 0, len(d.People))
	for table := range d.People {
		tables = append(tables, table)
	}
	return tables
}

// Empty reports whether no seat is selected.
func (d *Draft) Empty() bool {
	return len(d.People) == 0
}

// Reset clears all selections after a successful submission.  The
// layout is re-applied so Selected again holds one all-free entry per
// table, and People is emptied.
func (d *Draft) Reset() {
	d.Selected = SeatMap{}
	d.People = map[int]int{}
	d.Layout.EnsureTables(d.Selected)
}

// Validate re-runs the conflict check for every selected seat against a
// snapshot, returning a *ConflictError naming the first offending
// table/seat pair.  It is the final gate before persisting a
// reservation: the snapshot passed here should be freshly loaded, since
// another diner may have booked since the draft was built.
func Validate(selected SeatMap, reserved SeatMap) error {
	for table, state := range selected {
		for seat, want := range state {
			if want && reserved[table][seat] {
				return &ConflictError{Table: table, Seat: seat}
			}
		}
	}
	return nil
}

// PeopleCounts derives the per-table people count from a seat map,
// skipping tables without selected seats.
func PeopleCounts(selected SeatMap) map[int]int {
	out := map[int]int{}
	for table, state := range selected {
		if n := state.Count(); n > 0 {
			out[table] = n
		}
	}
	return out
}
