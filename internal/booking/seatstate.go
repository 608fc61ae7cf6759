// Package booking contains the pure domain logic for table and seat
// reservations: seat grids, in-progress selection drafts, conflict
// detection against committed reservations, and restaurant open/closed
// status.  Nothing in this package touches the database or the network;
// repositories and handlers build on top of it.
package booking

// SeatsPerTable is the fixed number of seat slots on every table.  The
// floor plan is a grid of tables and each table exposes exactly four
// seats, numbered 0..3.
const SeatsPerTable = 4

// SeatState describes the occupancy of the four seats of one table as an
// ordered sequence of booleans.  Depending on context the same type
// represents either "selected in the current draft" or "reserved by a
// committed reservation".
type SeatState [SeatsPerTable]bool

// Count returns the number of occupied seats in the state.
func (s SeatState) Count() int {
	n := 0
	for _, taken := range s {
		if taken {
			n++
		}
	}
	return n
}

// Union returns the seat-wise OR of two states.  Union is commutative,
// associative and idempotent, which is what makes the reserved-seat
// snapshot safe to rebuild in any order.
func (s SeatState) Union(o SeatState) SeatState {
	var out SeatState
	for i := range s {
		out[i] = s[i] || o[i]
	}
	return out
}

// SeatMap maps a table number (1-based) to the state of its seats.
type SeatMap map[int]SeatState

// Clone returns an independent copy of the map.
func (m SeatMap) Clone() SeatMap {
	out := make(SeatMap, len(m))
	for t, s := range m {
		out[t] = s
	}
	return out
}

// RecomputeReserved rebuilds the aggregate reserved-seat view from the
// seat maps of all active reservations of one restaurant.  Every seat
// marked true in any reservation is marked true in the result.  The
// function is pure: applying it twice to the same input yields the same
// output, and the order of the input slice does not matter.  The
// aggregate is a derived view; the set of active reservations remains
// the source of truth and the aggregate may be rebuilt at any time.
func RecomputeReserved(reservations []SeatMap) SeatMap {
	out := SeatMap{}
	for _, seats := range reservations {
		for table, state := range seats {
			out[table] = out[table].Union(state)
		}
	}
	return out
}
