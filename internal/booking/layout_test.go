package booking

import "testing"

func TestClampLayout(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		want       Layout
	}{
		{name: "withinBounds", rows: 4, cols: 2, want: Layout{Rows: 4, Columns: 2}},
		{name: "rowsBelowMin", rows: 0, cols: 3, want: Layout{Rows: 1, Columns: 3}},
		{name: "rowsAboveMax", rows: 50, cols: 3, want: Layout{Rows: 10, Columns: 3}},
		{name: "colsBelowMin", rows: 2, cols: -1, want: Layout{Rows: 2, Columns: 1}},
		{name: "colsAboveMax", rows: 2, cols: 100, want: Layout{Rows: 2, Columns: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampLayout(tt.rows, tt.cols); got != tt.want {
				t.Errorf("ClampLayout(%d, %d) = %+v, want %+v", tt.rows, tt.cols, got, tt.want)
			}
		})
	}
}

func TestEnsureTablesFillsAndDrops(t *testing.T) {
	// Start from an 8-table map with a selection on table 7, then shrink
	// to a 2x2 grid: tables 5..8 drop, tables 1..4 survive or appear.
	seats := SeatMap{}
	Layout{Rows: 4, Columns: 2}.EnsureTables(seats)
	seats[7] = SeatState{true, false, false, false}
	seats[2] = SeatState{false, false, true, false}

	small := Layout{Rows: 2, Columns: 2}
	small.EnsureTables(seats)

	if len(seats) != small.TableCount() {
		t.Fatalf("seat map has %d entries, want %d", len(seats), small.TableCount())
	}
	for table := 1; table <= small.TableCount(); table++ {
		if _, ok := seats[table]; !ok {
			t.Errorf("table %d missing after EnsureTables", table)
		}
	}
	if _, ok := seats[7]; ok {
		t.Error("table 7 must be dropped after shrinking the grid")
	}
	if seats[2] != (SeatState{false, false, true, false}) {
		t.Errorf("in-range selection lost: seats[2] = %v", seats[2])
	}
}

func TestEnsureTablesNewTablesAllFree(t *testing.T) {
	seats := SeatMap{}
	layout := Layout{Rows: 4, Columns: 2}
	layout.EnsureTables(seats)

	if len(seats) != 8 {
		t.Fatalf("seat map has %d entries, want 8", len(seats))
	}
	for table, state := range seats {
		if state != (SeatState{}) {
			t.Errorf("seats[%d] = %v, want all free", table, state)
		}
	}
}

func TestLayoutContains(t *testing.T) {
	l := Layout{Rows: 3, Columns: 3}
	for _, table := range []int{1, 5, 9} {
		if !l.Contains(table) {
			t.Errorf("Contains(%d) = false, want true", table)
		}
	}
	for _, table := range []int{0, -1, 10} {
		if l.Contains(table) {
			t.Errorf("Contains(%d) = true, want false", table)
		}
	}
}
