package booking

// Layout bounds.  Operators configure the floor plan as a rectangle of
// tables; the bounds keep a typo from generating a degenerate or huge
// grid.  Values outside the range are clamped, not rejected.
const (
	MinRows    = 1
	MaxRows    = 10
	MinColumns = 1
	MaxColumns = 8

	// DefaultRows and DefaultColumns are used when a restaurant has no
	// persisted layout yet.
	DefaultRows    = 4
	DefaultColumns = 2
)

// Layout describes a restaurant floor plan as a grid of tables.  Tables
// are numbered 1..Rows*Columns in row-major order.
type Layout struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// DefaultLayout returns the layout used before an operator configures one.
func DefaultLayout() Layout {
	return Layout{Rows: DefaultRows, Columns: DefaultColumns}
}

// ClampLayout normalizes operator input into a valid layout.  Rows are
// clamped to [MinRows, MaxRows] and columns to [MinColumns, MaxColumns].
func ClampLayout(rows, columns int) Layout {
	if rows < MinRows {
		rows = MinRows
	}
	if rows > MaxRows {
		rows = MaxRows
	}
	if columns < MinColumns {
		columns = MinColumns
	}
	if columns > MaxColumns {
		columns = MaxColumns
	}
	return Layout{Rows: rows, Columns: columns}
}

// TableCount returns the number of tables in the grid.
func (l Layout) TableCount() int {
	return l.Rows * l.Columns
}

// Contains reports whether the 1-based table number exists in the grid.
func (l Layout) Contains(table int) bool {
	return table >= 1 && table <= l.TableCount()
}

// EnsureTables reconciles a seat map with the layout: every table in
// 1..TableCount gets an entry (all seats free when newly created) and
// entries for tables outside the grid are dropped.  It is called after
// loading a layout and after a resize, so that the map always has
// exactly one entry per table.
func (l Layout) EnsureTables(seats SeatMap) {
	count := l.TableCount()
	for table := range seats {
		if table < 1 || table > count {
			delete(seats, table)
		}
	}
	for table := 1; table <= count; table++ {
		if _, ok := seats[table]; !ok {
			seats[table] = SeatState{}
		}
	}
}
