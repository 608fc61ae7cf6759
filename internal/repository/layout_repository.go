package repository

import (
	"context"
	"database/sql"

	"github.com/dinebook/table-reservation/internal/booking"
)

// LayoutRepo persists the booking grid of each restaurant.  A
// restaurant without a persisted row uses the default 4x2 layout; the
// repository hides that distinction from callers.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo returns a LayoutRepo bound to the given database.
func NewLayoutRepo(db *sql.DB) *LayoutRepo { return &LayoutRepo{db: db} }

// Get loads the layout for a restaurant.  Missing rows fall back to
// booking.DefaultLayout; persisted values are clamped on the way out in
// case the bounds tightened since the row was written.
func (r *LayoutRepo) Get(ctx context.Context, restaurantID uint64) (booking.Layout, error) {
	var rows, cols int
	err := r.db.QueryRowContext(ctx,
		"SELECT grid_rows, grid_cols FROM table_layouts WHERE restaurant_id=? LIMIT 1",
		restaurantID).Scan(&rows, &cols)
	if err == sql.ErrNoRows {
		return booking.DefaultLayout(), nil
	}
	if err != nil {
		return booking.Layout{}, err
	}
	return booking.ClampLayout(rows, cols), nil
}

// Set upserts the layout for a restaurant.  Input must already be
// clamped by the caller (handlers clamp via booking.ClampLayout so the
// stored values are always in range).
func (r *LayoutRepo) Set(ctx context.Context, restaurantID uint64, layout booking.Layout) error {
	const q = `INSERT INTO table_layouts (restaurant_id, grid_rows, grid_cols)
		VALUES (?,?,?)
		ON DUPLICATE KEY UPDATE grid_rows=VALUES(grid_rows), grid_cols=VALUES(grid_cols)`
	_, err := r.db.ExecContext(ctx, q, restaurantID, layout.Rows, layout.Columns)
	return err
}
