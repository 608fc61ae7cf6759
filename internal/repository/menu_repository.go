package repository

import (
	"context"
	"database/sql"

	"github.com/dinebook/table-reservation/internal/model"
)

// MenuRepo provides CRUD operations for menu items.  Mutations verify
// that the caller owns the restaurant the item belongs to.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

const menuCols = "id, restaurant_id, name, description, price, quantity, image_url, is_veg, created_at, updated_at"

func scanMenuItem(row interface{ Scan(...any) error }) (model.MenuItem, error) {
	var (
		item     model.MenuItem
		desc     sql.NullString
		quantity sql.NullInt64
		imageURL sql.NullString
	)
	err := row.Scan(&item.ID, &item.RestaurantID, &item.Name, &desc, &item.Price,
		&quantity, &imageURL, &item.IsVeg, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return model.MenuItem{}, err
	}
	if desc.Valid {
		d := desc.String
		item.Description = &d
	}
	if quantity.Valid {
		n := int(quantity.Int64)
		item.Quantity = &n
	}
	if imageURL.Valid {
		u := imageURL.String
		item.ImageURL = &u
	}
	return item, nil
}

// Create inserts a menu item after verifying restaurant ownership.
func (r *MenuRepo) Create(ctx context.Context, item *model.MenuItem, ownerID uint64) (uint64, error) {
	if err := r.checkOwner(ctx, item.RestaurantID, ownerID); err != nil {
		return 0, err
	}
	const q = `INSERT INTO menu_items (restaurant_id, name, description, price, quantity, image_url, is_veg)
		VALUES (?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, item.RestaurantID, item.Name, item.Description,
		item.Price, item.Quantity, item.ImageURL, item.IsVeg)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	item.ID = uint64(id)
	return item.ID, nil
}

// ListByRestaurant returns a restaurant's menu ordered by name.  Open
// to everyone; diners browse menus without authentication.
func (r *MenuRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+menuCols+" FROM menu_items WHERE restaurant_id=? ORDER BY name", restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetByID fetches one menu item.  Returns ErrNotFound when absent.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (model.MenuItem, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+menuCols+" FROM menu_items WHERE id=? LIMIT 1", id)
	item, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return model.MenuItem{}, ErrNotFound
	}
	return item, err
}

// Update rewrites a menu item after verifying ownership through the
// owning restaurant.
func (r *MenuRepo) Update(ctx context.Context, item model.MenuItem, ownerID uint64) error {
	existing, err := r.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	if err := r.checkOwner(ctx, existing.RestaurantID, ownerID); err != nil {
		return err
	}
	const q = `UPDATE menu_items SET name=?, description=?, price=?, quantity=?, image_url=?, is_veg=? WHERE id=?`
	_, err = r.db.ExecContext(ctx, q, item.Name, item.Description, item.Price,
		item.Quantity, item.ImageURL, item.IsVeg, item.ID)
	return err
}

// Delete removes a menu item after verifying ownership.
func (r *MenuRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.checkOwner(ctx, existing.RestaurantID, ownerID); err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "DELETE FROM menu_items WHERE id=?", id)
	return err
}

func (r *MenuRepo) checkOwner(ctx context.Context, restaurantID, ownerID uint64) error {
	var actual uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM restaurants WHERE id=? LIMIT 1", restaurantID).Scan(&actual)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if actual != ownerID {
		return ErrForbidden
	}
	return nil
}
