package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dinebook/table-reservation/internal/model"
)

// RestaurantRepo provides CRUD operations for restaurants.  Mutations
// are owner-scoped: updates and deletes verify that the calling user
// owns the row and return ErrForbidden otherwise.
type RestaurantRepo struct {
	db *sql.DB
}

// NewRestaurantRepo returns a RestaurantRepo bound to the given database.
func NewRestaurantRepo(db *sql.DB) *RestaurantRepo { return &RestaurantRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *RestaurantRepo) DB() *sql.DB { return r.db }

const restaurantCols = `id, owner_id, name, type, address, city, state, zip,
	opening_time, closing_time, currency, currency_symbol, features, image_url,
	created_at, updated_at`

func scanRestaurant(row interface{ Scan(...any) error }) (model.Restaurant, error) {
	var (
		rest     model.Restaurant
		imageURL sql.NullString
	)
	err := row.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Type, &rest.Address,
		&rest.City, &rest.State, &rest.Zip, &rest.OpeningTime, &rest.ClosingTime,
		&rest.Currency, &rest.CurrencySymbol, &rest.Features, &imageURL,
		&rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		return model.Restaurant{}, err
	}
	if imageURL.Valid {
		u := imageURL.String
		rest.ImageURL = &u
	}
	return rest, nil
}

// Create inserts a restaurant and returns its generated ID.
func (r *RestaurantRepo) Create(ctx context.Context, rest *model.Restaurant) (uint64, error) {
	const q = `INSERT INTO restaurants
		(owner_id, name, type, address, city, state, zip, opening_time, closing_time,
		 currency, currency_symbol, features, image_url)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q, rest.OwnerID, rest.Name, rest.Type,
		rest.Address, rest.City, rest.State, rest.Zip, rest.OpeningTime,
		rest.ClosingTime, rest.Currency, rest.CurrencySymbol, rest.Features,
		rest.ImageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	rest.ID = uint64(id)
	return rest.ID, nil
}

// GetByID fetches one restaurant.  Returns ErrNotFound when absent.
func (r *RestaurantRepo) GetByID(ctx context.Context, id uint64) (model.Restaurant, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE id=? LIMIT 1", id)
	rest, err := scanRestaurant(row)
	if err == sql.ErrNoRows {
		return model.Restaurant{}, ErrNotFound
	}
	return rest, err
}

// List returns all restaurants ordered by name, optionally filtered by
// a case-insensitive substring of name or city.
func (r *RestaurantRepo) List(ctx context.Context, search string) ([]model.Restaurant, error) {
	q := "SELECT " + restaurantCols + " FROM restaurants"
	args := []any{}
	if s := strings.TrimSpace(search); s != "" {
		q += " WHERE LOWER(name) LIKE ? OR LOWER(city) LIKE ?"
		like := "%" + strings.ToLower(s) + "%"
		args = append(args, like, like)
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// ListByOwner returns the restaurants belonging to one operator.
func (r *RestaurantRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+restaurantCols+" FROM restaurants WHERE owner_id=? ORDER BY name", ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// Update rewrites the mutable columns of a restaurant after verifying
// ownership.  Returns ErrNotFound when the row is missing and
// ErrForbidden when it belongs to another user.
func (r *RestaurantRepo) Update(ctx context.Context, rest model.Restaurant, ownerID uint64) error {
	if err := r.checkOwner(ctx, rest.ID, ownerID); err != nil {
		return err
	}
	const q = `UPDATE restaurants SET name=?, type=?, address=?, city=?, state=?, zip=?,
		opening_time=?, closing_time=?, currency=?, currency_symbol=?, features=?, image_url=?
		WHERE id=?`
	_, err := r.db.ExecContext(ctx, q, rest.Name, rest.Type, rest.Address, rest.City,
		rest.State, rest.Zip, rest.OpeningTime, rest.ClosingTime, rest.Currency,
		rest.CurrencySymbol, rest.Features, rest.ImageURL, rest.ID)
	return err
}

// Delete removes a restaurant after verifying ownership.  The schema
// cascades to layout, menu, reservations and history via foreign keys.
func (r *RestaurantRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	if err := r.checkOwner(ctx, id, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, "DELETE FROM restaurants WHERE id=?", id)
	return err
}

// checkOwner loads the owner of a restaurant and compares it to the
// caller.
func (r *RestaurantRepo) checkOwner(ctx context.Context, id, ownerID uint64) error {
	var actual uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT owner_id FROM restaurants WHERE id=? LIMIT 1", id).Scan(&actual)
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
