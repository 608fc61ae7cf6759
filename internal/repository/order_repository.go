package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dinebook/table-reservation/internal/model"
)

// OrderRepo provides persistence for food orders placed against active
// reservations.  An order snapshots the ordered dishes (name, unit
// price, quantity) so later menu edits do not rewrite it.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns an OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderLine is one requested dish in a new order.
type OrderLine struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// OrderDetail is an order with its item snapshots and derived total.
type OrderDetail struct {
	ID            string            `json:"id"`
	ReservationID string            `json:"reservation_id"`
	RestaurantID  uint64            `json:"restaurant_id"`
	UserID        uint64            `json:"user_id"`
	Status        string            `json:"status"`
	Total         int64             `json:"total"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []model.OrderItem `json:"items"`
}

// Create places an order against a reservation.  It verifies inside a
// transaction that the reservation exists, belongs to the calling
// diner and is still active, resolves every requested line against the
// restaurant's menu, snapshots name/price, and inserts the order plus
// its items.  Lines referencing another restaurant's menu or with a
// non-positive quantity fail the whole order.
func (r *OrderRepo) Create(ctx context.Context, reservationID string, userID uint64, lines []OrderLine) (OrderDetail, error) {
	if len(lines) == 0 {
		return OrderDetail{}, ErrEmptySelection
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return OrderDetail{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		restaurantID uint64
		dinerID      uint64
	)
	err = tx.QueryRowContext(ctx,
		"SELECT restaurant_id, user_id FROM reservations WHERE id=? LIMIT 1",
		reservationID).Scan(&restaurantID, &dinerID)
	if err == sql.ErrNoRows {
		return OrderDetail{}, ErrNotFound
	}
	if err != nil {
		return OrderDetail{}, err
	}
	if dinerID != userID {
		return OrderDetail{}, ErrForbidden
	}

	det := OrderDetail{
		ID:            uuid.NewString(),
		ReservationID: reservationID,
		RestaurantID:  restaurantID,
		UserID:        userID,
		Status:        model.OrderStatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO orders (id, reservation_id, restaurant_id, user_id, status, created_at) VALUES (?,?,?,?,?,?)",
		det.ID, det.ReservationID, det.RestaurantID, det.UserID, det.Status, det.CreatedAt); err != nil {
		return OrderDetail{}, err
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return OrderDetail{}, ErrEmptySelection
		}
		var (
			name  string
			price int64
		)
		err := tx.QueryRowContext(ctx,
			"SELECT name, price FROM menu_items WHERE id=? AND restaurant_id=? LIMIT 1",
			line.MenuItemID, restaurantID).Scan(&name, &price)
		if err == sql.ErrNoRows {
			return OrderDetail{}, ErrNotFound
		}
		if err != nil {
			return OrderDetail{}, err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, menu_item_id, name, price, quantity) VALUES (?,?,?,?,?)",
			det.ID, line.MenuItemID, name, price, line.Quantity); err != nil {
			return OrderDetail{}, err
		}
		det.Items = append(det.Items, model.OrderItem{
			OrderID:    det.ID,
			MenuItemID: line.MenuItemID,
			Name:       name,
			Price:      price,
			Quantity:   line.Quantity,
		})
		det.Total += price * int64(line.Quantity)
	}
	if err := tx.Commit(); err != nil {
		return OrderDetail{}, err
	}
	committed = true
	return det, nil
}

// ListByReservation returns the orders of one reservation, oldest
// first.  The caller must be the booking diner or the restaurant's
// operator.
func (r *OrderRepo) ListByReservation(ctx context.Context, reservationID string, callerID uint64) ([]OrderDetail, error) {
	var dinerID, ownerID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT r.user_id, rest.owner_id
		 FROM reservations r
		 JOIN restaurants rest ON rest.id = r.restaurant_id
		 WHERE r.id=?`, reservationID).Scan(&dinerID, &ownerID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if callerID != dinerID && callerID != ownerID {
		return nil, ErrForbidden
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, reservation_id, restaurant_id, user_id, status, created_at FROM orders WHERE reservation_id=? ORDER BY created_at",
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []OrderDetail{}
	for rows.Next() {
		var det OrderDetail
		if err := rows.Scan(&det.ID, &det.ReservationID, &det.RestaurantID, &det.UserID, &det.Status, &det.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, det *OrderDetail) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, order_id, menu_item_id, name, price, quantity FROM order_items WHERE order_id=? ORDER BY id",
		det.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Price, &item.Quantity); err != nil {
			return err
		}
		det.Items = append(det.Items, item)
		det.Total += item.Price * int64(item.Quantity)
	}
	return rows.Err()
}

// MarkPaid transitions an order to "paid".  Only the operator of the
// restaurant the order was placed at may do this.
func (r *OrderRepo) MarkPaid(ctx context.Context, orderID string, ownerID uint64) error {
	if err := r.checkOperator(ctx, orderID, ownerID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status=? WHERE id=?", model.OrderStatusPaid, orderID)
	return err
}

// Delete removes a single order and its items (staff correcting a
// mistaken order).  Items first, then the order, in one transaction.
func (r *OrderRepo) Delete(ctx context.Context, orderID string, ownerID uint64) error {
	if err := r.checkOperator(ctx, orderID, ownerID); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if _, err := tx.ExecContext(ctx, "DELETE FROM order_items WHERE order_id=?", orderID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id=?", orderID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *OrderRepo) checkOperator(ctx context.Context, orderID string, ownerID uint64) error {
	var actual uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT rest.owner_id FROM orders o
		 JOIN restaurants rest ON rest.id = o.restaurant_id
		 WHERE o.id=?`, orderID).Scan(&actual)
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
