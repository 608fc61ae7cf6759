package model

import "time"

// MenuItem is a dish offered by a restaurant, a row in the
// `menu_items` table.  Prices are integers in the restaurant's minor
// currency unit; no floating point money anywhere.
//
// Fields:
//  ID           – primary key identifier.
//  RestaurantID – restaurant offering the item.
//  Name         – dish name.
//  Description  – optional free-text description.
//  Price        – price in minor units.
//  Quantity     – optional stock count (nil when not tracked).
//  ImageURL     – optional photo location.
//  IsVeg        – vegetarian flag.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type MenuItem struct {
	ID           uint64    // menu_items.id
	RestaurantID uint64    // menu_items.restaurant_id
	Name         string    // menu_items.name
	Description  *string   // menu_items.description (nullable)
	Price        int64     // menu_items.price
	Quantity     *int      // menu_items.quantity (nullable)
	ImageURL     *string   // menu_items.image_url (nullable)
	IsVeg        bool      // menu_items.is_veg
	CreatedAt    time.Time // menu_items.created_at
	UpdatedAt    time.Time // menu_items.updated_at
}

// Order is a food order placed by a diner against one of their active
// reservations.  It corresponds to a row in the `orders` table; the
// ordered dishes live in `order_items`.  Deleting a reservation
// cascades to its orders and their items.
//
// Fields:
//  ID            – UUID primary key, generated at creation.
//  ReservationID – the reservation this order belongs to.
//  RestaurantID  – restaurant the order was placed at.
//  UserID        – diner who placed the order.
//  Status        – "pending" until staff marks it "paid".
//  CreatedAt     – creation timestamp.
type Order struct {
	ID            string    // orders.id (UUID)
	ReservationID string    // orders.reservation_id
	RestaurantID  uint64    // orders.restaurant_id
	UserID        uint64    // orders.user_id
	Status        string    // orders.status ("pending"|"paid")
	CreatedAt     time.Time // orders.created_at
}

// Order status values.
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// OrderItem snapshots one ordered dish.  Name and price are copied from
// the menu item at order time so later menu edits do not rewrite
// history.
//
// Fields:
//  ID         – primary key identifier.
//  OrderID    – parent order.
//  MenuItemID – menu item the snapshot was taken from.
//  Name       – dish name at order time.
//  Price      – unit price in minor units at order time.
//  Quantity   – number of units ordered.
type OrderItem struct {
	ID         uint64 // order_items.id
	OrderID    string // order_items.order_id
	MenuItemID uint64 // order_items.menu_item_id
	Name       string // order_items.name
	Price      int64  // order_items.price
	Quantity   int    // order_items.quantity
}
