package model

import "time"

// Restaurant represents a venue owned by an operator.  It corresponds
// to a row in the `restaurants` table.  Operating hours are stored as
// time-of-day strings ("HH:MM"); the open/closed status is derived from
// them at read time and never persisted.
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – user ID of the restaurant operator.
//  Name           – display name, unique per owner.
//  Type           – free-text cuisine/venue type.
//  Address        – street address.
//  City           – city name.
//  State          – state or province.
//  Zip            – postal code.
//  OpeningTime    – daily opening time of day ("HH:MM").
//  ClosingTime    – daily closing time of day ("HH:MM").
//  Currency       – ISO currency code (e.g. "USD").
//  CurrencySymbol – symbol shown next to prices.
//  Features       – comma-separated free-text feature tags.
//  ImageURL       – cover image location (nullable).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Restaurant struct {
	ID             uint64    // restaurants.id
	OwnerID        uint64    // restaurants.owner_id
	Name           string    // restaurants.name
	Type           string    // restaurants.type
	Address        string    // restaurants.address
	City           string    // restaurants.city
	State          string    // restaurants.state
	Zip            string    // restaurants.zip
	OpeningTime    string    // restaurants.opening_time ("HH:MM")
	ClosingTime    string    // restaurants.closing_time ("HH:MM")
	Currency       string    // restaurants.currency
	CurrencySymbol string    // restaurants.currency_symbol
	Features       string    // restaurants.features
	ImageURL       *string   // restaurants.image_url (nullable)
	CreatedAt      time.Time // restaurants.created_at
	UpdatedAt      time.Time // restaurants.updated_at
}

// TableLayout mirrors the `table_layouts` table, one row per
// restaurant.  Rows and columns define the booking grid; tables are
// numbered 1..Rows*Columns.  When no row exists for a restaurant the
// default 4x2 layout applies.
//
// Fields:
//  RestaurantID – restaurant owning the layout (primary key).
//  Rows         – number of grid rows, clamped to 1..10.
//  Columns      – number of grid columns, clamped to 1..8.
//  UpdatedAt    – last update timestamp.
type TableLayout struct {
	RestaurantID uint64    // table_layouts.restaurant_id
	Rows         int       // table_layouts.grid_rows
	Columns      int       // table_layouts.grid_cols
	UpdatedAt    time.Time // table_layouts.updated_at
}
