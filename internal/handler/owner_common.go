package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/repository"
)

// OwnerHandler bundles the repositories restaurant operators need to
// manage their venues, layouts, menus and reservations.
type OwnerHandler struct {
	Restaurants  *repository.RestaurantRepo
	Layouts      *repository.LayoutRepo
	Menus        *repository.MenuRepo
	Reservations *repository.ReservationRepo
	History      *repository.HistoryRepo
	Orders       *repository.OrderRepo
	Seats        *repository.SeatCache
}

// NewOwnerHandler constructs an OwnerHandler; it panics on a nil
// repository since that is a wiring bug, not a runtime condition.
func NewOwnerHandler(restaurants *repository.RestaurantRepo, layouts *repository.LayoutRepo, menus *repository.MenuRepo, reservations *repository.ReservationRepo, history *repository.HistoryRepo, orders *repository.OrderRepo, seats *repository.SeatCache) *OwnerHandler {
	if restaurants == nil || layouts == nil || menus == nil || reservations == nil || history == nil || orders == nil {
		panic("nil repository passed to NewOwnerHandler")
	}
	return &OwnerHandler{
		Restaurants:  restaurants,
		Layouts:      layouts,
		Menus:        menus,
		Reservations: reservations,
		History:      history,
		Orders:       orders,
		Seats:        seats,
	}
}

// getUserID extracts the user_id stored by the JWT middleware and
// converts it to uint64. JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
