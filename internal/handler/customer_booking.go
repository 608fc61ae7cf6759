package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/booking"
	"github.com/dinebook/table-reservation/internal/queue"
	"github.com/dinebook/table-reservation/internal/repository"
	"github.com/dinebook/table-reservation/internal/service"
)

// CustomerHandler bundles what diners need to browse seats, book them
// and order food.
type CustomerHandler struct {
	Restaurants  *repository.RestaurantRepo
	Layouts      *repository.LayoutRepo
	Reservations *repository.ReservationRepo
	Orders       *repository.OrderRepo
	Seats        *repository.SeatCache
}

func NewCustomerHandler(restaurants *repository.RestaurantRepo, layouts *repository.LayoutRepo, reservations *repository.ReservationRepo, orders *repository.OrderRepo, seats *repository.SeatCache) *CustomerHandler {
	if restaurants == nil || layouts == nil || reservations == nil || orders == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{
		Restaurants:  restaurants,
		Layouts:      layouts,
		Reservations: reservations,
		Orders:       orders,
		Seats:        seats,
	}
}

// reservedSeats returns the restaurant's occupancy map, consulting the
// cache before falling back to the database.
func (h *CustomerHandler) reservedSeats(ctx context.Context, restID uint64) (booking.SeatMap, error) {
	if seats, ok := h.Seats.Get(ctx, restID); ok {
		return seats, nil
	}
	seats, err := h.Reservations.ReservedSeats(ctx, restID)
	if err != nil {
		return nil, err
	}
	h.Seats.Put(ctx, restID, seats)
	return seats, nil
}

// SeatAvailability returns the booking grid and current occupancy for
// a restaurant. Clients build their draft selection against this and
// submit it as a whole; the server re-checks on submission, so a stale
// view costs at most a rejected booking, never a double one.
func (h *CustomerHandler) SeatAvailability(c echo.Context) error {
	restID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Restaurants.GetByID(ctx, restID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	layout, err := h.Layouts.Get(ctx, restID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load layout failed"})
	}
	reserved, err := h.reservedSeats(ctx, restID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	reserved = reserved.Clone()
	layout.EnsureTables(reserved)

	return c.JSON(http.StatusOK, echo.Map{
		"rows":         layout.Rows,
		"columns":      layout.Columns,
		"reserved":     reserved,
		"people_count": booking.PeopleCounts(reserved),
	})
}

type createReservationReq struct {
	// Seats maps table number to the 0-based seat indices claimed on it.
	Seats map[int][]int `json:"seats"`
}

// toSeatMap converts the wire selection to a SeatMap, rejecting seat
// indices outside 0..3 and tables outside the grid.
func (req createReservationReq) toSeatMap(layout booking.Layout) (booking.SeatMap, error) {
	selected := booking.SeatMap{}
	for table, seats := range req.Seats {
		if !layout.Contains(table) {
			return nil, fmt.Errorf("table %d is outside the layout", table)
		}
		state := selected[table]
		for _, s := range seats {
			if s < 0 || s >= booking.SeatsPerTable {
				return nil, fmt.Errorf("seat index %d on table %d is invalid", s, table)
			}
			state[s] = true
		}
		selected[table] = state
	}
	return selected, nil
}

// seatLabels renders a SeatMap as "table/seat" strings for event
// payloads, in deterministic order.
func seatLabels(seats booking.SeatMap) []string {
	tables := make([]int, 0, len(seats))
	for t := range seats {
		tables = append(tables, t)
	}
	sort.Ints(tables)
	var out []string
	for _, t := range tables {
		for i, taken := range seats[t] {
			if taken {
				out = append(out, fmt.Sprintf("%d/%d", t, i))
			}
		}
	}
	return out
}

// CreateReservation submits a diner's seat selection. The selection is
// validated against the layout, then committed atomically; a seat
// grabbed by someone else in the meantime rejects the whole submission
// with 409 and the conflicting table and seat, leaving nothing written.
func (h *CustomerHandler) CreateReservation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	rest, err := h.Restaurants.GetByID(ctx, restID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	layout, err := h.Layouts.Get(ctx, restID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load layout failed"})
	}
	selected, err := req.toSeatMap(layout)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	res, err := h.Reservations.Create(ctx, restID, uid, selected)
	if err != nil {
		var conflict *booking.ConflictError
		switch {
		case errors.As(err, &conflict):
			body := echo.Map{"error": "seat already reserved"}
			// Table numbering starts at 1; 0 means the colliding pair
			// could not be identified.
			if conflict.Table > 0 {
				body["table"] = conflict.Table
				body["seat"] = conflict.Seat
			}
			return c.JSON(http.StatusConflict, body)
		case err == repository.ErrEmptySelection:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no seats selected"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
		}
	}
	h.Seats.Invalidate(ctx, restID)

	// Broker outages must not fail the booking.
	_ = service.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID:  res.ID,
		RestaurantID:   restID,
		RestaurantName: rest.Name,
		UserID:         uid,
		Seats:          seatLabels(selected),
		ConfirmedAt:    res.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"id":           res.ID,
		"seats":        selected,
		"people_count": booking.PeopleCounts(selected),
		"created_at":   res.CreatedAt,
	})
}

// MyReservations lists the diner's reservations across restaurants.
func (h *CustomerHandler) MyReservations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// CancelReservation deletes one of the diner's reservations along with
// its orders and seat claims.
func (h *CustomerHandler) CancelReservation(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID := c.Param("reservation_id")
	if resID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	det, err := h.Reservations.GetByID(ctx, resID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	if err := h.Reservations.Delete(ctx, resID, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
		}
	}
	h.Seats.Invalidate(ctx, det.RestaurantID)

	_ = service.PublishReservationCancelled(ctx, queue.ReservationCancelledEvent{
		ReservationID: resID,
		RestaurantID:  det.RestaurantID,
		CancelledBy:   uid,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.NoContent(http.StatusNoContent)
}
