package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/queue"
	"github.com/dinebook/table-reservation/internal/repository"
	"github.com/dinebook/table-reservation/internal/service"
)

// ownsRestaurant loads the restaurant and verifies the caller operates
// it, translating repository errors into HTTP responses. The bool
// reports whether the caller may proceed.
func (h *OwnerHandler) ownsRestaurant(c echo.Context, ctx context.Context, restID, uid uint64) (bool, error) {
	rest, err := h.Restaurants.GetByID(ctx, restID)
	if err != nil {
		if err == repository.ErrNotFound {
			return false, c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return false, c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	if rest.OwnerID != uid {
		return false, c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
	}
	return true, nil
}

// ListReservations returns the active reservations for an owned
// restaurant, seats and head counts included.
func (h *OwnerHandler) ListReservations(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if ok, resp := h.ownsRestaurant(c, ctx, restID, uid); !ok {
		return resp
	}
	list, err := h.Reservations.ListByRestaurant(ctx, restID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// SettleReservation marks a reservation paid and archives it to
// history in one transaction. The freed seats become bookable the
// moment the transaction commits.
func (h *OwnerHandler) SettleReservation(c echo.Context) error {
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

	rec, err := h.Reservations.SettleAndArchive(ctx, resID, uid)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "settle failed"})
		}
	}
	h.Seats.Invalidate(ctx, rec.RestaurantID)

	// Broker outages must not fail the settlement.
	_ = service.PublishReservationSettled(ctx, queue.ReservationSettledEvent{
		ReservationID: rec.ID,
		RestaurantID:  rec.RestaurantID,
		UserID:        rec.UserID,
		BilledAt:      rec.BillingTime.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{
		"id":           rec.ID,
		"billing_time": rec.BillingTime,
	})
}

// ListHistory returns an owned restaurant's settled reservations,
// most recently billed first.
func (h *OwnerHandler) ListHistory(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if ok, resp := h.ownsRestaurant(c, ctx, restID, uid); !ok {
		return resp
	}
	list, err := h.History.ListByRestaurant(ctx, restID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list history failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"history": list})
}

// ListReservationOrders returns the food orders placed against a
// reservation at an owned restaurant.
func (h *OwnerHandler) ListReservationOrders(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID := c.Param("reservation_id")
	if resID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Orders.ListByReservation(ctx, resID, uid)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list orders failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": list})
}

// MarkOrderPaid transitions an order from pending to paid.
func (h *OwnerHandler) MarkOrderPaid(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID := c.Param("order_id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.MarkPaid(ctx, orderID, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update order failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"id": orderID, "status": "paid"})
}

// DeleteOrder removes an order and its items.
func (h *OwnerHandler) DeleteOrder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	orderID := c.Param("order_id")
	if orderID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.Delete(ctx, orderID, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete order failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
