package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/repository"
)

type placeOrderReq struct {
	Items []repository.OrderLine `json:"items"`
}

// PlaceOrder creates a food order against one of the diner's active
// reservations. Name and price are snapshotted from the menu so later
// edits do not rewrite the bill.
func (h *CustomerHandler) PlaceOrder(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID := c.Param("reservation_id")
	if resID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req placeOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	det, err := h.Orders.Create(ctx, resID, uid, req.Items)
	if err != nil {
		switch err {
		case repository.ErrEmptySelection:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "order needs at least one item with positive quantity"})
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation or menu item not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "place order failed"})
		}
	}
	return c.JSON(http.StatusCreated, det)
}

// MyOrders lists the orders placed against one of the diner's
// reservations.
func (h *CustomerHandler) MyOrders(c echo.Context) error {
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
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list orders failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": list})
}
