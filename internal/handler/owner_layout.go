package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/booking"
	"github.com/dinebook/table-reservation/internal/repository"
)

type layoutReq struct {
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

// GetLayout returns the booking grid for an owned restaurant.
func (h *OwnerHandler) GetLayout(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	if rest.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
	}

	layout, err := h.Layouts.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load layout failed"})
	}
	return c.JSON(http.StatusOK, layout)
}

// SetLayout resizes the booking grid. Out-of-range dimensions are
// clamped rather than rejected; the stored layout is echoed back so the
// client sees the effective values. Reservations on tables beyond the
// new grid stay in the database and simply reappear if the grid grows
// again.
func (h *OwnerHandler) SetLayout(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req layoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest, err := h.Restaurants.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	if rest.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
	}

	layout := booking.ClampLayout(req.Rows, req.Columns)
	if err := h.Layouts.Set(ctx, id, layout); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save layout failed"})
	}
	h.Seats.Invalidate(ctx, id)
	return c.JSON(http.StatusOK, layout)
}
