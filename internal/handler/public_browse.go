package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/booking"
	"github.com/dinebook/table-reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse endpoints: restaurant
// listings with a derived open/closed status, restaurant detail, and
// public menus. These are the cacheable read paths.
type PublicHandler struct {
	Restaurants *repository.RestaurantRepo
	Menus       *repository.MenuRepo
}

func NewPublicHandler(restaurants *repository.RestaurantRepo, menus *repository.MenuRepo) *PublicHandler {
	if restaurants == nil || menus == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Restaurants: restaurants, Menus: menus}
}

// statusOf derives the open/closed status from the stored hours at the
// given instant. Unparseable hours read as closed rather than erroring
// a whole listing.
func statusOf(openingTime, closingTime string, now time.Time) string {
	opening, err := booking.ParseTimeOfDay(openingTime)
	if err != nil {
		return booking.StatusClosed.String()
	}
	closing, err := booking.ParseTimeOfDay(closingTime)
	if err != nil {
		return booking.StatusClosed.String()
	}
	return booking.Status(now, opening, closing).String()
}

// ListRestaurants returns all venues, optionally filtered by a search
// term over name and city, each with its live status.
func (h *PublicHandler) ListRestaurants(c echo.Context) error {
	search := strings.TrimSpace(c.QueryParam("search"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Restaurants.List(ctx, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list restaurants failed"})
	}

	now := time.Now()
	out := make([]restaurantResp, 0, len(list))
	for _, r := range list {
		v := restaurantView(r)
		v.Status = statusOf(r.OpeningTime, r.ClosingTime, now)
		out = append(out, v)
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": out})
}

// GetRestaurant returns one venue with its live status.
func (h *PublicHandler) GetRestaurant(c echo.Context) error {
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
	v := restaurantView(rest)
	v.Status = statusOf(rest.OpeningTime, rest.ClosingTime, time.Now())
	return c.JSON(http.StatusOK, v)
}

// GetMenu returns a restaurant's menu for browsing before booking.
func (h *PublicHandler) GetMenu(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Restaurants.GetByID(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load restaurant failed"})
	}
	items, err := h.Menus.ListByRestaurant(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load menu failed"})
	}
	out := make([]menuItemResp, 0, len(items))
	for _, m := range items {
		out = append(out, menuItemView(m))
	}
	return c.JSON(http.StatusOK, echo.Map{"menu": out})
}
