package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/booking"
	"github.com/dinebook/table-reservation/internal/model"
	"github.com/dinebook/table-reservation/internal/repository"
)

// restaurantReq carries the editable restaurant fields for create and
// update. Hours are "HH:MM" time-of-day strings.
type restaurantReq struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Zip            string  `json:"zip"`
	OpeningTime    string  `json:"opening_time"`
	ClosingTime    string  `json:"closing_time"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	Features       string  `json:"features"`
	ImageURL       *string `json:"image_url"`
}

// restaurantResp is the wire shape for a restaurant. Status is filled
// only on public listings where it is derived from the current time.
type restaurantResp struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Address        string  `json:"address"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	Zip            string  `json:"zip"`
	OpeningTime    string  `json:"opening_time"`
	ClosingTime    string  `json:"closing_time"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currency_symbol"`
	Features       string  `json:"features"`
	ImageURL       *string `json:"image_url,omitempty"`
	Status         string  `json:"status,omitempty"`
}

func restaurantView(r model.Restaurant) restaurantResp {
	return restaurantResp{
		ID:             r.ID,
		Name:           r.Name,
		Type:           r.Type,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		Zip:            r.Zip,
		OpeningTime:    r.OpeningTime,
		ClosingTime:    r.ClosingTime,
		Currency:       r.Currency,
		CurrencySymbol: r.CurrencySymbol,
		Features:       r.Features,
		ImageURL:       r.ImageURL,
	}
}

// validate normalizes the request and checks the operating hours parse.
// It returns a client-facing message, empty when the request is fine.
func (req *restaurantReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name required"
	}
	if _, err := booking.ParseTimeOfDay(req.OpeningTime); err != nil {
		return "opening_time must be HH:MM"
	}
	if _, err := booking.ParseTimeOfDay(req.ClosingTime); err != nil {
		return "closing_time must be HH:MM"
	}
	return ""
}

func (req *restaurantReq) toModel(ownerID uint64) model.Restaurant {
	return model.Restaurant{
		OwnerID:        ownerID,
		Name:           req.Name,
		Type:           req.Type,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Zip:            req.Zip,
		OpeningTime:    req.OpeningTime,
		ClosingTime:    req.ClosingTime,
		Currency:       req.Currency,
		CurrencySymbol: req.CurrencySymbol,
		Features:       req.Features,
		ImageURL:       req.ImageURL,
	}
}

// CreateRestaurant registers a new venue for the authenticated owner.
func (h *OwnerHandler) CreateRestaurant(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest := req.toModel(uid)
	id, err := h.Restaurants.Create(ctx, &rest)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create restaurant failed"})
	}
	rest.ID = id
	return c.JSON(http.StatusCreated, restaurantView(rest))
}

// MyRestaurants lists the venues belonging to the authenticated owner.
func (h *OwnerHandler) MyRestaurants(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Restaurants.ListByOwner(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list restaurants failed"})
	}
	out := make([]restaurantResp, 0, len(list))
	for _, r := range list {
		out = append(out, restaurantView(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"restaurants": out})
}

// UpdateRestaurant replaces the editable fields of an owned venue.
func (h *OwnerHandler) UpdateRestaurant(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rest := req.toModel(uid)
	rest.ID = id
	if err := h.Restaurants.Update(ctx, rest, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update restaurant failed"})
		}
	}
	return c.JSON(http.StatusOK, restaurantView(rest))
}

// DeleteRestaurant removes an owned venue.
func (h *OwnerHandler) DeleteRestaurant(c echo.Context) error {
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

	if err := h.Restaurants.Delete(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "restaurant not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete restaurant failed"})
		}
	}
	h.Seats.Invalidate(ctx, id)
	return c.NoContent(http.StatusNoContent)
}
