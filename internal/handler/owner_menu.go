package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/model"
	"github.com/dinebook/table-reservation/internal/repository"
)

type menuItemReq struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"` // minor currency units
	Quantity    *int    `json:"quantity"`
	ImageURL    *string `json:"image_url"`
	IsVeg       bool    `json:"is_veg"`
}

type menuItemResp struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"`
	Quantity    *int    `json:"quantity,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	IsVeg       bool    `json:"is_veg"`
}

func menuItemView(m model.MenuItem) menuItemResp {
	return menuItemResp{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Quantity:    m.Quantity,
		ImageURL:    m.ImageURL,
		IsVeg:       m.IsVeg,
	}
}

func menuErrJSON(c echo.Context, err error, verb string) error {
	switch err {
	case repository.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case repository.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your restaurant"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": verb + " menu item failed"})
	}
}

// CreateMenuItem adds a dish to an owned restaurant's menu.
func (h *OwnerHandler) CreateMenuItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	restID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := model.MenuItem{
		RestaurantID: restID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Quantity:     req.Quantity,
		ImageURL:     req.ImageURL,
		IsVeg:        req.IsVeg,
	}
	id, err := h.Menus.Create(ctx, &item, uid)
	if err != nil {
		return menuErrJSON(c, err, "create")
	}
	item.ID = id
	return c.JSON(http.StatusCreated, menuItemView(item))
}

// UpdateMenuItem replaces a dish's editable fields.
func (h *OwnerHandler) UpdateMenuItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req menuItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := model.MenuItem{
		ID:          itemID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		IsVeg:       req.IsVeg,
	}
	if err := h.Menus.Update(ctx, item, uid); err != nil {
		return menuErrJSON(c, err, "update")
	}
	return c.JSON(http.StatusOK, menuItemView(item))
}

// DeleteMenuItem removes a dish from the menu. Past order items keep
// their name and price snapshots.
func (h *OwnerHandler) DeleteMenuItem(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, err := pathID(c, "item_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Menus.Delete(ctx, itemID, uid); err != nil {
		return menuErrJSON(c, err, "delete")
	}
	return c.NoContent(http.StatusNoContent)
}
