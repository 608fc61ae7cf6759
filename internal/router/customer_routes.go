package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/handler"
	"github.com/dinebook/table-reservation/internal/middleware"
)

// RegisterCustomer registers the diner-facing endpoints under /v1.
// Seat availability is open so guests can browse the grid before
// signing up; everything that writes requires a CUSTOMER token.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	e.GET("/v1/restaurants/:id/seats", h.SeatAvailability)

	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)
	g.POST("/restaurants/:id/reservations", h.CreateReservation)
	g.GET("/my-reservations", h.MyReservations)
	g.DELETE("/reservations/:reservation_id", h.CancelReservation)

	g.POST("/reservations/:reservation_id/orders", h.PlaceOrder)
	g.GET("/reservations/:reservation_id/orders", h.MyOrders)
}
