package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dinebook/table-reservation/internal/handler"
	"github.com/dinebook/table-reservation/internal/middleware"
)

// RegisterOwner registers OWNER-scoped endpoints under /v1. All routes
// require a valid JWT and the OWNER role.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("OWNER"),
	)

	// ---- Restaurants ----
	g.POST("/restaurants", o.CreateRestaurant)
	g.GET("/my-restaurants", o.MyRestaurants)
	g.PUT("/restaurants/:id", o.UpdateRestaurant)
	g.PATCH("/restaurants/:id", o.UpdateRestaurant)
	g.DELETE("/restaurants/:id", o.DeleteRestaurant)

	// ---- Booking grid ----
	g.GET("/restaurants/:id/layout", o.GetLayout)
	g.PUT("/restaurants/:id/layout", o.SetLayout)

	// ---- Menu ----
	g.POST("/restaurants/:id/menu", o.CreateMenuItem)
	g.PUT("/menu-items/:item_id", o.UpdateMenuItem)
	g.PATCH("/menu-items/:item_id", o.UpdateMenuItem)
	g.DELETE("/menu-items/:item_id", o.DeleteMenuItem)

	// ---- Reservations ----
	g.GET("/restaurants/:id/reservations", o.ListReservations)
	g.POST("/reservations/:reservation_id/settle", o.SettleReservation)
	g.GET("/restaurants/:id/history", o.ListHistory)

	// ---- Orders ----
	// Owner perspective lives under /owner so the diner-facing orders
	// route can keep the plain path.
	g.GET("/owner/reservations/:reservation_id/orders", o.ListReservationOrders)
	g.POST("/orders/:order_id/paid", o.MarkOrderPaid)
	g.DELETE("/orders/:order_id", o.DeleteOrder)
}
