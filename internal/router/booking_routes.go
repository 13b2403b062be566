package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking/internal/handler"
)

// RegisterPublic registers the customer API on api (the rate-limited
// /api group).  No authentication is required: bookings are addressed
// by their reference.  cache wraps the airport list, which changes
// rarely.
func RegisterPublic(api *echo.Group, f *handler.FlightHandler, b *handler.BookingHandler,
	p *handler.PaymentHandler, cache echo.MiddlewareFunc) {
	api.GET("/airports", f.ListAirports, cache)

	api.POST("/flights/search", f.Search)
	api.GET("/flights/:id", f.GetFlight)
	api.GET("/flights/:id/seats", f.GetSeats)

	api.POST("/bookings", b.Create)
	api.GET("/bookings/:reference", b.Get)
	api.PUT("/bookings/:reference/confirm", b.Confirm)
	api.DELETE("/bookings/:reference", b.Cancel)

	api.POST("/payments/create-intent", p.CreateIntent)
	api.POST("/payments/confirm", p.Confirm)
	// Barion checkouts post to their own path; the flow is the same.
	api.POST("/payments/barion/pay", p.Confirm)
}
