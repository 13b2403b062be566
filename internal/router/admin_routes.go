package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking/internal/handler"
	"github.com/iliyamo/flight-booking/internal/middleware"
)

// RegisterAdmin registers operator endpoints under /api/admin.  All
// routes require a valid JWT with the ADMIN role.
func RegisterAdmin(api *echo.Group, a *handler.AdminHandler, jwtSecret string) {
	g := api.Group(
		"/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	g.POST("/flights/:id/seats", a.ProvisionSeats)
}
