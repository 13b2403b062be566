package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SeatProvisioner generates the seat inventory of a flight.
type SeatProvisioner interface {
	ProvisionSeats(ctx context.Context, flightID uint64) (int, error)
}

// AdminHandler serves operator endpoints.  Routes are expected to sit
// behind JWTAuth and RequireRole("ADMIN").
type AdminHandler struct {
	seats SeatProvisioner
}

func NewAdminHandler(seats SeatProvisioner) *AdminHandler {
	return &AdminHandler{seats: seats}
}

// ProvisionSeats handles POST /api/admin/flights/:id/seats.
func (h *AdminHandler) ProvisionSeats(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.seats.ProvisionSeats(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": n})
}
