package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking/internal/model"
	"github.com/iliyamo/flight-booking/internal/service"
)

// Flight responses carry list prices with only the cabin multiplier
// applied.  The header tells clients the booked fare may differ.
const (
	headerPriceDisclosure = "X-Price-Disclosure"
	priceDisclosure       = "estimate"
)

// FlightQueries is the read side of the flight catalogue.
type FlightQueries interface {
	Search(ctx context.Context, req service.SearchRequest) ([]service.FlightResponse, error)
	GetFlightByID(ctx context.Context, id uint64) (service.FlightResponse, error)
	GetAvailableSeats(ctx context.Context, flightID uint64, class model.CabinClass) ([]service.SeatDTO, error)
	ListAirports(ctx context.Context) ([]service.AirportDTO, error)
}

// FlightHandler serves flight search, flight details, seat maps and the
// airport list.
type FlightHandler struct {
	flights FlightQueries
}

func NewFlightHandler(flights FlightQueries) *FlightHandler {
	return &FlightHandler{flights: flights}
}

// Search handles POST /api/flights/search.
func (h *FlightHandler) Search(c echo.Context) error {
	var req service.SearchRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	flights, err := h.flights.Search(c.Request().Context(), req)
	if err != nil {
		return err
	}
	c.Response().Header().Set(headerPriceDisclosure, priceDisclosure)
	return c.JSON(http.StatusOK, flights)
}

// GetFlight handles GET /api/flights/:id.
func (h *FlightHandler) GetFlight(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	flight, err := h.flights.GetFlightByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	c.Response().Header().Set(headerPriceDisclosure, priceDisclosure)
	return c.JSON(http.StatusOK, flight)
}

// GetSeats handles GET /api/flights/:id/seats.  The optional seatClass
// query parameter restricts the list to one cabin.
func (h *FlightHandler) GetSeats(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var class model.CabinClass
	if raw := c.QueryParam("seatClass"); raw != "" {
		if class, err = model.ParseCabinClass(raw); err != nil {
			return service.Validation(map[string]string{"seatClass": "must be one of ECONOMY, BUSINESS, FIRST"})
		}
	}
	seats, err := h.flights.GetAvailableSeats(c.Request().Context(), id, class)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seats)
}

// ListAirports handles GET /api/airports.
func (h *FlightHandler) ListAirports(c echo.Context) error {
	airports, err := h.flights.ListAirports(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, airports)
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, service.Validation(map[string]string{"id": "must be a positive integer"})
	}
	return id, nil
}
