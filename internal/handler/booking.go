package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking/internal/service"
	"github.com/iliyamo/flight-booking/internal/utils"
)

// Bookings is the booking lifecycle as seen by the HTTP layer.
type Bookings interface {
	CreateBooking(ctx context.Context, in service.CreateBookingInput) (service.BookingResponse, error)
	GetBookingByReference(ctx context.Context, ref string) (service.BookingResponse, error)
	ConfirmBooking(ctx context.Context, ref string) (service.BookingResponse, error)
	ConfirmPayment(ctx context.Context, ref, paymentMethod string) (service.BookingResponse, error)
	CancelBooking(ctx context.Context, ref string) (service.BookingResponse, error)
}

type BookingHandler struct {
	bookings Bookings
}

func NewBookingHandler(bookings Bookings) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create handles POST /api/bookings and answers 201 with the PENDING
// booking.
func (h *BookingHandler) Create(c echo.Context) error {
	var in service.CreateBookingInput
	if err := bind(c, &in); err != nil {
		return err
	}
	resp, err := h.bookings.CreateBooking(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, resp)
}

// Get handles GET /api/bookings/:reference.
func (h *BookingHandler) Get(c echo.Context) error {
	ref, err := pathReference(c)
	if err != nil {
		return err
	}
	resp, err := h.bookings.GetBookingByReference(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Confirm handles PUT /api/bookings/:reference/confirm.
func (h *BookingHandler) Confirm(c echo.Context) error {
	ref, err := pathReference(c)
	if err != nil {
		return err
	}
	resp, err := h.bookings.ConfirmBooking(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Cancel handles DELETE /api/bookings/:reference and answers 204.
func (h *BookingHandler) Cancel(c echo.Context) error {
	ref, err := pathReference(c)
	if err != nil {
		return err
	}
	if _, err := h.bookings.CancelBooking(c.Request().Context(), ref); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func pathReference(c echo.Context) (string, error) {
	ref := c.Param("reference")
	if !utils.IsBookingReference(ref) {
		return "", service.Validation(map[string]string{"reference": "must be 6 uppercase letters or digits"})
	}
	return ref, nil
}
